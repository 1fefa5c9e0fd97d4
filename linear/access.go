package linear

import (
	"github.com/wippyai/wasm-stack/errors"
)

func readOOB(offset, length uint32) error {
	return errors.New(errors.PhaseAccess, errors.KindOutOfBounds).
		Value(offset).
		Detail("memory read out of bounds: offset=%d, length=%d", offset, length).
		Build()
}

func writeOOB(offset, length uint32) error {
	return errors.New(errors.PhaseAccess, errors.KindOutOfBounds).
		Value(offset).
		Detail("memory write out of bounds: offset=%d, length=%d", offset, length).
		Build()
}

// Read reads bytes from memory. The slice aliases linear memory.
func (r *Region) Read(offset uint32, length uint32) ([]byte, error) {
	data, ok := r.mem.Read(offset, length)
	if !ok {
		return nil, readOOB(offset, length)
	}
	return data, nil
}

// Write writes bytes to memory.
func (r *Region) Write(offset uint32, data []byte) error {
	if !r.mem.Write(offset, data) {
		return writeOOB(offset, uint32(len(data)))
	}
	return nil
}

// ReadU8 reads an unsigned 8-bit value.
func (r *Region) ReadU8(offset uint32) (uint8, error) {
	v, ok := r.mem.ReadByte(offset)
	if !ok {
		return 0, readOOB(offset, 1)
	}
	return v, nil
}

// ReadU16 reads an unsigned 16-bit little-endian value.
func (r *Region) ReadU16(offset uint32) (uint16, error) {
	v, ok := r.mem.ReadUint16Le(offset)
	if !ok {
		return 0, readOOB(offset, 2)
	}
	return v, nil
}

// ReadU32 reads an unsigned 32-bit little-endian value.
func (r *Region) ReadU32(offset uint32) (uint32, error) {
	v, ok := r.mem.ReadUint32Le(offset)
	if !ok {
		return 0, readOOB(offset, 4)
	}
	return v, nil
}

// ReadU64 reads an unsigned 64-bit little-endian value.
func (r *Region) ReadU64(offset uint32) (uint64, error) {
	v, ok := r.mem.ReadUint64Le(offset)
	if !ok {
		return 0, readOOB(offset, 8)
	}
	return v, nil
}

// WriteU8 writes an unsigned 8-bit value.
func (r *Region) WriteU8(offset uint32, value uint8) error {
	if !r.mem.WriteByte(offset, value) {
		return writeOOB(offset, 1)
	}
	return nil
}

// WriteU16 writes an unsigned 16-bit little-endian value.
func (r *Region) WriteU16(offset uint32, value uint16) error {
	if !r.mem.WriteUint16Le(offset, value) {
		return writeOOB(offset, 2)
	}
	return nil
}

// WriteU32 writes an unsigned 32-bit little-endian value.
func (r *Region) WriteU32(offset uint32, value uint32) error {
	if !r.mem.WriteUint32Le(offset, value) {
		return writeOOB(offset, 4)
	}
	return nil
}

// WriteU64 writes an unsigned 64-bit little-endian value.
func (r *Region) WriteU64(offset uint32, value uint64) error {
	if !r.mem.WriteUint64Le(offset, value) {
		return writeOOB(offset, 8)
	}
	return nil
}

// PushBytes allocates len(data) bytes aligned to align and copies data in.
func (r *Region) PushBytes(data []byte, align uint32) (uint32, error) {
	ptr, err := r.Alloc(uint32(len(data)), align)
	if err != nil {
		return 0, err
	}
	if err := r.Write(ptr, data); err != nil {
		r.Free(ptr, uint32(len(data)), align)
		return 0, err
	}
	return ptr, nil
}
