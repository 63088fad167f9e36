// Package binary provides bounds-checked binary reading primitives for image headers.
package binary

import (
	"encoding/binary"
	"fmt"
	"io"
)

// OutOfRangeError is returned when an offset lies outside the stream.
type OutOfRangeError struct {
	Path   string
	What   string
	Offset int64
	Size   int64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s: offset %d out of range (stream size: %d) while reading %s",
		e.Path, e.Offset, e.Size, e.What)
}

// UnexpectedEndError is returned when a read needs more bytes than remain.
type UnexpectedEndError struct {
	Path   string
	What   string
	Offset int64
	Length int
	Size   int64
}

func (e *UnexpectedEndError) Error() string {
	return fmt.Sprintf("%s: read of %d bytes at offset %d would exceed stream size %d while reading %s",
		e.Path, e.Length, e.Offset, e.Size, e.What)
}

// SafeReader wraps io.ReaderAt with bounds checking and helpful error messages.
type SafeReader struct {
	r    io.ReaderAt
	path string
	size int64
}

// NewSafeReader creates a new SafeReader.
func NewSafeReader(r io.ReaderAt, size int64, path string) *SafeReader {
	return &SafeReader{
		r:    r,
		size: size,
		path: path,
	}
}

// Path returns the name associated with this reader.
func (sr *SafeReader) Path() string {
	return sr.path
}

// Size returns the total stream length in bytes.
func (sr *SafeReader) Size() int64 {
	return sr.size
}

// ReadAt reads len(b) bytes at the given offset with context for error messages.
func (sr *SafeReader) ReadAt(b []byte, off int64, what string) error {
	if off < 0 || off >= sr.size {
		return &OutOfRangeError{Path: sr.path, What: what, Offset: off, Size: sr.size}
	}

	if off+int64(len(b)) > sr.size {
		return &UnexpectedEndError{Path: sr.path, What: what, Offset: off, Length: len(b), Size: sr.size}
	}

	n, err := sr.r.ReadAt(b, off)
	if err != nil && err != io.EOF {
		return fmt.Errorf("%s: failed to read %s at offset %d: %w", sr.path, what, off, err)
	}

	// The ReaderAt is shorter than the size it was declared with.
	if n < len(b) {
		return &UnexpectedEndError{Path: sr.path, What: what, Offset: off, Length: len(b), Size: off + int64(n)}
	}

	return nil
}

// sizeOf returns the encoded width of T in bytes.
func sizeOf[T uint8 | uint16 | uint32 | uint64]() int {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return 1
	case uint16:
		return 2
	case uint32:
		return 4
	default:
		return 8
	}
}

// decode converts buf to T using the given byte order.
func decode[T uint8 | uint16 | uint32 | uint64](buf []byte, endian Endianness) T {
	var order binary.ByteOrder = binary.BigEndian
	if endian == LittleEndian {
		order = binary.LittleEndian
	}

	var zero T
	switch any(zero).(type) {
	case uint8:
		return T(buf[0])
	case uint16:
		return T(order.Uint16(buf))
	case uint32:
		return T(order.Uint32(buf))
	default:
		return T(order.Uint64(buf))
	}
}
