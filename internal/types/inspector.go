package types

import (
	"bytes"
	"io"
	"os"
)

// ImageHandle is an opaque reference to an image that an Inspector can resolve.
type ImageHandle interface {
	// Name identifies the image in errors and logs.
	Name() string
	// Open returns a fresh reader positioned at the start of the image.
	Open() (io.ReadCloser, error)
}

// ImageInfo is what an Inspector reports about a whole image.
type ImageInfo struct {
	// PixelFormat is a descriptive label such as "Format24bppRgb" or "YCbCr".
	PixelFormat string
	Width       int
	Height      int
	// HorizontalDPI and VerticalDPI are resolutions in dots per inch.
	HorizontalDPI float64
	VerticalDPI   float64
}

// PixelCount returns Width × Height.
func (i ImageInfo) PixelCount() int64 {
	return int64(i.Width) * int64(i.Height)
}

// Inspector reports basic facts about an image.
//
// Implementations must be safe for concurrent use. A handle that cannot be
// opened or decoded is reported as *UnresolvableImageError.
type Inspector interface {
	Inspect(h ImageHandle) (ImageInfo, error)
}

// PathHandle references an image file on disk.
type PathHandle string

// Name returns the file path.
func (p PathHandle) Name() string { return string(p) }

// Open opens the file.
func (p PathHandle) Open() (io.ReadCloser, error) {
	return os.Open(string(p))
}

// BytesHandle references an in-memory image.
type BytesHandle struct {
	name string
	data []byte
}

// NewBytesHandle returns a handle over data. name is used only for messages.
func NewBytesHandle(name string, data []byte) *BytesHandle {
	return &BytesHandle{name: name, data: data}
}

// Name returns the name given at construction.
func (b *BytesHandle) Name() string { return b.name }

// Open returns a reader over the image bytes.
func (b *BytesHandle) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.data)), nil
}

// ReaderAtHandle references an image already available as an io.ReaderAt.
type ReaderAtHandle struct {
	r    io.ReaderAt
	name string
	size int64
}

// NewReaderAtHandle returns a handle over the first size bytes of r.
func NewReaderAtHandle(name string, r io.ReaderAt, size int64) *ReaderAtHandle {
	return &ReaderAtHandle{r: r, name: name, size: size}
}

// Name returns the name given at construction.
func (h *ReaderAtHandle) Name() string { return h.name }

// Open returns an independent reader over the section.
func (h *ReaderAtHandle) Open() (io.ReadCloser, error) {
	return io.NopCloser(io.NewSectionReader(h.r, 0, h.size)), nil
}
