package imagemeta

import (
	"io"

	"github.com/simonhull/imagemeta/internal/types"
)

// Format is an alias to types.Format.
// Re-exporting from internal/types to maintain public API.
type Format = types.Format

// Re-export all format constants.
const (
	FormatGeneric = types.FormatGeneric
	FormatBMP     = types.FormatBMP
)

// Metadata is an alias to types.Metadata, the ordered result of a decode.
//
// A returned Metadata is read-only: it exposes lookups, iteration and
// copies of its fields, and Format reports the strategy that produced it.
type Metadata = types.Metadata

// Field is an alias to types.Field.
type Field = types.Field

// ImageHandle is an alias to types.ImageHandle.
type ImageHandle = types.ImageHandle

// ImageInfo is an alias to types.ImageInfo.
type ImageInfo = types.ImageInfo

// Inspector is an alias to types.Inspector, the image introspection collaborator.
type Inspector = types.Inspector

// PathHandle is an alias to types.PathHandle.
type PathHandle = types.PathHandle

// NewBytesHandle returns a handle over an in-memory image.
func NewBytesHandle(name string, data []byte) ImageHandle {
	return types.NewBytesHandle(name, data)
}

// NewReaderAtHandle returns a handle over the first size bytes of r.
func NewReaderAtHandle(name string, r io.ReaderAt, size int64) ImageHandle {
	return types.NewReaderAtHandle(name, r, size)
}
