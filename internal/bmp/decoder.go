// Package bmp decodes Windows bitmap file and info headers into metadata fields.
package bmp

import (
	"strconv"

	"github.com/simonhull/imagemeta/internal/binary"
	"github.com/simonhull/imagemeta/internal/types"
)

// Absolute offsets into BITMAPFILEHEADER (14 bytes) followed by BITMAPINFOHEADER.
const (
	offsetType        = 0
	offsetFileSize    = 2
	offsetDataOffset  = 10
	offsetHeaderSize  = 14
	offsetWidth       = 18
	offsetHeight      = 22
	offsetBitCount    = 28
	offsetCompression = 30
	offsetImageSize   = 34
	offsetXPelsPerM   = 38
	offsetYPelsPerM   = 42
)

// Field names, in the order Decode adds them.
const (
	FieldFileType        = "File type"
	FieldFileSize        = "File size"
	FieldDataOffset      = "Image data start offset"
	FieldHeaderSize      = "Bitmap header size"
	FieldWidth           = "Width"
	FieldHeight          = "Height"
	FieldCompression     = "Compression"
	FieldImageSize       = "Image size"
	FieldHorizontalRes   = "Horizontal resolution"
	FieldVerticalRes     = "Vertical resolution"
	FieldPixelFormat     = "Pixel format (Bitmap)"
	FieldBitmapWidth     = "Width (Bitmap)"
	FieldBitmapHeight    = "Height (Bitmap)"
	FieldBitmapImageSize = "Image size (Bitmap)"
	FieldBitmapHRes      = "Horizontal resolution (Bitmap)"
	FieldBitmapVRes      = "Vertical resolution (Bitmap)"
)

// channels is the per-pixel byte count the stored image size is inflated by.
const channels = 3

// compressionNames maps biCompression values to labels. Other values
// (BI_BITFIELDS, BI_JPEG, BI_PNG, ...) produce no Compression field.
var compressionNames = map[uint32]string{
	0: "No compression",
	1: "RLE 8-bit compression",
	2: "RLE 4-bit compression",
}

// Decode reads the bitmap header fields from cur and appends the
// inspector's view of h. The cursor position on entry does not matter.
//
// "File size" is reported as stored. "Image size" is the stored value
// divided by three.
func Decode(cur *binary.Cursor, h types.ImageHandle, insp types.Inspector) (*types.Metadata, error) {
	cr := binary.NewChainReader(cur)

	cr.Seek(offsetType)
	fileType := cr.String(2, "file type")
	fileSize := cr.U32("file size")

	cr.Seek(offsetDataOffset)
	dataOffset := cr.U32("image data offset")
	headerSize := cr.U32("bitmap header size")
	width := cr.U32("width")
	height := cr.U32("height")

	cr.Seek(offsetCompression)
	compression := cr.U32("compression")
	imageSize := cr.U32("image size")
	xRes := cr.U32("horizontal resolution")
	yRes := cr.U32("vertical resolution")

	if err := cr.Error(); err != nil {
		return nil, err
	}

	b := types.NewBuilder(types.FormatBMP)
	b.Add(FieldFileType, fileType)
	b.Add(FieldFileSize, strconv.FormatUint(uint64(fileSize), 10))
	b.Add(FieldDataOffset, strconv.FormatUint(uint64(dataOffset), 10))
	b.Add(FieldHeaderSize, strconv.FormatUint(uint64(headerSize), 10))
	b.Add(FieldWidth, signed(width))
	b.Add(FieldHeight, signed(height))
	if name, ok := compressionNames[compression]; ok {
		b.Add(FieldCompression, name)
	}
	b.Add(FieldImageSize, strconv.FormatUint(uint64(imageSize/channels), 10))
	b.Add(FieldHorizontalRes, signed(xRes))
	b.Add(FieldVerticalRes, signed(yRes))

	info, err := insp.Inspect(h)
	if err != nil {
		return nil, err
	}

	b.Add(FieldPixelFormat, info.PixelFormat)
	b.Add(FieldBitmapWidth, strconv.Itoa(info.Width))
	b.Add(FieldBitmapHeight, strconv.Itoa(info.Height))
	b.Add(FieldBitmapImageSize, strconv.FormatInt(info.PixelCount(), 10))
	b.Add(FieldBitmapHRes, FormatFloat(info.HorizontalDPI))
	b.Add(FieldBitmapVRes, FormatFloat(info.VerticalDPI))

	return b.Metadata()
}

// signed renders a header dword as the LONG it is declared as.
// Negative heights mark top-down bitmaps.
func signed(v uint32) string {
	return strconv.FormatInt(int64(int32(v)), 10)
}

// FormatFloat renders a resolution with the shortest exact decimal form.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
