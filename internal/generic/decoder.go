// Package generic builds metadata for images without a dedicated header decoder.
package generic

import (
	"strconv"

	"github.com/simonhull/imagemeta/internal/binary"
	"github.com/simonhull/imagemeta/internal/types"
)

// Field names, in the order Decode adds them.
const (
	FieldPixelFormat   = "Pixel format"
	FieldWidth         = "Width"
	FieldHeight        = "Height"
	FieldImageSize     = "Image size"
	FieldHorizontalRes = "Horizontal resolution"
	FieldVerticalRes   = "Vertical resolution"
)

// Decode reports what the inspector knows about h. The stream is not read.
func Decode(_ *binary.Cursor, h types.ImageHandle, insp types.Inspector) (*types.Metadata, error) {
	info, err := insp.Inspect(h)
	if err != nil {
		return nil, err
	}

	b := types.NewBuilder(types.FormatGeneric)
	b.Add(FieldPixelFormat, info.PixelFormat)
	b.Add(FieldWidth, strconv.Itoa(info.Width))
	b.Add(FieldHeight, strconv.Itoa(info.Height))
	b.Add(FieldImageSize, strconv.FormatInt(info.PixelCount(), 10))
	b.Add(FieldHorizontalRes, strconv.FormatFloat(info.HorizontalDPI, 'f', -1, 64))
	b.Add(FieldVerticalRes, strconv.FormatFloat(info.VerticalDPI, 'f', -1, 64))
	return b.Metadata()
}
