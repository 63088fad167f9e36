package bmp

import (
	"io"

	"github.com/simonhull/imagemeta/internal/binary"
)

// Header is the 14-byte BITMAPFILEHEADER followed by the 40-byte BITMAPINFOHEADER.
type Header struct {
	FileSize      uint32
	DataOffset    uint32
	HeaderSize    uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	ImageSize     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ColorsUsed    uint32
	ColorsImport  uint32
}

// HeaderLen is the combined length of the file and info headers.
const HeaderLen = 14 + 40

// NewHeader returns an uncompressed header for a width × height image at
// bitCount bits per pixel, with row stride padded to four bytes.
func NewHeader(width, height int32, bitCount uint16) Header {
	stride := ((int64(width)*int64(bitCount) + 31) / 32) * 4
	rows := int64(height)
	if rows < 0 {
		rows = -rows
	}
	imageSize := uint32(stride * rows)

	return Header{
		FileSize:   HeaderLen + imageSize,
		DataOffset: HeaderLen,
		HeaderSize: 40,
		Width:      width,
		Height:     height,
		Planes:     1,
		BitCount:   bitCount,
		ImageSize:  imageSize,
	}
}

// WriteTo encodes the header in little-endian order and implements io.WriterTo.
func (h Header) WriteTo(w io.Writer) (int64, error) {
	sw := binary.NewSafeWriter(w)
	steps := []func() error{
		func() error { return sw.WriteString("BM") },
		func() error { return binary.WriteLE(sw, h.FileSize) },
		func() error { return sw.Pad(4) }, // reserved
		func() error { return binary.WriteLE(sw, h.DataOffset) },
		func() error { return binary.WriteLE(sw, h.HeaderSize) },
		func() error { return binary.WriteLE(sw, uint32(h.Width)) },
		func() error { return binary.WriteLE(sw, uint32(h.Height)) },
		func() error { return binary.WriteLE(sw, h.Planes) },
		func() error { return binary.WriteLE(sw, h.BitCount) },
		func() error { return binary.WriteLE(sw, h.Compression) },
		func() error { return binary.WriteLE(sw, h.ImageSize) },
		func() error { return binary.WriteLE(sw, uint32(h.XPelsPerMeter)) },
		func() error { return binary.WriteLE(sw, uint32(h.YPelsPerMeter)) },
		func() error { return binary.WriteLE(sw, h.ColorsUsed) },
		func() error { return binary.WriteLE(sw, h.ColorsImport) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return sw.Offset(), err
		}
	}
	return sw.Offset(), nil
}
