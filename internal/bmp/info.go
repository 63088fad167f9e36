package bmp

import (
	"math"

	"github.com/simonhull/imagemeta/internal/binary"
)

// defaultDPI is reported when a bitmap stores no physical resolution.
const defaultDPI = 96.0

const inchesPerMeter = 0.0254

// Info holds the header facts an image inspector needs beyond width and height.
type Info struct {
	Width         int32
	Height        int32 // negative for top-down bitmaps
	BitCount      uint16
	Compression   uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
}

// ReadInfo reads dimensions, bit depth, compression and pixels-per-meter
// by absolute offset.
func ReadInfo(sr *binary.SafeReader) (Info, error) {
	var info Info

	width, err := binary.ReadLE[uint32](sr, offsetWidth, "width")
	if err != nil {
		return info, err
	}
	height, err := binary.ReadLE[uint32](sr, offsetHeight, "height")
	if err != nil {
		return info, err
	}
	bitCount, err := binary.ReadLE[uint16](sr, offsetBitCount, "bit count")
	if err != nil {
		return info, err
	}
	compression, err := binary.ReadLE[uint32](sr, offsetCompression, "compression")
	if err != nil {
		return info, err
	}
	xppm, err := binary.ReadLE[uint32](sr, offsetXPelsPerM, "horizontal pixels per meter")
	if err != nil {
		return info, err
	}
	yppm, err := binary.ReadLE[uint32](sr, offsetYPelsPerM, "vertical pixels per meter")
	if err != nil {
		return info, err
	}

	info.Width = int32(width)
	info.Height = int32(height)
	info.BitCount = bitCount
	info.Compression = compression
	info.XPelsPerMeter = int32(xppm)
	info.YPelsPerMeter = int32(yppm)
	return info, nil
}

// Dimensions returns the absolute pixel width and height.
func (i Info) Dimensions() (width, height int) {
	return abs(int(i.Width)), abs(int(i.Height))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// PixelFormat returns a GDI-style pixel format label for the bit depth.
func (i Info) PixelFormat() string {
	switch i.BitCount {
	case 1:
		return "Format1bppIndexed"
	case 4:
		return "Format4bppIndexed"
	case 8:
		return "Format8bppIndexed"
	case 16:
		return "Format16bppRgb555"
	case 24:
		return "Format24bppRgb"
	case 32:
		return "Format32bppRgb"
	default:
		return "Undefined"
	}
}

// HorizontalDPI converts XPelsPerMeter to dots per inch.
func (i Info) HorizontalDPI() float64 {
	return dpi(i.XPelsPerMeter)
}

// VerticalDPI converts YPelsPerMeter to dots per inch.
func (i Info) VerticalDPI() float64 {
	return dpi(i.YPelsPerMeter)
}

func dpi(ppm int32) float64 {
	if ppm <= 0 {
		return defaultDPI
	}
	return math.Round(float64(ppm)*inchesPerMeter*100) / 100
}
