// Package inspect is the default image inspector, built on image.DecodeConfig.
//
// Registered decoders: BMP, TIFF and WebP from golang.org/x/image, plus GIF,
// JPEG and PNG from the standard library. Only configuration is decoded;
// pixel data is never read.
package inspect

import (
	"bufio"
	"bytes"
	"errors"
	"image"
	"image/color"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"slices"

	xbmp "golang.org/x/image/bmp" // Register BMP decoder
	_ "golang.org/x/image/tiff"   // Register TIFF decoder
	_ "golang.org/x/image/webp"   // Register WebP decoder

	"github.com/simonhull/imagemeta/internal/binary"
	"github.com/simonhull/imagemeta/internal/bmp"
	"github.com/simonhull/imagemeta/internal/types"
)

// DefaultDPI is reported when a format carries no usable resolution.
const DefaultDPI = 96.0

// Inspector implements types.Inspector. The zero value is ready to use and
// safe for concurrent use.
type Inspector struct{}

// New returns an Inspector.
func New() *Inspector {
	return &Inspector{}
}

// Inspect opens h and reports its dimensions, pixel format and resolution.
func (in *Inspector) Inspect(h types.ImageHandle) (types.ImageInfo, error) {
	rc, err := h.Open()
	if err != nil {
		return types.ImageInfo{}, &types.UnresolvableImageError{Handle: h.Name(), Err: err}
	}
	defer rc.Close()

	br := bufio.NewReader(rc)

	// Keep the fixed headers around; DecodeConfig consumes the reader.
	head, _ := br.Peek(bmp.HeaderLen)
	head = slices.Clone(head)

	cfg, format, err := image.DecodeConfig(br)
	if err != nil {
		// x/image/bmp stops at 1, 4 and 16 bpp and at RLE; the header
		// still describes those bitmaps fully.
		if errors.Is(err, xbmp.ErrUnsupported) {
			if bi, ok := readBitmapInfo(head, h.Name()); ok {
				return bitmapInfo(bi), nil
			}
		}
		return types.ImageInfo{}, &types.UnresolvableImageError{Handle: h.Name(), Err: err}
	}

	info := types.ImageInfo{
		PixelFormat:   ColorModelName(cfg.ColorModel),
		Width:         cfg.Width,
		Height:        cfg.Height,
		HorizontalDPI: DefaultDPI,
		VerticalDPI:   DefaultDPI,
	}

	if format == "bmp" {
		if bi, ok := readBitmapInfo(head, h.Name()); ok {
			info.PixelFormat = bi.PixelFormat()
			info.HorizontalDPI = bi.HorizontalDPI()
			info.VerticalDPI = bi.VerticalDPI()
		}
	}

	return info, nil
}

// readBitmapInfo parses the fixed bitmap headers captured before decoding.
func readBitmapInfo(head []byte, name string) (bmp.Info, bool) {
	if !bytes.HasPrefix(head, []byte("BM")) {
		return bmp.Info{}, false
	}
	sr := binary.NewSafeReader(bytes.NewReader(head), int64(len(head)), name)
	bi, err := bmp.ReadInfo(sr)
	return bi, err == nil
}

// bitmapInfo reports a bitmap from its headers alone.
func bitmapInfo(bi bmp.Info) types.ImageInfo {
	width, height := bi.Dimensions()
	return types.ImageInfo{
		PixelFormat:   bi.PixelFormat(),
		Width:         width,
		Height:        height,
		HorizontalDPI: bi.HorizontalDPI(),
		VerticalDPI:   bi.VerticalDPI(),
	}
}

// ColorModelName returns a short label for a color model.
func ColorModelName(cm color.Model) string {
	switch cm {
	case color.RGBAModel:
		return "RGBA"
	case color.RGBA64Model:
		return "RGBA64"
	case color.NRGBAModel:
		return "NRGBA"
	case color.NRGBA64Model:
		return "NRGBA64"
	case color.AlphaModel:
		return "Alpha"
	case color.Alpha16Model:
		return "Alpha16"
	case color.GrayModel:
		return "Gray"
	case color.Gray16Model:
		return "Gray16"
	case color.YCbCrModel:
		return "YCbCr"
	case color.NYCbCrAModel:
		return "NYCbCrA"
	case color.CMYKModel:
		return "CMYK"
	default:
		if _, ok := cm.(color.Palette); ok {
			return "Paletted"
		}
		return "Unknown"
	}
}
