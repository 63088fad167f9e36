package types

// Format identifies the strategy that decoded an image header.
//
// The set is closed: every Format has exactly one strategy, and the
// dispatcher falls back to FormatGeneric for any unrecognized signature.
type Format int

const (
	// FormatGeneric represents any image without a dedicated header decoder.
	// Its metadata comes entirely from the image inspector.
	FormatGeneric Format = iota
	// FormatBMP represents Windows bitmap files (signature "BM").
	FormatBMP
)

// String returns the human-readable format name.
func (f Format) String() string {
	switch f {
	case FormatGeneric:
		return "Generic"
	case FormatBMP:
		return "BMP"
	default:
		return "Unknown"
	}
}

// Extensions returns common file extensions for this format.
func (f Format) Extensions() []string {
	switch f {
	case FormatBMP:
		return []string{".bmp", ".dib"}
	case FormatGeneric:
		return nil
	default:
		return nil
	}
}

// Signature returns the magic bytes that select this format, or nil for
// formats chosen by fallback.
func (f Format) Signature() []byte {
	switch f {
	case FormatBMP:
		return []byte("BM")
	default:
		return nil
	}
}
