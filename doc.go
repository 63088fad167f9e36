// Package imagemeta extracts header metadata from raster image files.
//
// imagemeta identifies an image's container format from its leading
// signature bytes and reads structural fields (file size, dimensions,
// compression, resolution, pixel data offset) from fixed offsets in the
// header. Pixel data is never decoded.
//
// # Quick Start
//
//	md, err := imagemeta.DecodeFile("photo.bmp")
//	if err != nil {
//		log.Fatal(err)
//	}
//	for name, value := range md.All() {
//		fmt.Printf("%s: %s\n", name, value)
//	}
//
// # Supported Formats
//
//   - BMP ("BM"): file and info header fields, plus the inspector's view
//     of the same image under "(Bitmap)" labels
//   - Anything else: pixel format, dimensions, pixel count and resolution
//     reported by the Inspector (BMP, GIF, JPEG, PNG, TIFF and WebP by default)
//
// Unrecognized signatures are never an error; they route to the generic
// strategy.
//
// # Output
//
// Metadata is an ordered set of name/value strings. Order is the order
// fields were read and is identical across repeated decodes of the same
// input. Metadata marshals to a JSON object that keeps this order, and
// WriteTo emits "name: value" lines.
//
// # BMP Quirks
//
// Two BMP fields are reproduced as stored rather than normalized:
//
//   - "File size" is the raw header value.
//   - "Image size" is the raw biSizeImage divided by three.
//
// Compression codes other than 0, 1 and 2 produce no "Compression" field.
//
// # Error Handling
//
// A failed decode returns no metadata and an error wrapping one of:
//
//   - *OutOfRangeError: a header offset lies beyond the stream
//   - *UnexpectedEndError: a field extends past the end of the stream
//   - *UnresolvableImageError: the Inspector could not open the image
//   - *DuplicateFieldError: a decoder emitted a field twice
//
// Use errors.As to inspect them.
//
// # Concurrency
//
// A Decoder is immutable and safe for concurrent use. DecodeMany decodes
// files in parallel:
//
//	dec := imagemeta.New(imagemeta.WithConcurrency(8))
//	results, err := dec.DecodeMany(ctx, paths...)
//
// # Observability
//
// WithLogger takes a *slog.Logger; nothing is logged by default.
// WithMetrics registers Prometheus collectors for decode counts, durations
// and DecodeMany concurrency.
package imagemeta
