package imagemeta

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/simonhull/imagemeta/internal/binary"
	"github.com/simonhull/imagemeta/internal/bmp"
	"github.com/simonhull/imagemeta/internal/generic"
	"github.com/simonhull/imagemeta/internal/metrics"
	"github.com/simonhull/imagemeta/internal/registry"
)

// Decoder identifies image formats and extracts header metadata.
//
// A Decoder is immutable after New and safe for concurrent use. Each
// decode call borrows its stream for the duration of the call only.
//
//	dec := imagemeta.New(imagemeta.WithLogger(logger))
//	md, err := dec.DecodeFile("photo.bmp")
//	if err != nil {
//		return err
//	}
//	for name, value := range md.All() {
//		fmt.Printf("%s: %s\n", name, value)
//	}
type Decoder struct {
	registry    *registry.Registry
	inspector   Inspector
	logger      *slog.Logger
	limiter     *rate.Limiter
	metrics     *metrics.Metrics
	concurrency int
}

// New returns a Decoder configured by opts.
func New(opts ...Option) *Decoder {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	d := &Decoder{
		registry:    defaultRegistry(),
		inspector:   options.inspector,
		logger:      options.logger,
		concurrency: options.concurrency,
	}
	if options.rateLimit > 0 {
		d.limiter = rate.NewLimiter(options.rateLimit, options.rateBurst)
	}
	if options.registerer != nil {
		d.metrics = metrics.New(options.registerer)
	}
	return d
}

// defaultRegistry lists every supported format. Adding a format means
// adding an entry here; callers of Decode are unaffected.
func defaultRegistry() *registry.Registry {
	return registry.New(
		registry.Entry{
			Format: FormatGeneric,
			Decode: generic.Decode,
		},
		registry.Entry{
			Format: FormatBMP,
			Match:  registry.Prefix(FormatBMP.Signature()),
			Decode: bmp.Decode,
		},
	)
}

// Decode extracts metadata from the first size bytes of r.
//
// h references the same image for the inspector; when nil, r itself is
// used. Unrecognized signatures are not an error: they are decoded by
// the generic strategy.
//
// On failure no metadata is returned. The error wraps one of
// *OutOfRangeError, *UnexpectedEndError, *UnresolvableImageError or
// *DuplicateFieldError.
func (d *Decoder) Decode(r io.ReaderAt, size int64, h ImageHandle) (*Metadata, error) {
	if h == nil {
		h = NewReaderAtHandle("", r, size)
	}

	cur := binary.NewCursor(binary.NewSafeReader(r, size, h.Name()))
	entry := d.registry.Select(cur)

	start := time.Now()
	md, err := entry.Decode(cur, h, d.inspector)
	d.metrics.RecordDecode(entry.Format.String(), err == nil, time.Since(start).Seconds())
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", entry.Format, err)
	}

	d.logger.Debug("decoded image header",
		slog.String("name", h.Name()),
		slog.String("format", entry.Format.String()),
		slog.Int("fields", md.Len()),
	)
	return md, nil
}

// DecodeBytes decodes an in-memory image. name is used only in messages.
func (d *Decoder) DecodeBytes(name string, data []byte) (*Metadata, error) {
	return d.Decode(bytes.NewReader(data), int64(len(data)), NewBytesHandle(name, data))
}

// DecodeFile opens path and decodes it. The inspector resolves the same path.
func (d *Decoder) DecodeFile(path string) (*Metadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}

	md, err := d.Decode(f, stat.Size(), PathHandle(path))
	if err != nil {
		return nil, err
	}

	if ext := strings.ToLower(filepath.Ext(path)); !matchesExtension(md.Format(), ext) {
		d.logger.Debug("file extension does not match signature",
			slog.String("path", path),
			slog.String("extension", ext),
			slog.String("format", md.Format().String()),
		)
	}
	return md, nil
}

// matchesExtension reports whether ext is usual for format. Formats chosen
// by fallback claim no extensions and match anything.
func matchesExtension(format Format, ext string) bool {
	exts := format.Extensions()
	return len(exts) == 0 || slices.Contains(exts, ext)
}

// DecodeFileContext checks ctx before decoding path.
//
// A single decode is not interruptible; wrap the stream to cancel mid-read.
func (d *Decoder) DecodeFileContext(ctx context.Context, path string) (*Metadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return d.DecodeFile(path)
}

// DecodeMany decodes multiple files concurrently.
//
// At most WithConcurrency files are decoded at once (runtime.NumCPU() by
// default), paced by WithRateLimit when set. Results are returned in the
// same order as paths. If any file fails, or ctx is cancelled, DecodeMany
// returns nil and the first error.
func (d *Decoder) DecodeMany(ctx context.Context, paths ...string) ([]*Metadata, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)

	results := make([]*Metadata, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			if d.limiter != nil {
				if err := d.limiter.Wait(ctx); err != nil {
					return err
				}
			}

			d.metrics.BatchStart()
			defer d.metrics.BatchDone()

			md, err := d.DecodeFileContext(ctx, path)
			if err != nil {
				d.logger.Warn("decode failed",
					slog.String("path", path),
					slog.Any("error", err),
				)
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = md
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// DetectFormat reports which strategy Decode would use for r.
func (d *Decoder) DetectFormat(r io.ReaderAt, size int64) Format {
	cur := binary.NewCursor(binary.NewSafeReader(r, size, ""))
	return d.registry.Select(cur).Format
}

// Formats returns the supported formats in dispatch order; the fallback is last.
func (d *Decoder) Formats() []Format {
	return d.registry.Formats()
}

// defaultDecoder backs the package-level helpers.
var defaultDecoder = New()

// Decode decodes r with a Decoder using default options.
func Decode(r io.ReaderAt, size int64, h ImageHandle) (*Metadata, error) {
	return defaultDecoder.Decode(r, size, h)
}

// DecodeFile decodes path with a Decoder using default options.
func DecodeFile(path string) (*Metadata, error) {
	return defaultDecoder.DecodeFile(path)
}

// DecodeMany decodes paths concurrently with a Decoder using default options.
func DecodeMany(ctx context.Context, paths ...string) ([]*Metadata, error) {
	return defaultDecoder.DecodeMany(ctx, paths...)
}

// DetectFormat reports the format the default Decoder would select for r.
func DetectFormat(r io.ReaderAt, size int64) Format {
	return defaultDecoder.DetectFormat(r, size)
}
