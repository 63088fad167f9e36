package imagemeta

import (
	"log/slog"
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"github.com/simonhull/imagemeta/internal/inspect"
)

// Option configures a Decoder.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	dec := imagemeta.New(
//	    imagemeta.WithConcurrency(4),
//	    imagemeta.WithLogger(slog.Default()),
//	)
type Option func(*decodeOptions)

// decodeOptions holds configuration for a Decoder.
type decodeOptions struct {
	inspector   Inspector
	logger      *slog.Logger
	concurrency int        // Maximum parallel decodes in DecodeMany
	rateLimit   rate.Limit // Files per second in DecodeMany (0 = unlimited)
	rateBurst   int
	registerer  prometheus.Registerer // nil disables metrics
}

// defaultOptions returns the default configuration.
func defaultOptions() *decodeOptions {
	return &decodeOptions{
		inspector:   inspect.New(),
		logger:      slog.New(slog.DiscardHandler),
		concurrency: runtime.NumCPU(),
	}
}

// WithInspector replaces the image inspector used for pixel format,
// dimensions and resolution.
//
// The default inspector decodes image configuration with image.DecodeConfig
// and supports BMP, GIF, JPEG, PNG, TIFF and WebP. Supply a custom
// Inspector to support other formats or to fake it in tests.
func WithInspector(in Inspector) Option {
	return func(o *decodeOptions) {
		if in != nil {
			o.inspector = in
		}
	}
}

// WithLogger sets the structured logger.
//
// By default nothing is logged. Decodes are logged at Debug level and
// failures inside DecodeMany at Warn level.
func WithLogger(logger *slog.Logger) Option {
	return func(o *decodeOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithConcurrency caps the number of files DecodeMany decodes at once.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(o *decodeOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithRateLimit paces DecodeMany to perSecond files per second with the
// given burst. Useful when scanning slow or shared storage.
//
// Example:
//
//	// At most 50 files per second, bursts of 10
//	dec := imagemeta.New(imagemeta.WithRateLimit(50, 10))
func WithRateLimit(perSecond float64, burst int) Option {
	return func(o *decodeOptions) {
		if perSecond <= 0 {
			return
		}
		if burst < 1 {
			burst = 1
		}
		o.rateLimit = rate.Limit(perSecond)
		o.rateBurst = burst
	}
}

// WithMetrics registers Prometheus collectors with reg and records every
// decode: imagemeta_decodes_total{format,status},
// imagemeta_decode_duration_seconds{format} and imagemeta_batch_files_active.
//
// Each registerer can back only one Decoder.
//
// Example:
//
//	dec := imagemeta.New(imagemeta.WithMetrics(prometheus.DefaultRegisterer))
func WithMetrics(reg prometheus.Registerer) Option {
	return func(o *decodeOptions) {
		o.registerer = reg
	}
}
