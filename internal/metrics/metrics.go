// Package metrics exposes Prometheus instrumentation for header decoding.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name.
const Namespace = "imagemeta"

// Metrics holds the decoder's collectors. A nil *Metrics records nothing.
type Metrics struct {
	DecodesTotal   *prometheus.CounterVec
	DecodeDuration *prometheus.HistogramVec
	BatchActive    prometheus.Gauge
}

// New creates the collectors and registers them with reg.
// Registering twice with the same registerer panics, as with promauto.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		DecodesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "decodes_total",
				Help:      "Header decodes by selected format and outcome",
			},
			[]string{"format", "status"},
		),

		DecodeDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "decode_duration_seconds",
				Help:      "Time to decode one header, including the inspector",
				Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
			},
			[]string{"format"},
		),

		BatchActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: Namespace,
				Name:      "batch_files_active",
				Help:      "Files currently being decoded by DecodeMany",
			},
		),
	}
}

// RecordDecode counts one decode of the given format.
func (m *Metrics) RecordDecode(format string, success bool, durationSeconds float64) {
	if m == nil {
		return
	}

	status := "success"
	if !success {
		status = "failure"
	}
	m.DecodesTotal.WithLabelValues(format, status).Inc()
	m.DecodeDuration.WithLabelValues(format).Observe(durationSeconds)
}

// BatchStart marks a DecodeMany file as in flight.
func (m *Metrics) BatchStart() {
	if m == nil {
		return
	}
	m.BatchActive.Inc()
}

// BatchDone marks a DecodeMany file as finished.
func (m *Metrics) BatchDone() {
	if m == nil {
		return
	}
	m.BatchActive.Dec()
}
