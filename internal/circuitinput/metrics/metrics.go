package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for circuit-input generation and proving.
// Labels never carry document content.
type Metrics struct {
	// Full pipeline latency from payload to assembled input
	GenerateLatency prometheus.Histogram

	// Pipeline outcomes by result code ("ok" or an error code)
	GenerateOutcome *prometheus.CounterVec

	// Length of signed documents seen, to size the padded buffer
	SignedLength prometheus.Histogram

	// Prover round trips by stage ("execute", "prove", "verify")
	ProverLatency *prometheus.HistogramVec
}

// New creates a Metrics instance registered on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers the metrics on reg, letting tests use a private registry.
func NewWith(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		GenerateLatency: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "aadhaar_circuit_input_generate_duration_seconds",
			Help:    "Duration of circuit input generation from payload to assembled record",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}),
		GenerateOutcome: f.NewCounterVec(prometheus.CounterOpts{
			Name: "aadhaar_circuit_input_generate_total",
			Help: "Total circuit input generations by result code",
		}, []string{"result"}),
		SignedLength: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "aadhaar_signed_document_bytes",
			Help:    "Length of signed documents extracted from payloads",
			Buckets: []float64{256, 512, 768, 1024, 1100, 1280, 1536, 2048},
		}),
		ProverLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "aadhaar_prover_duration_seconds",
			Help:    "Duration of prover backend calls by stage",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}, []string{"stage"}),
	}
}

// ObserveGenerate records one pipeline run and its result code.
func (m *Metrics) ObserveGenerate(result string, d time.Duration) {
	if m != nil {
		m.GenerateLatency.Observe(d.Seconds())
		m.GenerateOutcome.WithLabelValues(result).Inc()
	}
}

// ObserveSignedLength records the length of a signed document.
func (m *Metrics) ObserveSignedLength(n int) {
	if m != nil {
		m.SignedLength.Observe(float64(n))
	}
}

// ObserveProver records the duration of a prover stage.
func (m *Metrics) ObserveProver(stage string, d time.Duration) {
	if m != nil {
		m.ProverLatency.WithLabelValues(stage).Observe(d.Seconds())
	}
}
