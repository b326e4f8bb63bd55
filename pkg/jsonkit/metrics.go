package jsonkit

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects the encoder instrumentation.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	invocations    *prometheus.CounterVec
	chunks         *prometheus.CounterVec
	bytes          *prometheus.CounterVec
	customizations *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		invocations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "jsonstream",
			Subsystem: "encoder",
			Name:      "invocations_total",
			Help:      "Total number of finished encode invocations, by framing and terminal state.",
		}, []string{"framing", "state"}),
		chunks: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "jsonstream",
			Subsystem: "encoder",
			Name:      "chunks_total",
			Help:      "Total number of chunks handed to consumers.",
		}, []string{"framing"}),
		bytes: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "jsonstream",
			Subsystem: "encoder",
			Name:      "bytes_total",
			Help:      "Total number of bytes handed to consumers.",
		}, []string{"framing"}),
		customizations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: "jsonstream",
			Subsystem: "encoder",
			Name:      "configuration_builds_total",
			Help:      "Total number of serializer configuration builds.",
		}, []string{"framing"}),
	}
}

func (m *Metrics) observeChunk(framing Framing, size int) {
	if m == nil {
		return
	}
	m.chunks.WithLabelValues(framing.String()).Inc()
	m.bytes.WithLabelValues(framing.String()).Add(float64(size))
}

func (m *Metrics) observeBuild(framing Framing) {
	if m == nil {
		return
	}
	m.customizations.WithLabelValues(framing.String()).Inc()
}

func (m *Metrics) observeFinish(framing Framing, state State) {
	if m == nil {
		return
	}
	m.invocations.WithLabelValues(framing.String(), state.String()).Inc()
}
