package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// ShareMetrics paylaşım akışının sayaçları. nil alıcı güvenlidir.
type ShareMetrics struct {
	created        *prometheus.CounterVec
	retrievals     *prometheus.CounterVec
	decodeFailures *prometheus.CounterVec
	failOpen       prometheus.Counter
}

// NewShareMetrics sayaçları verilen registerer'a kaydeder. reg nil ise kayıt yapılmaz.
func NewShareMetrics(reg prometheus.Registerer) *ShareMetrics {
	if reg == nil {
		return &ShareMetrics{}
	}
	m := &ShareMetrics{
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vcard",
			Name:      "shares_created_total",
			Help:      "Created visiting-card shares by kind (token or stored).",
		}, []string{"kind"}),
		retrievals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vcard",
			Name:      "share_retrievals_total",
			Help:      "Stored share retrievals by outcome.",
		}, []string{"outcome"}),
		decodeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vcard",
			Name:      "share_token_decode_failures_total",
			Help:      "Share token decode failures by stage.",
		}, []string{"stage"}),
		failOpen: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "vcard",
			Name:      "assignment_fail_open_total",
			Help:      "Template resolutions that fell back to the full catalog.",
		}),
	}
	reg.MustRegister(m.created, m.retrievals, m.decodeFailures, m.failOpen)
	return m
}

func (m *ShareMetrics) IncCreated(kind string) {
	if m == nil || m.created == nil {
		return
	}
	m.created.WithLabelValues(normalizeLabel(kind)).Inc()
}

func (m *ShareMetrics) IncRetrieval(outcome string) {
	if m == nil || m.retrievals == nil {
		return
	}
	m.retrievals.WithLabelValues(normalizeLabel(outcome)).Inc()
}

func (m *ShareMetrics) IncDecodeFailure(stage string) {
	if m == nil || m.decodeFailures == nil {
		return
	}
	m.decodeFailures.WithLabelValues(normalizeLabel(stage)).Inc()
}

func (m *ShareMetrics) IncFailOpen() {
	if m == nil || m.failOpen == nil {
		return
	}
	m.failOpen.Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
