package translations

import "github.com/prometheus/client_golang/prometheus"

// Outcomes de translations_total.
const (
	outcomeSuccess       = "success"
	outcomeUpstreamError = "upstream_error"
	outcomePersistError  = "persistence_error"
	outcomeQuotaExceeded = "quota_exceeded"
	outcomeNotConfigured = "not_configured"
)

// Metrics agrupa los contadores del dominio. Un *Metrics nil no registra nada.
type Metrics struct {
	translations   *prometheus.CounterVec
	upstreamErrors *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		translations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "translations_total",
			Help: "Translation requests by variant and outcome.",
		}, []string{"variant", "outcome"}),
		upstreamErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "upstream_errors_total",
			Help: "Failed calls to storage, transcription or model backends.",
		}, []string{"upstream", "kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.translations, m.upstreamErrors)
	}
	return m
}

func (m *Metrics) observe(v Variant, outcome string) {
	if m == nil {
		return
	}
	m.translations.WithLabelValues(string(v), outcome).Inc()
}

func (m *Metrics) upstreamError(upstream, kind string) {
	if m == nil {
		return
	}
	m.upstreamErrors.WithLabelValues(upstream, kind).Inc()
}
