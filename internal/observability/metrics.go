package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	AuthzDecisionsTotal *prometheus.CounterVec
	ProtocolDuration    *prometheus.HistogramVec
	ProtocolTotal       *prometheus.CounterVec
	RoleCacheLookups    *prometheus.CounterVec
}

func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		AuthzDecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "teamsync_authz_decisions_total",
				Help: "Total number of workspace authorization decisions",
			},
			[]string{"role", "result"},
		),
		ProtocolDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "teamsync_protocol_duration_seconds",
				Help:    "Duration of transactional membership protocols",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"protocol"},
		),
		ProtocolTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "teamsync_protocol_total",
				Help: "Total number of membership protocol runs",
			},
			[]string{"protocol", "status"},
		),
		RoleCacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "teamsync_role_cache_lookups_total",
				Help: "Role cache lookups by outcome",
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(
		m.AuthzDecisionsTotal,
		m.ProtocolDuration,
		m.ProtocolTotal,
		m.RoleCacheLookups,
	)

	return m
}

func (m *Metrics) RecordAuthz(role, result string) {
	if m == nil {
		return
	}
	m.AuthzDecisionsTotal.WithLabelValues(role, result).Inc()
}

func (m *Metrics) ObserveProtocol(protocol string, start time.Time, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.ProtocolDuration.WithLabelValues(protocol).Observe(time.Since(start).Seconds())
	m.ProtocolTotal.WithLabelValues(protocol, status).Inc()
}

func (m *Metrics) RecordRoleCache(hit bool) {
	if m == nil {
		return
	}
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	m.RoleCacheLookups.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
