// Package metrics expone los contadores Prometheus de la aplicación.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcomes del guard.
const (
	OutcomeAllow    = "allow"
	OutcomeLogin    = "redirect_login"
	OutcomeHome     = "redirect_home"
	OutcomeRedirect = "redirect"
)

// Metrics agrupa los collectors registrados en un registry propio
// (no el global, para poder instanciarlo varias veces en tests).
type Metrics struct {
	registry       *prometheus.Registry
	guardDecisions *prometheus.CounterVec
	actionFailures *prometheus.CounterVec
	requests       *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
}

// New crea y registra los collectors.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		guardDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guard_decisions_total",
			Help:      "Decisiones del guard por sección y resultado.",
		}, []string{"section", "outcome"}),
		actionFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "action_failures_total",
			Help:      "Acciones de datos que terminaron en Failure.",
		}, []string{"action"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Peticiones HTTP atendidas.",
		}, []string{"method", "route", "status"}),
		requestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Latencia de las peticiones HTTP.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	reg.MustRegister(
		m.guardDecisions, m.actionFailures, m.requests, m.requestLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// GuardDecision cuenta una decisión del guard.
func (m *Metrics) GuardDecision(section, outcome string) {
	if m == nil {
		return
	}
	m.guardDecisions.WithLabelValues(section, outcome).Inc()
}

// ActionFailure cuenta una acción fallida.
func (m *Metrics) ActionFailure(action string) {
	if m == nil {
		return
	}
	m.actionFailures.WithLabelValues(action).Inc()
}

// Request registra una petición HTTP terminada.
func (m *Metrics) Request(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, route, status).Inc()
	m.requestLatency.WithLabelValues(method, route).Observe(seconds)
}

// Handler devuelve el handler HTTP de /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry expone el registry (tests).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
