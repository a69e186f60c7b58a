package httpinterface

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "factory"

// metrics holds the prometheus collectors of the interface. They live on a
// dedicated registry so that building more than one interface in the same
// process never collides on metric registration.
type metrics struct {
	registry *prometheus.Registry

	executeTotal   *prometheus.CounterVec
	queryTotal     *prometheus.CounterVec
	callDuration   *prometheus.HistogramVec
	activeAuctions prometheus.Gauge
}

func newMetrics() *metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &metrics{
		registry: registry,
		executeTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "execute_total",
			Help:      "Number of execute calls partitioned by message and outcome.",
		}, []string{"msg", "outcome"}),
		queryTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "query_total",
			Help:      "Number of query calls partitioned by message.",
		}, []string{"msg"}),
		callDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "call_duration_seconds",
			Help:      "Latency of the served calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"kind"}),
		activeAuctions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "active_auctions",
			Help:      "Number of auctions currently in the active registry.",
		}),
	}
}

func (m *metrics) recordExecute(msg, outcome string) {
	m.executeTotal.WithLabelValues(msg, outcome).Inc()
}

func (m *metrics) recordQuery(msg string) {
	m.queryTotal.WithLabelValues(msg).Inc()
}

// handler exposes the collectors of this interface in prometheus format.
func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
