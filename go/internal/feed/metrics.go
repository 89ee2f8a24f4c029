package feed

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector defines the interface for collecting feed metrics
type MetricsCollector interface {
	RecordConnectionOpened()
	RecordConnectionClosed()
	RecordConnectionDropped(reason string)
	RecordEventPublished(source string)
	RecordEventBroadcast(recipients int)
}

// NoOpMetricsCollector is a no-op implementation for when metrics aren't needed
type NoOpMetricsCollector struct{}

func (n *NoOpMetricsCollector) RecordConnectionOpened()               {}
func (n *NoOpMetricsCollector) RecordConnectionClosed()               {}
func (n *NoOpMetricsCollector) RecordConnectionDropped(reason string) {}
func (n *NoOpMetricsCollector) RecordEventPublished(source string)    {}
func (n *NoOpMetricsCollector) RecordEventBroadcast(recipients int)   {}

// PrometheusMetrics implements MetricsCollector using Prometheus
type PrometheusMetrics struct {
	connections        prometheus.Gauge
	connectionsDropped *prometheus.CounterVec
	eventsPublished    *prometheus.CounterVec
	eventsBroadcast    prometheus.Counter
	deliveries         prometheus.Counter
}

func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		connections: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "scoreboard_feed",
			Name:      "connections",
			Help:      "Open live update connections.",
		}),
		connectionsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoreboard_feed",
			Name:      "connections_dropped_total",
			Help:      "Connections closed by the feed, by reason.",
		}, []string{"reason"}),
		eventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "scoreboard_feed",
			Name:      "events_published_total",
			Help:      "Events appended to a game, by source.",
		}, []string{"source"}),
		eventsBroadcast: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scoreboard_feed",
			Name:      "events_broadcast_total",
			Help:      "Events handed to the connection manager for broadcast.",
		}),
		deliveries: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "scoreboard_feed",
			Name:      "event_deliveries_total",
			Help:      "Event messages queued to individual connections.",
		}),
	}

	reg.MustRegister(
		m.connections,
		m.connectionsDropped,
		m.eventsPublished,
		m.eventsBroadcast,
		m.deliveries,
	)
	return m
}

func (m *PrometheusMetrics) RecordConnectionOpened() {
	m.connections.Inc()
}

func (m *PrometheusMetrics) RecordConnectionClosed() {
	m.connections.Dec()
}

func (m *PrometheusMetrics) RecordConnectionDropped(reason string) {
	m.connectionsDropped.WithLabelValues(reason).Inc()
}

func (m *PrometheusMetrics) RecordEventPublished(source string) {
	m.eventsPublished.WithLabelValues(source).Inc()
}

func (m *PrometheusMetrics) RecordEventBroadcast(recipients int) {
	m.eventsBroadcast.Inc()
	m.deliveries.Add(float64(recipients))
}
