package metrics

import (
	"strconv"

	"github.com/MikeRez0/pointsweep/internal/core/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the pipeline counters. They are registered on the registry passed
// to New so tests can use a private one.
type Metrics struct {
	sweeps         *prometheus.CounterVec
	promoted       prometheus.Counter
	notifications  *prometheus.CounterVec
	callbacks      *prometheus.CounterVec
	paid           prometheus.Counter
	requests       *prometheus.CounterVec
	requestSeconds *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		sweeps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pointsweep_sweeps_total",
				Help: "Sweep executions by final status",
			},
			[]string{"status"},
		),
		promoted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pointsweep_orders_promoted_total",
				Help: "Staged orders promoted to live orders",
			},
		),
		notifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pointsweep_notifications_total",
				Help: "Webhook deliveries by target kind and outcome",
			},
			[]string{"target", "status"},
		),
		callbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pointsweep_broker_callbacks_total",
				Help: "Broker callbacks by event type and outcome",
			},
			[]string{"event_type", "outcome"},
		),
		paid: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pointsweep_orders_paid_total",
				Help: "Orders settled by payment batches",
			},
		),
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pointsweep_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		requestSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pointsweep_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}

	reg.MustRegister(m.sweeps, m.promoted, m.notifications, m.callbacks, m.paid, m.requests, m.requestSeconds)
	return m
}

func (m *Metrics) SweepFinished(status domain.SweepStatus) {
	m.sweeps.WithLabelValues(string(status)).Inc()
}

func (m *Metrics) OrdersPromoted(n int) {
	m.promoted.Add(float64(n))
}

func (m *Metrics) NotificationDelivered(kind domain.TargetKind, status domain.NotificationStatus) {
	m.notifications.WithLabelValues(string(kind), string(status)).Inc()
}

func (m *Metrics) CallbackHandled(eventType string, outcome string) {
	m.callbacks.WithLabelValues(eventType, outcome).Inc()
}

func (m *Metrics) OrdersPaid(n int) {
	m.paid.Add(float64(n))
}

// ObserveRequest records one served HTTP request.
func (m *Metrics) ObserveRequest(method string, route string, status int, seconds float64) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestSeconds.WithLabelValues(method, route).Observe(seconds)
}
