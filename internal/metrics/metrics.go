package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymbook_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymbook_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymbook_bookings_total",
			Help: "Total number of session booking attempts",
		},
		[]string{"outcome"},
	)

	AppointmentDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymbook_appointment_decisions_total",
			Help: "Trainer decisions on pending appointments",
		},
		[]string{"decision"},
	)

	AppointmentCancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gymbook_appointment_cancellations_total",
			Help: "Total number of member cancellations",
		},
	)

	NotificationsQueuedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymbook_notifications_queued_total",
			Help: "Notifications pushed to the delivery queue",
		},
		[]string{"kind", "status"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gymbook_notification_queue_length",
			Help: "Current length of the notification delivery queue",
		},
	)

	ConnectRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymbook_connect_requests_total",
			Help: "Member-trainer connect requests by outcome",
		},
		[]string{"outcome"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBooking(outcome string) {
	BookingsTotal.WithLabelValues(outcome).Inc()
}

func RecordDecision(decision string) {
	AppointmentDecisionsTotal.WithLabelValues(decision).Inc()
}

func RecordCancellation() {
	AppointmentCancellationsTotal.Inc()
}

func RecordNotification(kind, status string) {
	NotificationsQueuedTotal.WithLabelValues(kind, status).Inc()
}

func RecordConnectRequest(outcome string) {
	ConnectRequestsTotal.WithLabelValues(outcome).Inc()
}
