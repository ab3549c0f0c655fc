package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unbroken_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "unbroken_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	SessionsUsedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "unbroken_sessions_used_total",
			Help: "Total number of gym sessions deducted",
		},
	)

	SubscriptionsExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "unbroken_subscriptions_expired_total",
			Help: "Total number of subscriptions that ran out of sessions",
		},
	)

	RenewalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unbroken_renewals_total",
			Help: "Total number of subscription registrations and renewals",
		},
		[]string{"plan"},
	)

	CancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "unbroken_cancellations_total",
			Help: "Total number of subscription cancellations",
		},
	)

	MembersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "unbroken_members_created_total",
			Help: "Total number of members registered",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "unbroken_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "unbroken_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordSessionUse(expired bool) {
	SessionsUsedTotal.Inc()
	if expired {
		SubscriptionsExpiredTotal.Inc()
	}
}

func RecordRenewal(plan string) {
	RenewalsTotal.WithLabelValues(plan).Inc()
}

func RecordCancellation() {
	CancellationsTotal.Inc()
}

func RecordMemberCreated() {
	MembersCreatedTotal.Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
