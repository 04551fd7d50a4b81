package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSent    = "sent"
	ResultSkipped = "skipped"
	ResultFailed  = "failed"
	ResultDropped = "dropped"
)

var NotificationsCreated = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "keyo",
	Name:      "notifications_created_total",
	Help:      "Notifications stored, by notification type.",
}, []string{"type"})

var Deliveries = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "keyo",
	Name:      "deliveries_total",
	Help:      "Delivery attempts, by channel and outcome.",
}, []string{"channel", "result"})

var JobRuns = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "keyo",
	Name:      "job_runs_total",
	Help:      "Background job runs, by job name and outcome.",
}, []string{"job", "result"})

var JobDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "keyo",
	Name:      "job_duration_seconds",
	Help:      "Background job run duration.",
	Buckets:   prometheus.DefBuckets,
}, []string{"job"})

func CountDelivery(channel string, result string) {
	Deliveries.WithLabelValues(channel, result).Inc()
}
