package jobs

import (
	"Keyo/internal/config"
	"time"

	"github.com/The127/ioc"
)

const (
	OutboxSenderJobName        = "outbox_sender"
	NotificationCleanupJobName = "notification_cleanup"
)

// WorkerJobs is the leader's job set: outbox delivery every ten seconds and
// retention cleanup every hour.
func WorkerJobs(dp *ioc.DependencyProvider, jc config.JobsConfig) []Job {
	return []Job{
		{
			Name:       OutboxSenderJobName,
			Every:      10 * time.Second,
			Timeout:    time.Minute,
			RunAtStart: true,
			Run: OutboxSendingJob(dp, OutboxJobOptions{
				BatchSize:   jc.OutboxBatchSize,
				MaxAttempts: jc.MaxAttempts,
			}),
		},
		{
			Name:    NotificationCleanupJobName,
			Every:   time.Hour,
			Timeout: 10 * time.Minute,
			Run:     NotificationCleanupJob(dp, time.Duration(jc.RetentionDays)*24*time.Hour),
		},
	}
}
