package jobs

import (
	"Keyo/internal/metrics"
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"
)

type JobFn func(ctx context.Context) error

const (
	resultOk      = "ok"
	resultError   = "error"
	resultPanic   = "panic"
	resultSkipped = "skipped"
)

// Job is one periodic task of the worker. Runs of the same job never overlap;
// a tick that finds the previous run still busy is counted as skipped.
type Job struct {
	Name       string
	Every      time.Duration
	Timeout    time.Duration
	RunAtStart bool
	Run        JobFn
}

type scheduledJob struct {
	Job
	busy atomic.Bool
}

type JobManager interface {
	Schedule(job Job) error
	Start(context.Context)
	// Stop cancels running jobs and waits until they have returned.
	Stop()
}

type jobManager struct {
	jobs    []*scheduledJob
	onError func(err error)
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	mu      sync.Mutex
}

type ManagerOption func(*jobManager)

func WithOnError(onError func(error)) ManagerOption {
	return func(manager *jobManager) {
		manager.onError = onError
	}
}

func NewJobManager(opts ...ManagerOption) JobManager {
	m := &jobManager{}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *jobManager) Schedule(job Job) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return errors.New("job manager is already running")
	}
	if job.Run == nil {
		return fmt.Errorf("job %q has nothing to run", job.Name)
	}
	if job.Name == "" {
		job.Name = fmt.Sprintf("job_%d", len(m.jobs))
	}
	for _, scheduled := range m.jobs {
		if scheduled.Name == job.Name {
			return fmt.Errorf("job %q is already scheduled", job.Name)
		}
	}
	if job.Every <= 0 {
		job.Every = time.Second
	}

	m.jobs = append(m.jobs, &scheduledJob{Job: job})
	return nil
}

func (m *jobManager) Start(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.started {
		return
	}
	m.started = true

	ctx, m.cancel = context.WithCancel(ctx)
	for _, j := range m.jobs {
		m.wg.Add(1)
		go m.loop(ctx, j)
	}
}

func (m *jobManager) loop(ctx context.Context, j *scheduledJob) {
	defer m.wg.Done()

	if j.RunAtStart {
		m.tick(ctx, j)
	}

	ticker := time.NewTicker(j.Every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tick(ctx, j)
		}
	}
}

func (m *jobManager) tick(ctx context.Context, j *scheduledJob) {
	if !j.busy.CompareAndSwap(false, true) {
		metrics.JobRuns.WithLabelValues(j.Name, resultSkipped).Inc()
		return
	}
	defer j.busy.Store(false)

	m.execute(ctx, j)
}

func (m *jobManager) execute(ctx context.Context, j *scheduledJob) {
	runCtx, cancel := context.WithCancel(ctx)
	if j.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, j.Timeout)
	}
	defer cancel()

	start := time.Now()
	result := resultOk
	defer func() {
		metrics.JobDuration.WithLabelValues(j.Name).Observe(time.Since(start).Seconds())
		metrics.JobRuns.WithLabelValues(j.Name, result).Inc()
	}()

	defer func() {
		if r := recover(); r != nil {
			result = resultPanic
			m.report(fmt.Errorf("job %s panicked: %v", j.Name, r))
		}
	}()

	err := j.Run(runCtx)
	if err != nil {
		result = resultError
		m.report(fmt.Errorf("job %s: %w", j.Name, err))
	}
}

func (m *jobManager) report(err error) {
	if m.onError != nil {
		m.onError(err)
	}
}

func (m *jobManager) Stop() {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return
	}
	cancel := m.cancel
	m.mu.Unlock()

	cancel()
	m.wg.Wait()

	m.mu.Lock()
	m.started = false
	m.mu.Unlock()
}
