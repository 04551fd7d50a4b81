package main

import (
	"Keyo/internal/config"
	"Keyo/internal/jobs"
	"Keyo/internal/logging"
	"Keyo/internal/quorum"
	"Keyo/internal/setup"
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/huandu/go-sqlbuilder"
)

func main() {
	config.Init()

	sqlbuilder.DefaultFlavor = sqlbuilder.PostgreSQL

	logging.Init()
	defer logging.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := setup.NewApplication(ctx, config.C)
	if err != nil {
		logging.Logger.Fatalf("failed to set up application: %v", err)
	}
	defer func() { _ = app.Close() }()

	tasksLogger := logging.Named(config.TasksLogger)

	var mu sync.Mutex
	var jobManager jobs.JobManager

	leaderElection := quorum.NewLeaderElectionFactory().
		WithRedis(app.Redis).
		OnLeaderChange(func(isLeader bool) {
			mu.Lock()
			defer mu.Unlock()

			if !isLeader {
				tasksLogger.Info("Stopping job manager")
				if jobManager != nil {
					jobManager.Stop()
					jobManager = nil
				}
				return
			}

			if jobManager != nil {
				return
			}

			jobManager = jobs.NewJobManager(jobs.WithOnError(func(err error) {
				tasksLogger.Errorf("an error happened while running a job: %v", err)
			}))

			for _, job := range jobs.WorkerJobs(app.Provider, config.C.Jobs) {
				err := jobManager.Schedule(job)
				if err != nil {
					tasksLogger.Fatalf("failed to schedule %s: %v", job.Name, err)
				}
			}

			tasksLogger.Info("Starting job manager")
			jobManager.Start(ctx)
		}).
		Build(config.C.LeaderElection)

	err = leaderElection.Start(ctx)
	if err != nil {
		logging.Logger.Fatalf("failed to start leader election: %v", err)
	}

	<-ctx.Done()
	logging.Logger.Info("Shutting down worker")

	err = leaderElection.Stop()
	if err != nil {
		logging.Logger.Errorf("failed to stop leader election: %v", err)
	}

	mu.Lock()
	if jobManager != nil {
		jobManager.Stop()
	}
	mu.Unlock()
}
