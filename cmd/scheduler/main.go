package main

import (
	"log"

	"github.com/hibiken/asynq"

	"poddock/internal/config"
	"poddock/pkg/tasks"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	cfg := config.Load()

	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		&asynq.SchedulerOpts{},
	)

	task, err := tasks.NewPublishDueEpisodesTask()
	if err != nil {
		log.Fatalf("could not create task: %v", err)
	}

	// Scheduled episodes go out with at most a minute of drift.
	_, err = scheduler.Register("@every 1m", task)
	if err != nil {
		log.Fatalf("could not register task: %v", err)
	}

	log.Printf("Scheduler starting (commit: %s)", CommitSHA)
	if err := scheduler.Run(); err != nil {
		log.Fatalf("could not run scheduler: %v", err)
	}
}
