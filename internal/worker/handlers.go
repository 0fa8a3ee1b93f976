package worker

import (
	"context"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"poddock/internal/db"
	"poddock/pkg/tasks"
)

// timeNow is swappable in tests.
var timeNow = time.Now

type TaskHandler struct {
	asynqClient tasks.TaskEnqueuer
}

func NewTaskHandler(client tasks.TaskEnqueuer) *TaskHandler {
	return &TaskHandler{asynqClient: client}
}

// HandlePublishDueEpisodesTask promotes scheduled episodes whose publish time
// has passed. The task is a full-table sweep, so running it concurrently or
// more often than needed is harmless.
func (h *TaskHandler) HandlePublishDueEpisodesTask(ctx context.Context, t *asynq.Task) error {
	episodes, err := db.PromoteDueScheduledEpisodes(timeNow().UTC())
	if err != nil {
		log.Printf("Error promoting due scheduled episodes: %v", err)
		return err
	}
	for _, ep := range episodes {
		log.Printf("Published scheduled episode %s (%q)", ep.ID, ep.Title)
	}
	return nil
}
