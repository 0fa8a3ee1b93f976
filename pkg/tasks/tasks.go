package tasks

import (
	"github.com/hibiken/asynq"
)

const (
	TypePublishDueEpisodes = "episodes:publish_due"
)

// NewPublishDueEpisodesTask builds the sweep task that promotes scheduled
// episodes whose publish time has passed. It carries no payload: the worker
// always scans the whole table.
func NewPublishDueEpisodesTask() (*asynq.Task, error) {
	return asynq.NewTask(TypePublishDueEpisodes, nil), nil
}
