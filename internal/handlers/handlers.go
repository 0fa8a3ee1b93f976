package handlers

import (
	"database/sql"
	"errors"
	"time"

	"poddock/internal/storage"
	"poddock/pkg/tasks"
)

type Handlers struct {
	baseURL     string
	jwtSecret   string
	store       storage.ObjectStore
	asynqClient tasks.TaskEnqueuer
	// now is swappable in tests.
	now func() time.Time
}

func New(baseURL, jwtSecret string, store storage.ObjectStore, asynqClient tasks.TaskEnqueuer) *Handlers {
	return &Handlers{
		baseURL:     baseURL,
		jwtSecret:   jwtSecret,
		store:       store,
		asynqClient: asynqClient,
		now:         time.Now,
	}
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func parseRFC3339(s string) (time.Time, error) {
	return time.Parse(time.RFC3339, s)
}
