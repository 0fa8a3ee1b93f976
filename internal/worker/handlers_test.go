package worker

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poddock/internal/db"
	"poddock/internal/test"
	"poddock/pkg/tasks"
)

func episodeColumns() []string {
	return []string{
		"id", "podcast_id", "title", "description", "status", "published_at",
		"audio_asset_id", "duration_seconds", "created_at", "updated_at",
	}
}

func TestHandlePublishDueEpisodesTask(t *testing.T) {
	fixed := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	originalNow := timeNow
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = originalNow }()

	task, err := tasks.NewPublishDueEpisodesTask()
	require.NoError(t, err)

	t.Run("promotes due episodes", func(t *testing.T) {
		_, mock := test.NewMockDB(t)
		published := fixed.Add(-time.Minute)
		rows := sqlmock.NewRows(episodeColumns()).
			AddRow("ep-1", "pod-1", "Morning Show", nil, db.StatusPublished, published,
				"asset-1", 1800, fixed.Add(-time.Hour), fixed)
		mock.ExpectQuery(`UPDATE episodes`).
			WithArgs(db.StatusPublished, fixed, db.StatusScheduled).
			WillReturnRows(rows)

		handler := NewTaskHandler(&test.MockTaskEnqueuer{})
		err := handler.HandlePublishDueEpisodesTask(context.Background(), task)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("nothing due", func(t *testing.T) {
		_, mock := test.NewMockDB(t)
		mock.ExpectQuery(`UPDATE episodes`).
			WithArgs(db.StatusPublished, fixed, db.StatusScheduled).
			WillReturnRows(sqlmock.NewRows(episodeColumns()))

		handler := NewTaskHandler(&test.MockTaskEnqueuer{})
		err := handler.HandlePublishDueEpisodesTask(context.Background(), task)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("database error is returned for retry", func(t *testing.T) {
		_, mock := test.NewMockDB(t)
		mock.ExpectQuery(`UPDATE episodes`).WillReturnError(assert.AnError)

		handler := NewTaskHandler(&test.MockTaskEnqueuer{})
		err := handler.HandlePublishDueEpisodesTask(context.Background(), task)
		assert.Error(t, err)
	})
}
