package feed

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"poddock/internal/db"
	"poddock/internal/test"
)

func TestAuthorize(t *testing.T) {
	t.Run("public podcast needs no token", func(t *testing.T) {
		test.NewMockDB(t)
		podcast := testPodcast()
		podcast.Visibility = db.VisibilityPublic

		allowed, err := Authorize(podcast, "")
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("public podcast ignores a bogus token", func(t *testing.T) {
		test.NewMockDB(t)
		podcast := testPodcast()
		podcast.Visibility = db.VisibilityPublic

		allowed, err := Authorize(podcast, "whatever")
		assert.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("private podcast without token is denied", func(t *testing.T) {
		test.NewMockDB(t)
		podcast := testPodcast()
		podcast.Visibility = db.VisibilityPrivate

		allowed, err := Authorize(podcast, "")
		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("private podcast with valid token is allowed", func(t *testing.T) {
		_, mock := test.NewMockDB(t)
		podcast := testPodcast()
		podcast.Visibility = db.VisibilityPrivate

		rows := sqlmock.NewRows([]string{"id", "podcast_id", "token", "revoked_at", "created_at"}).
			AddRow("tok-1", podcast.ID, "secret", nil, time.Now())
		mock.ExpectQuery(`SELECT \* FROM feed_tokens`).
			WithArgs(podcast.ID, "secret").
			WillReturnRows(rows)

		allowed, err := Authorize(podcast, "secret")
		assert.NoError(t, err)
		assert.True(t, allowed)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("private podcast with unknown token is denied", func(t *testing.T) {
		_, mock := test.NewMockDB(t)
		podcast := testPodcast()
		podcast.Visibility = db.VisibilityPrivate

		mock.ExpectQuery(`SELECT \* FROM feed_tokens`).
			WithArgs(podcast.ID, "stale").
			WillReturnRows(sqlmock.NewRows([]string{"id", "podcast_id", "token", "revoked_at", "created_at"}))

		allowed, err := Authorize(podcast, "stale")
		assert.NoError(t, err)
		assert.False(t, allowed)
	})

	t.Run("database error propagates", func(t *testing.T) {
		_, mock := test.NewMockDB(t)
		podcast := testPodcast()
		podcast.Visibility = db.VisibilityPrivate

		mock.ExpectQuery(`SELECT \* FROM feed_tokens`).WillReturnError(assert.AnError)

		allowed, err := Authorize(podcast, "secret")
		assert.Error(t, err)
		assert.False(t, allowed)
	})
}
