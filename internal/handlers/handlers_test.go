package handlers

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"poddock/internal/middleware"
	"poddock/internal/models"
	"poddock/internal/test"
)

var fixedNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestHandlers(t *testing.T) (*Handlers, sqlmock.Sqlmock, *test.MockTaskEnqueuer) {
	t.Helper()
	_, mock := test.NewMockDB(t)
	enqueuer := &test.MockTaskEnqueuer{}
	h := New("https://pods.example.com", "test-secret", &fakeStore{objects: map[string]bool{}}, enqueuer)
	h.now = func() time.Time { return fixedNow }
	return h, mock, enqueuer
}

func withUser(r *http.Request, plan string) *http.Request {
	user := &models.AdminUser{ID: "user-1", Email: "admin@example.com", Plan: plan}
	return r.WithContext(context.WithValue(r.Context(), middleware.UserContextKey, user))
}

// fakeStore is an in-memory ObjectStore.
type fakeStore struct {
	objects map[string]bool
	putErr  error
}

func (f *fakeStore) Put(ctx context.Context, key string, body io.Reader, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}
	if _, err := io.ReadAll(body); err != nil {
		return err
	}
	f.objects[key] = true
	return nil
}

func (f *fakeStore) Exists(ctx context.Context, key string) (bool, error) {
	return f.objects[key], nil
}

func (f *fakeStore) Delete(ctx context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func (f *fakeStore) PublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func (f *fakeStore) Bucket() string {
	return "test-bucket"
}

func podcastColumns() []string {
	return []string{
		"id", "owner_id", "title", "description", "language", "category",
		"author_name", "contact_email", "explicit", "podcast_type", "visibility",
		"cover_image_asset_id", "private_feed_token_id", "theme_color", "theme_mode",
		"created_at", "updated_at",
	}
}

func podcastRow(id, visibility string) *sqlmock.Rows {
	return sqlmock.NewRows(podcastColumns()).
		AddRow(id, "user-1", "Morning Signals", "Daily notes on distributed systems",
			"en", "Technology", "Alex Rivera", "alex@example.com", false, "episodic",
			visibility, nil, "tok-row-1", "#6366f1", "light",
			fixedNow.Add(-30*24*time.Hour), fixedNow.Add(-24*time.Hour))
}

func episodeColumns() []string {
	return []string{
		"id", "podcast_id", "title", "description", "status", "published_at",
		"audio_asset_id", "duration_seconds", "created_at", "updated_at",
	}
}

func assetColumns() []string {
	return []string{
		"id", "type", "storage_provider", "storage_bucket", "storage_key",
		"public_url", "content_type", "byte_size", "checksum", "created_at",
	}
}
