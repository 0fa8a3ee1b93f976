package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poddock/internal/db"
)

func TestCreatePodcast(t *testing.T) {
	h, mock, _ := newTestHandlers(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM podcasts`).
		WithArgs("user-1").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	tokenRows := sqlmock.NewRows([]string{"id", "podcast_id", "token", "revoked_at", "created_at"}).
		AddRow("tok-1", "pod-1", "feed-secret", nil, fixedNow)
	mock.ExpectQuery(`INSERT INTO feed_tokens`).WillReturnRows(tokenRows)
	mock.ExpectQuery(`INSERT INTO podcasts`).WillReturnRows(podcastRow("pod-1", db.VisibilityPrivate))
	targetRows := sqlmock.NewRows([]string{"id", "name", "submit_url", "created_at"}).
		AddRow("apple", "Apple Podcasts", "https://podcastsconnect.apple.com", fixedNow).
		AddRow("spotify", "Spotify", "https://podcasters.spotify.com", fixedNow)
	mock.ExpectQuery(`SELECT \* FROM distribution_targets`).WillReturnRows(targetRows)
	mock.ExpectExec(`INSERT INTO distribution_statuses`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO distribution_statuses`).WillReturnResult(sqlmock.NewResult(0, 1))

	body := `{"title":"Morning Signals","description":"Daily notes","category":"Technology"}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/podcasts", strings.NewReader(body)), db.PlanFree)
	rr := httptest.NewRecorder()
	h.CreatePodcast(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	// Every podcast is born with a private feed URL, whatever its visibility.
	assert.Equal(t, "https://pods.example.com/rss/pod-1.xml?token=feed-secret", resp["private_rss_url"])
	assert.Equal(t, "https://pods.example.com/rss/pod-1.xml", resp["rss_url"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreatePodcastMissingFields(t *testing.T) {
	h, _, _ := newTestHandlers(t)

	req := withUser(httptest.NewRequest(http.MethodPost, "/api/podcasts", strings.NewReader(`{}`)), db.PlanFree)
	rr := httptest.NewRecorder()
	h.CreatePodcast(rr, req)

	require.Equal(t, http.StatusBadRequest, rr.Code)
	body := decodeErrorBody(t, rr)
	assert.Equal(t, "validation_error", body.Error.Code)
	fields := make([]string, 0, len(body.Error.Details))
	for _, d := range body.Error.Details {
		fields = append(fields, d.Field)
	}
	assert.ElementsMatch(t, []string{"title", "description", "category"}, fields)
}

func TestCreatePodcastPlanLimit(t *testing.T) {
	h, mock, _ := newTestHandlers(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM podcasts`).
		WithArgs("user-1").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	body := `{"title":"Third Show","description":"Over the line","category":"Technology"}`
	req := withUser(httptest.NewRequest(http.MethodPost, "/api/podcasts", strings.NewReader(body)), db.PlanFree)
	rr := httptest.NewRecorder()
	h.CreatePodcast(rr, req)

	require.Equal(t, http.StatusForbidden, rr.Code)
	respBody := decodeErrorBody(t, rr)
	assert.Equal(t, "plan_limit_exceeded", respBody.Error.Code)
}

func TestRotateFeedToken(t *testing.T) {
	h, mock, _ := newTestHandlers(t)

	mock.ExpectQuery(`SELECT \* FROM podcasts WHERE id = \$1`).
		WithArgs("pod-1").WillReturnRows(podcastRow("pod-1", db.VisibilityPrivate))
	mock.ExpectExec(`UPDATE feed_tokens`).WillReturnResult(sqlmock.NewResult(0, 1))

	req := httptest.NewRequest(http.MethodPost, "/api/podcasts/pod-1/feed-token/rotate", nil)
	req = mux.SetURLVars(req, map[string]string{"podcastId": "pod-1"})
	rr := httptest.NewRecorder()
	h.RotateFeedToken(rr, withUser(req, db.PlanFree))

	require.Equal(t, http.StatusOK, rr.Code)
	var resp struct {
		PrivateRSSURL string `json:"private_rss_url"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.True(t, strings.HasPrefix(resp.PrivateRSSURL, "https://pods.example.com/rss/pod-1.xml?token="))
	assert.NoError(t, mock.ExpectationsWereMet())
}
