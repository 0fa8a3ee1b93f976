package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poddock/internal/db"
)

func TestGetUsage(t *testing.T) {
	h, mock, _ := newTestHandlers(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM podcasts`).
		WithArgs("user-1").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(s\.play_count\), 0\)`).
		WithArgs("user-1", "2026-03").
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(12000))

	req := withUser(httptest.NewRequest(http.MethodGet, "/api/usage", nil), db.PlanFree)
	rr := httptest.NewRecorder()
	h.GetUsage(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var body struct {
		Plan     string `json:"plan"`
		Podcasts struct {
			Current int `json:"current"`
			Limit   int `json:"limit"`
		} `json:"podcasts"`
		MonthlyPlays struct {
			YearMonth string `json:"year_month"`
			Current   int    `json:"current"`
			Limit     int    `json:"limit"`
			Exceeded  bool   `json:"exceeded"`
		} `json:"monthly_plays"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
	assert.Equal(t, "free", body.Plan)
	assert.Equal(t, 1, body.Podcasts.Current)
	assert.Equal(t, 2, body.Podcasts.Limit)
	assert.Equal(t, "2026-03", body.MonthlyPlays.YearMonth)
	// 12k plays against the free tier's 10k cap.
	assert.True(t, body.MonthlyPlays.Exceeded)
	assert.NoError(t, mock.ExpectationsWereMet())
}
