package feed

import (
	"database/sql"
	"errors"

	"poddock/internal/db"
	"poddock/internal/models"
)

// Authorize decides whether a feed request may proceed. Public podcasts are
// always readable, whatever token came along. Private podcasts require the
// current, non-revoked token for that exact podcast. Callers map a false
// result to 404, never 403, so probing cannot confirm a private feed exists.
func Authorize(podcast *models.Podcast, token string) (bool, error) {
	if podcast.Visibility == db.VisibilityPublic {
		return true, nil
	}
	if token == "" {
		return false, nil
	}
	_, err := db.GetValidFeedToken(podcast.ID, token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
