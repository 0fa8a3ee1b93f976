package db

import (
	"log"
	"time"

	"poddock/internal/models"
)

func CreateFeedToken(t *models.FeedToken) (*models.FeedToken, error) {
	created := &models.FeedToken{}
	err := DB.Get(created, `
		INSERT INTO feed_tokens (id, podcast_id, token, revoked_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING *`,
		t.ID, t.PodcastID, t.Token, t.RevokedAt, t.CreatedAt)
	if err != nil {
		log.Printf("Error creating feed token: %v", err)
		return nil, err
	}
	return created, nil
}

// GetValidFeedToken matches (podcast, token) by exact string equality and
// excludes revoked rows. sql.ErrNoRows means the token is not acceptable.
func GetValidFeedToken(podcastID, token string) (*models.FeedToken, error) {
	feedToken := &models.FeedToken{}
	err := DB.Get(feedToken, `
		SELECT * FROM feed_tokens
		WHERE podcast_id = $1 AND token = $2 AND revoked_at IS NULL`,
		podcastID, token)
	if err != nil {
		return nil, err
	}
	return feedToken, nil
}

// RotateFeedToken overwrites the podcast's single token slot. The previous
// value is gone immediately; every URL distributed with it stops working.
func RotateFeedToken(podcastID, newToken string, now time.Time) error {
	_, err := DB.Exec(`
		UPDATE feed_tokens
		SET token = $1, revoked_at = NULL, created_at = $2
		WHERE podcast_id = $3`,
		newToken, now, podcastID)
	if err != nil {
		log.Printf("Error rotating feed token for podcast %s: %v", podcastID, err)
	}
	return err
}
