package models

import "time"

// FeedToken is the single private-feed credential for a podcast. Rotation
// overwrites the token value in place; there is no token history.
type FeedToken struct {
	ID        string     `db:"id"`
	PodcastID string     `db:"podcast_id"`
	Token     string     `db:"token"`
	RevokedAt *time.Time `db:"revoked_at"`
	CreatedAt time.Time  `db:"created_at"`
}
