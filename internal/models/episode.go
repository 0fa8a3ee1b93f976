package models

import "time"

type Episode struct {
	ID              string     `db:"id"`
	PodcastID       string     `db:"podcast_id"`
	Title           string     `db:"title"`
	Description     *string    `db:"description"`
	Status          string     `db:"status"`
	PublishedAt     *time.Time `db:"published_at"`
	AudioAssetID    *string    `db:"audio_asset_id"`
	DurationSeconds *int       `db:"duration_seconds"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}
