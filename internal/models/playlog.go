package models

import "time"

// PlayLog is one immutable playback event, recorded by the play redirect.
type PlayLog struct {
	ID        string    `db:"id"`
	EpisodeID string    `db:"episode_id"`
	PodcastID string    `db:"podcast_id"`
	IPHash    *string   `db:"ip_hash"`
	UserAgent *string   `db:"user_agent"`
	Country   *string   `db:"country"`
	PlayedAt  time.Time `db:"played_at"`
}

// MonthlyPlayStat is a materialized per-month play counter, upserted on every
// play so overview queries never scan the log table.
type MonthlyPlayStat struct {
	ID        string    `db:"id"`
	PodcastID string    `db:"podcast_id"`
	YearMonth string    `db:"year_month"`
	PlayCount int       `db:"play_count"`
	UpdatedAt time.Time `db:"updated_at"`
}
