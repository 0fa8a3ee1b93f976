package models

import "time"

// DistributionTarget is a directory a podcast can be submitted to
// (Apple, Spotify, Amazon).
type DistributionTarget struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	SubmitURL string    `db:"submit_url"`
	CreatedAt time.Time `db:"created_at"`
}

type DistributionStatus struct {
	ID            string     `db:"id"`
	PodcastID     string     `db:"podcast_id"`
	TargetID      string     `db:"target_id"`
	Status        string     `db:"status"`
	Note          *string    `db:"note"`
	LastCheckedAt *time.Time `db:"last_checked_at"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
}
