package models

import "time"

// Podcast represents a show in the database.
type Podcast struct {
	ID                 string    `db:"id"`
	OwnerID            string    `db:"owner_id"`
	Title              string    `db:"title"`
	Description        string    `db:"description"`
	Language           string    `db:"language"`
	Category           string    `db:"category"`
	AuthorName         *string   `db:"author_name"`
	ContactEmail       *string   `db:"contact_email"`
	Explicit           bool      `db:"explicit"`
	PodcastType        string    `db:"podcast_type"`
	Visibility         string    `db:"visibility"`
	CoverImageAssetID  *string   `db:"cover_image_asset_id"`
	PrivateFeedTokenID *string   `db:"private_feed_token_id"`
	ThemeColor         string    `db:"theme_color"`
	ThemeMode          string    `db:"theme_mode"`
	CreatedAt          time.Time `db:"created_at"`
	UpdatedAt          time.Time `db:"updated_at"`
}
