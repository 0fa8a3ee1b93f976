package db

import (
	"log"
	"time"

	"poddock/internal/models"
)

const (
	VisibilityPublic  = "public"
	VisibilityPrivate = "private"
)

func GetPodcastByID(id string) (*models.Podcast, error) {
	podcast := &models.Podcast{}
	err := DB.Get(podcast, "SELECT * FROM podcasts WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	return podcast, nil
}

func ListPodcastsByOwner(ownerID string, limit int) ([]models.Podcast, error) {
	var podcasts []models.Podcast
	err := DB.Select(&podcasts, `
		SELECT * FROM podcasts
		WHERE owner_id = $1
		ORDER BY updated_at DESC
		LIMIT $2`, ownerID, limit)
	if err != nil {
		log.Printf("Error listing podcasts for owner %s: %v", ownerID, err)
		return nil, err
	}
	return podcasts, nil
}

func CountPodcastsByOwner(ownerID string) (int, error) {
	var count int
	err := DB.Get(&count, "SELECT COUNT(*) FROM podcasts WHERE owner_id = $1", ownerID)
	return count, err
}

func CreatePodcast(p *models.Podcast) (*models.Podcast, error) {
	created := &models.Podcast{}
	err := DB.Get(created, `
		INSERT INTO podcasts (
			id, owner_id, title, description, language, category,
			author_name, contact_email, explicit, podcast_type, visibility,
			cover_image_asset_id, private_feed_token_id, theme_color, theme_mode,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING *`,
		p.ID, p.OwnerID, p.Title, p.Description, p.Language, p.Category,
		p.AuthorName, p.ContactEmail, p.Explicit, p.PodcastType, p.Visibility,
		p.CoverImageAssetID, p.PrivateFeedTokenID, p.ThemeColor, p.ThemeMode,
		p.CreatedAt, p.UpdatedAt)
	if err != nil {
		log.Printf("Error creating podcast: %v", err)
		return nil, err
	}
	return created, nil
}

func UpdatePodcast(p *models.Podcast, now time.Time) (*models.Podcast, error) {
	updated := &models.Podcast{}
	err := DB.Get(updated, `
		UPDATE podcasts SET
			title = $1, description = $2, language = $3, category = $4,
			author_name = $5, contact_email = $6, explicit = $7, podcast_type = $8,
			visibility = $9, cover_image_asset_id = $10, theme_color = $11,
			theme_mode = $12, updated_at = $13
		WHERE id = $14
		RETURNING *`,
		p.Title, p.Description, p.Language, p.Category,
		p.AuthorName, p.ContactEmail, p.Explicit, p.PodcastType,
		p.Visibility, p.CoverImageAssetID, p.ThemeColor,
		p.ThemeMode, now, p.ID)
	if err != nil {
		log.Printf("Error updating podcast %s: %v", p.ID, err)
		return nil, err
	}
	return updated, nil
}

// DeletePodcast removes the podcast; episodes, play logs, stats and the feed
// token cascade in the schema.
func DeletePodcast(id string) error {
	_, err := DB.Exec("DELETE FROM podcasts WHERE id = $1", id)
	return err
}

// CountEpisodesByStatus returns episode counts keyed by status for a podcast.
func CountEpisodesByStatus(podcastID string) (map[string]int, error) {
	rows := []struct {
		Status string `db:"status"`
		Count  int    `db:"count"`
	}{}
	err := DB.Select(&rows, `
		SELECT status, COUNT(*) AS count
		FROM episodes
		WHERE podcast_id = $1
		GROUP BY status`, podcastID)
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int, len(rows))
	for _, r := range rows {
		counts[r.Status] = r.Count
	}
	return counts, nil
}
