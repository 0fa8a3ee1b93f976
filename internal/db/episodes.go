package db

import (
	"log"
	"time"

	"github.com/jmoiron/sqlx"

	"poddock/internal/models"
)

const (
	StatusDraft     = "draft"
	StatusScheduled = "scheduled"
	StatusPublished = "published"
)

func GetEpisodeByID(id string) (*models.Episode, error) {
	episode := &models.Episode{}
	err := DB.Get(episode, "SELECT * FROM episodes WHERE id = $1", id)
	if err != nil {
		return nil, err
	}
	return episode, nil
}

// GetEpisodeByPodcast looks up an episode scoped to its podcast, so an id
// from another show reads as not found.
func GetEpisodeByPodcast(podcastID, episodeID string) (*models.Episode, error) {
	episode := &models.Episode{}
	err := DB.Get(episode, "SELECT * FROM episodes WHERE id = $1 AND podcast_id = $2", episodeID, podcastID)
	if err != nil {
		return nil, err
	}
	return episode, nil
}

func ListEpisodes(podcastID, status string, limit int) ([]models.Episode, error) {
	var episodes []models.Episode
	var err error
	if status != "" {
		err = DB.Select(&episodes, `
			SELECT * FROM episodes
			WHERE podcast_id = $1 AND status = $2
			ORDER BY published_at DESC NULLS LAST, created_at DESC
			LIMIT $3`, podcastID, status, limit)
	} else {
		err = DB.Select(&episodes, `
			SELECT * FROM episodes
			WHERE podcast_id = $1
			ORDER BY published_at DESC NULLS LAST, created_at DESC
			LIMIT $2`, podcastID, limit)
	}
	if err != nil {
		log.Printf("Error listing episodes for podcast %s: %v", podcastID, err)
		return nil, err
	}
	return episodes, nil
}

func CountEpisodes(podcastID string) (int, error) {
	var count int
	err := DB.Get(&count, "SELECT COUNT(*) FROM episodes WHERE podcast_id = $1", podcastID)
	return count, err
}

func CreateEpisode(e *models.Episode) (*models.Episode, error) {
	created := &models.Episode{}
	err := DB.Get(created, `
		INSERT INTO episodes (
			id, podcast_id, title, description, status, published_at,
			audio_asset_id, duration_seconds, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING *`,
		e.ID, e.PodcastID, e.Title, e.Description, e.Status, e.PublishedAt,
		e.AudioAssetID, e.DurationSeconds, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		log.Printf("Error creating episode: %v", err)
		return nil, err
	}
	return created, nil
}

func UpdateEpisode(e *models.Episode, now time.Time) (*models.Episode, error) {
	updated := &models.Episode{}
	err := DB.Get(updated, `
		UPDATE episodes SET
			title = $1, description = $2, status = $3, published_at = $4, updated_at = $5
		WHERE id = $6
		RETURNING *`,
		e.Title, e.Description, e.Status, e.PublishedAt, now, e.ID)
	if err != nil {
		log.Printf("Error updating episode %s: %v", e.ID, err)
		return nil, err
	}
	return updated, nil
}

func AttachEpisodeAudio(episodeID, assetID string, durationSeconds *int, now time.Time) error {
	_, err := DB.Exec(`
		UPDATE episodes
		SET audio_asset_id = $1, duration_seconds = $2, updated_at = $3
		WHERE id = $4`,
		assetID, durationSeconds, now, episodeID)
	return err
}

func DeleteEpisode(id string) error {
	_, err := DB.Exec("DELETE FROM episodes WHERE id = $1", id)
	return err
}

// PublishedEpisode is an episode joined with its resolved audio asset. Audio
// columns are nullable: a published episode whose asset row disappeared still
// comes back, and the feed renderer drops it.
type PublishedEpisode struct {
	models.Episode
	AudioPublicURL   *string `db:"audio_public_url"`
	AudioContentType *string `db:"audio_content_type"`
	AudioByteSize    *int64  `db:"audio_byte_size"`
}

func ListPublishedEpisodesWithAudio(podcastID string) ([]PublishedEpisode, error) {
	var episodes []PublishedEpisode
	err := DB.Select(&episodes, `
		SELECT e.*,
			a.public_url AS audio_public_url,
			a.content_type AS audio_content_type,
			a.byte_size AS audio_byte_size
		FROM episodes e
		LEFT JOIN assets a ON a.id = e.audio_asset_id
		WHERE e.podcast_id = $1 AND e.status = $2
		ORDER BY e.published_at DESC`, podcastID, StatusPublished)
	if err != nil {
		log.Printf("Error listing published episodes for podcast %s: %v", podcastID, err)
		return nil, err
	}
	return episodes, nil
}

// GetEpisodeTitles resolves titles for a set of episode ids. Deleted episodes
// simply have no entry in the returned map.
func GetEpisodeTitles(ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	query, args, err := sqlx.In("SELECT id, title FROM episodes WHERE id IN (?)", ids)
	if err != nil {
		return nil, err
	}
	rows := []struct {
		ID    string `db:"id"`
		Title string `db:"title"`
	}{}
	if err := DB.Select(&rows, DB.Rebind(query), args...); err != nil {
		log.Printf("Error getting episode titles: %v", err)
		return nil, err
	}
	titles := make(map[string]string, len(rows))
	for _, r := range rows {
		titles[r.ID] = r.Title
	}
	return titles, nil
}

// PromoteDueScheduledEpisodes flips scheduled episodes whose publish time has
// passed to published and returns them.
func PromoteDueScheduledEpisodes(now time.Time) ([]models.Episode, error) {
	var episodes []models.Episode
	err := DB.Select(&episodes, `
		UPDATE episodes
		SET status = $1, updated_at = $2
		WHERE status = $3 AND published_at <= $2
		RETURNING *`, StatusPublished, now, StatusScheduled)
	if err != nil {
		return nil, err
	}
	return episodes, nil
}
