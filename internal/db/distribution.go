package db

import (
	"log"
	"time"

	"poddock/internal/models"
)

const (
	DistributionNotSubmitted   = "not_submitted"
	DistributionSubmitted      = "submitted"
	DistributionLive           = "live"
	DistributionNeedsAttention = "needs_attention"
)

func ListDistributionTargets() ([]models.DistributionTarget, error) {
	var targets []models.DistributionTarget
	err := DB.Select(&targets, "SELECT * FROM distribution_targets ORDER BY id")
	if err != nil {
		return nil, err
	}
	return targets, nil
}

// DistributionStatusRow is a status joined with its target for listing.
type DistributionStatusRow struct {
	models.DistributionStatus
	TargetName      string `db:"target_name"`
	TargetSubmitURL string `db:"target_submit_url"`
}

func ListDistributionStatuses(podcastID string) ([]DistributionStatusRow, error) {
	var rows []DistributionStatusRow
	err := DB.Select(&rows, `
		SELECT s.*, t.name AS target_name, t.submit_url AS target_submit_url
		FROM distribution_statuses s
		INNER JOIN distribution_targets t ON t.id = s.target_id
		WHERE s.podcast_id = $1
		ORDER BY s.target_id`, podcastID)
	if err != nil {
		log.Printf("Error listing distribution statuses for podcast %s: %v", podcastID, err)
		return nil, err
	}
	return rows, nil
}

func CreateDistributionStatus(s *models.DistributionStatus) error {
	_, err := DB.Exec(`
		INSERT INTO distribution_statuses (id, podcast_id, target_id, status, note, last_checked_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		s.ID, s.PodcastID, s.TargetID, s.Status, s.Note, s.LastCheckedAt, s.CreatedAt, s.UpdatedAt)
	return err
}

func GetDistributionStatus(podcastID, targetID string) (*models.DistributionStatus, error) {
	status := &models.DistributionStatus{}
	err := DB.Get(status, `
		SELECT * FROM distribution_statuses
		WHERE podcast_id = $1 AND target_id = $2`, podcastID, targetID)
	if err != nil {
		return nil, err
	}
	return status, nil
}

func UpdateDistributionStatus(podcastID, targetID, status string, note *string, lastCheckedAt *time.Time, now time.Time) error {
	_, err := DB.Exec(`
		UPDATE distribution_statuses
		SET status = $1, note = $2, last_checked_at = $3, updated_at = $4
		WHERE podcast_id = $5 AND target_id = $6`,
		status, note, lastCheckedAt, now, podcastID, targetID)
	return err
}
