package db

import (
	"log"
	"time"

	"poddock/internal/models"
)

func InsertPlayLog(p *models.PlayLog) error {
	_, err := DB.Exec(`
		INSERT INTO play_logs (id, episode_id, podcast_id, ip_hash, user_agent, country, played_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.EpisodeID, p.PodcastID, p.IPHash, p.UserAgent, p.Country, p.PlayedAt)
	return err
}

// IncrementMonthlyPlays upserts the (podcast, year-month) counter in a single
// statement. Two plays racing on a month with no row yet must not lose an
// increment, so this is never a read-then-write.
func IncrementMonthlyPlays(id, podcastID, yearMonth string, now time.Time) error {
	_, err := DB.Exec(`
		INSERT INTO monthly_play_stats (id, podcast_id, year_month, play_count, updated_at)
		VALUES ($1, $2, $3, 1, $4)
		ON CONFLICT (podcast_id, year_month) DO UPDATE SET
			play_count = monthly_play_stats.play_count + 1,
			updated_at = EXCLUDED.updated_at`,
		id, podcastID, yearMonth, now)
	if err != nil {
		log.Printf("Error incrementing monthly plays for podcast %s %s: %v", podcastID, yearMonth, err)
	}
	return err
}

// CountMonthlyPlaysByOwner sums a month's plays across all of an owner's
// podcasts, for plan usage reporting.
func CountMonthlyPlaysByOwner(ownerID, yearMonth string) (int, error) {
	var count int
	err := DB.Get(&count, `
		SELECT COALESCE(SUM(s.play_count), 0)
		FROM monthly_play_stats s
		INNER JOIN podcasts p ON p.id = s.podcast_id
		WHERE p.owner_id = $1 AND s.year_month = $2`, ownerID, yearMonth)
	return count, err
}

func GetMonthlyStats(podcastID, startMonth, endMonth string) ([]models.MonthlyPlayStat, error) {
	var stats []models.MonthlyPlayStat
	err := DB.Select(&stats, `
		SELECT * FROM monthly_play_stats
		WHERE podcast_id = $1 AND year_month >= $2 AND year_month <= $3
		ORDER BY year_month`, podcastID, startMonth, endMonth)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// CountPlays returns the total number of plays for a podcast since the given
// time, or over all time when since is nil.
func CountPlays(podcastID string, since *time.Time) (int, error) {
	var count int
	var err error
	if since != nil {
		err = DB.Get(&count, `
			SELECT COUNT(*) FROM play_logs
			WHERE podcast_id = $1 AND played_at >= $2`, podcastID, *since)
	} else {
		err = DB.Get(&count, "SELECT COUNT(*) FROM play_logs WHERE podcast_id = $1", podcastID)
	}
	return count, err
}

type EpisodePlayCount struct {
	EpisodeID string `db:"episode_id"`
	PlayCount int    `db:"play_count"`
}

func CountPlaysByEpisode(podcastID string, since *time.Time, limit int) ([]EpisodePlayCount, error) {
	var rows []EpisodePlayCount
	var err error
	if since != nil {
		err = DB.Select(&rows, `
			SELECT episode_id, COUNT(*) AS play_count
			FROM play_logs
			WHERE podcast_id = $1 AND played_at >= $2
			GROUP BY episode_id
			ORDER BY play_count DESC
			LIMIT $3`, podcastID, *since, limit)
	} else {
		err = DB.Select(&rows, `
			SELECT episode_id, COUNT(*) AS play_count
			FROM play_logs
			WHERE podcast_id = $1
			GROUP BY episode_id
			ORDER BY play_count DESC
			LIMIT $2`, podcastID, limit)
	}
	if err != nil {
		log.Printf("Error counting plays by episode for podcast %s: %v", podcastID, err)
		return nil, err
	}
	return rows, nil
}

type CountryPlayCount struct {
	Country   *string `db:"country"`
	PlayCount int     `db:"play_count"`
}

// CountPlaysByCountry returns every country group ordered by count descending.
// The long-tail OTHER bucketing happens in the aggregator, which needs the
// full distribution.
func CountPlaysByCountry(podcastID string, since *time.Time) ([]CountryPlayCount, error) {
	var rows []CountryPlayCount
	var err error
	if since != nil {
		err = DB.Select(&rows, `
			SELECT country, COUNT(*) AS play_count
			FROM play_logs
			WHERE podcast_id = $1 AND played_at >= $2
			GROUP BY country
			ORDER BY play_count DESC`, podcastID, *since)
	} else {
		err = DB.Select(&rows, `
			SELECT country, COUNT(*) AS play_count
			FROM play_logs
			WHERE podcast_id = $1
			GROUP BY country
			ORDER BY play_count DESC`, podcastID)
	}
	if err != nil {
		log.Printf("Error counting plays by country for podcast %s: %v", podcastID, err)
		return nil, err
	}
	return rows, nil
}

type DailyPlayCount struct {
	Day       time.Time `db:"day"`
	PlayCount int       `db:"play_count"`
}

func CountPlaysByDay(podcastID string, since time.Time) ([]DailyPlayCount, error) {
	var rows []DailyPlayCount
	err := DB.Select(&rows, `
		SELECT DATE(played_at AT TIME ZONE 'UTC') AS day, COUNT(*) AS play_count
		FROM play_logs
		WHERE podcast_id = $1 AND played_at >= $2
		GROUP BY day
		ORDER BY day`, podcastID, since)
	if err != nil {
		log.Printf("Error counting plays by day for podcast %s: %v", podcastID, err)
		return nil, err
	}
	return rows, nil
}

type UserAgentPlayCount struct {
	UserAgent *string `db:"user_agent"`
	PlayCount int     `db:"play_count"`
}

// CountPlaysByUserAgent groups the raw stored user agents; platform
// classification runs in the aggregator.
func CountPlaysByUserAgent(podcastID string, since *time.Time) ([]UserAgentPlayCount, error) {
	var rows []UserAgentPlayCount
	var err error
	if since != nil {
		err = DB.Select(&rows, `
			SELECT user_agent, COUNT(*) AS play_count
			FROM play_logs
			WHERE podcast_id = $1 AND played_at >= $2
			GROUP BY user_agent`, podcastID, *since)
	} else {
		err = DB.Select(&rows, `
			SELECT user_agent, COUNT(*) AS play_count
			FROM play_logs
			WHERE podcast_id = $1
			GROUP BY user_agent`, podcastID)
	}
	if err != nil {
		log.Printf("Error counting plays by user agent for podcast %s: %v", podcastID, err)
		return nil, err
	}
	return rows, nil
}
