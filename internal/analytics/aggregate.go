package analytics

import (
	"math"
	"sort"
	"time"

	"poddock/internal/db"
	"poddock/internal/models"
)

// Period is a trailing time window for the play-log facets.
type Period string

const (
	Period7d  Period = "7d"
	Period30d Period = "30d"
	Period90d Period = "90d"
	PeriodAll Period = "all"
)

func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case Period7d, Period30d, Period90d, PeriodAll:
		return Period(s), true
	}
	return "", false
}

// PeriodStart returns the lower bound of a period, or nil for "all".
func PeriodStart(p Period, now time.Time) *time.Time {
	var days int
	switch p {
	case Period7d:
		days = 7
	case Period30d:
		days = 30
	case Period90d:
		days = 90
	default:
		return nil
	}
	start := now.UTC().AddDate(0, 0, -days)
	return &start
}

// Percentage computes a play-count share with exactly one decimal digit:
// round(x * 1000) / 10. A zero total yields 0, never a division error.
func Percentage(count, total int) float64 {
	if total <= 0 {
		return 0
	}
	return math.Round(float64(count)/float64(total)*1000) / 10
}

type PeriodRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type MonthlyPlay struct {
	YearMonth string `json:"year_month"`
	PlayCount int    `json:"play_count"`
}

type Overview struct {
	PodcastID         string        `json:"podcast_id"`
	Period            PeriodRange   `json:"period"`
	MonthlyPlays      []MonthlyPlay `json:"monthly_plays"`
	TotalPlays        int           `json:"total_plays"`
	CurrentMonthPlays int           `json:"current_month_plays"`
}

// yearMonthAgo returns the "YYYY-MM" tag i months before now, computed on
// year/month integers so end-of-month days cannot skew the arithmetic.
func yearMonthAgo(now time.Time, i int) string {
	u := now.UTC()
	idx := u.Year()*12 + int(u.Month()) - 1 - i
	return time.Date(idx/12, time.Month(idx%12+1), 1, 0, 0, 0, 0, time.UTC).Format("2006-01")
}

// fillMonths produces the trailing-months series, oldest first, with an
// explicit zero row for every month absent from stats.
func fillMonths(stats []models.MonthlyPlayStat, months int, now time.Time) []MonthlyPlay {
	byMonth := make(map[string]int, len(stats))
	for _, s := range stats {
		byMonth[s.YearMonth] = s.PlayCount
	}
	series := make([]MonthlyPlay, 0, months)
	for i := months - 1; i >= 0; i-- {
		ym := yearMonthAgo(now, i)
		series = append(series, MonthlyPlay{YearMonth: ym, PlayCount: byMonth[ym]})
	}
	return series
}

// BuildOverview returns per-month play counts for the trailing months
// including the current one, backed by the materialized monthly counters.
func BuildOverview(podcastID string, months int, now time.Time) (*Overview, error) {
	startMonth := yearMonthAgo(now, months-1)
	endMonth := yearMonthAgo(now, 0)

	stats, err := db.GetMonthlyStats(podcastID, startMonth, endMonth)
	if err != nil {
		return nil, err
	}

	totalPlays := 0
	currentMonthPlays := 0
	for _, s := range stats {
		totalPlays += s.PlayCount
		if s.YearMonth == endMonth {
			currentMonthPlays = s.PlayCount
		}
	}

	u := now.UTC()
	lastDay := time.Date(u.Year(), u.Month()+1, 0, 0, 0, 0, 0, time.UTC)

	return &Overview{
		PodcastID: podcastID,
		Period: PeriodRange{
			Start: startMonth + "-01",
			End:   lastDay.Format("2006-01-02"),
		},
		MonthlyPlays:      fillMonths(stats, months, now),
		TotalPlays:        totalPlays,
		CurrentMonthPlays: currentMonthPlays,
	}, nil
}

type EpisodePlay struct {
	EpisodeID  string  `json:"episode_id"`
	Title      string  `json:"title"`
	PlayCount  int     `json:"play_count"`
	Percentage float64 `json:"percentage"`
}

type EpisodeReport struct {
	PodcastID  string        `json:"podcast_id"`
	Period     Period        `json:"period"`
	Episodes   []EpisodePlay `json:"episodes"`
	TotalPlays int           `json:"total_plays"`
}

// BuildEpisodeReport ranks episodes by play count within the period.
// Percentages are computed against the period's total, not the returned
// subset; deleted episodes keep their counts under a placeholder title.
func BuildEpisodeReport(podcastID string, period Period, limit int, now time.Time) (*EpisodeReport, error) {
	since := PeriodStart(period, now)

	rows, err := db.CountPlaysByEpisode(podcastID, since, limit)
	if err != nil {
		return nil, err
	}

	totalPlays, err := db.CountPlays(podcastID, since)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.EpisodeID
	}
	titles, err := db.GetEpisodeTitles(ids)
	if err != nil {
		return nil, err
	}

	episodes := make([]EpisodePlay, 0, len(rows))
	for _, r := range rows {
		title, ok := titles[r.EpisodeID]
		if !ok {
			title = "Unknown Episode"
		}
		episodes = append(episodes, EpisodePlay{
			EpisodeID:  r.EpisodeID,
			Title:      title,
			PlayCount:  r.PlayCount,
			Percentage: Percentage(r.PlayCount, totalPlays),
		})
	}

	return &EpisodeReport{
		PodcastID:  podcastID,
		Period:     period,
		Episodes:   episodes,
		TotalPlays: totalPlays,
	}, nil
}

type CountryPlay struct {
	Country    string  `json:"country"`
	PlayCount  int     `json:"play_count"`
	Percentage float64 `json:"percentage"`
}

type CountryReport struct {
	PodcastID  string        `json:"podcast_id"`
	Period     Period        `json:"period"`
	Countries  []CountryPlay `json:"countries"`
	TotalPlays int           `json:"total_plays"`
}

// playBucket is one tagged group in a distribution (a country code or a
// platform tag).
type playBucket struct {
	Tag       string
	PlayCount int
}

// bucketTail keeps the top-limit groups and folds everything past them into
// one synthetic OTHER bucket, emitted only when the tail actually has plays.
// Input must already be ordered by count descending. Returns the distribution
// total, which percentages are computed against.
func bucketTail(rows []playBucket, limit int) ([]playBucket, int) {
	total := 0
	for _, r := range rows {
		total += r.PlayCount
	}

	top := rows
	if len(top) > limit {
		top = top[:limit]
	}
	out := make([]playBucket, 0, len(top)+1)
	out = append(out, top...)

	otherTotal := 0
	for _, r := range rows[len(top):] {
		otherTotal += r.PlayCount
	}
	if otherTotal > 0 {
		out = append(out, playBucket{Tag: "OTHER", PlayCount: otherTotal})
	}

	return out, total
}

func BuildCountryReport(podcastID string, period Period, limit int, now time.Time) (*CountryReport, error) {
	rows, err := db.CountPlaysByCountry(podcastID, PeriodStart(period, now))
	if err != nil {
		return nil, err
	}

	// A null country is the literal UNKNOWN tag, distinct from the synthetic
	// OTHER long-tail bucket.
	buckets := make([]playBucket, 0, len(rows))
	for _, r := range rows {
		country := "UNKNOWN"
		if r.Country != nil && *r.Country != "" {
			country = *r.Country
		}
		buckets = append(buckets, playBucket{Tag: country, PlayCount: r.PlayCount})
	}

	grouped, total := bucketTail(buckets, limit)
	countries := make([]CountryPlay, 0, len(grouped))
	for _, g := range grouped {
		countries = append(countries, CountryPlay{
			Country:    g.Tag,
			PlayCount:  g.PlayCount,
			Percentage: Percentage(g.PlayCount, total),
		})
	}

	return &CountryReport{
		PodcastID:  podcastID,
		Period:     period,
		Countries:  countries,
		TotalPlays: total,
	}, nil
}

type DailyPlay struct {
	Date      string `json:"date"`
	PlayCount int    `json:"play_count"`
}

type DailyReport struct {
	PodcastID  string      `json:"podcast_id"`
	Period     PeriodRange `json:"period"`
	DailyPlays []DailyPlay `json:"daily_plays"`
}

// fillDays produces a continuous daily series over [start, end], zero-filled,
// so charts never see a sparse array.
func fillDays(rows []db.DailyPlayCount, start, end time.Time) []DailyPlay {
	byDay := make(map[string]int, len(rows))
	for _, r := range rows {
		byDay[r.Day.UTC().Format("2006-01-02")] = r.PlayCount
	}
	var series []DailyPlay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		series = append(series, DailyPlay{Date: key, PlayCount: byDay[key]})
	}
	return series
}

func BuildDailyReport(podcastID string, days int, now time.Time) (*DailyReport, error) {
	u := now.UTC()
	end := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	start := end.AddDate(0, 0, -(days - 1))

	rows, err := db.CountPlaysByDay(podcastID, start)
	if err != nil {
		return nil, err
	}

	return &DailyReport{
		PodcastID: podcastID,
		Period: PeriodRange{
			Start: start.Format("2006-01-02"),
			End:   end.Format("2006-01-02"),
		},
		DailyPlays: fillDays(rows, start, end),
	}, nil
}

type PlatformPlay struct {
	Platform    string  `json:"platform"`
	DisplayName string  `json:"display_name"`
	PlayCount   int     `json:"play_count"`
	Percentage  float64 `json:"percentage"`
}

type PlatformReport struct {
	PodcastID  string         `json:"podcast_id"`
	Period     Period         `json:"period"`
	Platforms  []PlatformPlay `json:"platforms"`
	TotalPlays int            `json:"total_plays"`
}

// classifyUserAgents folds raw user-agent groups into per-platform counts,
// ordered by count descending (platform tag as the tie-break so the order is
// deterministic).
func classifyUserAgents(rows []db.UserAgentPlayCount) []playBucket {
	byPlatform := make(map[Platform]int)
	for _, r := range rows {
		ua := ""
		if r.UserAgent != nil {
			ua = *r.UserAgent
		}
		byPlatform[DetectPlatform(ua)] += r.PlayCount
	}

	buckets := make([]playBucket, 0, len(byPlatform))
	for p, c := range byPlatform {
		buckets = append(buckets, playBucket{Tag: string(p), PlayCount: c})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].PlayCount != buckets[j].PlayCount {
			return buckets[i].PlayCount > buckets[j].PlayCount
		}
		return buckets[i].Tag < buckets[j].Tag
	})
	return buckets
}

// BuildPlatformReport classifies the stored user agents at aggregation time
// and buckets the long tail like the country report.
func BuildPlatformReport(podcastID string, period Period, limit int, now time.Time) (*PlatformReport, error) {
	rows, err := db.CountPlaysByUserAgent(podcastID, PeriodStart(period, now))
	if err != nil {
		return nil, err
	}

	grouped, total := bucketTail(classifyUserAgents(rows), limit)

	platforms := make([]PlatformPlay, 0, len(grouped))
	for _, g := range grouped {
		display := "Other"
		if g.Tag != "OTHER" {
			display = DisplayName(Platform(g.Tag))
		}
		platforms = append(platforms, PlatformPlay{
			Platform:    g.Tag,
			DisplayName: display,
			PlayCount:   g.PlayCount,
			Percentage:  Percentage(g.PlayCount, total),
		})
	}

	return &PlatformReport{
		PodcastID:  podcastID,
		Period:     period,
		Platforms:  platforms,
		TotalPlays: total,
	}, nil
}
