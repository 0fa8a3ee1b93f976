package analytics

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poddock/internal/db"
	"poddock/internal/models"
	"poddock/internal/test"
)

func TestPercentage(t *testing.T) {
	assert.Equal(t, 75.0, Percentage(150, 200))
	assert.Equal(t, 33.3, Percentage(1, 3))
	assert.Equal(t, 66.7, Percentage(2, 3))
	assert.Equal(t, 100.0, Percentage(5, 5))
	assert.Equal(t, 0.0, Percentage(0, 100))
	// Zero total yields zero, not a division error.
	assert.Equal(t, 0.0, Percentage(10, 0))
}

func TestParsePeriod(t *testing.T) {
	for _, valid := range []string{"7d", "30d", "90d", "all"} {
		p, ok := ParsePeriod(valid)
		assert.True(t, ok)
		assert.Equal(t, Period(valid), p)
	}
	_, ok := ParsePeriod("365d")
	assert.False(t, ok)
	_, ok = ParsePeriod("")
	assert.False(t, ok)
}

func TestPeriodStart(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	start := PeriodStart(Period7d, now)
	require.NotNil(t, start)
	assert.Equal(t, time.Date(2026, 3, 8, 12, 0, 0, 0, time.UTC), *start)

	assert.Nil(t, PeriodStart(PeriodAll, now))
}

func TestYearMonthAgo(t *testing.T) {
	// End-of-month days must not skew month arithmetic.
	now := time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03", yearMonthAgo(now, 0))
	assert.Equal(t, "2026-02", yearMonthAgo(now, 1))
	assert.Equal(t, "2025-12", yearMonthAgo(now, 3))
	assert.Equal(t, "2025-03", yearMonthAgo(now, 12))
}

func TestFillMonths(t *testing.T) {
	now := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	stats := []models.MonthlyPlayStat{
		{YearMonth: "2026-01", PlayCount: 40},
		{YearMonth: "2026-03", PlayCount: 7},
	}

	series := fillMonths(stats, 4, now)
	assert.Equal(t, []MonthlyPlay{
		{YearMonth: "2025-12", PlayCount: 0},
		{YearMonth: "2026-01", PlayCount: 40},
		{YearMonth: "2026-02", PlayCount: 0},
		{YearMonth: "2026-03", PlayCount: 7},
	}, series)
}

func TestBucketTail(t *testing.T) {
	rows := []playBucket{
		{Tag: "US", PlayCount: 100},
		{Tag: "DE", PlayCount: 80},
		{Tag: "GB", PlayCount: 10},
		{Tag: "FR", PlayCount: 5},
		{Tag: "NL", PlayCount: 3},
		{Tag: "SE", PlayCount: 2},
	}

	grouped, total := bucketTail(rows, 3)
	assert.Equal(t, 200, total)
	require.Len(t, grouped, 4)
	assert.Equal(t, playBucket{Tag: "US", PlayCount: 100}, grouped[0])
	assert.Equal(t, playBucket{Tag: "OTHER", PlayCount: 10}, grouped[3])
}

func TestBucketTailNoTail(t *testing.T) {
	rows := []playBucket{
		{Tag: "US", PlayCount: 10},
		{Tag: "DE", PlayCount: 5},
	}

	// No OTHER bucket when nothing spills past the limit.
	grouped, total := bucketTail(rows, 5)
	assert.Equal(t, 15, total)
	assert.Len(t, grouped, 2)

	grouped, _ = bucketTail(nil, 5)
	assert.Empty(t, grouped)
}

func TestClassifyUserAgents(t *testing.T) {
	ua := func(s string) *string { return &s }
	rows := []db.UserAgentPlayCount{
		{UserAgent: ua("Spotify/8.8.0 iOS"), PlayCount: 30},
		{UserAgent: ua("Spotify/8.7.2 Android"), PlayCount: 20},
		{UserAgent: ua("AppleCoreMedia/1.0.0"), PlayCount: 50},
		{UserAgent: nil, PlayCount: 4},
	}

	buckets := classifyUserAgents(rows)
	require.Len(t, buckets, 3)
	// Tied counts fall back to the tag ordering.
	assert.Equal(t, playBucket{Tag: "apple_podcasts", PlayCount: 50}, buckets[0])
	assert.Equal(t, playBucket{Tag: "spotify", PlayCount: 50}, buckets[1])
	assert.Equal(t, playBucket{Tag: "other", PlayCount: 4}, buckets[2])
}

func TestFillDays(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	rows := []db.DailyPlayCount{
		{Day: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), PlayCount: 9},
	}

	series := fillDays(rows, start, end)
	assert.Equal(t, []DailyPlay{
		{Date: "2026-03-01", PlayCount: 0},
		{Date: "2026-03-02", PlayCount: 9},
		{Date: "2026-03-03", PlayCount: 0},
		{Date: "2026-03-04", PlayCount: 0},
	}, series)
}

func TestBuildOverview(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	_, mock := test.NewMockDB(t)
	rows := sqlmock.NewRows([]string{"id", "podcast_id", "year_month", "play_count", "updated_at"}).
		AddRow("s1", "pod-1", "2026-02", 120, now).
		AddRow("s2", "pod-1", "2026-03", 45, now)
	mock.ExpectQuery(`SELECT \* FROM monthly_play_stats`).
		WithArgs("pod-1", "2026-01", "2026-03").
		WillReturnRows(rows)

	overview, err := BuildOverview("pod-1", 3, now)
	require.NoError(t, err)

	assert.Equal(t, "pod-1", overview.PodcastID)
	assert.Equal(t, PeriodRange{Start: "2026-01-01", End: "2026-03-31"}, overview.Period)
	assert.Equal(t, 165, overview.TotalPlays)
	assert.Equal(t, 45, overview.CurrentMonthPlays)
	assert.Equal(t, []MonthlyPlay{
		{YearMonth: "2026-01", PlayCount: 0},
		{YearMonth: "2026-02", PlayCount: 120},
		{YearMonth: "2026-03", PlayCount: 45},
	}, overview.MonthlyPlays)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuildCountryReportUnknownVsOther(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	us := "US"
	de := "DE"

	_, mock := test.NewMockDB(t)
	rows := sqlmock.NewRows([]string{"country", "play_count"}).
		AddRow(us, 60).
		AddRow(nil, 30).
		AddRow(de, 10)
	mock.ExpectQuery(`SELECT country, COUNT\(\*\) AS play_count`).
		WillReturnRows(rows)

	report, err := BuildCountryReport("pod-1", Period30d, 2, now)
	require.NoError(t, err)

	// Null country reads as UNKNOWN; DE spills into the synthetic OTHER bucket.
	require.Len(t, report.Countries, 3)
	assert.Equal(t, CountryPlay{Country: "US", PlayCount: 60, Percentage: 60.0}, report.Countries[0])
	assert.Equal(t, CountryPlay{Country: "UNKNOWN", PlayCount: 30, Percentage: 30.0}, report.Countries[1])
	assert.Equal(t, CountryPlay{Country: "OTHER", PlayCount: 10, Percentage: 10.0}, report.Countries[2])
	assert.Equal(t, 100, report.TotalPlays)
}
