package plan

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLimits(t *testing.T) {
	free := GetLimits("free")
	assert.Equal(t, 2, free.MaxPodcasts)
	assert.Equal(t, 10, free.MaxEpisodesPerPodcast)
	assert.Equal(t, 1800, free.MaxEpisodeDurationSeconds)
	assert.Equal(t, 10000, free.MaxMonthlyPlays)

	pro := GetLimits("pro")
	assert.Equal(t, Unlimited, pro.MaxPodcasts)
	assert.Equal(t, Unlimited, pro.MaxMonthlyPlays)

	// Unknown plans fall back to the free tier.
	assert.Equal(t, free, GetLimits("enterprise"))
	assert.Equal(t, free, GetLimits(""))
}

func TestCheckPodcastLimit(t *testing.T) {
	assert.True(t, CheckPodcastLimit(1, "free").Allowed)

	check := CheckPodcastLimit(2, "free")
	assert.False(t, check.Allowed)
	assert.Equal(t, 2, check.Current)
	assert.Equal(t, 2, check.Limit)
	assert.NotEmpty(t, check.Reason)

	assert.True(t, CheckPodcastLimit(4, "starter").Allowed)
	assert.False(t, CheckPodcastLimit(5, "starter").Allowed)
	assert.True(t, CheckPodcastLimit(1000, "pro").Allowed)
}

func TestCheckEpisodeLimit(t *testing.T) {
	assert.True(t, CheckEpisodeLimit(9, "free").Allowed)
	assert.False(t, CheckEpisodeLimit(10, "free").Allowed)
	assert.False(t, CheckEpisodeLimit(50, "starter").Allowed)
	assert.True(t, CheckEpisodeLimit(50000, "pro").Allowed)
}

func TestCheckEpisodeDuration(t *testing.T) {
	// The duration limit is inclusive, unlike the counters.
	assert.True(t, CheckEpisodeDuration(1800, "free").Allowed)
	assert.False(t, CheckEpisodeDuration(1801, "free").Allowed)
	assert.True(t, CheckEpisodeDuration(7200, "starter").Allowed)
	assert.False(t, CheckEpisodeDuration(7201, "starter").Allowed)
	assert.True(t, CheckEpisodeDuration(86400, "pro").Allowed)
}

func TestCheckMonthlyPlayLimit(t *testing.T) {
	assert.True(t, CheckMonthlyPlayLimit(9999, "free").Allowed)
	assert.False(t, CheckMonthlyPlayLimit(10000, "free").Allowed)
	assert.False(t, CheckMonthlyPlayLimit(100000, "starter").Allowed)
	assert.True(t, CheckMonthlyPlayLimit(1000000, "pro").Allowed)
}

func TestCanAccessAnalytics(t *testing.T) {
	assert.False(t, CanAccessAnalytics("free"))
	assert.True(t, CanAccessAnalytics("starter"))
	assert.True(t, CanAccessAnalytics("pro"))
	assert.False(t, CanAccessAnalytics(""))
}
