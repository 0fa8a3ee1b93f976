package plan

import "fmt"

// Unlimited marks a limit the pro tier does not enforce.
const Unlimited = -1

type Limits struct {
	MaxPodcasts               int
	MaxEpisodesPerPodcast     int
	MaxEpisodeDurationSeconds int
	MaxMonthlyPlays           int
}

var planLimits = map[string]Limits{
	"free": {
		MaxPodcasts:               2,
		MaxEpisodesPerPodcast:     10,
		MaxEpisodeDurationSeconds: 1800,
		MaxMonthlyPlays:           10000,
	},
	"starter": {
		MaxPodcasts:               5,
		MaxEpisodesPerPodcast:     50,
		MaxEpisodeDurationSeconds: 7200,
		MaxMonthlyPlays:           100000,
	},
	"pro": {
		MaxPodcasts:               Unlimited,
		MaxEpisodesPerPodcast:     Unlimited,
		MaxEpisodeDurationSeconds: Unlimited,
		MaxMonthlyPlays:           Unlimited,
	},
}

// GetLimits returns the limit table for a plan. Unknown plans fall back to
// the free tier.
func GetLimits(plan string) Limits {
	if limits, ok := planLimits[plan]; ok {
		return limits
	}
	return planLimits["free"]
}

// CheckResult is the outcome of a threshold comparison against the plan table.
type CheckResult struct {
	Allowed bool
	Reason  string
	Current int
	Limit   int
}

func allowed() CheckResult {
	return CheckResult{Allowed: true}
}

func CheckPodcastLimit(currentCount int, plan string) CheckResult {
	limits := GetLimits(plan)
	if limits.MaxPodcasts != Unlimited && currentCount >= limits.MaxPodcasts {
		return CheckResult{
			Reason:  fmt.Sprintf("Plan allows up to %d podcasts", limits.MaxPodcasts),
			Current: currentCount,
			Limit:   limits.MaxPodcasts,
		}
	}
	return allowed()
}

func CheckEpisodeLimit(currentCount int, plan string) CheckResult {
	limits := GetLimits(plan)
	if limits.MaxEpisodesPerPodcast != Unlimited && currentCount >= limits.MaxEpisodesPerPodcast {
		return CheckResult{
			Reason:  fmt.Sprintf("Plan allows up to %d episodes per podcast", limits.MaxEpisodesPerPodcast),
			Current: currentCount,
			Limit:   limits.MaxEpisodesPerPodcast,
		}
	}
	return allowed()
}

func CheckEpisodeDuration(durationSeconds int, plan string) CheckResult {
	limits := GetLimits(plan)
	if limits.MaxEpisodeDurationSeconds != Unlimited && durationSeconds > limits.MaxEpisodeDurationSeconds {
		return CheckResult{
			Reason:  fmt.Sprintf("Plan allows episodes up to %d minutes", limits.MaxEpisodeDurationSeconds/60),
			Current: durationSeconds,
			Limit:   limits.MaxEpisodeDurationSeconds,
		}
	}
	return allowed()
}

func CheckMonthlyPlayLimit(currentPlays int, plan string) CheckResult {
	limits := GetLimits(plan)
	if limits.MaxMonthlyPlays != Unlimited && currentPlays >= limits.MaxMonthlyPlays {
		return CheckResult{
			Reason:  fmt.Sprintf("Monthly play limit of %d reached", limits.MaxMonthlyPlays),
			Current: currentPlays,
			Limit:   limits.MaxMonthlyPlays,
		}
	}
	return allowed()
}

// CanAccessAnalytics gates the analytics endpoints behind the paid tiers.
func CanAccessAnalytics(plan string) bool {
	return plan == "starter" || plan == "pro"
}
