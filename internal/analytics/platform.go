package analytics

import "regexp"

// Platform is a podcast-client tag detected from a User-Agent string.
type Platform string

const (
	PlatformApplePodcasts  Platform = "apple_podcasts"
	PlatformSpotify        Platform = "spotify"
	PlatformAmazonMusic    Platform = "amazon_music"
	PlatformGooglePodcasts Platform = "google_podcasts"
	PlatformOvercast       Platform = "overcast"
	PlatformPocketCasts    Platform = "pocket_casts"
	PlatformCastro         Platform = "castro"
	PlatformPodbean        Platform = "podbean"
	PlatformStitcher       Platform = "stitcher"
	PlatformCastbox        Platform = "castbox"
	PlatformPodcastAddict  Platform = "podcast_addict"
	PlatformPlayerFM       Platform = "player_fm"
	PlatformBreaker        Platform = "breaker"
	PlatformRadioPublic    Platform = "radio_public"
	PlatformWebBrowser     Platform = "web_browser"
	PlatformOther          Platform = "other"
)

type platformMatcher struct {
	platform Platform
	patterns []*regexp.Regexp
}

// Ordered: app-specific signatures are checked before the generic browser
// fallback because many podcast apps embed browser tokens in their UA.
var platformMatchers = []platformMatcher{
	{PlatformApplePodcasts, compileAll(`AppleCoreMedia`, `iTunes`, `Podcasts/`, `Apple Podcasts`)},
	{PlatformSpotify, compileAll(`Spotify/`, `SpotifyPodcasts`)},
	{PlatformAmazonMusic, compileAll(`AmazonMusic`, `Amazon Music`, `Alexa`)},
	{PlatformGooglePodcasts, compileAll(`GooglePodcasts`, `Google Podcasts`, `Google-Podcast`)},
	{PlatformOvercast, compileAll(`Overcast/`)},
	{PlatformPocketCasts, compileAll(`PocketCasts`, `Pocket Casts`)},
	{PlatformCastro, compileAll(`Castro/`, `Castro Podcasts`)},
	{PlatformPodbean, compileAll(`Podbean`)},
	{PlatformStitcher, compileAll(`Stitcher`)},
	{PlatformCastbox, compileAll(`CastBox`, `Castbox`)},
	{PlatformPodcastAddict, compileAll(`Podcast ?Addict`, `PodcastAddict`)},
	{PlatformPlayerFM, compileAll(`Player FM`, `PlayerFM`)},
	{PlatformBreaker, compileAll(`Breaker/`)},
	{PlatformRadioPublic, compileAll(`RadioPublic`)},
}

var webBrowserPatterns = compileAll(`Mozilla`, `Chrome`, `Safari`, `Firefox`, `Edge`, `Opera`)

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(`(?i)` + p)
	}
	return compiled
}

// DetectPlatform classifies a User-Agent string. It is total: an empty or
// unrecognized value maps to PlatformOther. First matching rule wins.
func DetectPlatform(userAgent string) Platform {
	if userAgent == "" {
		return PlatformOther
	}
	for _, m := range platformMatchers {
		for _, p := range m.patterns {
			if p.MatchString(userAgent) {
				return m.platform
			}
		}
	}
	for _, p := range webBrowserPatterns {
		if p.MatchString(userAgent) {
			return PlatformWebBrowser
		}
	}
	return PlatformOther
}

var platformDisplayNames = map[Platform]string{
	PlatformApplePodcasts:  "Apple Podcasts",
	PlatformSpotify:        "Spotify",
	PlatformAmazonMusic:    "Amazon Music",
	PlatformGooglePodcasts: "Google Podcasts",
	PlatformOvercast:       "Overcast",
	PlatformPocketCasts:    "Pocket Casts",
	PlatformCastro:         "Castro",
	PlatformPodbean:        "Podbean",
	PlatformStitcher:       "Stitcher",
	PlatformCastbox:        "Castbox",
	PlatformPodcastAddict:  "Podcast Addict",
	PlatformPlayerFM:       "Player FM",
	PlatformBreaker:        "Breaker",
	PlatformRadioPublic:    "RadioPublic",
	PlatformWebBrowser:     "Web Browser",
	PlatformOther:          "Other",
}

// DisplayName returns the human label for a platform tag.
func DisplayName(p Platform) string {
	if name, ok := platformDisplayNames[p]; ok {
		return name
	}
	return "Other"
}
