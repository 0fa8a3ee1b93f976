package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPlatform(t *testing.T) {
	cases := []struct {
		name      string
		userAgent string
		want      Platform
	}{
		{"apple core media", "AppleCoreMedia/1.0.0.21A329 (iPhone; U; CPU OS 17_0)", PlatformApplePodcasts},
		{"apple podcasts app", "Podcasts/4030.3 CFNetwork/1474 Darwin/23.0.0", PlatformApplePodcasts},
		{"itunes", "iTunes/12.12 (Windows; Microsoft Windows 10)", PlatformApplePodcasts},
		{"spotify", "Spotify/8.8.0 iOS/17.0 (iPhone14,5)", PlatformSpotify},
		{"alexa", "Amazon Alexa Media Player", PlatformAmazonMusic},
		{"google podcasts", "GooglePodcasts/2.0.0 iOS", PlatformGooglePodcasts},
		{"overcast", "Overcast/3.0 (+http://overcast.fm/; iOS podcast app)", PlatformOvercast},
		{"pocket casts", "Pocket Casts/7.0", PlatformPocketCasts},
		{"castro", "Castro/2024.1 (iPhone)", PlatformCastro},
		{"podcast addict", "PodcastAddict/v5 (Linux; Android 13)", PlatformPodcastAddict},
		{"player fm", "Player FM/5.0", PlatformPlayerFM},
		{"castbox", "CastBox/11.0 Android", PlatformCastbox},
		{"chrome browser", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 Chrome/120.0 Safari/537.36", PlatformWebBrowser},
		{"firefox browser", "Mozilla/5.0 (X11; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0", PlatformWebBrowser},
		{"unknown client", "curl/8.4.0", PlatformOther},
		{"empty", "", PlatformOther},
		{"case insensitive", "OVERCAST/3.0", PlatformOvercast},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectPlatform(tc.userAgent))
		})
	}
}

// Spotify's mobile client carries browser tokens; the app rule must win over
// the browser fallback.
func TestDetectPlatformAppBeatsBrowserFallback(t *testing.T) {
	ua := "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) Spotify/8.8.0"
	assert.Equal(t, PlatformSpotify, DetectPlatform(ua))
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Apple Podcasts", DisplayName(PlatformApplePodcasts))
	assert.Equal(t, "Web Browser", DisplayName(PlatformWebBrowser))
	assert.Equal(t, "Other", DisplayName(PlatformOther))
	assert.Equal(t, "Other", DisplayName(Platform("nonsense")))
}
