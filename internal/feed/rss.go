package feed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"poddock/internal/db"
	"poddock/internal/models"
)

const defaultAuthorName = "PODDOCK"

// GenerateRSS renders a podcast and its published episodes as an RSS 2.0
// document with the iTunes namespace. Episodes without a resolved audio asset
// are dropped even if their status says published; the renderer does not
// trust the update path. The returned time is the feed's lastBuildDate, used
// for the caching headers.
func GenerateRSS(podcast *models.Podcast, episodes []db.PublishedEpisode, coverImageURL *string, channelLink, baseURL string) (string, time.Time) {
	lastBuildDate := podcast.UpdatedAt
	for _, ep := range episodes {
		if ep.UpdatedAt.After(lastBuildDate) {
			lastBuildDate = ep.UpdatedAt
		}
	}

	// Channel pubDate: the earliest-published episode, or the podcast's
	// creation time when the feed is empty. Episodes arrive newest first.
	pubDate := podcast.CreatedAt
	if len(episodes) > 0 {
		first := episodes[len(episodes)-1]
		if first.PublishedAt != nil {
			pubDate = *first.PublishedAt
		}
	}

	authorName := defaultAuthorName
	if podcast.AuthorName != nil && *podcast.AuthorName != "" {
		authorName = *podcast.AuthorName
	}

	explicit := "false"
	if podcast.Explicit {
		explicit = "true"
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<rss version="2.0"` + "\n")
	b.WriteString(`  xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd"` + "\n")
	b.WriteString(`  xmlns:content="http://purl.org/rss/1.0/modules/content/"` + "\n")
	b.WriteString(`  xmlns:media="http://search.yahoo.com/mrss/">` + "\n")
	b.WriteString("  <channel>\n")
	fmt.Fprintf(&b, "    <title>%s</title>\n", EscapeXML(podcast.Title))
	fmt.Fprintf(&b, "    <description>%s</description>\n", EscapeXML(podcast.Description))
	fmt.Fprintf(&b, "    <language>%s</language>\n", podcast.Language)
	fmt.Fprintf(&b, "    <link>%s</link>\n", EscapeXML(channelLink))
	fmt.Fprintf(&b, "    <lastBuildDate>%s</lastBuildDate>\n", FormatRFC2822(lastBuildDate))
	fmt.Fprintf(&b, "    <pubDate>%s</pubDate>\n", FormatRFC2822(pubDate))
	fmt.Fprintf(&b, "    <itunes:author>%s</itunes:author>\n", EscapeXML(authorName))
	fmt.Fprintf(&b, "    <itunes:summary>%s</itunes:summary>\n", EscapeXML(podcast.Description))
	fmt.Fprintf(&b, "    <itunes:explicit>%s</itunes:explicit>\n", explicit)
	fmt.Fprintf(&b, "    <itunes:category text=\"%s\" />\n", EscapeXML(podcast.Category))

	if coverImageURL != nil && *coverImageURL != "" {
		fmt.Fprintf(&b, "    <itunes:image href=\"%s\" />\n", EscapeXML(*coverImageURL))
		b.WriteString("    <image>\n")
		fmt.Fprintf(&b, "      <url>%s</url>\n", EscapeXML(*coverImageURL))
		fmt.Fprintf(&b, "      <title>%s</title>\n", EscapeXML(podcast.Title))
		fmt.Fprintf(&b, "      <link>%s</link>\n", EscapeXML(channelLink))
		b.WriteString("    </image>\n")
	}

	if podcast.ContactEmail != nil && *podcast.ContactEmail != "" {
		b.WriteString("    <itunes:owner>\n")
		fmt.Fprintf(&b, "      <itunes:email>%s</itunes:email>\n", EscapeXML(*podcast.ContactEmail))
		b.WriteString("    </itunes:owner>\n")
	}

	for _, ep := range episodes {
		if ep.AudioPublicURL == nil || ep.AudioByteSize == nil {
			continue
		}

		description := "Episode details on PODDOCK"
		if ep.Description != nil && *ep.Description != "" {
			description = *ep.Description
		}

		// Enclosures go through the play redirect, never the raw asset URL;
		// that indirection is what makes play tracking possible.
		playURL := fmt.Sprintf("%s/play/%s", baseURL, ep.ID)

		contentType := "audio/mpeg"
		if ep.AudioContentType != nil {
			contentType = *ep.AudioContentType
		}

		b.WriteString("    <item>\n")
		fmt.Fprintf(&b, "      <title>%s</title>\n", EscapeXML(ep.Title))
		fmt.Fprintf(&b, "      <description>%s</description>\n", EscapeXML(description))
		if ep.PublishedAt != nil {
			fmt.Fprintf(&b, "      <pubDate>%s</pubDate>\n", FormatRFC2822(*ep.PublishedAt))
		}
		fmt.Fprintf(&b, "      <guid isPermaLink=\"false\">PODDOCK:episode:%s</guid>\n", ep.ID)
		fmt.Fprintf(&b, "      <enclosure url=\"%s\" length=\"%d\" type=\"%s\" />\n", EscapeXML(playURL), *ep.AudioByteSize, contentType)
		fmt.Fprintf(&b, "      <itunes:explicit>%s</itunes:explicit>\n", explicit)
		if ep.DurationSeconds != nil {
			fmt.Fprintf(&b, "      <itunes:duration>%s</itunes:duration>\n", FormatDuration(*ep.DurationSeconds))
		}
		b.WriteString("    </item>\n")
	}

	b.WriteString("  </channel>\n")
	b.WriteString("</rss>\n")

	return b.String(), lastBuildDate
}

// EscapeXML escapes text for inclusion in an XML document. The ampersand
// substitution must run first so entities introduced by the later
// replacements are not double-encoded.
func EscapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	s = strings.ReplaceAll(s, "'", "&#39;")
	return s
}

// FormatRFC2822 renders a time the way RSS pubDate wants it, e.g.
// "Sat, 24 Jan 2026 03:00:00 GMT".
func FormatRFC2822(t time.Time) string {
	return t.UTC().Format("Mon, 02 Jan 2006 15:04:05") + " GMT"
}

// FormatDuration renders integer seconds as H:MM:SS, or M:SS under an hour.
func FormatDuration(seconds int) string {
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// ETag derives the feed's entity tag from its lastBuildDate: the quoted
// base-36 epoch milliseconds. Identical build dates produce identical tags.
func ETag(lastBuildDate time.Time) string {
	return `"` + strconv.FormatInt(lastBuildDate.UnixMilli(), 36) + `"`
}
