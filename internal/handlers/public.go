package handlers

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"poddock/internal/db"
	"poddock/internal/models"
)

// publicPodcast resolves a podcast for the unauthenticated surface. Private
// podcasts read as not found.
func publicPodcast(r *http.Request) (*models.Podcast, error) {
	podcast, err := db.GetPodcastByID(mux.Vars(r)["podcastId"])
	if err != nil || podcast.Visibility != db.VisibilityPublic {
		return nil, errNotFound("Podcast not found")
	}
	return podcast, nil
}

func (h *Handlers) publicEpisodeItems(episodes []db.PublishedEpisode) []map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(episodes))
	for _, ep := range episodes {
		if ep.AudioPublicURL == nil {
			continue
		}
		items = append(items, map[string]interface{}{
			"id":               ep.ID,
			"title":            ep.Title,
			"description":      ep.Description,
			"published_at":     ep.PublishedAt,
			"duration_seconds": ep.DurationSeconds,
			"audio_url":        fmt.Sprintf("%s/play/%s", h.baseURL, ep.ID),
		})
	}
	return items
}

// GetPublicPodcast serves the show page data.
func (h *Handlers) GetPublicPodcast(w http.ResponseWriter, r *http.Request) {
	podcast, err := publicPodcast(r)
	if err != nil {
		writeError(w, err)
		return
	}

	episodes, err := db.ListPublishedEpisodesWithAudio(podcast.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	items := h.publicEpisodeItems(episodes)

	var coverImageURL *string
	if podcast.CoverImageAssetID != nil {
		if asset, err := db.GetAssetByID(*podcast.CoverImageAssetID); err == nil {
			coverImageURL = &asset.PublicURL
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":              podcast.ID,
		"title":           podcast.Title,
		"description":     podcast.Description,
		"author_name":     podcast.AuthorName,
		"category":        podcast.Category,
		"language":        podcast.Language,
		"cover_image_url": coverImageURL,
		"theme_color":     podcast.ThemeColor,
		"theme_mode":      podcast.ThemeMode,
		"rss_url":         fmt.Sprintf("%s/rss/%s.xml", h.baseURL, podcast.ID),
		"episodes":        items,
	})
}

// GetPublicEpisodes serves just the published episode list for a public show.
func (h *Handlers) GetPublicEpisodes(w http.ResponseWriter, r *http.Request) {
	podcast, err := publicPodcast(r)
	if err != nil {
		writeError(w, err)
		return
	}

	episodes, err := db.ListPublishedEpisodesWithAudio(podcast.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"items": h.publicEpisodeItems(episodes),
	})
}
