package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"poddock/internal/db"
	"poddock/internal/feed"
)

// GetRSSFeed serves a podcast feed with conditional-GET support. Missing
// podcasts and denied private feeds are both a bare 404 so probing cannot
// tell the difference.
func (h *Handlers) GetRSSFeed(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	podcastID := vars["podcastId"]
	token := r.URL.Query().Get("token")

	podcast, err := db.GetPodcastByID(podcastID)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	allowed, err := feed.Authorize(podcast, token)
	if err != nil {
		log.Printf("Error authorizing feed access for podcast %s: %v", podcastID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !allowed {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	episodes, err := db.ListPublishedEpisodesWithAudio(podcastID)
	if err != nil {
		log.Printf("Error getting episodes for podcast %s: %v", podcastID, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var coverImageURL *string
	if podcast.CoverImageAssetID != nil {
		if asset, err := db.GetAssetByID(*podcast.CoverImageAssetID); err == nil {
			coverImageURL = &asset.PublicURL
		}
	}

	channelLink := h.baseURL + "/podcasts/" + podcast.ID
	xml, lastBuildDate := feed.GenerateRSS(podcast, episodes, coverImageURL, channelLink, h.baseURL)

	etag := feed.ETag(lastBuildDate)
	lastModified := lastBuildDate.UTC().Format(http.TimeFormat)

	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if ims := r.Header.Get("If-Modified-Since"); ims != "" {
		if t, err := http.ParseTime(ims); err == nil && !lastBuildDate.Truncate(time.Second).After(t) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Last-Modified", lastModified)
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.Write([]byte(xml))
}
