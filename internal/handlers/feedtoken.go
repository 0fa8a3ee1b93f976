package handlers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"poddock/internal/db"
)

// RotateFeedToken replaces the podcast's private feed token in place. The old
// token stops working the moment this returns.
func (h *Handlers) RotateFeedToken(w http.ResponseWriter, r *http.Request) {
	podcast, err := db.GetPodcastByID(mux.Vars(r)["podcastId"])
	if err != nil {
		writeError(w, errNotFound("Podcast not found"))
		return
	}

	now := h.now().UTC()
	newToken := uuid.NewString()
	if err := db.RotateFeedToken(podcast.ID, newToken, now); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"private_rss_url": fmt.Sprintf("%s/rss/%s.xml?token=%s", h.baseURL, podcast.ID, newToken),
		"rotated_at":      now,
	})
}
