package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"poddock/internal/db"
	"poddock/internal/middleware"
	"poddock/internal/models"
)

const maxUserAgentLength = 500

// hashIP reduces a client address to a short bucket tag. This is a rolling
// hash, not a cryptographic one: good enough for analytics de-duplication,
// not an irreversibility guarantee.
func hashIP(ip string) string {
	var h int32
	for _, ch := range ip {
		h = (h << 5) - h + int32(ch)
	}
	return strconv.FormatInt(int64(h), 36)
}

// PlayRedirect logs a playback event and redirects to the audio asset.
// Playback is the primary contract: recorder failures are logged and
// discarded, never allowed to break the redirect.
func (h *Handlers) PlayRedirect(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	episodeID := vars["episodeId"]

	episode, err := db.GetEpisodeByID(episodeID)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if episode.Status != db.StatusPublished || episode.AudioAssetID == nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	asset, err := db.GetAssetByID(*episode.AudioAssetID)
	if err != nil {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	h.recordPlay(r, episode)

	// 302, not 301: the episode-to-asset mapping can change.
	http.Redirect(w, r, asset.PublicURL, http.StatusFound)
}

func (h *Handlers) recordPlay(r *http.Request, episode *models.Episode) {
	now := h.now().UTC()

	var ipHash *string
	if ip := middleware.ClientIP(r); ip != "" {
		hashed := hashIP(ip)
		ipHash = &hashed
	}

	var userAgent *string
	if ua := r.Header.Get("User-Agent"); ua != "" {
		if len(ua) > maxUserAgentLength {
			ua = ua[:maxUserAgentLength]
		}
		userAgent = &ua
	}

	var country *string
	if c := r.Header.Get("CF-IPCountry"); c != "" {
		country = &c
	}

	if err := db.InsertPlayLog(&models.PlayLog{
		ID:        uuid.NewString(),
		EpisodeID: episode.ID,
		PodcastID: episode.PodcastID,
		IPHash:    ipHash,
		UserAgent: userAgent,
		Country:   country,
		PlayedAt:  now,
	}); err != nil {
		log.Printf("Error inserting play log for episode %s: %v", episode.ID, err)
	}

	if err := db.IncrementMonthlyPlays(uuid.NewString(), episode.PodcastID, now.Format("2006-01"), now); err != nil {
		log.Printf("Error updating monthly plays for podcast %s: %v", episode.PodcastID, err)
	}
}
