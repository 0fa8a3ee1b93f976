package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"poddock/internal/db"
	"poddock/internal/models"
)

func validDistributionStatus(s string) bool {
	switch s {
	case db.DistributionNotSubmitted, db.DistributionSubmitted, db.DistributionLive, db.DistributionNeedsAttention:
		return true
	}
	return false
}

// ListDistribution returns the podcast's status for every known directory.
// Targets added after the podcast was created are backfilled as not_submitted
// on read.
func (h *Handlers) ListDistribution(w http.ResponseWriter, r *http.Request) {
	podcast, err := db.GetPodcastByID(mux.Vars(r)["podcastId"])
	if err != nil {
		writeError(w, errNotFound("Podcast not found"))
		return
	}

	targets, err := db.ListDistributionTargets()
	if err != nil {
		writeError(w, err)
		return
	}
	statuses, err := db.ListDistributionStatuses(podcast.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	covered := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		covered[s.TargetID] = true
	}

	now := h.now().UTC()
	backfilled := false
	for _, target := range targets {
		if covered[target.ID] {
			continue
		}
		if err := db.CreateDistributionStatus(&models.DistributionStatus{
			ID:        uuid.NewString(),
			PodcastID: podcast.ID,
			TargetID:  target.ID,
			Status:    db.DistributionNotSubmitted,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			writeError(w, err)
			return
		}
		backfilled = true
	}
	if backfilled {
		statuses, err = db.ListDistributionStatuses(podcast.ID)
		if err != nil {
			writeError(w, err)
			return
		}
	}

	items := make([]map[string]interface{}, 0, len(statuses))
	for _, s := range statuses {
		items = append(items, map[string]interface{}{
			"target_id":       s.TargetID,
			"target_name":     s.TargetName,
			"submit_url":      s.TargetSubmitURL,
			"status":          s.Status,
			"note":            s.Note,
			"last_checked_at": s.LastCheckedAt,
			"updated_at":      s.UpdatedAt,
		})
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// UpdateDistribution records a manual status change for one directory.
func (h *Handlers) UpdateDistribution(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	podcast, err := db.GetPodcastByID(vars["podcastId"])
	if err != nil {
		writeError(w, errNotFound("Podcast not found"))
		return
	}
	targetID := vars["targetId"]

	var req struct {
		Status string  `json:"status"`
		Note   *string `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errValidation("Invalid request body"))
		return
	}
	if !validDistributionStatus(req.Status) {
		writeError(w, errValidation("Invalid request", ErrorDetail{
			Field:  "status",
			Reason: "must be one of: not_submitted, submitted, live, needs_attention",
		}))
		return
	}

	if _, err := db.GetDistributionStatus(podcast.ID, targetID); err != nil {
		writeError(w, errNotFound("Distribution target not found"))
		return
	}

	now := h.now().UTC()
	lastChecked := now
	if err := db.UpdateDistributionStatus(podcast.ID, targetID, req.Status, req.Note, &lastChecked, now); err != nil {
		writeError(w, err)
		return
	}

	updated, err := db.GetDistributionStatus(podcast.ID, targetID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"target_id":       updated.TargetID,
		"status":          updated.Status,
		"note":            updated.Note,
		"last_checked_at": updated.LastCheckedAt,
		"updated_at":      updated.UpdatedAt,
	})
}
