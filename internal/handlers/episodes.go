package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"poddock/internal/db"
	"poddock/internal/middleware"
	"poddock/internal/models"
	"poddock/internal/plan"
	"poddock/pkg/tasks"
)

type episodeRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	PublishedAt *string `json:"published_at"`
}

func episodeJSON(e *models.Episode) map[string]interface{} {
	return map[string]interface{}{
		"id":               e.ID,
		"podcast_id":       e.PodcastID,
		"title":            e.Title,
		"description":      e.Description,
		"status":           e.Status,
		"published_at":     e.PublishedAt,
		"audio_asset_id":   e.AudioAssetID,
		"duration_seconds": e.DurationSeconds,
		"created_at":       e.CreatedAt,
		"updated_at":       e.UpdatedAt,
	}
}

func validStatus(s string) bool {
	return s == db.StatusDraft || s == db.StatusScheduled || s == db.StatusPublished
}

// checkPublishConditions collects everything still blocking a publish or a
// schedule, so the caller sees the complete list in one response.
func (h *Handlers) checkPublishConditions(e *models.Episode) []ErrorDetail {
	var details []ErrorDetail
	if e.AudioAssetID == nil {
		details = append(details, ErrorDetail{Field: "audio_asset_id", Reason: "required"})
	}
	if e.PublishedAt == nil {
		details = append(details, ErrorDetail{Field: "published_at", Reason: "required"})
	} else if e.Status == db.StatusScheduled && !e.PublishedAt.After(h.now()) {
		details = append(details, ErrorDetail{Field: "published_at", Reason: "must be in the future"})
	}
	return details
}

func (h *Handlers) ListEpisodes(w http.ResponseWriter, r *http.Request) {
	podcastID := mux.Vars(r)["podcastId"]
	if _, err := db.GetPodcastByID(podcastID); err != nil {
		writeError(w, errNotFound("Podcast not found"))
		return
	}

	status := r.URL.Query().Get("status")
	if status != "" && !validStatus(status) {
		writeError(w, errValidation("Invalid request",
			ErrorDetail{Field: "status", Reason: "must be one of: draft, scheduled, published"}))
		return
	}

	episodes, err := db.ListEpisodes(podcastID, status, 200)
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]map[string]interface{}, 0, len(episodes))
	for i := range episodes {
		items = append(items, episodeJSON(&episodes[i]))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

func (h *Handlers) CreateEpisode(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(middleware.UserContextKey).(*models.AdminUser)
	podcastID := mux.Vars(r)["podcastId"]
	if _, err := db.GetPodcastByID(podcastID); err != nil {
		writeError(w, errNotFound("Podcast not found"))
		return
	}

	var req episodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errValidation("Invalid request body"))
		return
	}
	if req.Title == nil || *req.Title == "" {
		writeError(w, errValidation("Invalid request", ErrorDetail{Field: "title", Reason: "required"}))
		return
	}

	count, err := db.CountEpisodes(podcastID)
	if err != nil {
		writeError(w, err)
		return
	}
	if check := plan.CheckEpisodeLimit(count, user.Plan); !check.Allowed {
		writeError(w, NewAppError(http.StatusForbidden, "plan_limit_exceeded", check.Reason,
			ErrorDetail{Field: "episodes", Reason: "limit_exceeded", Current: &check.Current, Limit: &check.Limit}))
		return
	}

	now := h.now().UTC()
	created, err := db.CreateEpisode(&models.Episode{
		ID:          uuid.NewString(),
		PodcastID:   podcastID,
		Title:       *req.Title,
		Description: req.Description,
		Status:      db.StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, episodeJSON(created))
}

func (h *Handlers) GetEpisode(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	episode, err := db.GetEpisodeByPodcast(vars["podcastId"], vars["episodeId"])
	if err != nil {
		writeError(w, errNotFound("Episode not found"))
		return
	}
	writeJSON(w, http.StatusOK, episodeJSON(episode))
}

// UpdateEpisode applies metadata edits and status transitions. Moving into
// published or scheduled is refused with the full list of unmet conditions.
func (h *Handlers) UpdateEpisode(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	episode, err := db.GetEpisodeByPodcast(vars["podcastId"], vars["episodeId"])
	if err != nil {
		writeError(w, errNotFound("Episode not found"))
		return
	}

	var req episodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errValidation("Invalid request body"))
		return
	}

	if req.Status != nil && !validStatus(*req.Status) {
		writeError(w, errValidation("Invalid request",
			ErrorDetail{Field: "status", Reason: "must be one of: draft, scheduled, published"}))
		return
	}

	if req.Title != nil {
		episode.Title = *req.Title
	}
	if req.Description != nil {
		episode.Description = req.Description
	}
	if req.PublishedAt != nil {
		if *req.PublishedAt == "" {
			episode.PublishedAt = nil
		} else {
			t, err := parseRFC3339(*req.PublishedAt)
			if err != nil {
				writeError(w, errValidation("Invalid request",
					ErrorDetail{Field: "published_at", Reason: "must be an RFC 3339 timestamp"}))
				return
			}
			episode.PublishedAt = &t
		}
	}

	if req.Status != nil {
		episode.Status = *req.Status
		if episode.Status == db.StatusPublished && episode.PublishedAt == nil {
			now := h.now().UTC()
			episode.PublishedAt = &now
		}
		if episode.Status != db.StatusDraft {
			if details := h.checkPublishConditions(episode); len(details) > 0 {
				writeError(w, NewAppError(http.StatusUnprocessableEntity, "publish_conditions_not_met",
					"Episode cannot be published yet", details...))
				return
			}
		}
	}

	updated, err := db.UpdateEpisode(episode, h.now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}

	// A freshly scheduled episode also gets a sweep task on the queue, so it
	// goes out close to time even between scheduler ticks.
	if req.Status != nil && updated.Status == db.StatusScheduled && h.asynqClient != nil {
		if task, err := tasks.NewPublishDueEpisodesTask(); err == nil {
			if _, err := h.asynqClient.Enqueue(task); err != nil {
				log.Printf("Error enqueuing publish sweep for episode %s: %v", updated.ID, err)
			}
		}
	}

	writeJSON(w, http.StatusOK, episodeJSON(updated))
}

// AttachEpisodeAudio links an uploaded audio asset to the episode. Duration is
// checked against the owner's plan here, at attach time, not at upload time.
func (h *Handlers) AttachEpisodeAudio(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(middleware.UserContextKey).(*models.AdminUser)
	vars := mux.Vars(r)
	episode, err := db.GetEpisodeByPodcast(vars["podcastId"], vars["episodeId"])
	if err != nil {
		writeError(w, errNotFound("Episode not found"))
		return
	}

	var req struct {
		AudioAssetID    string `json:"audio_asset_id"`
		DurationSeconds *int   `json:"duration_seconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errValidation("Invalid request body"))
		return
	}
	if req.AudioAssetID == "" {
		writeError(w, errValidation("Invalid request", ErrorDetail{Field: "audio_asset_id", Reason: "required"}))
		return
	}

	asset, err := db.GetAssetByID(req.AudioAssetID)
	if err != nil {
		writeError(w, errValidation("Invalid request", ErrorDetail{Field: "audio_asset_id", Reason: "unknown asset"}))
		return
	}
	if asset.Type != db.AssetTypeAudio {
		writeError(w, errValidation("Invalid request", ErrorDetail{Field: "audio_asset_id", Reason: "asset is not audio"}))
		return
	}

	if req.DurationSeconds != nil {
		if *req.DurationSeconds < 0 {
			writeError(w, errValidation("Invalid request", ErrorDetail{Field: "duration_seconds", Reason: "must be non-negative"}))
			return
		}
		if check := plan.CheckEpisodeDuration(*req.DurationSeconds, user.Plan); !check.Allowed {
			writeError(w, NewAppError(http.StatusForbidden, "plan_limit_exceeded", check.Reason,
				ErrorDetail{Field: "duration_seconds", Reason: "limit_exceeded", Current: &check.Current, Limit: &check.Limit}))
			return
		}
	}

	if err := db.AttachEpisodeAudio(episode.ID, asset.ID, req.DurationSeconds, h.now().UTC()); err != nil {
		writeError(w, err)
		return
	}

	updated, err := db.GetEpisodeByID(episode.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, episodeJSON(updated))
}

func (h *Handlers) DeleteEpisode(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	episode, err := db.GetEpisodeByPodcast(vars["podcastId"], vars["episodeId"])
	if err != nil {
		writeError(w, errNotFound("Episode not found"))
		return
	}
	if err := db.DeleteEpisode(episode.ID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
