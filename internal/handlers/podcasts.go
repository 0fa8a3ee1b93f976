package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"poddock/internal/db"
	"poddock/internal/middleware"
	"poddock/internal/models"
	"poddock/internal/plan"
)

const (
	defaultThemeColor = "#6366f1"
	defaultThemeMode  = "light"
)

type podcastRequest struct {
	Title             *string `json:"title"`
	Description       *string `json:"description"`
	Language          *string `json:"language"`
	Category          *string `json:"category"`
	AuthorName        *string `json:"author_name"`
	ContactEmail      *string `json:"contact_email"`
	Explicit          *bool   `json:"explicit"`
	PodcastType       *string `json:"podcast_type"`
	Visibility        *string `json:"visibility"`
	CoverImageAssetID *string `json:"cover_image_asset_id"`
	ThemeColor        *string `json:"theme_color"`
	ThemeMode         *string `json:"theme_mode"`
}

func validatePodcastEnums(req *podcastRequest) *AppError {
	if req.Visibility != nil && *req.Visibility != db.VisibilityPublic && *req.Visibility != db.VisibilityPrivate {
		return errValidation("Invalid request", ErrorDetail{Field: "visibility", Reason: "must be public or private"})
	}
	if req.PodcastType != nil && *req.PodcastType != "episodic" && *req.PodcastType != "serial" {
		return errValidation("Invalid request", ErrorDetail{Field: "podcast_type", Reason: "must be episodic or serial"})
	}
	if req.ThemeMode != nil && *req.ThemeMode != "light" && *req.ThemeMode != "dark" {
		return errValidation("Invalid request", ErrorDetail{Field: "theme_mode", Reason: "must be light or dark"})
	}
	return nil
}

func (h *Handlers) podcastJSON(p *models.Podcast) map[string]interface{} {
	return map[string]interface{}{
		"id":                   p.ID,
		"title":                p.Title,
		"description":          p.Description,
		"language":             p.Language,
		"category":             p.Category,
		"author_name":          p.AuthorName,
		"contact_email":        p.ContactEmail,
		"explicit":             p.Explicit,
		"podcast_type":         p.PodcastType,
		"visibility":           p.Visibility,
		"cover_image_asset_id": p.CoverImageAssetID,
		"theme_color":          p.ThemeColor,
		"theme_mode":           p.ThemeMode,
		"rss_url":              fmt.Sprintf("%s/rss/%s.xml", h.baseURL, p.ID),
		"created_at":           p.CreatedAt,
		"updated_at":           p.UpdatedAt,
	}
}

func (h *Handlers) ListPodcasts(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(middleware.UserContextKey).(*models.AdminUser)

	podcasts, err := db.ListPodcastsByOwner(user.ID, 50)
	if err != nil {
		writeError(w, err)
		return
	}

	items := make([]map[string]interface{}, 0, len(podcasts))
	for _, p := range podcasts {
		counts, err := db.CountEpisodesByStatus(p.ID)
		if err != nil {
			writeError(w, err)
			return
		}

		var coverImageURL *string
		if p.CoverImageAssetID != nil {
			if asset, err := db.GetAssetByID(*p.CoverImageAssetID); err == nil {
				coverImageURL = &asset.PublicURL
			}
		}

		items = append(items, map[string]interface{}{
			"id":              p.ID,
			"title":           p.Title,
			"visibility":      p.Visibility,
			"cover_image_url": coverImageURL,
			"episode_counts": map[string]int{
				"draft":     counts[db.StatusDraft],
				"scheduled": counts[db.StatusScheduled],
				"published": counts[db.StatusPublished],
			},
			"updated_at": p.UpdatedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"items": items})
}

// CreatePodcast creates the show together with its private feed token: every
// podcast is born with a token, whatever its visibility.
func (h *Handlers) CreatePodcast(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(middleware.UserContextKey).(*models.AdminUser)

	var req podcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errValidation("Invalid request body"))
		return
	}

	var details []ErrorDetail
	if req.Title == nil || *req.Title == "" {
		details = append(details, ErrorDetail{Field: "title", Reason: "required"})
	}
	if req.Description == nil || *req.Description == "" {
		details = append(details, ErrorDetail{Field: "description", Reason: "required"})
	}
	if req.Category == nil || *req.Category == "" {
		details = append(details, ErrorDetail{Field: "category", Reason: "required"})
	}
	if len(details) > 0 {
		writeError(w, errValidation("Invalid request", details...))
		return
	}
	if appErr := validatePodcastEnums(&req); appErr != nil {
		writeError(w, appErr)
		return
	}

	count, err := db.CountPodcastsByOwner(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if check := plan.CheckPodcastLimit(count, user.Plan); !check.Allowed {
		writeError(w, NewAppError(http.StatusForbidden, "plan_limit_exceeded", check.Reason,
			ErrorDetail{Field: "podcasts", Reason: "limit_exceeded", Current: &check.Current, Limit: &check.Limit}))
		return
	}

	now := h.now().UTC()
	podcastID := uuid.NewString()

	token, err := db.CreateFeedToken(&models.FeedToken{
		ID:        uuid.NewString(),
		PodcastID: podcastID,
		Token:     uuid.NewString(),
		CreatedAt: now,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	podcast := &models.Podcast{
		ID:                 podcastID,
		OwnerID:            user.ID,
		Title:              *req.Title,
		Description:        *req.Description,
		Language:           "en",
		Category:           *req.Category,
		AuthorName:         req.AuthorName,
		ContactEmail:       req.ContactEmail,
		PodcastType:        "episodic",
		Visibility:         db.VisibilityPrivate,
		CoverImageAssetID:  req.CoverImageAssetID,
		PrivateFeedTokenID: &token.ID,
		ThemeColor:         defaultThemeColor,
		ThemeMode:          defaultThemeMode,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if req.Language != nil && *req.Language != "" {
		podcast.Language = *req.Language
	}
	if req.Explicit != nil {
		podcast.Explicit = *req.Explicit
	}
	if req.PodcastType != nil {
		podcast.PodcastType = *req.PodcastType
	}
	if req.Visibility != nil {
		podcast.Visibility = *req.Visibility
	}
	if req.ThemeColor != nil && *req.ThemeColor != "" {
		podcast.ThemeColor = *req.ThemeColor
	}
	if req.ThemeMode != nil && *req.ThemeMode != "" {
		podcast.ThemeMode = *req.ThemeMode
	}

	created, err := db.CreatePodcast(podcast)
	if err != nil {
		writeError(w, err)
		return
	}

	// Seed a not-submitted status row for every known distribution target.
	targets, err := db.ListDistributionTargets()
	if err == nil {
		for _, target := range targets {
			_ = db.CreateDistributionStatus(&models.DistributionStatus{
				ID:        uuid.NewString(),
				PodcastID: created.ID,
				TargetID:  target.ID,
				Status:    db.DistributionNotSubmitted,
				CreatedAt: now,
				UpdatedAt: now,
			})
		}
	}

	body := h.podcastJSON(created)
	body["private_rss_url"] = fmt.Sprintf("%s/rss/%s.xml?token=%s", h.baseURL, created.ID, token.Token)
	writeJSON(w, http.StatusCreated, body)
}

func (h *Handlers) GetPodcast(w http.ResponseWriter, r *http.Request) {
	podcast, err := db.GetPodcastByID(mux.Vars(r)["podcastId"])
	if err != nil {
		writeError(w, errNotFound("Podcast not found"))
		return
	}
	writeJSON(w, http.StatusOK, h.podcastJSON(podcast))
}

func (h *Handlers) UpdatePodcast(w http.ResponseWriter, r *http.Request) {
	podcast, err := db.GetPodcastByID(mux.Vars(r)["podcastId"])
	if err != nil {
		writeError(w, errNotFound("Podcast not found"))
		return
	}

	var req podcastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errValidation("Invalid request body"))
		return
	}
	if appErr := validatePodcastEnums(&req); appErr != nil {
		writeError(w, appErr)
		return
	}

	if req.Title != nil {
		podcast.Title = *req.Title
	}
	if req.Description != nil {
		podcast.Description = *req.Description
	}
	if req.Language != nil {
		podcast.Language = *req.Language
	}
	if req.Category != nil {
		podcast.Category = *req.Category
	}
	if req.AuthorName != nil {
		podcast.AuthorName = req.AuthorName
	}
	if req.ContactEmail != nil {
		podcast.ContactEmail = req.ContactEmail
	}
	if req.Explicit != nil {
		podcast.Explicit = *req.Explicit
	}
	if req.PodcastType != nil {
		podcast.PodcastType = *req.PodcastType
	}
	if req.Visibility != nil {
		podcast.Visibility = *req.Visibility
	}
	if req.CoverImageAssetID != nil {
		podcast.CoverImageAssetID = req.CoverImageAssetID
	}
	if req.ThemeColor != nil {
		podcast.ThemeColor = *req.ThemeColor
	}
	if req.ThemeMode != nil {
		podcast.ThemeMode = *req.ThemeMode
	}

	updated, err := db.UpdatePodcast(podcast, h.now().UTC())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.podcastJSON(updated))
}

func (h *Handlers) DeletePodcast(w http.ResponseWriter, r *http.Request) {
	podcastID := mux.Vars(r)["podcastId"]
	if _, err := db.GetPodcastByID(podcastID); err != nil {
		writeError(w, errNotFound("Podcast not found"))
		return
	}
	if err := db.DeletePodcast(podcastID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
