package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"poddock/internal/db"
)

type feedCheck struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateFeed runs the pre-submission checklist the podcast directories
// enforce. Errors block submission; warnings are advisory.
func (h *Handlers) ValidateFeed(w http.ResponseWriter, r *http.Request) {
	podcast, err := db.GetPodcastByID(mux.Vars(r)["podcastId"])
	if err != nil {
		writeError(w, errNotFound("Podcast not found"))
		return
	}

	errs := []feedCheck{}
	warnings := []feedCheck{}

	if podcast.Title == "" {
		errs = append(errs, feedCheck{Field: "title", Message: "Title is required"})
	}
	if podcast.Description == "" {
		errs = append(errs, feedCheck{Field: "description", Message: "Description is required"})
	}
	if podcast.Category == "" {
		errs = append(errs, feedCheck{Field: "category", Message: "Category is required"})
	}
	if podcast.CoverImageAssetID == nil {
		errs = append(errs, feedCheck{Field: "cover_image", Message: "Cover art is required by Apple Podcasts and Spotify"})
	} else if _, err := db.GetAssetByID(*podcast.CoverImageAssetID); err != nil {
		errs = append(errs, feedCheck{Field: "cover_image", Message: "Cover art asset is missing"})
	}
	if podcast.ContactEmail == nil || *podcast.ContactEmail == "" {
		errs = append(errs, feedCheck{Field: "contact_email", Message: "Apple Podcasts requires an owner email"})
	}

	counts, err := db.CountEpisodesByStatus(podcast.ID)
	if err != nil {
		writeError(w, err)
		return
	}
	if counts[db.StatusPublished] == 0 {
		errs = append(errs, feedCheck{Field: "episodes", Message: "At least one published episode is required"})
	}

	if podcast.AuthorName == nil || *podcast.AuthorName == "" {
		warnings = append(warnings, feedCheck{Field: "author_name", Message: "Author name is empty; directories will show a default"})
	}
	if len(podcast.Description) > 0 && len(podcast.Description) < 20 {
		warnings = append(warnings, feedCheck{Field: "description", Message: "Description is very short; directories favor fuller summaries"})
	}
	if podcast.Visibility == db.VisibilityPrivate {
		warnings = append(warnings, feedCheck{Field: "visibility", Message: "Private feeds cannot be submitted to public directories"})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"valid":    len(errs) == 0,
		"errors":   errs,
		"warnings": warnings,
	})
}
