package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"poddock/internal/analytics"
	"poddock/internal/db"
	"poddock/internal/middleware"
	"poddock/internal/models"
	"poddock/internal/plan"
)

// parseBoundedInt validates an integer query parameter against explicit
// bounds. Out-of-range values are a validation error, never clamped.
func parseBoundedInt(r *http.Request, name string, def, min, max int) (int, *AppError) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errValidation("Invalid request", ErrorDetail{Field: name, Reason: "must be an integer"})
	}
	if value < min || value > max {
		return 0, errValidation("Invalid request", ErrorDetail{
			Field:  name,
			Reason: fmt.Sprintf("must be between %d and %d", min, max),
		})
	}
	return value, nil
}

func parsePeriod(r *http.Request) (analytics.Period, *AppError) {
	raw := r.URL.Query().Get("period")
	if raw == "" {
		return analytics.Period30d, nil
	}
	period, ok := analytics.ParsePeriod(raw)
	if !ok {
		return "", errValidation("Invalid request", ErrorDetail{Field: "period", Reason: "must be one of: 7d, 30d, 90d, all"})
	}
	return period, nil
}

// analyticsPodcast gates the analytics routes: paid plan first (independent
// of data availability), then podcast existence.
func (h *Handlers) analyticsPodcast(r *http.Request) (*models.Podcast, *AppError) {
	user := r.Context().Value(middleware.UserContextKey).(*models.AdminUser)
	if !plan.CanAccessAnalytics(user.Plan) {
		return nil, NewAppError(http.StatusForbidden, "plan_required", "Analytics requires Starter plan or higher")
	}

	podcastID := mux.Vars(r)["podcastId"]
	podcast, err := db.GetPodcastByID(podcastID)
	if err != nil {
		return nil, errNotFound("Podcast not found")
	}
	return podcast, nil
}

func (h *Handlers) GetAnalyticsOverview(w http.ResponseWriter, r *http.Request) {
	podcast, appErr := h.analyticsPodcast(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	months, appErr := parseBoundedInt(r, "months", 6, 1, 12)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	overview, err := analytics.BuildOverview(podcast.ID, months, h.now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

func (h *Handlers) GetAnalyticsEpisodes(w http.ResponseWriter, r *http.Request) {
	podcast, appErr := h.analyticsPodcast(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	period, appErr := parsePeriod(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	limit, appErr := parseBoundedInt(r, "limit", 10, 1, 50)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	report, err := analytics.BuildEpisodeReport(podcast.ID, period, limit, h.now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handlers) GetAnalyticsCountries(w http.ResponseWriter, r *http.Request) {
	podcast, appErr := h.analyticsPodcast(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	period, appErr := parsePeriod(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	limit, appErr := parseBoundedInt(r, "limit", 10, 1, 50)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	report, err := analytics.BuildCountryReport(podcast.ID, period, limit, h.now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handlers) GetAnalyticsDaily(w http.ResponseWriter, r *http.Request) {
	podcast, appErr := h.analyticsPodcast(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	days, appErr := parseBoundedInt(r, "days", 30, 7, 90)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	report, err := analytics.BuildDailyReport(podcast.ID, days, h.now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (h *Handlers) GetAnalyticsPlatforms(w http.ResponseWriter, r *http.Request) {
	podcast, appErr := h.analyticsPodcast(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	period, appErr := parsePeriod(r)
	if appErr != nil {
		writeError(w, appErr)
		return
	}
	limit, appErr := parseBoundedInt(r, "limit", 10, 1, 20)
	if appErr != nil {
		writeError(w, appErr)
		return
	}

	report, err := analytics.BuildPlatformReport(podcast.ID, period, limit, h.now())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}
