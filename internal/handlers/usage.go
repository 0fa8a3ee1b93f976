package handlers

import (
	"net/http"

	"poddock/internal/db"
	"poddock/internal/middleware"
	"poddock/internal/models"
	"poddock/internal/plan"
)

// GetUsage reports the caller's consumption against their plan: podcast slots
// and the current month's plays across all shows.
func (h *Handlers) GetUsage(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(middleware.UserContextKey).(*models.AdminUser)

	podcastCount, err := db.CountPodcastsByOwner(user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	yearMonth := h.now().UTC().Format("2006-01")
	monthlyPlays, err := db.CountMonthlyPlaysByOwner(user.ID, yearMonth)
	if err != nil {
		writeError(w, err)
		return
	}

	limits := plan.GetLimits(user.Plan)
	playCheck := plan.CheckMonthlyPlayLimit(monthlyPlays, user.Plan)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"plan": user.Plan,
		"podcasts": map[string]int{
			"current": podcastCount,
			"limit":   limits.MaxPodcasts,
		},
		"monthly_plays": map[string]interface{}{
			"year_month": yearMonth,
			"current":    monthlyPlays,
			"limit":      limits.MaxMonthlyPlays,
			"exceeded":   !playCheck.Allowed,
		},
	})
}
