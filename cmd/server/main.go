package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/hibiken/asynq"
	"golang.org/x/time/rate"

	"poddock/internal/config"
	"poddock/internal/db"
	"poddock/internal/handlers"
	"poddock/internal/middleware"
	"poddock/internal/storage"
)

// CommitSHA is set at build time via ldflags
var CommitSHA = "unknown"

func main() {
	cfg := config.Load()

	db.InitDB()

	store, err := storage.NewClient(cfg)
	if err != nil {
		log.Fatalf("could not create storage client: %v", err)
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer asynqClient.Close()

	h := handlers.New(cfg.BaseURL, cfg.JWTSecret, store, asynqClient)

	// Public endpoints are rate limited per client IP; the admin API is
	// protected by auth instead.
	publicLimiter := middleware.NewRateLimiterMiddleware(rate.Limit(10), 30)

	r := mux.NewRouter()

	// Public surface.
	public := r.NewRoute().Subrouter()
	public.Use(publicLimiter.Middleware)
	public.HandleFunc("/rss/{podcastId}.xml", h.GetRSSFeed).Methods(http.MethodGet)
	public.HandleFunc("/play/{episodeId}", h.PlayRedirect).Methods(http.MethodGet)
	public.HandleFunc("/api/public/podcasts/{podcastId}", h.GetPublicPodcast).Methods(http.MethodGet)
	public.HandleFunc("/api/public/podcasts/{podcastId}/episodes", h.GetPublicEpisodes).Methods(http.MethodGet)

	r.HandleFunc("/api/auth/login", h.PostLogin).Methods(http.MethodPost)

	// Admin API.
	api := r.PathPrefix("/api").Subrouter()
	api.Use(middleware.AuthMiddleware)

	api.HandleFunc("/usage", h.GetUsage).Methods(http.MethodGet)

	api.HandleFunc("/podcasts", h.ListPodcasts).Methods(http.MethodGet)
	api.HandleFunc("/podcasts", h.CreatePodcast).Methods(http.MethodPost)
	api.HandleFunc("/podcasts/{podcastId}", h.GetPodcast).Methods(http.MethodGet)
	api.HandleFunc("/podcasts/{podcastId}", h.UpdatePodcast).Methods(http.MethodPatch)
	api.HandleFunc("/podcasts/{podcastId}", h.DeletePodcast).Methods(http.MethodDelete)
	api.HandleFunc("/podcasts/{podcastId}/feed-token/rotate", h.RotateFeedToken).Methods(http.MethodPost)
	api.HandleFunc("/podcasts/{podcastId}/rss/validate", h.ValidateFeed).Methods(http.MethodPost)

	api.HandleFunc("/podcasts/{podcastId}/episodes", h.ListEpisodes).Methods(http.MethodGet)
	api.HandleFunc("/podcasts/{podcastId}/episodes", h.CreateEpisode).Methods(http.MethodPost)
	api.HandleFunc("/podcasts/{podcastId}/episodes/{episodeId}", h.GetEpisode).Methods(http.MethodGet)
	api.HandleFunc("/podcasts/{podcastId}/episodes/{episodeId}", h.UpdateEpisode).Methods(http.MethodPatch)
	api.HandleFunc("/podcasts/{podcastId}/episodes/{episodeId}", h.DeleteEpisode).Methods(http.MethodDelete)
	api.HandleFunc("/podcasts/{podcastId}/episodes/{episodeId}/audio", h.AttachEpisodeAudio).Methods(http.MethodPut)

	api.HandleFunc("/podcasts/{podcastId}/distribution-statuses", h.ListDistribution).Methods(http.MethodGet)
	api.HandleFunc("/podcasts/{podcastId}/distribution-statuses/{targetId}", h.UpdateDistribution).Methods(http.MethodPatch)

	api.HandleFunc("/podcasts/{podcastId}/analytics/overview", h.GetAnalyticsOverview).Methods(http.MethodGet)
	api.HandleFunc("/podcasts/{podcastId}/analytics/episodes", h.GetAnalyticsEpisodes).Methods(http.MethodGet)
	api.HandleFunc("/podcasts/{podcastId}/analytics/countries", h.GetAnalyticsCountries).Methods(http.MethodGet)
	api.HandleFunc("/podcasts/{podcastId}/analytics/daily", h.GetAnalyticsDaily).Methods(http.MethodGet)
	api.HandleFunc("/podcasts/{podcastId}/analytics/platforms", h.GetAnalyticsPlatforms).Methods(http.MethodGet)

	api.HandleFunc("/assets/upload-url", h.CreateUpload).Methods(http.MethodPost)
	api.HandleFunc("/assets/{assetId}/upload", h.UploadAsset).Methods(http.MethodPut)
	api.HandleFunc("/assets/{assetId}/complete", h.CompleteUpload).Methods(http.MethodPost)
	api.HandleFunc("/assets/{assetId}", h.DeleteAsset).Methods(http.MethodDelete)

	log.Printf("Starting server on :%s (commit: %s)", cfg.Port, CommitSHA)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal(err)
	}
}
