package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/recgames/board-game-server/internal/api/middleware"
	"github.com/recgames/board-game-server/internal/config"
	"github.com/recgames/board-game-server/internal/repository"
	"github.com/recgames/board-game-server/internal/service"
	"github.com/rs/zerolog"
)

func NewRouter(services *service.Services, repos *repository.Repositories, cfg *config.Config, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID(logger))
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Handle("/metrics", promhttp.Handler())

	gamePaginator := &Paginator{PageSize: cfg.PageSize, MaxPageSize: cfg.MaxPageSize}
	recommendPaginator := &Paginator{
		PageSize:    cfg.PageSize,
		MaxPageSize: cfg.MaxPageSize,
		Sticky: []StickyParam{
			{Key: "user"},
			{Key: "like", Numeric: true},
		},
	}
	rankingPaginator := &Paginator{PageSize: cfg.RankingPageSize, MaxPageSize: cfg.RankingMaxPageSize}

	// Initialize handlers
	gameHandler := NewGameHandler(repos.Game, gamePaginator)
	recommendHandler := NewRecommendHandler(services.Recommend, repos.Game, recommendPaginator)
	statsHandler := NewStatsHandler(services.Stats, services.Meta)
	rankingHandler := NewRankingHandler(services.Ranking, rankingPaginator)
	userHandler := NewUserHandler(services.User)
	collectionHandler := NewCollectionHandler(repos.Collection)
	metaHandler := NewMetaHandler(services.Meta)
	entityHandler := NewEntityHandler(repos.Entity, gamePaginator)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/games", func(r chi.Router) {
			r.Get("/", gameHandler.List)
			r.Get("/recommend", recommendHandler.Recommend)
			r.Post("/recommend", recommendHandler.Recommend)
			r.Get("/stats", statsHandler.Get)
			r.Get("/updated-at", metaHandler.UpdatedAt)
			r.Get("/version", metaHandler.Version)
			r.Get("/{id}", gameHandler.Get)
			r.Get("/{id}/similar", recommendHandler.Similar)
			r.Get("/{id}/rankings", rankingHandler.ForGame)
		})

		r.Route("/rankings", func(r chi.Router) {
			r.Get("/", rankingHandler.List)
			r.Get("/dates", rankingHandler.Dates)
			r.Get("/history", rankingHandler.History)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/{name}", userHandler.Get)
			r.Get("/{name}/stats", userHandler.Stats)
		})

		// Related-entity listings
		r.Get("/designers/{id}/games", entityHandler.Games("designer"))
		r.Get("/artists/{id}/games", entityHandler.Games("artist"))
		r.Get("/types/{id}/games", entityHandler.Games("game_type"))
		r.Get("/categories/{id}/games", entityHandler.Games("category"))
		r.Get("/mechanics/{id}/games", entityHandler.Games("mechanic"))

		// Collection writes, used by the ingestion pipeline
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))
			r.Post("/collections", collectionHandler.Upsert)
			r.Delete("/collections/{name}/{id}", collectionHandler.Delete)
		})
	})

	return r
}
