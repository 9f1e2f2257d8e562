package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/recgames/board-game-server/internal/domain"
	"github.com/recgames/board-game-server/internal/repository"
	"github.com/recgames/board-game-server/internal/service"
)

type RecommendHandler struct {
	recommend *service.RecommendService
	games     repository.GameRepository
	paginator *Paginator
}

func NewRecommendHandler(recommend *service.RecommendService, games repository.GameRepository, paginator *Paginator) *RecommendHandler {
	return &RecommendHandler{recommend: recommend, games: games, paginator: paginator}
}

// parseRecommendParams reads the recommendation surface: user and seed lists,
// explicit include/exclude ids and the collection-history exclusion flags.
func parseRecommendParams(p *RequestParams) *service.RecommendParams {
	return &service.RecommendParams{
		Users:   p.Strings("user"),
		Like:    p.UintIDs("like"),
		Include: p.UintIDs("include"),
		Exclude: p.UintIDs("exclude"),
		ExcludeOptions: service.ExcludeOptions{
			Known:     p.Bool("exclude_known", true),
			Owned:     p.Bool("exclude_owned", false),
			Wishlist:  p.PositiveIntPtr("exclude_wishlist"),
			PlayCount: p.PositiveIntPtr("exclude_play_count"),
			Clusters:  p.Bool("exclude_clusters", false),
		},
		SimilarityModel: p.First("model") == "similarity",
		Site:            p.First("site"),
		Query:           p.GameQuery(),
	}
}

// Recommend dispatches on the request shape and returns one page of ranked
// catalog rows. When no model is available the endpoint degrades to a plain
// catalog listing instead of failing.
func (h *RecommendHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	p := ParseRequest(r)
	params := parseRecommendParams(p)
	page, pageSize := h.paginator.Page(p)

	items, err := h.recommend.Rank(r.Context(), params)
	if errors.Is(err, domain.ErrModelUnavailable) {
		h.plainListing(w, r, p, params.Query, page, pageSize)
		return
	}
	if err != nil {
		respondError(w, r, err, "Failed to compute recommendations")
		return
	}

	pageItems := Slice(items, page, pageSize)
	withScores := params.Mode() == service.ModeSingleUser
	rows, err := h.recommend.Merge(r.Context(), params.Query, params.Include, pageItems, withScores)
	if err != nil {
		respondError(w, r, err, "Failed to merge recommendations")
		return
	}

	writeJSON(w, http.StatusOK, h.paginator.Envelope(r, p, int64(len(items)), page, pageSize, rows))
}

func (h *RecommendHandler) plainListing(w http.ResponseWriter, r *http.Request, p *RequestParams, q repository.GameQuery, page, pageSize int) {
	rows, err := h.games.Find(r.Context(), q, pageSize, (page-1)*pageSize)
	if err != nil {
		respondError(w, r, err, "Failed to list games")
		return
	}
	count, err := h.games.Count(r.Context(), q)
	if err != nil {
		respondError(w, r, err, "Failed to count games")
		return
	}
	writeJSON(w, http.StatusOK, h.paginator.Envelope(r, p, count, page, pageSize, rows))
}

// Similar ranks the catalog neighbours of one game. A missing model reads as
// not found here: there is no sensible fallback ordering for similarity.
func (h *RecommendHandler) Similar(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid game id", http.StatusBadRequest)
		return
	}

	p := ParseRequest(r)
	page, pageSize := h.paginator.Page(p)

	items, err := h.recommend.SimilarTo(r.Context(), p.First("site"), uint(id))
	if errors.Is(err, domain.ErrModelUnavailable) {
		http.Error(w, "No similarity model available", http.StatusNotFound)
		return
	}
	if err != nil {
		respondError(w, r, err, "Failed to compute similar games")
		return
	}

	pageItems := Slice(items, page, pageSize)
	rows, err := h.recommend.Merge(r.Context(), repository.GameQuery{}, nil, pageItems, false)
	if err != nil {
		respondError(w, r, err, "Failed to merge similar games")
		return
	}

	writeJSON(w, http.StatusOK, h.paginator.Envelope(r, p, int64(len(items)), page, pageSize, rows))
}
