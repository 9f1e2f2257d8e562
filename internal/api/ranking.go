package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/recgames/board-game-server/internal/domain"
	"github.com/recgames/board-game-server/internal/service"
)

type RankingHandler struct {
	rankings  *service.RankingService
	paginator *Paginator
}

func NewRankingHandler(rankings *service.RankingService, paginator *Paginator) *RankingHandler {
	return &RankingHandler{rankings: rankings, paginator: paginator}
}

func (h *RankingHandler) List(w http.ResponseWriter, r *http.Request) {
	p := ParseRequest(r)
	page, pageSize := h.paginator.Page(p)

	var gameID *uint
	if parsed := p.IntPtr("game"); parsed != nil && *parsed > 0 {
		id := uint(*parsed)
		gameID = &id
	}

	rows, count, err := h.rankings.List(r.Context(),
		p.Strings("ranking_type"), gameID,
		p.Date("date__gte"), p.Date("date__lte"),
		pageSize, (page-1)*pageSize)
	if err != nil {
		respondError(w, r, err, "Failed to list rankings")
		return
	}

	writeJSON(w, http.StatusOK, h.paginator.Envelope(r, p, count, page, pageSize, rows))
}

func (h *RankingHandler) Dates(w http.ResponseWriter, r *http.Request) {
	p := ParseRequest(r)

	dates, err := h.rankings.Dates(r.Context(), p.Strings("ranking_type"))
	if err != nil {
		respondError(w, r, err, "Failed to list ranking dates")
		return
	}

	writeJSON(w, http.StatusOK, dates)
}

// History returns the current top games with each game's full ranking series.
func (h *RankingHandler) History(w http.ResponseWriter, r *http.Request) {
	p := ParseRequest(r)
	top := p.Int("top", 100)

	rankingType := p.First("ranking_type")
	if rankingType == "" {
		rankingType = domain.RankingTypeBGG
	}

	entries, err := h.rankings.History(r.Context(), top, rankingType,
		p.Date("date__gte"), p.Date("date__lte"))
	if err != nil {
		respondError(w, r, err, "Failed to compute ranking history")
		return
	}

	writeJSON(w, http.StatusOK, entries)
}

// ForGame returns the ranking series of one game.
func (h *RankingHandler) ForGame(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid game id", http.StatusBadRequest)
		return
	}

	p := ParseRequest(r)
	rows, err := h.rankings.ForGame(r.Context(), uint(id),
		p.Strings("ranking_type"), p.Date("date__gte"), p.Date("date__lte"))
	if err != nil {
		respondError(w, r, err, "Failed to list game rankings")
		return
	}

	writeJSON(w, http.StatusOK, rows)
}
