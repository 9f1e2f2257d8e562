package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/recgames/board-game-server/internal/repository"
)

type GameHandler struct {
	games     repository.GameRepository
	paginator *Paginator
}

func NewGameHandler(games repository.GameRepository, paginator *Paginator) *GameHandler {
	return &GameHandler{games: games, paginator: paginator}
}

func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	p := ParseRequest(r)
	q := p.GameQuery()
	page, pageSize := h.paginator.Page(p)

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

func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid game id", http.StatusBadRequest)
		return
	}

	game, err := h.games.GetByID(r.Context(), uint(id))
	if err != nil {
		respondError(w, r, err, "Failed to get game")
		return
	}

	writeJSON(w, http.StatusOK, game)
}
