package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/recgames/board-game-server/internal/repository"
)

// EntityHandler lists the games credited to one related entity (a designer,
// artist, type, category or mechanic).
type EntityHandler struct {
	entities  repository.EntityRepository
	paginator *Paginator
}

func NewEntityHandler(entities repository.EntityRepository, paginator *Paginator) *EntityHandler {
	return &EntityHandler{entities: entities, paginator: paginator}
}

// Games returns the handler for one relation dimension.
func (h *EntityHandler) Games(dim string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			http.Error(w, "Invalid id", http.StatusBadRequest)
			return
		}

		p := ParseRequest(r)
		page, pageSize := h.paginator.Page(p)
		ordering := p.Ordering(DefaultGameOrdering)

		rows, err := h.entities.GamesFor(r.Context(), dim, uint(id), ordering, pageSize, (page-1)*pageSize)
		if err != nil {
			respondError(w, r, err, "Failed to list games")
			return
		}
		count, err := h.entities.CountGamesFor(r.Context(), dim, uint(id))
		if err != nil {
			respondError(w, r, err, "Failed to count games")
			return
		}

		writeJSON(w, http.StatusOK, h.paginator.Envelope(r, p, count, page, pageSize, rows))
	}
}
