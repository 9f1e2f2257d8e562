package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/recgames/board-game-server/internal/domain"
	"github.com/recgames/board-game-server/internal/repository"
)

// CollectionHandler serves the write surface the ingestion pipeline uses to
// sync collection rows. Reads go through the user and recommend endpoints.
type CollectionHandler struct {
	collections repository.CollectionRepository
}

func NewCollectionHandler(collections repository.CollectionRepository) *CollectionHandler {
	return &CollectionHandler{collections: collections}
}

type UpsertCollectionRequest struct {
	User      string   `json:"user"`
	Game      uint     `json:"game"`
	Rating    *float64 `json:"rating"`
	Owned     bool     `json:"owned"`
	Wishlist  *int     `json:"wishlist"`
	PlayCount int      `json:"play_count"`
}

func (h *CollectionHandler) Upsert(w http.ResponseWriter, r *http.Request) {
	var req UpsertCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.User == "" || req.Game == 0 {
		http.Error(w, "user and game are required", http.StatusBadRequest)
		return
	}

	row := &domain.Collection{
		UserName:  req.User,
		GameID:    req.Game,
		Rating:    req.Rating,
		Owned:     req.Owned,
		Wishlist:  req.Wishlist,
		PlayCount: req.PlayCount,
	}
	if err := h.collections.Upsert(r.Context(), row); err != nil {
		respondError(w, r, err, "Failed to save collection entry")
		return
	}

	writeJSON(w, http.StatusOK, row)
}

func (h *CollectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "name")
	gameID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid game id", http.StatusBadRequest)
		return
	}

	if err := h.collections.Delete(r.Context(), user, uint(gameID)); err != nil {
		respondError(w, r, err, "Failed to delete collection entry")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
