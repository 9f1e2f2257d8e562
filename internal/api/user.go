package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/recgames/board-game-server/internal/service"
)

type UserHandler struct {
	users *service.UserService
}

func NewUserHandler(users *service.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	user, err := h.users.Get(r.Context(), name)
	if err != nil {
		respondError(w, r, err, "Failed to get user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// Stats reports the user's collection overlap with the top ranked games,
// one block per ranking site.
func (h *UserHandler) Stats(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	p := ParseRequest(r)
	topGames := p.Int("top_games", 100)

	stats, err := h.users.Stats(r.Context(), name, topGames)
	if err != nil {
		respondError(w, r, err, "Failed to compute user stats")
		return
	}

	resp := make(map[string]any, len(stats.Sites)+2)
	resp["user"] = stats.User
	resp["updated_at"] = stats.UpdatedAt
	for key, site := range stats.Sites {
		resp[key] = site
	}

	writeJSON(w, http.StatusOK, resp)
}
