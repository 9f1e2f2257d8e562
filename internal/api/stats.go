package api

import (
	"net/http"

	"github.com/recgames/board-game-server/internal/service"
)

type StatsHandler struct {
	stats *service.StatsService
	meta  *service.MetaService
}

func NewStatsHandler(stats *service.StatsService, meta *service.MetaService) *StatsHandler {
	return &StatsHandler{stats: stats, meta: meta}
}

// Get computes the per-site dimension breakdowns over the current top games.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	p := ParseRequest(r)
	topGames := p.Int("top_games", 100)
	topItems := p.Int("top_items", 10)

	result, err := h.stats.Compute(r.Context(), p.GameQuery(), topGames, topItems)
	if err != nil {
		respondError(w, r, err, "Failed to compute stats")
		return
	}

	resp := make(map[string]any, len(result)+1)
	for key, breakdown := range result {
		site := make(map[string]any, len(breakdown.Dimensions)+1)
		site["total"] = breakdown.Total
		for dim, items := range breakdown.Dimensions {
			site[dim] = items
		}
		resp[key] = site
	}
	if ts, err := h.meta.ModelUpdatedAt(); err == nil {
		resp["updated_at"] = ts
	}

	writeJSON(w, http.StatusOK, resp)
}
