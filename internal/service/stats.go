package service

import (
	"context"

	"github.com/recgames/board-game-server/internal/repository"
	"github.com/rs/zerolog"
)

// StatsSite ties a breakdown key to its ranking column.
type StatsSite struct {
	Key       string
	RankField string
}

// StatsSites are the ranking dimensions of the stats endpoint: the model's
// own ranking and the BGG community ranking.
var StatsSites = []StatsSite{
	{Key: "rg_top", RankField: "rec_rank"},
	{Key: "bgg_top", RankField: "bgg_rank"},
}

// StatsDimensions are the related-entity breakdowns computed per site.
var StatsDimensions = []string{"designer", "artist", "game_type", "category", "mechanic"}

// SiteBreakdown is the stats rollup of one ranking dimension.
type SiteBreakdown struct {
	Total      int
	Dimensions map[string][]repository.EntityStat
}

type StatsService struct {
	games  repository.GameRepository
	stats  repository.StatsRepository
	logger zerolog.Logger
}

func NewStatsService(games repository.GameRepository, stats repository.StatsRepository, logger zerolog.Logger) *StatsService {
	return &StatsService{
		games:  games,
		stats:  stats,
		logger: logger.With().Str("component", "stats").Logger(),
	}
}

// Compute builds, per ranking site, the per-dimension breakdown of the top
// topGames catalog rows: how many of them each entity is credited on, the
// entity's best rank among them, and the share of the selected total.
func (s *StatsService) Compute(ctx context.Context, q repository.GameQuery, topGames, topItems int) (map[string]*SiteBreakdown, error) {
	result := make(map[string]*SiteBreakdown, len(StatsSites))

	for _, site := range StatsSites {
		ids, err := s.games.TopRanked(ctx, q, site.RankField, topGames)
		if err != nil {
			return nil, err
		}
		total := len(ids)
		breakdown := &SiteBreakdown{
			Total:      total,
			Dimensions: make(map[string][]repository.EntityStat, len(StatsDimensions)),
		}
		result[site.Key] = breakdown

		for _, dim := range StatsDimensions {
			items, err := s.stats.Dimension(ctx, dim, site.RankField, ids, topItems)
			if err != nil {
				return nil, err
			}
			for i := range items {
				if total > 0 {
					items[i].Pct = 100 * float64(items[i].Count) / float64(total)
				}
			}
			breakdown.Dimensions[dim] = items
		}
	}

	return result, nil
}
