package service

import (
	"context"
	"sort"

	"github.com/recgames/board-game-server/internal/domain"
	"github.com/recgames/board-game-server/internal/repository"
)

// Merge joins one page of ranked items back onto the catalog rows matching
// the standing query (or carrying an explicit include id). Score and stars
// are only attached when withScores is set; group and similarity results
// stay rank-only. The output is re-sorted by rank because the row fetch has
// no guaranteed order.
func (s *RecommendService) Merge(ctx context.Context, q repository.GameQuery, include []uint, page []domain.RecommendedItem, withScores bool) ([]*domain.RecommendedGame, error) {
	if len(page) == 0 {
		return nil, nil
	}

	ranked := make(map[uint]domain.RecommendedItem, len(page))
	ids := make([]uint, len(page))
	for i, item := range page {
		ranked[item.GameID] = item
		ids[i] = item.GameID
	}

	rows, err := s.games.FindByIDs(ctx, q, ids, include)
	if err != nil {
		return nil, err
	}

	games := make([]*domain.RecommendedGame, 0, len(rows))
	for _, row := range rows {
		item, ok := ranked[row.BGGID]
		if !ok {
			continue
		}
		game := &domain.RecommendedGame{Game: *row, RecRank: item.Rank}
		if withScores {
			score := item.Score
			game.RecRating = &score
			game.RecStars = item.Stars
		}
		games = append(games, game)
	}

	sort.Slice(games, func(i, j int) bool { return games[i].RecRank < games[j].RecRank })
	return games, nil
}
