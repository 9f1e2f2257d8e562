package service

import (
	"context"
	"time"

	"github.com/recgames/board-game-server/internal/domain"
	"github.com/recgames/board-game-server/internal/repository"
	"github.com/rs/zerolog"
)

// UserSiteStats is a user's collection overlap with one top-N ranking.
type UserSiteStats struct {
	Total  int `json:"total"`
	Owned  int `json:"owned"`
	Played int `json:"played"`
	Rated  int `json:"rated"`
}

// UserStats summarizes a user's collection against the site rankings.
type UserStats struct {
	User      string                   `json:"user"`
	UpdatedAt *time.Time               `json:"updated_at"`
	Sites     map[string]UserSiteStats `json:"-"`
}

type UserService struct {
	users       repository.UserRepository
	games       repository.GameRepository
	collections repository.CollectionRepository
	logger      zerolog.Logger
}

func NewUserService(
	users repository.UserRepository,
	games repository.GameRepository,
	collections repository.CollectionRepository,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:       users,
		games:       games,
		collections: collections,
		logger:      logger.With().Str("component", "user").Logger(),
	}
}

func (s *UserService) Get(ctx context.Context, name string) (*domain.User, error) {
	return s.users.GetByName(ctx, name)
}

// Stats counts, per ranking site, how many of the top topGames games the
// user owns, has played and has rated.
func (s *UserService) Stats(ctx context.Context, name string, topGames int) (*UserStats, error) {
	user, err := s.users.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}

	stats := &UserStats{
		User:      user.Name,
		UpdatedAt: user.UpdatedAt,
		Sites:     make(map[string]UserSiteStats, len(StatsSites)),
	}

	for _, site := range StatsSites {
		ids, err := s.games.IDsRankedAtMost(ctx, site.RankField, topGames)
		if err != nil {
			return nil, err
		}
		rollup, err := s.collections.Stats(ctx, user.Name, ids)
		if err != nil {
			return nil, err
		}
		stats.Sites[site.Key] = UserSiteStats{
			Total:  len(ids),
			Owned:  rollup.Owned,
			Played: rollup.Played,
			Rated:  rollup.Rated,
		}
	}
	return stats, nil
}
