package service

import (
	"github.com/recgames/board-game-server/internal/config"
	"github.com/recgames/board-game-server/internal/recommender"
	"github.com/recgames/board-game-server/internal/repository"
	"github.com/rs/zerolog"
)

type Services struct {
	Recommend *RecommendService
	Stats     *StatsService
	Ranking   *RankingService
	User      *UserService
	Meta      *MetaService
}

func NewServices(repos *repository.Repositories, models *recommender.Cache, cfg *config.Config, logger zerolog.Logger) *Services {
	return &Services{
		Recommend: NewRecommendService(repos.Game, repos.Collection, models, cfg, logger),
		Stats:     NewStatsService(repos.Game, repos.Stats, logger),
		Ranking:   NewRankingService(repos.Ranking, repos.Game, logger),
		User:      NewUserService(repos.User, repos.Game, repos.Collection, logger),
		Meta:      NewMetaService(cfg),
	}
}
