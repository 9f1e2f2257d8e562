package repository

import (
	"context"
	"time"

	"github.com/recgames/board-game-server/internal/domain"
)

type GameRepository interface {
	GetByID(ctx context.Context, id uint) (*domain.Game, error)
	// Find returns rows matching q in query order.
	Find(ctx context.Context, q GameQuery, limit, offset int) ([]*domain.Game, error)
	Count(ctx context.Context, q GameQuery) (int64, error)
	// IDs projects the unordered id set matching q.
	IDs(ctx context.Context, q GameQuery) ([]uint, error)
	// FindByIDs returns rows with id in ids that match q or carry one of the
	// includeIDs, in no guaranteed order.
	FindByIDs(ctx context.Context, q GameQuery, ids, includeIDs []uint) ([]*domain.Game, error)
	// TopRanked projects ids of the up-to-topN games with rankField non-null,
	// ascending by rankField, with q applied on top.
	TopRanked(ctx context.Context, q GameQuery, rankField string, topN int) ([]uint, error)
	// IDsRankedAtMost projects ids of games whose rankField is <= maxRank.
	IDsRankedAtMost(ctx context.Context, rankField string, maxRank int) ([]uint, error)
}

// StatsRepository aggregates related-entity breakdowns over a fixed game set.
type StatsRepository interface {
	// Dimension counts, per related entity of the given dimension, how many of
	// gameIDs are credited to it, together with the minimum rankField value
	// among those games. Entities with zero matches are omitted; results are
	// ordered by count descending, then best ascending, capped at topItems.
	Dimension(ctx context.Context, dim string, rankField string, gameIDs []uint, topItems int) ([]EntityStat, error)
}

type CollectionRepository interface {
	// GameIDs returns game ids of the user's collection rows matching any of
	// the ORed clauses.
	GameIDs(ctx context.Context, user string, clauses []Predicate) ([]uint, error)
	Stats(ctx context.Context, user string, gameIDs []uint) (CollectionStats, error)
	Upsert(ctx context.Context, row *domain.Collection) error
	Delete(ctx context.Context, user string, gameID uint) error
}

type UserRepository interface {
	// GetByName looks a user up case-insensitively.
	GetByName(ctx context.Context, name string) (*domain.User, error)
}

type RankingRepository interface {
	Find(ctx context.Context, rankingTypes []string, gameID *uint, dateFrom, dateTo *time.Time, limit, offset int) ([]*domain.Ranking, error)
	Count(ctx context.Context, rankingTypes []string, gameID *uint, dateFrom, dateTo *time.Time) (int64, error)
	// Dates lists the distinct (ranking_type, date) pairs, oldest first.
	Dates(ctx context.Context, rankingTypes []string) ([]RankingDate, error)
	// LatestDate finds the most recent snapshot date holding a rank-1 entry
	// for the given type within the optional bounds.
	LatestDate(ctx context.Context, rankingType string, dateFrom, dateTo *time.Time) (time.Time, error)
	// AtDate returns the snapshot rows of one date with rank <= maxRank,
	// ordered by rank ascending.
	AtDate(ctx context.Context, rankingType string, date time.Time, maxRank int) ([]*domain.Ranking, error)
	// Series returns all rows of the given games and type within the bounds,
	// ordered by date ascending.
	Series(ctx context.Context, rankingType string, gameIDs []uint, dateFrom, dateTo *time.Time) ([]*domain.Ranking, error)
}

type EntityRepository interface {
	GamesFor(ctx context.Context, dim string, entityID uint, ordering []string, limit, offset int) ([]*domain.Game, error)
	CountGamesFor(ctx context.Context, dim string, entityID uint) (int64, error)
}

type Repositories struct {
	Game       GameRepository
	Stats      StatsRepository
	Collection CollectionRepository
	User       UserRepository
	Ranking    RankingRepository
	Entity     EntityRepository
}
