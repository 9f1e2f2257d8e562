package postgres

import (
	"context"
	"fmt"

	"github.com/recgames/board-game-server/internal/domain"
	"github.com/recgames/board-game-server/internal/repository"
	"gorm.io/gorm"
)

// statsDimension ties a breakdown dimension to its entity table and join.
type statsDimension struct {
	entityTable string
	join        relationJoin
	// excludeID filters out a placeholder entity (0 = none).
	excludeID uint
}

var statsDimensions = map[string]statsDimension{
	"designer":  {"people", relationJoins["designer"], domain.UncreditedPersonID},
	"artist":    {"people", relationJoins["artist"], domain.UncreditedPersonID},
	"game_type": {"game_types", relationJoins["game_type"], 0},
	"category":  {"categories", relationJoins["category"], 0},
	"mechanic":  {"mechanics", relationJoins["mechanic"], 0},
}

type statsRepository struct {
	db *gorm.DB
}

func NewStatsRepository(db *gorm.DB) *statsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Dimension(ctx context.Context, dim string, rankField string, gameIDs []uint, topItems int) ([]repository.EntityStat, error) {
	spec, ok := statsDimensions[dim]
	if !ok {
		return nil, fmt.Errorf("unknown stats dimension <%s>", dim)
	}
	if len(gameIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT e.bgg_id, e.name, COUNT(g.bgg_id) AS count, MIN(g.%s) AS best
		FROM %s e
		JOIN %s j ON j.%s = e.bgg_id
		JOIN games g ON g.bgg_id = j.%s
		WHERE g.bgg_id IN ?`,
		rankField, spec.entityTable, spec.join.table, spec.join.entityCol, spec.join.gameCol,
	)
	args := []any{gameIDs}
	if spec.excludeID != 0 {
		query += " AND e.bgg_id <> ?"
		args = append(args, spec.excludeID)
	}
	query += fmt.Sprintf(`
		GROUP BY e.bgg_id, e.name
		ORDER BY count DESC, best ASC
		LIMIT %d`, topItems)

	var stats []repository.EntityStat
	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}
