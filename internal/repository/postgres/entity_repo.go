package postgres

import (
	"context"
	"fmt"

	"github.com/recgames/board-game-server/internal/domain"
	"gorm.io/gorm"
)

type entityRepository struct {
	db *gorm.DB
}

func NewEntityRepository(db *gorm.DB) *entityRepository {
	return &entityRepository{db: db}
}

func (r *entityRepository) memberScope(ctx context.Context, dim string, entityID uint) (*gorm.DB, error) {
	join, ok := relationJoins[dim]
	if !ok {
		return nil, fmt.Errorf("unknown relation <%s>", dim)
	}
	tx := r.db.WithContext(ctx).Model(&domain.Game{}).Where(
		fmt.Sprintf("bgg_id IN (SELECT %s FROM %s WHERE %s = ?)", join.gameCol, join.table, join.entityCol),
		entityID,
	)
	return tx, nil
}

func (r *entityRepository) GamesFor(ctx context.Context, dim string, entityID uint, ordering []string, limit, offset int) ([]*domain.Game, error) {
	tx, err := r.memberScope(ctx, dim, entityID)
	if err != nil {
		return nil, err
	}
	var games []*domain.Game
	err = applyOrdering(tx, ordering).Limit(limit).Offset(offset).Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (r *entityRepository) CountGamesFor(ctx context.Context, dim string, entityID uint) (int64, error) {
	tx, err := r.memberScope(ctx, dim, entityID)
	if err != nil {
		return 0, err
	}
	var count int64
	err = tx.Count(&count).Error
	return count, err
}
