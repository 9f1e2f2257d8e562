package postgres

import (
	"context"
	"strings"

	"github.com/recgames/board-game-server/internal/domain"
	"github.com/recgames/board-game-server/internal/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type collectionRepository struct {
	db *gorm.DB
}

func NewCollectionRepository(db *gorm.DB) *collectionRepository {
	return &collectionRepository{db: db}
}

func (r *collectionRepository) GameIDs(ctx context.Context, user string, clauses []repository.Predicate) ([]uint, error) {
	if len(clauses) == 0 {
		return nil, nil
	}

	// The clauses form a single disjunction.
	conds := make([]string, 0, len(clauses))
	args := make([]any, 0, len(clauses))
	for _, p := range clauses {
		switch p.Op {
		case repository.OpIsNull:
			if isNull, _ := p.Value.(bool); isNull {
				conds = append(conds, p.Field+" IS NULL")
			} else {
				conds = append(conds, p.Field+" IS NOT NULL")
			}
		case repository.OpGTE:
			conds = append(conds, p.Field+" >= ?")
			args = append(args, p.Value)
		case repository.OpLTE:
			conds = append(conds, p.Field+" <= ?")
			args = append(args, p.Value)
		default:
			conds = append(conds, p.Field+" = ?")
			args = append(args, p.Value)
		}
	}

	var ids []uint
	err := r.db.WithContext(ctx).Model(&domain.Collection{}).
		Where("LOWER(user_name) = LOWER(?)", user).
		Where("("+strings.Join(conds, " OR ")+")", args...).
		Pluck("game_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *collectionRepository) Stats(ctx context.Context, user string, gameIDs []uint) (repository.CollectionStats, error) {
	var stats repository.CollectionStats
	if len(gameIDs) == 0 {
		return stats, nil
	}

	err := r.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (WHERE owned) AS owned,
			COUNT(*) FILTER (WHERE play_count > 0) AS played,
			COUNT(*) FILTER (WHERE rating IS NOT NULL) AS rated
		FROM collections
		WHERE LOWER(user_name) = LOWER(?) AND game_id IN ?`,
		user, gameIDs,
	).Scan(&stats).Error
	return stats, err
}

func (r *collectionRepository) Upsert(ctx context.Context, row *domain.Collection) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_name"}, {Name: "game_id"}},
		UpdateAll: true,
	}).Create(row).Error
}

func (r *collectionRepository) Delete(ctx context.Context, user string, gameID uint) error {
	return r.db.WithContext(ctx).
		Where("LOWER(user_name) = LOWER(?) AND game_id = ?", user, gameID).
		Delete(&domain.Collection{}).Error
}
