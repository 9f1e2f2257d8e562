package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/recgames/board-game-server/internal/domain"
	"github.com/recgames/board-game-server/internal/repository"
	"gorm.io/gorm"
)

// relationJoin maps a relation filter/stats dimension to its join table.
type relationJoin struct {
	table     string
	gameCol   string
	entityCol string
}

var relationJoins = map[string]relationJoin{
	"designer":        {"game_designers", "game_bgg_id", "person_bgg_id"},
	"artist":          {"game_artists", "game_bgg_id", "person_bgg_id"},
	"game_type":       {"game_game_types", "game_bgg_id", "game_type_bgg_id"},
	"category":        {"game_categories", "game_bgg_id", "category_bgg_id"},
	"mechanic":        {"game_mechanics", "game_bgg_id", "mechanic_bgg_id"},
	"implements":      {"game_implements", "game_id", "implements_id"},
	"integrates_with": {"game_integrations", "game_id", "integrates_id"},
	"compilation_of":  {"game_compilations", "game_id", "contained_id"},
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *gameRepository {
	return &gameRepository{db: db}
}

// apply builds the WHERE clauses of a GameQuery onto tx. Field names come
// from the API whitelist, never straight from the request.
func applyGameQuery(tx *gorm.DB, q repository.GameQuery) *gorm.DB {
	for _, p := range q.Predicates {
		switch p.Op {
		case repository.OpExact:
			tx = tx.Where(fmt.Sprintf("%s = ?", p.Field), p.Value)
		case repository.OpGT:
			tx = tx.Where(fmt.Sprintf("%s > ?", p.Field), p.Value)
		case repository.OpGTE:
			tx = tx.Where(fmt.Sprintf("%s >= ?", p.Field), p.Value)
		case repository.OpLT:
			tx = tx.Where(fmt.Sprintf("%s < ?", p.Field), p.Value)
		case repository.OpLTE:
			tx = tx.Where(fmt.Sprintf("%s <= ?", p.Field), p.Value)
		case repository.OpIsNull:
			if isNull, _ := p.Value.(bool); isNull {
				tx = tx.Where(fmt.Sprintf("%s IS NULL", p.Field))
			} else {
				tx = tx.Where(fmt.Sprintf("%s IS NOT NULL", p.Field))
			}
		case repository.OpIn:
			tx = tx.Where(fmt.Sprintf("%s IN ?", p.Field), p.Value)
		}
	}

	for dim, entityID := range q.Relations {
		join, ok := relationJoins[dim]
		if !ok {
			continue
		}
		tx = tx.Where(
			fmt.Sprintf("bgg_id IN (SELECT %s FROM %s WHERE %s = ?)", join.gameCol, join.table, join.entityCol),
			entityID,
		)
	}

	if q.Search != "" {
		tx = tx.Where("name ILIKE ?", "%"+q.Search+"%")
	}

	return tx
}

func applyOrdering(tx *gorm.DB, ordering []string) *gorm.DB {
	for _, field := range ordering {
		if col, ok := strings.CutPrefix(field, "-"); ok {
			tx = tx.Order(col + " DESC NULLS LAST")
		} else {
			tx = tx.Order(field + " ASC NULLS LAST")
		}
	}
	return tx
}

func (r *gameRepository) GetByID(ctx context.Context, id uint) (*domain.Game, error) {
	var game domain.Game
	err := r.db.WithContext(ctx).
		Preload("Designer").
		Preload("Artist").
		Preload("GameType").
		Preload("Category").
		Preload("Mechanic").
		First(&game, "bgg_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.GameNotFound(id)
		}
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) Find(ctx context.Context, q repository.GameQuery, limit, offset int) ([]*domain.Game, error) {
	var games []*domain.Game
	tx := applyGameQuery(r.db.WithContext(ctx).Model(&domain.Game{}), q)
	tx = applyOrdering(tx, q.Ordering)
	err := tx.Limit(limit).Offset(offset).Find(&games).Error
	if err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepository) Count(ctx context.Context, q repository.GameQuery) (int64, error) {
	var count int64
	tx := applyGameQuery(r.db.WithContext(ctx).Model(&domain.Game{}), q)
	err := tx.Count(&count).Error
	return count, err
}

func (r *gameRepository) IDs(ctx context.Context, q repository.GameQuery) ([]uint, error) {
	var ids []uint
	tx := applyGameQuery(r.db.WithContext(ctx).Model(&domain.Game{}), q)
	err := tx.Pluck("bgg_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *gameRepository) FindByIDs(ctx context.Context, q repository.GameQuery, ids, includeIDs []uint) ([]*domain.Game, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	tx := r.db.WithContext(ctx).Model(&domain.Game{}).Where("bgg_id IN ?", ids)
	if len(includeIDs) > 0 {
		filtered := applyGameQuery(r.db.Model(&domain.Game{}).Select("bgg_id"), q)
		tx = tx.Where("bgg_id IN (?) OR bgg_id IN ?", filtered, includeIDs)
	} else {
		tx = applyGameQuery(tx, q)
	}

	var games []*domain.Game
	if err := tx.Find(&games).Error; err != nil {
		return nil, err
	}
	return games, nil
}

func (r *gameRepository) TopRanked(ctx context.Context, q repository.GameQuery, rankField string, topN int) ([]uint, error) {
	var ids []uint
	tx := applyGameQuery(r.db.WithContext(ctx).Model(&domain.Game{}), q)
	err := tx.Where(fmt.Sprintf("%s IS NOT NULL", rankField)).
		Order(rankField + " ASC").
		Limit(topN).
		Pluck("bgg_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *gameRepository) IDsRankedAtMost(ctx context.Context, rankField string, maxRank int) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&domain.Game{}).
		Where(fmt.Sprintf("%s <= ?", rankField), maxRank).
		Pluck("bgg_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
