package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/recgames/board-game-server/internal/domain"
	"github.com/recgames/board-game-server/internal/repository"
	"gorm.io/gorm"
)

type rankingRepository struct {
	db *gorm.DB
}

func NewRankingRepository(db *gorm.DB) *rankingRepository {
	return &rankingRepository{db: db}
}

func (r *rankingRepository) scope(ctx context.Context, rankingTypes []string, gameID *uint, dateFrom, dateTo *time.Time) *gorm.DB {
	tx := r.db.WithContext(ctx).Model(&domain.Ranking{})
	if len(rankingTypes) > 0 {
		tx = tx.Where("ranking_type IN ?", rankingTypes)
	}
	if gameID != nil {
		tx = tx.Where("game_id = ?", *gameID)
	}
	if dateFrom != nil {
		tx = tx.Where("date >= ?", *dateFrom)
	}
	if dateTo != nil {
		tx = tx.Where("date <= ?", *dateTo)
	}
	return tx
}

func (r *rankingRepository) Find(ctx context.Context, rankingTypes []string, gameID *uint, dateFrom, dateTo *time.Time, limit, offset int) ([]*domain.Ranking, error) {
	var rankings []*domain.Ranking
	err := r.scope(ctx, rankingTypes, gameID, dateFrom, dateTo).
		Order("ranking_type ASC").Order("date ASC").Order("rank ASC").
		Limit(limit).Offset(offset).
		Find(&rankings).Error
	if err != nil {
		return nil, err
	}
	return rankings, nil
}

func (r *rankingRepository) Count(ctx context.Context, rankingTypes []string, gameID *uint, dateFrom, dateTo *time.Time) (int64, error) {
	var count int64
	err := r.scope(ctx, rankingTypes, gameID, dateFrom, dateTo).Count(&count).Error
	return count, err
}

func (r *rankingRepository) Dates(ctx context.Context, rankingTypes []string) ([]repository.RankingDate, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Ranking{}).
		Distinct("ranking_type", "date").
		Order("ranking_type ASC").Order("date ASC")
	if len(rankingTypes) > 0 {
		tx = tx.Where("ranking_type IN ?", rankingTypes)
	}

	var rows []struct {
		RankingType string
		Date        time.Time
	}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}

	dates := make([]repository.RankingDate, len(rows))
	for i, row := range rows {
		dates[i] = repository.RankingDate{
			RankingType: row.RankingType,
			Date:        row.Date.Format("2006-01-02"),
		}
	}
	return dates, nil
}

func (r *rankingRepository) LatestDate(ctx context.Context, rankingType string, dateFrom, dateTo *time.Time) (time.Time, error) {
	var row domain.Ranking
	err := r.scope(ctx, []string{rankingType}, nil, dateFrom, dateTo).
		Where("rank = 1").
		Order("date DESC").
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return time.Time{}, domain.ErrNotFound
	}
	if err != nil {
		return time.Time{}, err
	}
	return row.Date, nil
}

func (r *rankingRepository) AtDate(ctx context.Context, rankingType string, date time.Time, maxRank int) ([]*domain.Ranking, error) {
	var rankings []*domain.Ranking
	err := r.db.WithContext(ctx).Model(&domain.Ranking{}).
		Where("ranking_type = ? AND date = ? AND rank <= ?", rankingType, date, maxRank).
		Order("rank ASC").
		Find(&rankings).Error
	if err != nil {
		return nil, err
	}
	return rankings, nil
}

func (r *rankingRepository) Series(ctx context.Context, rankingType string, gameIDs []uint, dateFrom, dateTo *time.Time) ([]*domain.Ranking, error) {
	if len(gameIDs) == 0 {
		return nil, nil
	}
	var rankings []*domain.Ranking
	err := r.scope(ctx, []string{rankingType}, nil, dateFrom, dateTo).
		Where("game_id IN ?", gameIDs).
		Order("date ASC").
		Find(&rankings).Error
	if err != nil {
		return nil, err
	}
	return rankings, nil
}
