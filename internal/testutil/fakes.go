package testutil

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/recgames/board-game-server/internal/domain"
	"github.com/recgames/board-game-server/internal/repository"
)

// FakeGameRepository serves canned catalog rows in insertion order, ignoring
// filters. Call counters let tests assert which queries were issued.
type FakeGameRepository struct {
	Games        []*domain.Game
	TopRankedIDs map[string][]uint
	Err          error

	FindCalls int
	IDsCalls  int
}

func (f *FakeGameRepository) GetByID(_ context.Context, id uint) (*domain.Game, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	for _, game := range f.Games {
		if game.BGGID == id {
			return game, nil
		}
	}
	return nil, domain.GameNotFound(id)
}

func (f *FakeGameRepository) Find(_ context.Context, _ repository.GameQuery, limit, offset int) ([]*domain.Game, error) {
	f.FindCalls++
	if f.Err != nil {
		return nil, f.Err
	}
	if offset >= len(f.Games) {
		return nil, nil
	}
	end := len(f.Games)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return f.Games[offset:end], nil
}

func (f *FakeGameRepository) Count(_ context.Context, _ repository.GameQuery) (int64, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	return int64(len(f.Games)), nil
}

func (f *FakeGameRepository) IDs(_ context.Context, _ repository.GameQuery) ([]uint, error) {
	f.IDsCalls++
	if f.Err != nil {
		return nil, f.Err
	}
	ids := make([]uint, len(f.Games))
	for i, game := range f.Games {
		ids[i] = game.BGGID
	}
	return ids, nil
}

func (f *FakeGameRepository) FindByIDs(_ context.Context, _ repository.GameQuery, ids, includeIDs []uint) ([]*domain.Game, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	wanted := make(map[uint]struct{}, len(ids)+len(includeIDs))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	for _, id := range includeIDs {
		wanted[id] = struct{}{}
	}
	var rows []*domain.Game
	for _, game := range f.Games {
		if _, ok := wanted[game.BGGID]; ok {
			rows = append(rows, game)
		}
	}
	return rows, nil
}

func (f *FakeGameRepository) TopRanked(_ context.Context, _ repository.GameQuery, rankField string, topN int) ([]uint, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	ids := f.TopRankedIDs[rankField]
	if topN > 0 && topN < len(ids) {
		ids = ids[:topN]
	}
	return ids, nil
}

func (f *FakeGameRepository) IDsRankedAtMost(_ context.Context, rankField string, maxRank int) ([]uint, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	ids := f.TopRankedIDs[rankField]
	if maxRank > 0 && maxRank < len(ids) {
		ids = ids[:maxRank]
	}
	return ids, nil
}

// FakeCollectionRepository evaluates exclusion clauses in memory.
type FakeCollectionRepository struct {
	Rows []*domain.Collection
	Err  error

	GameIDsCalls int
}

func (f *FakeCollectionRepository) GameIDs(_ context.Context, user string, clauses []repository.Predicate) ([]uint, error) {
	f.GameIDsCalls++
	if f.Err != nil {
		return nil, f.Err
	}
	var ids []uint
	for _, row := range f.Rows {
		if !strings.EqualFold(row.UserName, user) {
			continue
		}
		for _, clause := range clauses {
			if matchClause(row, clause) {
				ids = append(ids, row.GameID)
				break
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func matchClause(row *domain.Collection, clause repository.Predicate) bool {
	switch clause.Field {
	case "owned":
		return clause.Op == repository.OpExact && row.Owned == clause.Value.(bool)
	case "rating":
		// isnull=false means rating present
		return clause.Op == repository.OpIsNull && (row.Rating != nil) != clause.Value.(bool)
	case "wishlist":
		return clause.Op == repository.OpLTE && row.Wishlist != nil && *row.Wishlist <= clause.Value.(int)
	case "play_count":
		return clause.Op == repository.OpGTE && row.PlayCount >= clause.Value.(int)
	}
	return false
}

func (f *FakeCollectionRepository) Stats(_ context.Context, user string, gameIDs []uint) (repository.CollectionStats, error) {
	if f.Err != nil {
		return repository.CollectionStats{}, f.Err
	}
	wanted := make(map[uint]struct{}, len(gameIDs))
	for _, id := range gameIDs {
		wanted[id] = struct{}{}
	}
	var stats repository.CollectionStats
	for _, row := range f.Rows {
		if !strings.EqualFold(row.UserName, user) {
			continue
		}
		if _, ok := wanted[row.GameID]; !ok {
			continue
		}
		if row.Owned {
			stats.Owned++
		}
		if row.PlayCount > 0 {
			stats.Played++
		}
		if row.Rating != nil {
			stats.Rated++
		}
	}
	return stats, nil
}

func (f *FakeCollectionRepository) Upsert(_ context.Context, row *domain.Collection) error {
	if f.Err != nil {
		return f.Err
	}
	for i, existing := range f.Rows {
		if strings.EqualFold(existing.UserName, row.UserName) && existing.GameID == row.GameID {
			f.Rows[i] = row
			return nil
		}
	}
	f.Rows = append(f.Rows, row)
	return nil
}

func (f *FakeCollectionRepository) Delete(_ context.Context, user string, gameID uint) error {
	if f.Err != nil {
		return f.Err
	}
	for i, row := range f.Rows {
		if strings.EqualFold(row.UserName, user) && row.GameID == gameID {
			f.Rows = append(f.Rows[:i], f.Rows[i+1:]...)
			return nil
		}
	}
	return nil
}

type FakeUserRepository struct {
	Users []*domain.User
}

func (f *FakeUserRepository) GetByName(_ context.Context, name string) (*domain.User, error) {
	for _, user := range f.Users {
		if strings.EqualFold(user.Name, name) {
			return user, nil
		}
	}
	return nil, domain.UserNotFound(name)
}

// FakeEntityRepository serves a canned game list for every entity.
type FakeEntityRepository struct {
	Games []*domain.Game
	Err   error
}

func (f *FakeEntityRepository) GamesFor(_ context.Context, _ string, _ uint, _ []string, limit, offset int) ([]*domain.Game, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if offset >= len(f.Games) {
		return nil, nil
	}
	end := len(f.Games)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return f.Games[offset:end], nil
}

func (f *FakeEntityRepository) CountGamesFor(_ context.Context, _ string, _ uint) (int64, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	return int64(len(f.Games)), nil
}

// FakeStatsRepository serves canned per-dimension breakdowns.
type FakeStatsRepository struct {
	Dimensions map[string][]repository.EntityStat
	Err        error
}

func (f *FakeStatsRepository) Dimension(_ context.Context, dim, _ string, _ []uint, topItems int) ([]repository.EntityStat, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	items := f.Dimensions[dim]
	if topItems > 0 && topItems < len(items) {
		items = items[:topItems]
	}
	out := make([]repository.EntityStat, len(items))
	copy(out, items)
	return out, nil
}

// FakeRankingRepository evaluates ranking queries over an in-memory slice.
type FakeRankingRepository struct {
	Rows []*domain.Ranking
	Err  error
}

func (f *FakeRankingRepository) matches(row *domain.Ranking, rankingTypes []string, gameID *uint, dateFrom, dateTo *time.Time) bool {
	if len(rankingTypes) > 0 {
		found := false
		for _, rt := range rankingTypes {
			if row.RankingType == rt {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if gameID != nil && row.GameID != *gameID {
		return false
	}
	if dateFrom != nil && row.Date.Before(*dateFrom) {
		return false
	}
	if dateTo != nil && row.Date.After(*dateTo) {
		return false
	}
	return true
}

func (f *FakeRankingRepository) Find(_ context.Context, rankingTypes []string, gameID *uint, dateFrom, dateTo *time.Time, limit, offset int) ([]*domain.Ranking, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	var rows []*domain.Ranking
	for _, row := range f.Rows {
		if f.matches(row, rankingTypes, gameID, dateFrom, dateTo) {
			rows = append(rows, row)
		}
	}
	if offset > 0 {
		if offset >= len(rows) {
			return nil, nil
		}
		rows = rows[offset:]
	}
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows, nil
}

func (f *FakeRankingRepository) Count(ctx context.Context, rankingTypes []string, gameID *uint, dateFrom, dateTo *time.Time) (int64, error) {
	rows, err := f.Find(ctx, rankingTypes, gameID, dateFrom, dateTo, 0, 0)
	return int64(len(rows)), err
}

func (f *FakeRankingRepository) Dates(_ context.Context, rankingTypes []string) ([]repository.RankingDate, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	seen := make(map[repository.RankingDate]struct{})
	var dates []repository.RankingDate
	for _, row := range f.Rows {
		if !f.matches(row, rankingTypes, nil, nil, nil) {
			continue
		}
		date := repository.RankingDate{RankingType: row.RankingType, Date: row.Date.Format("2006-01-02")}
		if _, dup := seen[date]; dup {
			continue
		}
		seen[date] = struct{}{}
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool {
		if dates[i].Date != dates[j].Date {
			return dates[i].Date < dates[j].Date
		}
		return dates[i].RankingType < dates[j].RankingType
	})
	return dates, nil
}

func (f *FakeRankingRepository) LatestDate(_ context.Context, rankingType string, dateFrom, dateTo *time.Time) (time.Time, error) {
	if f.Err != nil {
		return time.Time{}, f.Err
	}
	var latest time.Time
	found := false
	for _, row := range f.Rows {
		if row.Rank != 1 || !f.matches(row, []string{rankingType}, nil, dateFrom, dateTo) {
			continue
		}
		if !found || row.Date.After(latest) {
			latest = row.Date
			found = true
		}
	}
	if !found {
		return time.Time{}, domain.ErrNotFound
	}
	return latest, nil
}

func (f *FakeRankingRepository) AtDate(_ context.Context, rankingType string, date time.Time, maxRank int) ([]*domain.Ranking, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	var rows []*domain.Ranking
	for _, row := range f.Rows {
		if row.RankingType == rankingType && row.Date.Equal(date) && row.Rank <= maxRank {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Rank < rows[j].Rank })
	return rows, nil
}

func (f *FakeRankingRepository) Series(_ context.Context, rankingType string, gameIDs []uint, dateFrom, dateTo *time.Time) ([]*domain.Ranking, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	wanted := make(map[uint]struct{}, len(gameIDs))
	for _, id := range gameIDs {
		wanted[id] = struct{}{}
	}
	var rows []*domain.Ranking
	for _, row := range f.Rows {
		if _, ok := wanted[row.GameID]; !ok {
			continue
		}
		if f.matches(row, []string{rankingType}, nil, dateFrom, dateTo) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Date.Before(rows[j].Date) })
	return rows, nil
}
