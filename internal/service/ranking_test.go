package service

import (
	"context"
	"testing"
	"time"

	"github.com/recgames/board-game-server/internal/domain"
	"github.com/recgames/board-game-server/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotRows(date time.Time, ranks int) []*domain.Ranking {
	rows := make([]*domain.Ranking, ranks)
	for i := range rows {
		rows[i] = &domain.Ranking{
			GameID:      uint(i + 1),
			RankingType: domain.RankingTypeBGG,
			Rank:        i + 1,
			Date:        date,
		}
	}
	return rows
}

func TestHistory(t *testing.T) {
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	rows := append(snapshotRows(older, 5), snapshotRows(newer, 5)...)
	rankings := &testutil.FakeRankingRepository{Rows: rows}
	games := &testutil.FakeGameRepository{Games: catalogGames(1, 2, 3, 4, 5)}
	svc := NewRankingService(rankings, games, zerolog.Nop())

	entries, err := svc.History(context.Background(), 5, domain.RankingTypeBGG, nil, nil)
	require.NoError(t, err)

	require.Len(t, entries, 5)
	assert.Equal(t, uint(1), entries[0].Game.BGGID)
	// Each top game carries its full series, both snapshot dates
	assert.Len(t, entries[0].Rankings, 2)
	assert.True(t, entries[0].Rankings[0].Date.Before(entries[0].Rankings[1].Date))
}

func TestHistory_IncompleteSnapshot(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rankings := &testutil.FakeRankingRepository{Rows: snapshotRows(date, 5)}
	games := &testutil.FakeGameRepository{Games: catalogGames(1, 2, 3, 4, 5)}
	svc := NewRankingService(rankings, games, zerolog.Nop())

	_, err := svc.History(context.Background(), 6, domain.RankingTypeBGG, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInconsistentRankings)
}

func TestHistory_MissingCatalogRow(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rankings := &testutil.FakeRankingRepository{Rows: snapshotRows(date, 3)}
	games := &testutil.FakeGameRepository{Games: catalogGames(1, 2)}
	svc := NewRankingService(rankings, games, zerolog.Nop())

	_, err := svc.History(context.Background(), 3, domain.RankingTypeBGG, nil, nil)
	assert.ErrorIs(t, err, domain.ErrInconsistentRankings)
}

func TestHistory_NoSnapshot(t *testing.T) {
	rankings := &testutil.FakeRankingRepository{}
	games := &testutil.FakeGameRepository{}
	svc := NewRankingService(rankings, games, zerolog.Nop())

	_, err := svc.History(context.Background(), 5, domain.RankingTypeBGG, nil, nil)
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rankings := &testutil.FakeRankingRepository{Rows: snapshotRows(date, 10)}
	svc := NewRankingService(rankings, &testutil.FakeGameRepository{}, zerolog.Nop())

	rows, count, err := svc.List(context.Background(), []string{domain.RankingTypeBGG}, nil, nil, nil, 3, 0)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
	assert.Equal(t, int64(10), count)
}

func TestDates(t *testing.T) {
	older := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	rows := append(snapshotRows(older, 2), snapshotRows(newer, 2)...)
	rankings := &testutil.FakeRankingRepository{Rows: rows}
	svc := NewRankingService(rankings, &testutil.FakeGameRepository{}, zerolog.Nop())

	dates, err := svc.Dates(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.Equal(t, "2025-01-01", dates[0].Date)
	assert.Equal(t, "2025-06-01", dates[1].Date)
}
