package service

import (
	"context"
	"testing"

	"github.com/recgames/board-game-server/internal/config"
	"github.com/recgames/board-game-server/internal/domain"
	"github.com/recgames/board-game-server/internal/recommender"
	"github.com/recgames/board-game-server/internal/repository"
	"github.com/recgames/board-game-server/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mergeService(games *testutil.FakeGameRepository) *RecommendService {
	return NewRecommendService(games, &testutil.FakeCollectionRepository{},
		recommender.NewCache(8, zerolog.Nop()), &config.Config{}, zerolog.Nop())
}

func TestMerge_WithScores(t *testing.T) {
	games := &testutil.FakeGameRepository{Games: catalogGames(1, 2, 3)}
	svc := mergeService(games)

	stars := 5.0
	page := []domain.RecommendedItem{
		{GameID: 3, Rank: 1, Score: 0.9, Stars: &stars},
		{GameID: 1, Rank: 2, Score: 0.4},
	}

	rows, err := svc.Merge(context.Background(), repository.GameQuery{}, nil, page, true)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, uint(3), rows[0].BGGID)
	assert.Equal(t, 1, rows[0].RecRank)
	require.NotNil(t, rows[0].RecRating)
	assert.Equal(t, 0.9, *rows[0].RecRating)
	require.NotNil(t, rows[0].RecStars)
	assert.Equal(t, 5.0, *rows[0].RecStars)

	assert.Equal(t, uint(1), rows[1].BGGID)
	assert.Equal(t, 2, rows[1].RecRank)
}

func TestMerge_RankOnly(t *testing.T) {
	games := &testutil.FakeGameRepository{Games: catalogGames(1, 2)}
	svc := mergeService(games)

	page := []domain.RecommendedItem{
		{GameID: 2, Rank: 1, Score: 0.9},
		{GameID: 1, Rank: 2, Score: 0.4},
	}

	rows, err := svc.Merge(context.Background(), repository.GameQuery{}, nil, page, false)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Nil(t, row.RecRating)
		assert.Nil(t, row.RecStars)
	}
}

func TestMerge_SortedByRank(t *testing.T) {
	// Catalog rows come back in id order; merge must restore rank order
	games := &testutil.FakeGameRepository{Games: catalogGames(1, 2, 3, 4)}
	svc := mergeService(games)

	page := []domain.RecommendedItem{
		{GameID: 4, Rank: 1},
		{GameID: 2, Rank: 2},
		{GameID: 1, Rank: 3},
	}

	rows, err := svc.Merge(context.Background(), repository.GameQuery{}, nil, page, false)
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []uint{4, 2, 1}, []uint{rows[0].BGGID, rows[1].BGGID, rows[2].BGGID})
}

func TestMerge_Deterministic(t *testing.T) {
	games := &testutil.FakeGameRepository{Games: catalogGames(1, 2, 3, 4)}
	svc := mergeService(games)

	page := []domain.RecommendedItem{
		{GameID: 3, Rank: 1, Score: 0.9},
		{GameID: 1, Rank: 2, Score: 0.4},
		{GameID: 4, Rank: 3, Score: 0.1},
	}

	first, err := svc.Merge(context.Background(), repository.GameQuery{}, nil, page, true)
	require.NoError(t, err)
	second, err := svc.Merge(context.Background(), repository.GameQuery{}, nil, page, true)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].BGGID, second[i].BGGID)
		assert.Equal(t, first[i].RecRank, second[i].RecRank)
	}
}

func TestMerge_MissingRowsSkipped(t *testing.T) {
	games := &testutil.FakeGameRepository{Games: catalogGames(1)}
	svc := mergeService(games)

	page := []domain.RecommendedItem{
		{GameID: 1, Rank: 1},
		{GameID: 999, Rank: 2},
	}

	rows, err := svc.Merge(context.Background(), repository.GameQuery{}, nil, page, false)
	require.NoError(t, err)

	require.Len(t, rows, 1)
	assert.Equal(t, uint(1), rows[0].BGGID)
}

func TestMerge_EmptyPage(t *testing.T) {
	svc := mergeService(&testutil.FakeGameRepository{Games: catalogGames(1)})

	rows, err := svc.Merge(context.Background(), repository.GameQuery{}, nil, nil, true)
	require.NoError(t, err)
	assert.Nil(t, rows)
}
