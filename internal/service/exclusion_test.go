package service

import (
	"context"
	"errors"
	"testing"

	"github.com/recgames/board-game-server/internal/config"
	"github.com/recgames/board-game-server/internal/domain"
	"github.com/recgames/board-game-server/internal/recommender"
	"github.com/recgames/board-game-server/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func intPtr(i int) *int { return &i }

func float64Ptr(f float64) *float64 { return &f }

func exclusionService(collections *testutil.FakeCollectionRepository) *RecommendService {
	return NewRecommendService(
		&testutil.FakeGameRepository{},
		collections,
		recommender.NewCache(8, zerolog.Nop()),
		&config.Config{},
		zerolog.Nop())
}

func TestBuildExclusion_NoClausesSkipsQuery(t *testing.T) {
	collections := &testutil.FakeCollectionRepository{
		Rows: []*domain.Collection{{UserName: "alice", GameID: 1, Owned: true}},
	}
	svc := exclusionService(collections)

	got := svc.BuildExclusion(context.Background(), "alice", ExcludeOptions{Known: true}, []uint{2}, []uint{2, 3, 4})

	assert.Equal(t, []uint{3, 4}, got)
	assert.Equal(t, 0, collections.GameIDsCalls)
}

func TestBuildExclusion_Owned(t *testing.T) {
	collections := &testutil.FakeCollectionRepository{
		Rows: []*domain.Collection{
			{UserName: "alice", GameID: 1, Owned: true},
			{UserName: "alice", GameID: 2, Owned: false},
			{UserName: "bob", GameID: 3, Owned: true},
		},
	}
	svc := exclusionService(collections)

	got := svc.BuildExclusion(context.Background(), "alice", ExcludeOptions{Owned: true}, nil, []uint{9})

	assert.Equal(t, []uint{1, 9}, got)
	assert.Equal(t, 1, collections.GameIDsCalls)
}

func TestBuildExclusion_WishlistAndPlayCount(t *testing.T) {
	collections := &testutil.FakeCollectionRepository{
		Rows: []*domain.Collection{
			{UserName: "alice", GameID: 1, Wishlist: intPtr(1)},
			{UserName: "alice", GameID: 2, Wishlist: intPtr(5)},
			{UserName: "alice", GameID: 3, PlayCount: 10},
			{UserName: "alice", GameID: 4, PlayCount: 1},
		},
	}
	svc := exclusionService(collections)

	got := svc.BuildExclusion(context.Background(), "alice",
		ExcludeOptions{Wishlist: intPtr(3), PlayCount: intPtr(5)}, nil, nil)

	// Wishlist priority 1 <= 3 and play count 10 >= 5 match
	assert.Equal(t, []uint{1, 3}, got)
}

func TestBuildExclusion_KnownWithClusters(t *testing.T) {
	collections := &testutil.FakeCollectionRepository{
		Rows: []*domain.Collection{
			{UserName: "alice", GameID: 1, Rating: float64Ptr(8)},
			{UserName: "alice", GameID: 2},
		},
	}
	svc := exclusionService(collections)

	got := svc.BuildExclusion(context.Background(), "alice",
		ExcludeOptions{Known: true, Clusters: true}, nil, nil)

	assert.Equal(t, []uint{1}, got)
}

func TestBuildExclusion_IncludeOverrides(t *testing.T) {
	collections := &testutil.FakeCollectionRepository{
		Rows: []*domain.Collection{
			{UserName: "alice", GameID: 1, Owned: true},
			{UserName: "alice", GameID: 2, Owned: true},
		},
	}
	svc := exclusionService(collections)

	got := svc.BuildExclusion(context.Background(), "alice", ExcludeOptions{Owned: true}, []uint{2, 3}, []uint{3, 4})

	// Includes are carved out of both seed and derived excludes
	assert.Equal(t, []uint{1, 4}, got)
	for _, id := range got {
		assert.NotContains(t, []uint{2, 3}, id)
	}
}

func TestBuildExclusion_QueryFailureDegrades(t *testing.T) {
	collections := &testutil.FakeCollectionRepository{Err: errors.New("store down")}
	svc := exclusionService(collections)

	got := svc.BuildExclusion(context.Background(), "alice", ExcludeOptions{Owned: true}, []uint{4}, []uint{4, 5})

	assert.Equal(t, []uint{5}, got)
	assert.Equal(t, 1, collections.GameIDsCalls)
}
