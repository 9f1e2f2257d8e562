package recommender

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/recgames/board-game-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var starPercentiles = []float64{0.165, 0.365, 0.615, 0.815, 0.915, 0.965, 0.985, 0.995}

func writeTestModel(t *testing.T, dir string) {
	t.Helper()
	testutil.WriteModelArtifact(t, dir, "bgg",
		map[string]testutil.ModelUser{
			"Alice": {Factors: []float64{1, 0}, Rated: []uint{1}},
			"bob":   {Factors: []float64{0, 1}, Rated: []uint{4}},
		},
		map[string]testutil.ModelGame{
			"1": {Factors: []float64{1, 0}},
			"2": {Factors: []float64{0.9, 0}},
			"3": {Factors: []float64{0.5, 0}},
			"4": {Factors: []float64{0, 1}},
		})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeTestModel(t, dir)

	model, err := Load(dir, "bgg")
	require.NoError(t, err)

	// User names are lowercased on load
	assert.Contains(t, model.KnownUsers(), "alice")
	assert.Contains(t, model.KnownUsers(), "bob")
	assert.Len(t, model.RatedGames(), 4)
}

func TestLoad_MissingArtifact(t *testing.T) {
	_, err := Load(t.TempDir(), "bgg")
	assert.Error(t, err)
}

func TestLoad_SiteMismatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "bga"), 0o755))
	raw := []byte(`{"site":"bgg","users":{},"games":{}}`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bga", "model.json"), raw, 0o644))

	_, err := Load(dir, "bga")
	assert.Error(t, err)
}

func TestRecommend_ExcludesRatedGames(t *testing.T) {
	dir := t.TempDir()
	writeTestModel(t, dir)
	model, err := Load(dir, "bgg")
	require.NoError(t, err)

	recs := model.Recommend(RecommendRequest{
		Users:        []string{"alice"},
		Games:        []uint{1, 2, 3, 4},
		ExcludeKnown: true,
	})

	require.Len(t, recs, 3)
	assert.Equal(t, uint(2), recs[0].GameID)
	assert.Equal(t, uint(3), recs[1].GameID)
	assert.Equal(t, uint(4), recs[2].GameID)
	for i, rec := range recs {
		assert.Equal(t, i+1, rec.Rank)
	}
}

func TestRecommend_ExplicitExclude(t *testing.T) {
	dir := t.TempDir()
	writeTestModel(t, dir)
	model, err := Load(dir, "bgg")
	require.NoError(t, err)

	recs := model.Recommend(RecommendRequest{
		Users:   []string{"alice"},
		Games:   []uint{1, 2, 3, 4},
		Exclude: map[string][]uint{"alice": {2, 3}},
	})

	require.Len(t, recs, 2)
	assert.Equal(t, uint(1), recs[0].GameID)
	assert.Equal(t, uint(4), recs[1].GameID)
}

func TestRecommend_Stars(t *testing.T) {
	dir := t.TempDir()
	writeTestModel(t, dir)
	model, err := Load(dir, "bgg")
	require.NoError(t, err)

	recs := model.Recommend(RecommendRequest{
		Users:           []string{"alice"},
		Games:           []uint{1, 2, 3, 4},
		StarPercentiles: starPercentiles,
	})

	require.NotEmpty(t, recs)
	for _, rec := range recs {
		require.NotNil(t, rec.Stars)
		assert.GreaterOrEqual(t, *rec.Stars, 0.0)
		assert.LessOrEqual(t, *rec.Stars, float64(len(starPercentiles)))
	}
	// Higher score never gets fewer stars
	for i := 1; i < len(recs); i++ {
		assert.GreaterOrEqual(t, *recs[i-1].Stars, *recs[i].Stars)
	}
}

func TestRecommend_UnknownUserSkipped(t *testing.T) {
	dir := t.TempDir()
	writeTestModel(t, dir)
	model, err := Load(dir, "bgg")
	require.NoError(t, err)

	recs := model.Recommend(RecommendRequest{Users: []string{"nobody"}})
	assert.Empty(t, recs)
}

func TestRecommend_SimilarityModelPopularityBaseline(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteModelArtifact(t, dir, "bgg",
		map[string]testutil.ModelUser{
			"carol": {Factors: []float64{1, 0}},
		},
		map[string]testutil.ModelGame{
			"1": {Factors: []float64{1, 0}, Popularity: 0.1},
			"2": {Factors: []float64{1, 0}, Popularity: 0.4},
		})

	model, err := Load(dir, "bgg")
	require.NoError(t, err)

	recs := model.Recommend(RecommendRequest{Users: []string{"carol"}, SimilarityModel: true})
	require.Len(t, recs, 2)
	// Equal affinity, so the popularity baseline decides
	assert.Equal(t, uint(2), recs[0].GameID)
	assert.Greater(t, recs[0].Score, recs[1].Score)

	recs = model.Recommend(RecommendRequest{Users: []string{"carol"}})
	require.Len(t, recs, 2)
	// The rating predictor ignores popularity
	assert.Equal(t, recs[0].Score, recs[1].Score)
}

func TestRecommendSimilar_SeedsExcluded(t *testing.T) {
	dir := t.TempDir()
	writeTestModel(t, dir)
	model, err := Load(dir, "bgg")
	require.NoError(t, err)

	recs := model.RecommendSimilar([]uint{1}, []uint{1, 2, 3, 4})

	require.Len(t, recs, 3)
	for _, rec := range recs {
		assert.NotEqual(t, uint(1), rec.GameID)
	}
	// Games 2 and 3 point the same direction as the seed, ties keep
	// candidate order.
	assert.Equal(t, uint(2), recs[0].GameID)
	assert.Equal(t, uint(3), recs[1].GameID)
	assert.Equal(t, uint(4), recs[2].GameID)
}

func TestSimilarGames(t *testing.T) {
	dir := t.TempDir()
	writeTestModel(t, dir)
	model, err := Load(dir, "bgg")
	require.NoError(t, err)

	similar := model.SimilarGames(1, 0)
	require.Len(t, similar, 3)
	assert.Equal(t, uint(2), similar[0].GameID)
	assert.Equal(t, 1, similar[0].Rank)

	capped := model.SimilarGames(1, 2)
	assert.Len(t, capped, 2)

	assert.Nil(t, model.SimilarGames(99, 0))
}

func TestClusterSuppression(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteModelArtifact(t, dir, "bgg",
		map[string]testutil.ModelUser{
			"alice": {Factors: []float64{1, 0}, Rated: []uint{1}},
		},
		map[string]testutil.ModelGame{
			"1": {Factors: []float64{1, 0}, Cluster: 7},
			"2": {Factors: []float64{0.9, 0}, Cluster: 7},
			"3": {Factors: []float64{0.5, 0}},
		})
	model, err := Load(dir, "bgg")
	require.NoError(t, err)

	recs := model.Recommend(RecommendRequest{
		Users:           []string{"alice"},
		Games:           []uint{1, 2, 3},
		ExcludeKnown:    true,
		ExcludeClusters: true,
	})

	// Game 2 shares a cluster with the rated game 1
	require.Len(t, recs, 1)
	assert.Equal(t, uint(3), recs[0].GameID)
}
