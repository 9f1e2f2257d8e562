package api

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseRecommendURL(t *testing.T, target string) *RequestParams {
	t.Helper()
	return ParseRequest(httptest.NewRequest("GET", target, nil))
}

func TestParseRecommendParams_Defaults(t *testing.T) {
	params := parseRecommendParams(parseRecommendURL(t, "/api/v1/games/recommend?user=alice"))

	assert.Equal(t, []string{"alice"}, params.Users)
	assert.True(t, params.ExcludeOptions.Known)
	assert.False(t, params.ExcludeOptions.Owned)
	assert.False(t, params.ExcludeOptions.Clusters)
	assert.Nil(t, params.ExcludeOptions.Wishlist)
	assert.Nil(t, params.ExcludeOptions.PlayCount)
	assert.False(t, params.SimilarityModel)
}

func TestParseRecommendParams_Exclusions(t *testing.T) {
	params := parseRecommendParams(parseRecommendURL(t,
		"/api/v1/games/recommend?user=alice&exclude_owned=true&exclude_clusters=true&exclude_wishlist=3&exclude_play_count=5"))

	assert.True(t, params.ExcludeOptions.Owned)
	assert.True(t, params.ExcludeOptions.Clusters)
	require.NotNil(t, params.ExcludeOptions.Wishlist)
	assert.Equal(t, 3, *params.ExcludeOptions.Wishlist)
	require.NotNil(t, params.ExcludeOptions.PlayCount)
	assert.Equal(t, 5, *params.ExcludeOptions.PlayCount)
}

func TestParseRecommendParams_ZeroThresholdsDropped(t *testing.T) {
	params := parseRecommendParams(parseRecommendURL(t,
		"/api/v1/games/recommend?user=alice&exclude_wishlist=0&exclude_play_count=0"))

	assert.Nil(t, params.ExcludeOptions.Wishlist)
	assert.Nil(t, params.ExcludeOptions.PlayCount)
}
