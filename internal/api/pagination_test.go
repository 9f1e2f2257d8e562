package api

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPaginator() *Paginator {
	return &Paginator{
		PageSize:    25,
		MaxPageSize: 100,
		Sticky: []StickyParam{
			{Key: "user"},
			{Key: "like", Numeric: true},
		},
	}
}

func TestPage_Defaults(t *testing.T) {
	pg := testPaginator()
	r := httptest.NewRequest("GET", "/games", nil)

	page, pageSize := pg.Page(ParseRequest(r))
	assert.Equal(t, 1, page)
	assert.Equal(t, 25, pageSize)
}

func TestPage_Clamping(t *testing.T) {
	pg := testPaginator()

	r := httptest.NewRequest("GET", "/games?page=0&page_size=0", nil)
	page, pageSize := pg.Page(ParseRequest(r))
	assert.Equal(t, 1, page)
	assert.Equal(t, 25, pageSize)

	r = httptest.NewRequest("GET", "/games?page=3&page_size=500", nil)
	page, pageSize = pg.Page(ParseRequest(r))
	assert.Equal(t, 3, page)
	assert.Equal(t, 100, pageSize)
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Slice(items, 1, 2))
	assert.Equal(t, []int{3, 4}, Slice(items, 2, 2))
	assert.Equal(t, []int{5}, Slice(items, 3, 2))
	assert.Nil(t, Slice(items, 4, 2))
}

func TestEnvelope_Links(t *testing.T) {
	pg := testPaginator()
	r := httptest.NewRequest("GET", "/games/recommend?page=2&page_size=2", nil)
	p := ParseRequest(r)

	resp := pg.Envelope(r, p, 5, 2, 2, nil)

	assert.Equal(t, int64(5), resp.Count)
	require.NotNil(t, resp.Next)
	require.NotNil(t, resp.Previous)

	next, err := url.Parse(*resp.Next)
	require.NoError(t, err)
	assert.Equal(t, "3", next.Query().Get("page"))

	prev, err := url.Parse(*resp.Previous)
	require.NoError(t, err)
	assert.Equal(t, "1", prev.Query().Get("page"))
}

func TestEnvelope_Boundaries(t *testing.T) {
	pg := testPaginator()
	r := httptest.NewRequest("GET", "/games/recommend", nil)
	p := ParseRequest(r)

	first := pg.Envelope(r, p, 5, 1, 2, nil)
	assert.NotNil(t, first.Next)
	assert.Nil(t, first.Previous)

	last := pg.Envelope(r, p, 5, 3, 2, nil)
	assert.Nil(t, last.Next)
	assert.NotNil(t, last.Previous)
}

func TestEnvelope_StickyParams(t *testing.T) {
	pg := testPaginator()
	r := httptest.NewRequest("GET", "/games/recommend?user=b&user=a&user=c&page_size=2", nil)
	p := ParseRequest(r)

	resp := pg.Envelope(r, p, 5, 1, 2, nil)
	require.NotNil(t, resp.Next)

	next, err := url.Parse(*resp.Next)
	require.NoError(t, err)
	query := next.Query()
	assert.Equal(t, "a,b,c", query.Get("user"))
	assert.Equal(t, "2", query.Get("page"))
	assert.Equal(t, "2", query.Get("page_size"))
	assert.Empty(t, query.Get("like"))
}

func TestEnvelope_StickyNumeric(t *testing.T) {
	pg := testPaginator()
	r := httptest.NewRequest("GET", "/games/recommend?like=30,10&like=20&like=10&like=junk", nil)
	p := ParseRequest(r)

	resp := pg.Envelope(r, p, 100, 1, 25, nil)
	require.NotNil(t, resp.Next)

	next, err := url.Parse(*resp.Next)
	require.NoError(t, err)
	// Deduplicated, numerically sorted, unparseable dropped
	assert.Equal(t, "10,20,30", next.Query().Get("like"))
}

func TestEnvelope_StickyPreservesFilters(t *testing.T) {
	pg := testPaginator()
	r := httptest.NewRequest("GET", "/games/recommend?user=a&year__gte=2000", nil)
	p := ParseRequest(r)

	resp := pg.Envelope(r, p, 100, 1, 25, nil)
	require.NotNil(t, resp.Next)

	next, err := url.Parse(*resp.Next)
	require.NoError(t, err)
	assert.Equal(t, "2000", next.Query().Get("year__gte"))
}
