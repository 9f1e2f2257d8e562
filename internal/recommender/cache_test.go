package recommender

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_Get(t *testing.T) {
	dir := t.TempDir()
	writeTestModel(t, dir)

	cache := NewCache(8, zerolog.Nop())

	model := cache.Get(dir, "bgg")
	require.NotNil(t, model)
	assert.Equal(t, 1, cache.Len())

	// Same key returns the same loaded model
	assert.Same(t, model, cache.Get(dir, "bgg"))
	assert.Equal(t, 1, cache.Len())
}

func TestCache_EmptyPath(t *testing.T) {
	cache := NewCache(8, zerolog.Nop())
	assert.Nil(t, cache.Get("", "bgg"))
	assert.Equal(t, 0, cache.Len())
}

func TestCache_FailureCached(t *testing.T) {
	dir := t.TempDir()
	cache := NewCache(8, zerolog.Nop())

	assert.Nil(t, cache.Get(dir, "bgg"))
	assert.Equal(t, 1, cache.Len())

	// A later fix of the artifact is not picked up until eviction
	writeTestModel(t, dir)
	assert.Nil(t, cache.Get(dir, "bgg"))
}

func TestCache_LRUEviction(t *testing.T) {
	dirA := t.TempDir()
	dirB := t.TempDir()
	writeTestModel(t, dirA)
	writeTestModel(t, dirB)

	cache := NewCache(1, zerolog.Nop())

	first := cache.Get(dirA, "bgg")
	require.NotNil(t, first)

	require.NotNil(t, cache.Get(dirB, "bgg"))
	assert.Equal(t, 1, cache.Len())

	// dirA was evicted, so this is a fresh load
	again := cache.Get(dirA, "bgg")
	require.NotNil(t, again)
	assert.NotSame(t, first, again)
}

func TestCache_ConcurrentSingleLoad(t *testing.T) {
	dir := t.TempDir()
	writeTestModel(t, dir)

	cache := NewCache(8, zerolog.Nop())

	var wg sync.WaitGroup
	models := make([]*Model, 16)
	for i := range models {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			models[i] = cache.Get(dir, "bgg")
		}(i)
	}
	wg.Wait()

	require.NotNil(t, models[0])
	for _, model := range models[1:] {
		assert.Same(t, models[0], model)
	}
	assert.Equal(t, 1, cache.Len())
}
