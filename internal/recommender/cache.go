package recommender

import (
	"container/list"
	"sync"

	"github.com/recgames/board-game-server/internal/metrics"
	"github.com/rs/zerolog"
)

const DefaultCacheSize = 8

type cacheKey struct {
	path string
	site string
}

type cacheEntry struct {
	model *Model // nil when the load failed
	ready chan struct{}
	elem  *list.Element
}

// Cache is a capacity-bounded LRU of loaded models, keyed by (path, site).
// Failed loads are cached as nil so an expensive broken artifact is only
// tried once per cache lifetime. Concurrent callers of an uncached key wait
// for a single load.
type Cache struct {
	mu      sync.Mutex
	size    int
	entries map[cacheKey]*cacheEntry
	lru     *list.List // front = most recently used, values are cacheKey
	logger  zerolog.Logger
}

func NewCache(size int, logger zerolog.Logger) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	return &Cache{
		size:    size,
		entries: make(map[cacheKey]*cacheEntry),
		lru:     list.New(),
		logger:  logger.With().Str("component", "model-cache").Logger(),
	}
}

// Get returns the model for (path, site), loading it on first access.
// Returns nil when path is empty or the artifact cannot be loaded.
func (c *Cache) Get(path, site string) *Model {
	if path == "" {
		return nil
	}
	key := cacheKey{path: path, site: site}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok {
		c.lru.MoveToFront(entry.elem)
		c.mu.Unlock()
		<-entry.ready
		metrics.ModelCacheHits.Inc()
		return entry.model
	}

	entry := &cacheEntry{ready: make(chan struct{})}
	entry.elem = c.lru.PushFront(key)
	c.entries[key] = entry
	if c.lru.Len() > c.size {
		oldest := c.lru.Back()
		c.lru.Remove(oldest)
		delete(c.entries, oldest.Value.(cacheKey))
		metrics.ModelCacheEvictions.Inc()
	}
	c.mu.Unlock()

	metrics.ModelCacheMisses.Inc()

	// Load outside the lock; other callers for this key wait on ready.
	model, err := Load(path, site)
	if err != nil {
		c.logger.Error().Err(err).Str("path", path).Str("site", site).
			Msg("unable to load recommender model")
		model = nil
	}
	entry.model = model
	close(entry.ready)
	return model
}

// Len reports the number of cached entries, including cached failures.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
