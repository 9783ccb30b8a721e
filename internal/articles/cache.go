package articles

import (
	"sync"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Cache memoises article summaries by absolute file path. An entry is only
// served while its recorded modification time matches the file's current one.
// Entries are overwritten on change and never evicted, so the cache grows by
// one entry per distinct file for the lifetime of its owner.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	lastModifiedMillis int64
	summary            interfaces.ArticleSummary
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: map[string]cacheEntry{}}
}

// Lookup returns the stored summary for path when it was recorded at
// modifiedMillis.
func (c *Cache) Lookup(path string, modifiedMillis int64) (interfaces.ArticleSummary, bool) {
	c.mu.RLock()
	entry, ok := c.entries[path]
	c.mu.RUnlock()

	if !ok || entry.lastModifiedMillis != modifiedMillis {
		return interfaces.ArticleSummary{}, false
	}
	return entry.summary, true
}

// Store records summary for path, replacing any previous entry. Concurrent
// stores for the same path resolve as last write wins.
func (c *Cache) Store(path string, modifiedMillis int64, summary interfaces.ArticleSummary) {
	c.mu.Lock()
	c.entries[path] = cacheEntry{lastModifiedMillis: modifiedMillis, summary: summary}
	c.mu.Unlock()
}

// Len reports the number of cached paths.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
