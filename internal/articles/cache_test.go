package articles

import (
	"fmt"
	"sync"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func TestCacheLookupRequiresMatchingTimestamp(t *testing.T) {
	cache := NewCache()
	summary := interfaces.ArticleSummary{Title: "Cached", Href: "./cached.html"}

	if _, ok := cache.Lookup("/a.md", 10); ok {
		t.Fatal("expected miss on empty cache")
	}

	cache.Store("/a.md", 10, summary)

	got, ok := cache.Lookup("/a.md", 10)
	if !ok || got != summary {
		t.Fatalf("expected hit with stored summary, got %#v (%v)", got, ok)
	}
	if _, ok := cache.Lookup("/a.md", 11); ok {
		t.Fatal("expected miss for a newer timestamp")
	}
	if _, ok := cache.Lookup("/a.md", 9); ok {
		t.Fatal("expected miss for an older timestamp")
	}
}

func TestCacheStoreOverwrites(t *testing.T) {
	cache := NewCache()
	cache.Store("/a.md", 1, interfaces.ArticleSummary{Title: "v1"})
	cache.Store("/a.md", 2, interfaces.ArticleSummary{Title: "v2"})

	if cache.Len() != 1 {
		t.Fatalf("expected single entry, got %d", cache.Len())
	}
	if _, ok := cache.Lookup("/a.md", 1); ok {
		t.Fatal("expected the previous entry to be replaced")
	}
	if got, _ := cache.Lookup("/a.md", 2); got.Title != "v2" {
		t.Fatalf("expected v2, got %q", got.Title)
	}
}

func TestCacheConcurrentStores(t *testing.T) {
	cache := NewCache()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			path := fmt.Sprintf("/%d.md", i%4)
			cache.Store(path, int64(i), interfaces.ArticleSummary{Title: path})
			cache.Lookup(path, int64(i))
		}(i)
	}
	wg.Wait()

	if cache.Len() != 4 {
		t.Fatalf("expected 4 entries, got %d", cache.Len())
	}
}
