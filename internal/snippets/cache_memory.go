package snippets

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	snippet    Snippet
	expiresAt  time.Time
	insertedAt time.Time
}

// MemoryCache is a size-bounded TTL cache used when Redis is not configured.
// When full, the oldest inserted entry is evicted.
type MemoryCache struct {
	mu      sync.Mutex
	items   map[string]*memoryEntry
	maxSize int
	now     func() time.Time
}

func NewMemoryCache(maxSize int) *MemoryCache {
	if maxSize < 1 {
		maxSize = 1
	}
	return &MemoryCache{
		items:   make(map[string]*memoryEntry, maxSize),
		maxSize: maxSize,
		now:     time.Now,
	}
}

func (c *MemoryCache) GetBySlug(_ context.Context, slug string) (*Snippet, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.items[slug]
	if !ok {
		return nil, false, nil
	}
	if c.now().After(e.expiresAt) {
		delete(c.items, slug)
		return nil, false, nil
	}
	s := cloneSnippet(e.snippet)
	return &s, true, nil
}

func (c *MemoryCache) SetBySlug(_ context.Context, s *Snippet, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if _, ok := c.items[s.Slug]; !ok && len(c.items) >= c.maxSize {
		c.evictOldest()
	}
	c.items[s.Slug] = &memoryEntry{
		snippet:    cloneSnippet(*s),
		expiresAt:  now.Add(ttl),
		insertedAt: now,
	}
	return nil
}

func (c *MemoryCache) DeleteBySlug(_ context.Context, slug string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, slug)
	return nil
}

func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *MemoryCache) evictOldest() {
	var oldestKey string
	var oldest time.Time
	for k, e := range c.items {
		if oldestKey == "" || e.insertedAt.Before(oldest) {
			oldestKey = k
			oldest = e.insertedAt
		}
	}
	if oldestKey != "" {
		delete(c.items, oldestKey)
	}
}

// cloneSnippet copies the versions slice so callers cannot mutate cached state.
func cloneSnippet(s Snippet) Snippet {
	s.Versions = append([]Version(nil), s.Versions...)
	if s.Title != nil {
		t := *s.Title
		s.Title = &t
	}
	return s
}
