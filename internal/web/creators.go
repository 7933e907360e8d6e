package web

import (
	"sync"

	"github.com/PabloPavan/snipdeck/internal/viewer"
)

type creatorEntry struct {
	creator *viewer.Creator
	refs    int
}

// creatorRegistry hands out one Creator per visitor session so a double
// submitted form is rejected instead of creating two snippets.
type creatorRegistry struct {
	mu      sync.Mutex
	entries map[string]*creatorEntry
}

func newCreatorRegistry() *creatorRegistry {
	return &creatorRegistry{entries: make(map[string]*creatorEntry)}
}

func (c *creatorRegistry) acquire(key string, repo viewer.Submitter) *viewer.Creator {
	if key == "" {
		return viewer.NewCreator(repo)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		e = &creatorEntry{creator: viewer.NewCreator(repo)}
		c.entries[key] = e
	}
	e.refs++
	return e.creator
}

func (c *creatorRegistry) release(key string) {
	if key == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return
	}
	e.refs--
	if e.refs <= 0 {
		delete(c.entries, key)
	}
}

func (c *creatorRegistry) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
