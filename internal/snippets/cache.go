package snippets

import (
	"context"
	"time"
)

// Cache holds fetched snippets by slug. Snippet versions are immutable, so a
// cached entry can only miss versions appended after it was stored.
type Cache interface {
	GetBySlug(ctx context.Context, slug string) (*Snippet, bool, error)
	SetBySlug(ctx context.Context, s *Snippet, ttl time.Duration) error
	DeleteBySlug(ctx context.Context, slug string) error
}
