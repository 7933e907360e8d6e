package snippets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/PabloPavan/snipdeck/internal/apperrors"
)

type remoteStub struct {
	fetchCalls int
	fetchFn    func(ctx context.Context, slug string) (*Snippet, error)
	createFn   func(ctx context.Context, payload CreatePayload) (*Created, error)
}

func (r *remoteStub) FetchSnippet(ctx context.Context, slug string) (*Snippet, error) {
	r.fetchCalls++
	if r.fetchFn != nil {
		return r.fetchFn(ctx, slug)
	}
	return nil, apperrors.Wrap(apperrors.KindNotFound, "snippet not found", ErrNotFound)
}

func (r *remoteStub) CreateSnippet(ctx context.Context, payload CreatePayload) (*Created, error) {
	if r.createFn != nil {
		return r.createFn(ctx, payload)
	}
	return &Created{Slug: "created"}, nil
}

type cacheStub struct {
	getFn func(ctx context.Context, slug string) (*Snippet, bool, error)
	setFn func(ctx context.Context, s *Snippet, ttl time.Duration) error
}

func (c *cacheStub) GetBySlug(ctx context.Context, slug string) (*Snippet, bool, error) {
	if c.getFn != nil {
		return c.getFn(ctx, slug)
	}
	return nil, false, nil
}

func (c *cacheStub) SetBySlug(ctx context.Context, s *Snippet, ttl time.Duration) error {
	if c.setFn != nil {
		return c.setFn(ctx, s, ttl)
	}
	return nil
}

func (c *cacheStub) DeleteBySlug(ctx context.Context, slug string) error {
	return nil
}

func oneVersion(slug string) *Snippet {
	return &Snippet{
		Slug:     slug,
		Language: LanguagePlainText,
		Versions: []Version{{VersionNumber: 1, Content: "x"}},
	}
}

func TestServiceFetchUsesCache(t *testing.T) {
	remote := &remoteStub{fetchFn: func(ctx context.Context, slug string) (*Snippet, error) {
		return oneVersion(slug), nil
	}}
	svc := &Service{Remote: remote, Cache: NewMemoryCache(8), CacheTTL: time.Minute}

	for i := 0; i < 3; i++ {
		s, err := svc.FetchSnippet(context.Background(), "abc")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.Slug != "abc" {
			t.Fatalf("unexpected slug: %s", s.Slug)
		}
	}
	if remote.fetchCalls != 1 {
		t.Fatalf("expected one remote fetch, got %d", remote.fetchCalls)
	}
}

func TestServiceFetchCacheErrorsFallThrough(t *testing.T) {
	remote := &remoteStub{fetchFn: func(ctx context.Context, slug string) (*Snippet, error) {
		return oneVersion(slug), nil
	}}
	cache := &cacheStub{
		getFn: func(ctx context.Context, slug string) (*Snippet, bool, error) {
			return nil, false, errors.New("redis down")
		},
		setFn: func(ctx context.Context, s *Snippet, ttl time.Duration) error {
			return errors.New("redis down")
		},
	}
	svc := &Service{Remote: remote, Cache: cache, CacheTTL: time.Minute}

	if _, err := svc.FetchSnippet(context.Background(), "abc"); err != nil {
		t.Fatalf("cache failures must not fail the fetch: %v", err)
	}
	if remote.fetchCalls != 1 {
		t.Fatalf("expected remote fetch, got %d", remote.fetchCalls)
	}
}

func TestServiceFetchDoesNotCacheErrors(t *testing.T) {
	remote := &remoteStub{}
	cache := NewMemoryCache(8)
	svc := &Service{Remote: remote, Cache: cache, CacheTTL: time.Minute}

	_, err := svc.FetchSnippet(context.Background(), "missing")
	assertKind(t, err, apperrors.KindNotFound)
	_, err = svc.FetchSnippet(context.Background(), "missing")
	assertKind(t, err, apperrors.KindNotFound)

	if remote.fetchCalls != 2 {
		t.Fatalf("expected two remote fetches, got %d", remote.fetchCalls)
	}
	if cache.Len() != 0 {
		t.Fatalf("errors must not be cached, len=%d", cache.Len())
	}
}

func TestServiceFetchRejectsBlankSlug(t *testing.T) {
	remote := &remoteStub{}
	svc := &Service{Remote: remote}

	_, err := svc.FetchSnippet(context.Background(), " ")
	assertKind(t, err, apperrors.KindInvalidInput)
	if remote.fetchCalls != 0 {
		t.Fatal("expected no remote fetch")
	}
}

func TestServiceWithoutRemote(t *testing.T) {
	svc := &Service{}

	_, err := svc.FetchSnippet(context.Background(), "abc")
	assertKind(t, err, apperrors.KindInternal)
	_, err = svc.CreateSnippet(context.Background(), CreatePayload{})
	assertKind(t, err, apperrors.KindInternal)
}

func TestServiceCreatePassesThrough(t *testing.T) {
	var got CreatePayload
	remote := &remoteStub{createFn: func(ctx context.Context, payload CreatePayload) (*Created, error) {
		got = payload
		return &Created{Slug: "s1"}, nil
	}}
	svc := &Service{Remote: remote}

	created, err := svc.CreateSnippet(context.Background(), CreatePayload{Language: LanguageSQL, Content: "select 1", CommitMessage: "m"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Slug != "s1" || got.Language != LanguageSQL {
		t.Fatalf("unexpected result: %+v / %+v", created, got)
	}

	remote.createFn = func(ctx context.Context, payload CreatePayload) (*Created, error) {
		return nil, apperrors.New(apperrors.KindInvalidInput, "bad language")
	}
	_, err = svc.CreateSnippet(context.Background(), CreatePayload{})
	assertKind(t, err, apperrors.KindInvalidInput)
}
