package snippets

import (
	"context"
	"strings"
	"time"

	"github.com/PabloPavan/snipdeck/internal/apperrors"
	"github.com/PabloPavan/snipdeck/internal/telemetry"
)

type Remote interface {
	FetchSnippet(ctx context.Context, slug string) (*Snippet, error)
	CreateSnippet(ctx context.Context, payload CreatePayload) (*Created, error)
}

// Service fronts the remote snippet service with an optional read cache.
type Service struct {
	Remote   Remote
	Cache    Cache
	CacheTTL time.Duration
}

func (s *Service) FetchSnippet(ctx context.Context, slug string) (*Snippet, error) {
	if s.Remote == nil {
		return nil, apperrors.New(apperrors.KindInternal, "snippet service not configured")
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, apperrors.New(apperrors.KindInvalidInput, "slug is required")
	}

	if s.Cache != nil {
		cached, ok, err := s.Cache.GetBySlug(ctx, slug)
		if err != nil {
			telemetry.LogWarn(ctx, "snippet cache read failed",
				telemetry.LogString("slug", slug),
				telemetry.LogString("error", err.Error()),
			)
		} else if ok {
			return cached, nil
		}
	}

	snippet, err := s.Remote.FetchSnippet(ctx, slug)
	if err != nil {
		return nil, err
	}

	if s.Cache != nil && s.CacheTTL > 0 {
		if err := s.Cache.SetBySlug(ctx, snippet, s.CacheTTL); err != nil {
			telemetry.LogWarn(ctx, "snippet cache write failed",
				telemetry.LogString("slug", slug),
				telemetry.LogString("error", err.Error()),
			)
		}
	}

	return snippet, nil
}

func (s *Service) CreateSnippet(ctx context.Context, payload CreatePayload) (*Created, error) {
	if s.Remote == nil {
		return nil, apperrors.New(apperrors.KindInternal, "snippet service not configured")
	}

	created, err := s.Remote.CreateSnippet(ctx, payload)
	if err != nil {
		return nil, err
	}

	telemetry.LogInfo(ctx, "snippet created",
		telemetry.LogString("slug", created.Slug),
		telemetry.LogString("language", string(payload.Language)),
	)
	return created, nil
}
