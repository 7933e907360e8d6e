package snippets

import (
	"errors"

	"github.com/PabloPavan/snipdeck/internal/apperrors"
)

var (
	ErrNotFound    = errors.New("snippet not found")
	ErrNoVersions  = errors.New("snippet has no versions")
	ErrMissingSlug = errors.New("create response missing slug")
)

func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || apperrors.Is(err, apperrors.KindNotFound)
}

func IsTransport(err error) bool {
	return apperrors.Is(err, apperrors.KindTransport)
}
