package viewer

import (
	"context"
	"net/url"
	"strings"
	"sync"

	"github.com/PabloPavan/snipdeck/internal"
	"github.com/PabloPavan/snipdeck/internal/apperrors"
	"github.com/PabloPavan/snipdeck/internal/render"
	"github.com/PabloPavan/snipdeck/internal/snippets"
)

type Fetcher interface {
	FetchSnippet(ctx context.Context, slug string) (*snippets.Snippet, error)
}

// Controller owns the view state of a single snippet page. Each view builds
// its own Controller; nothing is shared between instances.
type Controller struct {
	repo     Fetcher
	slug     string
	shareURL string

	mu      sync.Mutex
	state   State
	started bool
}

func NewController(repo Fetcher, slug, shareURL string) *Controller {
	return &Controller{
		repo:     repo,
		slug:     strings.TrimSpace(slug),
		shareURL: shareURL,
		state:    Loading{},
	}
}

// ShareURL is the canonical address of a snippet. It never pins a version.
func ShareURL(publicBase, slug string) string {
	return internal.TrimBaseURL(publicBase) + "/" + url.PathEscape(strings.TrimSpace(slug))
}

// Load fetches the snippet the first time it is called and selects the latest
// version. Later calls return the current state without any network I/O.
func (c *Controller) Load(ctx context.Context) State {
	c.mu.Lock()
	if c.started {
		st := c.state
		c.mu.Unlock()
		return st
	}
	c.started = true
	c.mu.Unlock()

	var next State
	snippet, err := c.fetch(ctx)
	if err != nil {
		next = Failed{Err: err}
	} else if latest, ok := snippet.Latest(); ok {
		next = Ready{Snippet: snippet, Selected: latest}
	} else {
		next = Failed{Err: apperrors.Wrap(apperrors.KindTransport, "malformed snippet response", snippets.ErrNoVersions)}
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = next
	return next
}

func (c *Controller) fetch(ctx context.Context) (*snippets.Snippet, error) {
	if c.repo == nil {
		return nil, apperrors.New(apperrors.KindInternal, "snippet repository not configured")
	}
	return c.repo.FetchSnippet(ctx, c.slug)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Select switches to the version with the given number. Unknown numbers and
// selections outside the Ready state are rejected and leave the state as is.
func (c *Controller) Select(versionNumber int) (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ready, ok := c.state.(Ready)
	if !ok {
		return c.state, false
	}
	v, ok := ready.Snippet.VersionByNumber(versionNumber)
	if !ok {
		return c.state, false
	}
	ready.Selected = v
	c.state = ready
	return ready, true
}

func (c *Controller) Strategy() render.Strategy {
	if ready, ok := c.State().(Ready); ok {
		return render.ForLanguage(ready.Snippet.Language)
	}
	return render.Plain
}

func (c *Controller) ShareURL() string {
	return c.shareURL
}

// CopyContent writes the selected version's content to cb. It reports false
// without touching cb when no version is selected.
func (c *Controller) CopyContent(cb Clipboard) (bool, error) {
	ready, ok := c.State().(Ready)
	if !ok {
		return false, nil
	}
	if err := cb.WriteText(ready.Selected.Content); err != nil {
		return false, apperrors.Wrap(apperrors.KindInternal, "failed to copy code", err)
	}
	return true, nil
}

func (c *Controller) CopyShareLink(cb Clipboard) error {
	if c.shareURL == "" {
		return apperrors.New(apperrors.KindInternal, "share url not configured")
	}
	if err := cb.WriteText(c.shareURL); err != nil {
		return apperrors.Wrap(apperrors.KindInternal, "failed to copy link", err)
	}
	return nil
}
