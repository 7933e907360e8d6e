package viewer

import (
	"context"
	"sync"

	"github.com/PabloPavan/snipdeck/internal/apperrors"
	"github.com/PabloPavan/snipdeck/internal/snippets"
)

const MsgSubmitInProgress = "submission already in progress"

type Submitter interface {
	CreateSnippet(ctx context.Context, payload snippets.CreatePayload) (*snippets.Created, error)
}

// Creator drives the creation form. At most one submission is in flight at a
// time and a failed submission keeps the draft so the user can retry.
type Creator struct {
	repo Submitter

	mu         sync.Mutex
	submitting bool
	draft      snippets.Draft
}

func NewCreator(repo Submitter) *Creator {
	return &Creator{repo: repo, draft: snippets.NewDraft()}
}

func (c *Creator) Draft() snippets.Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

func (c *Creator) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Submit validates d locally and, if it passes, sends it to the snippet
// service. The draft is reset only after a successful create.
func (c *Creator) Submit(ctx context.Context, d snippets.Draft) (*snippets.Created, error) {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return nil, apperrors.New(apperrors.KindConflict, MsgSubmitInProgress)
	}
	c.draft = d
	payload, err := PrepareDraft(d)
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}
	if c.repo == nil {
		c.mu.Unlock()
		return nil, apperrors.New(apperrors.KindInternal, "snippet repository not configured")
	}
	c.submitting = true
	c.mu.Unlock()

	created, err := c.repo.CreateSnippet(ctx, payload)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	if err != nil {
		return nil, err
	}
	c.draft = snippets.NewDraft()
	return created, nil
}
