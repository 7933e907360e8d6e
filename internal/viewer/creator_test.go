package viewer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PabloPavan/snipdeck/internal/apperrors"
	"github.com/PabloPavan/snipdeck/internal/snippets"
)

type submitterStub struct {
	calls    int
	createFn func(ctx context.Context, payload snippets.CreatePayload) (*snippets.Created, error)
}

func (s *submitterStub) CreateSnippet(ctx context.Context, payload snippets.CreatePayload) (*snippets.Created, error) {
	s.calls++
	if s.createFn != nil {
		return s.createFn(ctx, payload)
	}
	return &snippets.Created{Slug: "new123"}, nil
}

func assertKind(t *testing.T, err error, kind apperrors.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error kind %s, got nil", kind)
	}
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		t.Fatalf("expected apperrors.Error, got %T", err)
	}
	if appErr.Kind != kind {
		t.Fatalf("expected kind %s, got %s", kind, appErr.Kind)
	}
}

func TestPrepareDraftTrimsAndDefaults(t *testing.T) {
	payload, err := PrepareDraft(snippets.Draft{
		Title:         "   ",
		Content:       "  x  ",
		CommitMessage: " first ",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Title != "" {
		t.Fatalf("blank title must be dropped: %q", payload.Title)
	}
	if payload.Language != snippets.LanguagePlainText {
		t.Fatalf("expected txt, got %s", payload.Language)
	}
	if payload.Content != "x" || payload.CommitMessage != "first" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestPrepareDraftNormalizesLanguage(t *testing.T) {
	payload, err := PrepareDraft(snippets.Draft{
		Language:      " Python ",
		Content:       "print(1)",
		CommitMessage: "Initial Commit",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if payload.Language != snippets.LanguagePython {
		t.Fatalf("unexpected language: %s", payload.Language)
	}
}

func TestPrepareDraftMessages(t *testing.T) {
	cases := []struct {
		name  string
		draft snippets.Draft
		want  string
	}{
		{"blank content", snippets.Draft{Content: "   ", CommitMessage: "m"}, MsgContentRequired},
		{"blank message", snippets.Draft{Content: "x", CommitMessage: " "}, MsgCommitMessageRequired},
		{"both blank", snippets.Draft{}, MsgContentRequired},
		{"unknown language", snippets.Draft{Content: "x", CommitMessage: "m", Language: "cobol"}, MsgUnsupportedLanguage},
		{"long title", snippets.Draft{Content: "x", CommitMessage: "m", Title: strings.Repeat("t", 201)}, MsgTitleTooLong},
		{"too many lines", snippets.Draft{Content: strings.Repeat("x\n", 5001), CommitMessage: "m"}, MsgContentTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := PrepareDraft(tc.draft)
			assertKind(t, err, apperrors.KindInvalidInput)
			if err.Error() != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, err.Error())
			}
		})
	}
}

func TestCreatorSubmitSuccessResetsDraft(t *testing.T) {
	repo := &submitterStub{}
	c := NewCreator(repo)

	var got snippets.CreatePayload
	repo.createFn = func(ctx context.Context, payload snippets.CreatePayload) (*snippets.Created, error) {
		got = payload
		return &snippets.Created{Slug: "abc"}, nil
	}

	created, err := c.Submit(context.Background(), snippets.Draft{
		Language:      snippets.LanguageRust,
		Content:       "fn main() {}",
		CommitMessage: "Initial Commit",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Slug != "abc" {
		t.Fatalf("unexpected slug: %s", created.Slug)
	}
	if got.Language != snippets.LanguageRust || got.Title != "" {
		t.Fatalf("unexpected payload: %+v", got)
	}
	if c.Draft() != snippets.NewDraft() {
		t.Fatalf("draft not reset: %+v", c.Draft())
	}
	if c.Submitting() {
		t.Fatal("submitting flag must be cleared")
	}
}

func TestCreatorValidationSkipsNetwork(t *testing.T) {
	repo := &submitterStub{}
	c := NewCreator(repo)

	_, err := c.Submit(context.Background(), snippets.Draft{Content: " ", CommitMessage: "m"})
	assertKind(t, err, apperrors.KindInvalidInput)
	if repo.calls != 0 {
		t.Fatalf("expected no network calls, got %d", repo.calls)
	}
	if c.Submitting() {
		t.Fatal("validation failure must not mark submitting")
	}
}

func TestCreatorFailureKeepsDraft(t *testing.T) {
	repo := &submitterStub{createFn: func(ctx context.Context, payload snippets.CreatePayload) (*snippets.Created, error) {
		return nil, apperrors.New(apperrors.KindTransport, "failed to reach snippet service")
	}}
	c := NewCreator(repo)
	draft := snippets.Draft{Title: "keep me", Content: "x", CommitMessage: "m", Language: snippets.LanguageSQL}

	_, err := c.Submit(context.Background(), draft)
	assertKind(t, err, apperrors.KindTransport)
	if c.Draft() != draft {
		t.Fatalf("draft lost: %+v", c.Draft())
	}
	if c.Submitting() {
		t.Fatal("submitting flag must be cleared after failure")
	}
}

func TestCreatorRejectsConcurrentSubmit(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	repo := &submitterStub{createFn: func(ctx context.Context, payload snippets.CreatePayload) (*snippets.Created, error) {
		close(entered)
		<-release
		return &snippets.Created{Slug: "first"}, nil
	}}
	c := NewCreator(repo)
	draft := snippets.Draft{Content: "x", CommitMessage: "m"}

	done := make(chan error, 1)
	go func() {
		_, err := c.Submit(context.Background(), draft)
		done <- err
	}()

	<-entered
	if !c.Submitting() {
		t.Fatal("expected submitting while request in flight")
	}
	_, err := c.Submit(context.Background(), draft)
	assertKind(t, err, apperrors.KindConflict)

	close(release)
	if err := <-done; err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if repo.calls != 1 {
		t.Fatalf("expected one create call, got %d", repo.calls)
	}
}
