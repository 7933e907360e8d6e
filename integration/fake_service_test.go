package integration_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/PabloPavan/snipdeck/internal/snippets"
)

// fakeService is an in-memory snippet service speaking the remote wire format.
type fakeService struct {
	mu       sync.Mutex
	snippets map[string]*snippets.Snippet
	next     int
	fetches  map[string]int
	down     bool
}

func newFakeService(t *testing.T) (*fakeService, *httptest.Server) {
	t.Helper()
	f := &fakeService{
		snippets: make(map[string]*snippets.Snippet),
		fetches:  make(map[string]int),
	}

	r := chi.NewRouter()
	r.Get("/snippets/{slug}", f.get)
	r.Post("/snippets", f.create)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return f, srv
}

func (f *fakeService) get(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetches[slug]++

	if f.down {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	s, ok := f.snippets[slug]
	if !ok {
		http.Error(w, `{"detail":"Not found."}`, http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s)
}

func (f *fakeService) create(w http.ResponseWriter, r *http.Request) {
	var in snippets.CreatePayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		http.Error(w, `{"message":"invalid json"}`, http.StatusBadRequest)
		return
	}
	if !in.Language.Known() {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "language is not supported"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.down {
		http.Error(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}

	f.next++
	now := time.Now().UTC()
	s := &snippets.Snippet{
		ID:        int64(f.next),
		Slug:      fmt.Sprintf("s%04d", f.next),
		Language:  in.Language,
		CreatedAt: now,
		UpdatedAt: now,
		Versions: []snippets.Version{{
			ID:            1,
			Content:       in.Content,
			CommitMessage: in.CommitMessage,
			VersionNumber: 1,
			CreatedAt:     now,
			UpdatedAt:     now,
		}},
	}
	if t := strings.TrimSpace(in.Title); t != "" {
		s.Title = &t
	}
	f.snippets[s.Slug] = s

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{"id": s.ID, "slug": s.Slug})
}

// addVersion appends a version the way an edit on the service side would.
func (f *fakeService) addVersion(slug, content, message string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := f.snippets[slug]
	n := len(s.Versions) + 1
	now := time.Now().UTC()
	s.Versions = append(s.Versions, snippets.Version{
		ID:            int64(n),
		Content:       content,
		CommitMessage: message,
		VersionNumber: n,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	s.UpdatedAt = now
}

func (f *fakeService) fetchCount(slug string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fetches[slug]
}

func (f *fakeService) setDown(down bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.down = down
}
