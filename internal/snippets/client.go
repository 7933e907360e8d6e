package snippets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PabloPavan/snipdeck/internal"
	"github.com/PabloPavan/snipdeck/internal/apperrors"
)

const (
	pathSnippets   = "/snippets"
	pathSnippetFmt = "/snippets/%s"

	maxErrorBody     = 4 << 10
	defaultUserAgent = "snipdeck"
)

// Client talks to the remote snippet service. It is the only component that
// performs network I/O for snippets.
type Client struct {
	baseURL   string
	http      *http.Client
	UserAgent string
	// APIKey is sent as X-API-Key when set.
	APIKey string
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		baseURL:   internal.TrimBaseURL(baseURL),
		http:      httpClient,
		UserAgent: defaultUserAgent,
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) FetchSnippet(ctx context.Context, slug string) (*Snippet, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, apperrors.New(apperrors.KindInvalidInput, "slug is required")
	}

	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf(pathSnippetFmt, url.PathEscape(slug)), nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindTransport, "failed to reach snippet service", err)
	}
	defer res.Body.Close()

	if res.StatusCode == http.StatusNotFound {
		return nil, apperrors.Wrap(apperrors.KindNotFound, "snippet not found", ErrNotFound)
	}
	if res.StatusCode != http.StatusOK {
		return nil, statusError(res, "failed to fetch snippet")
	}

	var s Snippet
	if err := json.NewDecoder(res.Body).Decode(&s); err != nil {
		return nil, apperrors.Wrap(apperrors.KindTransport, "malformed snippet response", err)
	}
	if err := normalize(&s, slug); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) CreateSnippet(ctx context.Context, payload CreatePayload) (*Created, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "failed to encode snippet", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, pathSnippets, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindTransport, "failed to reach snippet service", err)
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusBadRequest || res.StatusCode == http.StatusUnprocessableEntity:
		msg := serviceMessage(res.Body)
		if msg == "" {
			msg = "snippet rejected by service"
		}
		return nil, apperrors.New(apperrors.KindInvalidInput, msg)
	case res.StatusCode < 200 || res.StatusCode > 299:
		return nil, statusError(res, "failed to create snippet")
	}

	var out Created
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, apperrors.Wrap(apperrors.KindTransport, "malformed create response", err)
	}
	out.Slug = strings.TrimSpace(out.Slug)
	if out.Slug == "" {
		return nil, apperrors.Wrap(apperrors.KindTransport, "malformed create response", ErrMissingSlug)
	}
	return &out, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.KindInternal, "invalid snippet service url", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if c.APIKey != "" {
		req.Header.Set("X-API-Key", c.APIKey)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// normalize enforces the invariants callers rely on: at least one version,
// ordered by version number ascending.
func normalize(s *Snippet, requested string) error {
	if len(s.Versions) == 0 {
		return apperrors.Wrap(apperrors.KindTransport, "malformed snippet response", ErrNoVersions)
	}
	sort.SliceStable(s.Versions, func(i, j int) bool {
		return s.Versions[i].VersionNumber < s.Versions[j].VersionNumber
	})
	if strings.TrimSpace(s.Slug) == "" {
		s.Slug = requested
	}
	if s.Title != nil && strings.TrimSpace(*s.Title) == "" {
		s.Title = nil
	}
	return nil
}

func statusError(res *http.Response, msg string) error {
	detail := serviceMessage(res.Body)
	return apperrors.Wrap(apperrors.KindTransport, msg,
		fmt.Errorf("snippet service returned %d: %s", res.StatusCode, detail))
}

// serviceMessage extracts a human readable message from an error body, which
// may be plain text or a JSON object with "message" or "error".
func serviceMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return ""
	}
	text := strings.TrimSpace(string(raw))
	if strings.HasPrefix(text, "{") {
		var body struct {
			Message string `json:"message"`
			Error   string `json:"error"`
		}
		if json.Unmarshal(raw, &body) == nil {
			if body.Message != "" {
				return body.Message
			}
			return body.Error
		}
	}
	return text
}
