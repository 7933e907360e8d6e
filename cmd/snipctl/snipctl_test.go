package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const remoteSnippet = `{
	"id": 1,
	"slug": "abc123",
	"title": "Greeting",
	"language": "typescript",
	"created_at": "2024-05-01T12:00:00Z",
	"updated_at": "2024-05-01T13:00:00Z",
	"versions": [
		{"id": 2, "content": "console.log('two')\n", "commit_message": "second", "version_number": 2, "created_at": "2024-05-01T13:00:00Z", "updated_at": "2024-05-01T13:00:00Z"},
		{"id": 1, "content": "console.log('one')\n", "commit_message": "first", "version_number": 1, "created_at": "2024-05-01T12:00:00Z", "updated_at": "2024-05-01T12:00:00Z"}
	]
}`

type fakeClipboard struct {
	text string
	err  error
}

func (f *fakeClipboard) WriteText(text string) error {
	if f.err != nil {
		return f.err
	}
	f.text = text
	return nil
}

type harness struct {
	cli    *cli
	out    *bytes.Buffer
	errOut *bytes.Buffer
	clip   *fakeClipboard
	posted []map[string]any
	apiKey string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	h := &harness{
		out:    &bytes.Buffer{},
		errOut: &bytes.Buffer{},
		clip:   &fakeClipboard{},
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.apiKey = r.Header.Get("X-API-Key")
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/snippets/abc123":
			io.WriteString(w, remoteSnippet)
		case r.Method == http.MethodPost && r.URL.Path == "/snippets":
			var body map[string]any
			_ = json.NewDecoder(r.Body).Decode(&body)
			h.posted = append(h.posted, body)
			w.WriteHeader(http.StatusCreated)
			io.WriteString(w, `{"slug":"new999"}`)
		default:
			http.Error(w, "not found", http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)

	t.Setenv("SNIPDECK_API_URL", srv.URL)
	t.Setenv("SNIPDECK_PUBLIC_URL", "https://snip.example/")

	h.cli = &cli{
		v:         viper.New(),
		in:        strings.NewReader(""),
		out:       h.out,
		errOut:    h.errOut,
		clipboard: h.clip,
	}
	return h
}

func (h *harness) run(args ...string) error {
	root := newRootCmd(h.cli)
	root.SetArgs(args)
	return root.Execute()
}

func TestLanguagesTable(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("languages"))
	out := h.out.String()
	assert.Contains(t, out, "TAG")
	assert.Regexp(t, `typescript\s+TypeScript\s+javascript`, out)
	assert.Regexp(t, `txt\s+Plain text\s+plain`, out)
}

func TestLanguagesYAML(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("languages", "-o", "yaml"))
	var rows []map[string]string
	require.NoError(t, yaml.Unmarshal(h.out.Bytes(), &rows))
	require.NotEmpty(t, rows)
	assert.Equal(t, "txt", rows[0]["tag"])
	assert.Equal(t, "plain", rows[0]["strategy"])
}

func TestViewDefaultsToLatest(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("view", "abc123"))
	out := h.out.String()
	assert.Contains(t, out, "abc123  Greeting")
	assert.Contains(t, out, "Language: TypeScript (javascript)")
	assert.Contains(t, out, "Share:    https://snip.example/abc123")
	assert.Contains(t, out, "--- v2 ---\nconsole.log('two')\n")
}

func TestAPIKeyFromEnvAndFlag(t *testing.T) {
	h := newHarness(t)
	t.Setenv("SNIPDECK_API_KEY", "sk_env")

	require.NoError(t, h.run("view", "abc123"))
	assert.Equal(t, "sk_env", h.apiKey)

	h = newHarness(t)
	require.NoError(t, h.run("view", "abc123", "--api-key", "sk_flag"))
	assert.Equal(t, "sk_flag", h.apiKey)
}

func TestViewSelectsVersion(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("view", "abc123", "--version", "1", "-o", "json"))
	var v struct {
		Phase    string `json:"phase"`
		Selected struct {
			VersionNumber int `json:"version_number"`
		} `json:"selected"`
	}
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &v))
	assert.Equal(t, "ready", v.Phase)
	assert.Equal(t, 1, v.Selected.VersionNumber)
}

func TestViewUnknownVersionWarns(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("view", "abc123", "--version", "5"))
	assert.Contains(t, h.errOut.String(), "version 5 not found, showing v2")
	assert.Contains(t, h.out.String(), "--- v2 ---")
}

func TestViewNotFound(t *testing.T) {
	h := newHarness(t)

	err := h.run("view", "missing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snippet not found")
}

func TestCreateFromStdin(t *testing.T) {
	h := newHarness(t)
	h.cli.in = strings.NewReader("  select 1;  \n")

	require.NoError(t, h.run("create", "--language", "sql", "--message", " first "))
	require.Len(t, h.posted, 1)
	assert.Equal(t, map[string]any{
		"language":       "sql",
		"content":        "select 1;",
		"commit_message": "first",
	}, h.posted[0])
	assert.Contains(t, h.out.String(), "Snippet created! Slug: new999")
	assert.Contains(t, h.out.String(), "https://snip.example/new999")
}

func TestCreateFromFile(t *testing.T) {
	h := newHarness(t)
	path := filepath.Join(t.TempDir(), "main.py")
	require.NoError(t, os.WriteFile(path, []byte("print('hi')\n"), 0o600))

	require.NoError(t, h.run("create", "-l", "python", "-f", path, "--title", "Hi", "-o", "json"))
	require.Len(t, h.posted, 1)
	assert.Equal(t, "Hi", h.posted[0]["title"])
	assert.Equal(t, "Initial Commit", h.posted[0]["commit_message"])

	var res createResult
	require.NoError(t, json.Unmarshal(h.out.Bytes(), &res))
	assert.Equal(t, "new999", res.Slug)
}

func TestCreateValidationSkipsNetwork(t *testing.T) {
	h := newHarness(t)
	h.cli.in = strings.NewReader("   ")

	err := h.run("create")
	require.Error(t, err)
	assert.Equal(t, "content required", err.Error())
	assert.Empty(t, h.posted)

	h.cli.in = strings.NewReader("x")
	err = h.run("create", "--language", "cobol")
	require.Error(t, err)
	assert.Equal(t, "unsupported language", err.Error())
	assert.Empty(t, h.posted)
}

func TestCopyVersion(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("copy", "abc123", "--version", "1"))
	assert.Equal(t, "console.log('one')\n", h.clip.text)
	assert.Contains(t, h.errOut.String(), "Code copied")
}

func TestCopyFailureIsReported(t *testing.T) {
	h := newHarness(t)
	h.clip.err = errors.New("no clipboard")

	err := h.run("copy", "abc123")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to copy code")
}

func TestShareCopiesCanonicalLink(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run("share", "abc123"))
	assert.Equal(t, "https://snip.example/abc123", h.clip.text)
}

func TestConfigFile(t *testing.T) {
	h := newHarness(t)
	cfg := filepath.Join(t.TempDir(), "snipdeck.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("public_url: https://cfg.example\n"), 0o600))
	t.Setenv("SNIPDECK_PUBLIC_URL", "")

	require.NoError(t, h.run("share", "abc123", "--config", cfg))
	assert.Equal(t, "https://cfg.example/abc123", h.clip.text)
}

func TestUnsupportedOutput(t *testing.T) {
	h := newHarness(t)

	err := h.run("languages", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported output format")
}
