package snippets

import "time"

type Version struct {
	ID            int64     `json:"id"`
	Content       string    `json:"content"`
	CommitMessage string    `json:"commit_message"`
	VersionNumber int       `json:"version_number"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Snippet as served by the snippet service. Versions are ordered oldest first
// and never empty once returned by a Client.
type Snippet struct {
	ID        int64     `json:"id"`
	Slug      string    `json:"slug"`
	Title     *string   `json:"title"`
	Language  Language  `json:"language"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Versions  []Version `json:"versions"`
}

func (s *Snippet) DisplayTitle() string {
	if s == nil || s.Title == nil {
		return ""
	}
	return *s.Title
}

// Latest returns the version with the greatest version number.
func (s *Snippet) Latest() (Version, bool) {
	if s == nil || len(s.Versions) == 0 {
		return Version{}, false
	}
	latest := s.Versions[0]
	for _, v := range s.Versions[1:] {
		if v.VersionNumber > latest.VersionNumber {
			latest = v
		}
	}
	return latest, true
}

func (s *Snippet) VersionByNumber(n int) (Version, bool) {
	if s == nil {
		return Version{}, false
	}
	for _, v := range s.Versions {
		if v.VersionNumber == n {
			return v, true
		}
	}
	return Version{}, false
}

const DefaultCommitMessage = "Initial Commit"

// Draft is the unsaved input of the creation form.
type Draft struct {
	Title         string
	Language      Language
	Content       string
	CommitMessage string
}

func NewDraft() Draft {
	return Draft{
		Language:      LanguagePlainText,
		CommitMessage: DefaultCommitMessage,
	}
}

// CreatePayload is the body of POST /snippets. An empty Title is omitted.
type CreatePayload struct {
	Title         string   `json:"title,omitempty"`
	Language      Language `json:"language"`
	Content       string   `json:"content"`
	CommitMessage string   `json:"commit_message"`
}

type Created struct {
	Slug string `json:"slug"`
}
