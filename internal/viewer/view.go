package viewer

import (
	"time"

	"github.com/PabloPavan/snipdeck/internal/apperrors"
	"github.com/PabloPavan/snipdeck/internal/render"
	"github.com/PabloPavan/snipdeck/internal/snippets"
)

type SnippetMeta struct {
	Slug         string            `json:"slug"`
	Title        string            `json:"title,omitempty"`
	Language     snippets.Language `json:"language"`
	LanguageName string            `json:"language_name"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type VersionSummary struct {
	VersionNumber int       `json:"version_number"`
	CommitMessage string    `json:"commit_message"`
	CreatedAt     time.Time `json:"created_at"`
}

type SelectedVersion struct {
	VersionNumber int       `json:"version_number"`
	Content       string    `json:"content"`
	CommitMessage string    `json:"commit_message"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// View is the serialisable view state handed to rendering boundaries.
type View struct {
	Phase     Phase            `json:"phase"`
	Snippet   *SnippetMeta     `json:"snippet,omitempty"`
	Versions  []VersionSummary `json:"versions,omitempty"`
	Selected  *SelectedVersion `json:"selected,omitempty"`
	Strategy  render.Strategy  `json:"strategy"`
	ShareURL  string           `json:"share_url"`
	Error     string           `json:"error,omitempty"`
	ErrorKind apperrors.Kind   `json:"error_kind,omitempty"`
}

func (c *Controller) View() View {
	st := c.State()
	v := View{
		Phase:    st.Phase(),
		Strategy: render.Plain,
		ShareURL: c.shareURL,
	}

	switch s := st.(type) {
	case Ready:
		sn := s.Snippet
		v.Strategy = render.ForLanguage(sn.Language)
		v.Snippet = &SnippetMeta{
			Slug:         sn.Slug,
			Title:        sn.DisplayTitle(),
			Language:     sn.Language,
			LanguageName: sn.Language.DisplayName(),
			CreatedAt:    sn.CreatedAt,
			UpdatedAt:    sn.UpdatedAt,
		}
		v.Versions = make([]VersionSummary, 0, len(sn.Versions))
		for _, ver := range sn.Versions {
			v.Versions = append(v.Versions, VersionSummary{
				VersionNumber: ver.VersionNumber,
				CommitMessage: ver.CommitMessage,
				CreatedAt:     ver.CreatedAt,
			})
		}
		v.Selected = &SelectedVersion{
			VersionNumber: s.Selected.VersionNumber,
			Content:       s.Selected.Content,
			CommitMessage: s.Selected.CommitMessage,
			CreatedAt:     s.Selected.CreatedAt,
			UpdatedAt:     s.Selected.UpdatedAt,
		}
	case Failed:
		v.Error = s.Err.Error()
		v.ErrorKind = apperrors.KindOf(s.Err)
	}
	return v
}
