package viewer

import (
	"errors"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/PabloPavan/snipdeck/internal/apperrors"
	"github.com/PabloPavan/snipdeck/internal/snippets"
)

const (
	MsgContentRequired       = "content required"
	MsgCommitMessageRequired = "commit message required"
	MsgUnsupportedLanguage   = "unsupported language"
	MsgContentTooLarge       = "content too large"
	MsgTitleTooLong          = "title too long"
	MsgCommitMessageTooLong  = "commit message too long"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		return strings.TrimSpace(field.String()) != ""
	})
	validate.RegisterValidation("language", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		_, ok := snippets.ParseLanguage(field.String())
		return ok
	})
	validate.RegisterValidation("maxlines", func(fl validator.FieldLevel) bool {
		field := fl.Field()
		if field.Kind() != reflect.String {
			return false
		}
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return strings.Count(field.String(), "\n")+1 <= limit
	})
}

type draftInput struct {
	Content       string `validate:"notblank,max=250000,maxlines=5000"`
	CommitMessage string `validate:"notblank,max=200"`
	Language      string `validate:"omitempty,language"`
	Title         string `validate:"max=200"`
}

// PrepareDraft validates d and turns it into the body sent to the snippet
// service. Text fields are trimmed, a blank title is dropped and an empty
// language becomes plain text.
func PrepareDraft(d snippets.Draft) (snippets.CreatePayload, error) {
	in := draftInput{
		Content:       strings.TrimSpace(d.Content),
		CommitMessage: strings.TrimSpace(d.CommitMessage),
		Language:      strings.TrimSpace(string(d.Language)),
		Title:         strings.TrimSpace(d.Title),
	}
	if err := validate.Struct(in); err != nil {
		return snippets.CreatePayload{}, apperrors.New(apperrors.KindInvalidInput, validationMessage(err))
	}

	lang := snippets.LanguagePlainText
	if in.Language != "" {
		lang, _ = snippets.ParseLanguage(in.Language)
	}

	return snippets.CreatePayload{
		Title:         in.Title,
		Language:      lang,
		Content:       in.Content,
		CommitMessage: in.CommitMessage,
	}, nil
}

var draftMessages = map[string]map[string]string{
	"Content": {
		"notblank": MsgContentRequired,
		"*":        MsgContentTooLarge,
	},
	"CommitMessage": {
		"notblank": MsgCommitMessageRequired,
		"*":        MsgCommitMessageTooLong,
	},
	"Language": {
		"*": MsgUnsupportedLanguage,
	},
	"Title": {
		"*": MsgTitleTooLong,
	},
}

func validationMessage(err error) string {
	const fallback = "invalid snippet"
	var valErrs validator.ValidationErrors
	if !errors.As(err, &valErrs) {
		return fallback
	}
	for _, valErr := range valErrs {
		if fieldMessages, ok := draftMessages[valErr.Field()]; ok {
			if msg, ok := fieldMessages[valErr.Tag()]; ok {
				return msg
			}
			if msg, ok := fieldMessages["*"]; ok {
				return msg
			}
		}
	}
	return fallback
}
