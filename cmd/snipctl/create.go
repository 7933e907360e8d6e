package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/PabloPavan/snipdeck/internal/snippets"
	"github.com/PabloPavan/snipdeck/internal/viewer"
)

type createResult struct {
	Slug     string `json:"slug"`
	ShareURL string `json:"share_url"`
}

func newCreateCmd(c *cli) *cobra.Command {
	var (
		title    string
		language string
		message  string
		file     string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a snippet from a file or stdin",
		Example: `  snipctl create --language python --file main.py
  echo 'select 1' | snipctl create --language sql --message "first draft"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := c.outputFormat()
			if err != nil {
				return err
			}
			content, err := c.readContent(file)
			if err != nil {
				return err
			}

			creator := viewer.NewCreator(c.client())
			created, err := creator.Submit(cmd.Context(), snippets.Draft{
				Title:         title,
				Language:      snippets.Language(language),
				Content:       content,
				CommitMessage: message,
			})
			if err != nil {
				return err
			}

			res := createResult{Slug: created.Slug, ShareURL: c.shareURL(created.Slug)}
			if format != "text" {
				return printStructured(c.out, format, res)
			}
			fmt.Fprintf(c.out, "Snippet created! Slug: %s\n%s\n", res.Slug, res.ShareURL)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&title, "title", "", "optional title")
	flags.StringVarP(&language, "language", "l", string(snippets.LanguagePlainText), "language tag (see snipctl languages)")
	flags.StringVarP(&message, "message", "m", snippets.DefaultCommitMessage, "commit message")
	flags.StringVarP(&file, "file", "f", "", "read content from file instead of stdin")
	return cmd
}

func (c *cli) readContent(file string) (string, error) {
	var r io.Reader = c.in
	if file != "" && file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return "", err
		}
		defer f.Close()
		r = f
	}

	var b strings.Builder
	if _, err := io.Copy(&b, io.LimitReader(r, 1<<20)); err != nil {
		return "", fmt.Errorf("read content: %w", err)
	}
	return b.String(), nil
}
