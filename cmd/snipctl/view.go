package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/PabloPavan/snipdeck/internal/viewer"
)

// loadSnippet fetches slug and applies --version when it was given. An unknown
// version prints a warning and keeps the latest one selected.
func (c *cli) loadSnippet(ctx context.Context, cmd *cobra.Command, slug string, version int) (*viewer.Controller, error) {
	ctrl := viewer.NewController(c.client(), slug, c.shareURL(slug))
	if failed, ok := ctrl.Load(ctx).(viewer.Failed); ok {
		return nil, failed.Err
	}

	if cmd.Flags().Changed("version") {
		if _, ok := ctrl.Select(version); !ok {
			latest := ctrl.State().(viewer.Ready).Selected.VersionNumber
			fmt.Fprintf(c.errOut, "warning: version %d not found, showing v%d\n", version, latest)
		}
	}
	return ctrl, nil
}

func newViewCmd(c *cli) *cobra.Command {
	var version int

	cmd := &cobra.Command{
		Use:   "view <slug>",
		Short: "Show a snippet and the selected version",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := c.outputFormat()
			if err != nil {
				return err
			}
			ctrl, err := c.loadSnippet(cmd.Context(), cmd, args[0], version)
			if err != nil {
				return err
			}

			if format != "text" {
				return printStructured(c.out, format, ctrl.View())
			}
			return printViewText(c.out, ctrl.View())
		},
	}
	cmd.Flags().IntVar(&version, "version", 0, "version number (default latest)")
	return cmd
}

func printViewText(w io.Writer, v viewer.View) error {
	meta := v.Snippet
	if meta == nil || v.Selected == nil {
		return fmt.Errorf("snippet not loaded")
	}

	title := meta.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintf(w, "%s  %s\n", meta.Slug, title)
	fmt.Fprintf(w, "Language: %s (%s)\n", meta.LanguageName, v.Strategy)
	fmt.Fprintf(w, "Share:    %s\n\n", v.ShareURL)

	rows := make([][]string, 0, len(v.Versions))
	for i := len(v.Versions) - 1; i >= 0; i-- {
		ver := v.Versions[i]
		mark := ""
		if ver.VersionNumber == v.Selected.VersionNumber {
			mark = "*"
		}
		rows = append(rows, []string{
			mark,
			fmt.Sprintf("v%d", ver.VersionNumber),
			truncate(ver.CommitMessage, 60),
			ver.CreatedAt.UTC().Format("2006-01-02 15:04"),
		})
	}
	if err := printTable(w, []string{"", "Version", "Message", "Created"}, rows); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n--- v%d ---\n", v.Selected.VersionNumber)
	_, err := io.WriteString(w, v.Selected.Content)
	if err == nil && len(v.Selected.Content) > 0 && v.Selected.Content[len(v.Selected.Content)-1] != '\n' {
		_, err = io.WriteString(w, "\n")
	}
	return err
}
