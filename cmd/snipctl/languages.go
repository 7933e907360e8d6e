package main

import (
	"github.com/spf13/cobra"

	"github.com/PabloPavan/snipdeck/internal/render"
	"github.com/PabloPavan/snipdeck/internal/snippets"
)

type languageRow struct {
	Tag      snippets.Language `json:"tag"`
	Name     string            `json:"name"`
	Strategy render.Strategy   `json:"strategy"`
}

func newLanguagesCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := c.outputFormat()
			if err != nil {
				return err
			}

			langs := snippets.Languages()
			out := make([]languageRow, 0, len(langs))
			for _, l := range langs {
				out = append(out, languageRow{Tag: l, Name: l.DisplayName(), Strategy: render.ForLanguage(l)})
			}
			if format != "text" {
				return printStructured(c.out, format, out)
			}

			rows := make([][]string, 0, len(out))
			for _, l := range out {
				rows = append(rows, []string{string(l.Tag), l.Name, l.Strategy.String()})
			}
			return printTable(c.out, []string{"Tag", "Name", "Strategy"}, rows)
		},
	}
}
