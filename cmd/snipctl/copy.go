package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCopyCmd(c *cli) *cobra.Command {
	var version int

	cmd := &cobra.Command{
		Use:   "copy <slug>",
		Short: "Copy a version's content to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := c.loadSnippet(cmd.Context(), cmd, args[0], version)
			if err != nil {
				return err
			}
			if _, err := ctrl.CopyContent(c.clipboard); err != nil {
				return err
			}
			fmt.Fprintln(c.errOut, "Code copied")
			return nil
		},
	}
	cmd.Flags().IntVar(&version, "version", 0, "version number (default latest)")
	return cmd
}

func newShareCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "share <slug>",
		Short: "Copy the snippet's share link to the clipboard",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl, err := c.loadSnippet(cmd.Context(), cmd, args[0], 0)
			if err != nil {
				return err
			}
			if err := ctrl.CopyShareLink(c.clipboard); err != nil {
				return err
			}
			fmt.Fprintf(c.errOut, "Link copied: %s\n", ctrl.ShareURL())
			return nil
		},
	}
}
