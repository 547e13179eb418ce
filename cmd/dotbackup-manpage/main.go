// Command dotbackup-manpage generates the dotbackup and dotsetup man pages.
//
// With no arguments it writes the dotbackup page to stdout. With -d DIR it
// writes dotbackup.1 and dotsetup.1 into DIR, and --markdown adds the
// Markdown reference pages.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/dotbackup/cmd/dotbackup/commands"
)

func main() {
	var (
		dir      string
		markdown bool
		setup    bool
	)

	rootCmd := &cobra.Command{
		Use:           "dotbackup-manpage",
		Short:         "Generate man pages for dotbackup and dotsetup",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dir == "" {
				mode := commands.ModeBackup
				if setup {
					mode = commands.ModeSetup
				}
				return commands.WriteManPage(cmd.OutOrStdout(), mode)
			}

			fs := afero.NewOsFs()
			if err := commands.GenManPages(fs, dir); err != nil {
				return err
			}
			if markdown {
				if err := commands.GenMarkdown(fs, dir); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Documentation generated in %s\n", dir)
			return nil
		},
	}

	rootCmd.Flags().StringVarP(&dir, "dir", "d", "", "output directory for man pages")
	rootCmd.Flags().BoolVar(&markdown, "markdown", false, "also write Markdown reference pages")
	rootCmd.Flags().BoolVar(&setup, "setup", false, "write the dotsetup page to stdout")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
