package commands

import (
	"github.com/spf13/cobra"

	"github.com/3-lines-studio/jamb/internal/adapters/cli"
	"github.com/3-lines-studio/jamb/internal/initcmd"
)

func NewInitCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "init [dir]",
		Short: "Create a starter content directory",
		Long: `Write a local dataset (settings, navbar, footer, home page and an
about page) plus a .env.example pointing JAMB_CONTENT_DIR at it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			return initcmd.Run(dir, initcmd.Options{
				SiteTitle: title,
				Output:    cli.NewWriterOutput(cmd.OutOrStdout()),
			})
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "site title (default derived from the directory name)")
	return cmd
}
