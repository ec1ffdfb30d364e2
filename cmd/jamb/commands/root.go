package commands

import (
	"github.com/spf13/cobra"

	"github.com/3-lines-studio/jamb/internal/config"
)

var (
	configPath string
	envFiles   []string
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jamb",
		Short: "Server-rendered page builder site",
		Long: `jamb renders CMS page builder documents into a website.

Content comes from the Sanity query API or a local directory of JSON and
YAML documents (JAMB_CONTENT_DIR). Editors preview drafts with live
updates through draft mode.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	cmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", []string{".env", ".env.local"}, "env files to load before reading the environment")

	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewExportCmd())
	cmd.AddCommand(NewSeedCmd())
	cmd.AddCommand(NewStudioHostCmd())
	cmd.AddCommand(NewVersionCmd())
	return cmd
}

func Execute() error {
	return NewRootCmd().Execute()
}

// loadConfig reads env files, then the config file and environment.
// Validation errors are returned alongside the config so commands that do
// not serve pages can still use it.
func loadConfig() (*config.Config, error) {
	if err := config.LoadEnvFiles(envFiles...); err != nil {
		return nil, err
	}
	return config.Load(configPath)
}
