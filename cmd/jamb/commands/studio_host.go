package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewStudioHostCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "studio-host",
		Short: "Print the Sanity Studio host for this deployment",
		Long: `Print the studio host name derived from HOST_NAME and
SANITY_STUDIO_PRODUCTION_HOSTNAME. Branch deployments get
"<branch>-<production>", main gets the production name, and without a
production name the project id is used.`,
		Args: cobra.NoArgs,
		RunE: runStudioHost,
	}
}

func runStudioHost(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if cfg == nil {
		return err
	}
	host := cfg.StudioHost()
	if host == "" {
		return fmt.Errorf("no studio host: set SANITY_STUDIO_PRODUCTION_HOSTNAME or SANITY_PROJECT_ID")
	}
	fmt.Fprintln(cmd.OutOrStdout(), host)
	fmt.Fprintf(cmd.ErrOrStderr(), "Sanity Studio Host: https://%s.sanity.studio\n", host)
	return nil
}
