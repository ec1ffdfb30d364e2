package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/jamb"
	"github.com/3-lines-studio/jamb/internal/adapters/cli"
)

var (
	exportOut   string
	exportClean bool
)

func NewExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the published site as static files",
		Long: `Render the home page and every published page to
<out>/<slug>/index.html, with hashed assets under <out>/dist.

Examples:
  jamb export
  jamb export --out public_html --clean`,
		Args: cobra.NoArgs,
		RunE: runExport,
	}

	cmd.Flags().StringVarP(&exportOut, "out", "o", "", "output directory (overrides JAMB_EXPORT_DIR)")
	cmd.Flags().BoolVar(&exportClean, "clean", false, "remove the output directory first")
	return cmd
}

func runExport(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	app, err := jamb.New(cfg)
	if err != nil {
		return err
	}
	defer app.Stop()

	out := cli.NewOutput()
	result := app.Export(cmd.Context(), jamb.ExportOptions{OutDir: exportOut, Clean: exportClean, Output: out})
	if result.Error != nil {
		out.PrintError("%v", result.Error)
		return fmt.Errorf("export failed")
	}
	out.PrintDone("Done.")
	return nil
}
