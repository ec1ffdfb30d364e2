package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/jamb/internal/adapters/cli"
)

func NewSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Show how to import the seed dataset",
		Long:  `Print the commands that import the bundled seed data into a Sanity dataset.`,
		Args:  cobra.NoArgs,
		RunE:  runSeed,
	}
}

func runSeed(cmd *cobra.Command, _ []string) error {
	cfg, _ := loadConfig()
	if cfg == nil || cfg.Sanity.ProjectID == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "Skipping seed data instructions - Sanity environment variables not configured")
		return nil
	}

	out := cli.NewWriterOutput(cmd.OutOrStdout())
	if cmd.OutOrStdout() == io.Writer(os.Stdout) {
		out = cli.NewOutput()
	}
	printSeedInstructions(out, cfg.Sanity.Dataset)
	return nil
}

func printSeedInstructions(out *cli.Output, dataset string) {
	command := func(s string) string { return out.Cyan(s) }

	out.PrintDone("")
	out.PrintBox(
		out.Blue("To import the provided seed data into your Sanity dataset, run:"),
		"",
		command("npx sanity dataset import seed-data.tar.gz <TARGET_DATASET>"),
		"",
		out.Blue("Example:"),
		command("npx sanity dataset import seed-data.tar.gz "+dataset+" --replace"),
		"",
	)
	out.PrintDone("")
	out.PrintDone(out.Blue("For more info, run: npx sanity dataset import --help"))
}
