package commands

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/3-lines-studio/jamb"
)

var (
	serveAddr string
	serveDev  bool
)

func NewServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the site",
		Long: `Serve the site over HTTP until interrupted.

Examples:
  jamb serve
  jamb serve --addr :3000 --dev
  JAMB_CONTENT_DIR=./content jamb serve`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides JAMB_ADDR)")
	cmd.Flags().BoolVar(&serveDev, "dev", false, "dev mode: no asset hashing, errors shown, content watched")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if serveDev {
		cfg.Dev = true
		cfg.Watch = true
	}

	app, err := jamb.New(cfg)
	if err != nil {
		return err
	}
	defer app.Stop()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return app.Start(ctx)
}
