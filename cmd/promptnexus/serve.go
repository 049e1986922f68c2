package main

import (
	"github.com/spf13/cobra"

	"github.com/promptnexus/promptnexus/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the PromptNexus server",
	Long: `Start the PromptNexus HTTP server.

The server opens (or creates) the SQLite database at the configured path
and serves the JSON API on the configured port. Shut down with Ctrl+C or
SIGTERM; in-flight requests get 30 seconds to drain.

Examples:
  promptnexus serve                           # defaults from config.yaml
  PROMPTNEXUS_PORT=3000 promptnexus serve     # override via environment`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		srv, err := server.New(cfg, logger)
		if err != nil {
			return err
		}

		return srv.Start()
	},
}
