package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/promptnexus/promptnexus/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "promptnexus",
	Short: "Prompt sharing platform for AI power users",
	Long: `PromptNexus is a community catalogue of AI prompts.

Users browse prompts by role and task, rate and copy the ones they use,
and track how their own contributions perform. Guests get a small preview
of the catalogue; signing in unlocks search, filtering and pagination.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.promptnexus/config.yaml)",
	)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedCmd)
}

// loadConfig reads configuration and builds the logger the commands share.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, err
	}

	level := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	return cfg, logger, nil
}
