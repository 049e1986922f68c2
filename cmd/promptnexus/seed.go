package main

import (
	"github.com/spf13/cobra"

	sqliteRepo "github.com/promptnexus/promptnexus/internal/repository/sqlite"
	"github.com/promptnexus/promptnexus/internal/seed"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the starter prompt catalogue",
	Long: `Load the starter prompt catalogue into the database.

Seeding only runs against an empty catalogue; an already-populated
database is left untouched, so the command is safe to re-run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}

		db, err := sqliteRepo.New(cfg.DBPath)
		if err != nil {
			return err
		}
		defer db.Close()

		_, err = seed.Run(cmd.Context(), db, logger)
		return err
	},
}
