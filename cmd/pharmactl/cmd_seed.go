package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/app/api"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/app/seed"
)

var seedFile string

// seedCmd loads fixture accounts and batches into the configured storage backend.
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load fixture users and medicines from YAML",
	Long: `Load users and medicines from a YAML file into the backend chosen by STORAGE_BACKEND.

Existing accounts (by email) and batches (by name and batch number) are left alone,
so the command can be re-run safely.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		f, err := os.Open(seedFile)
		if err != nil {
			return err
		}
		defer f.Close()
		file, err := seed.Parse(f)
		if err != nil {
			return fmt.Errorf("%s: %w", seedFile, err)
		}

		seeder, cleanup, err := api.NewSeeder(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer cleanup()
		report, err := seeder.Apply(cmd.Context(), file)
		if err != nil {
			return err
		}
		logger.Info("seed completed",
			slog.Int("usersCreated", report.UsersCreated),
			slog.Int("usersSkipped", report.UsersSkipped),
			slog.Int("medicinesCreated", report.MedicinesCreated),
			slog.Int("medicinesSkipped", report.MedicinesSkipped),
		)
		return nil
	},
}

func init() {
	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "seed.yaml", "path to the YAML fixture file")
}
