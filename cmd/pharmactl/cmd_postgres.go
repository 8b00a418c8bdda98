package main

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	userspostgres "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/adapters/persistence/postgres"
	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/platform/migrations"
	platformpostgres "github.com/Sanjaykumaar123/pharmatrack-lite/internal/platform/postgres"
)

var errNoDSN = errors.New("POSTGRES_DSN is required")

var resetTables bool

// migrateCmd creates or upgrades the relational schema.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the PostgreSQL schema",
	Long: `Create or upgrade every PharmaTrack table in the database named by POSTGRES_DSN.

With --reset the tables are truncated after migrating. Use it only on disposable databases.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.PostgresDSN == "" {
			return errNoDSN
		}
		db, cleanup, err := platformpostgres.ConnectWithCleanup(cmd.Context(), cfg.PostgresDSN, logger)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer cleanup()
		if err := migrations.Run(db); err != nil {
			return err
		}
		logger.Info("schema migrated", slog.Any("tables", migrations.Tables()))
		if resetTables {
			if err := migrations.Reset(db); err != nil {
				return err
			}
			logger.Warn("tables truncated")
		}
		return nil
	},
}

// purgeSessionsCmd drops expired sessions from the postgres session table.
var purgeSessionsCmd = &cobra.Command{
	Use:   "purge-sessions",
	Short: "Delete expired sign-in sessions",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cfg.PostgresDSN == "" {
			return errNoDSN
		}
		db, cleanup, err := platformpostgres.ConnectWithCleanup(cmd.Context(), cfg.PostgresDSN, logger)
		if err != nil {
			return fmt.Errorf("connect postgres: %w", err)
		}
		defer cleanup()
		started := time.Now()
		purged, err := userspostgres.NewSessionStore(db).PurgeExpired(cmd.Context())
		if err != nil {
			return fmt.Errorf("purge sessions: %w", err)
		}
		logger.Info("session purge completed", slog.Int64("purged", purged), slog.Duration("took", time.Since(started)))
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&resetTables, "reset", false, "truncate all tables after migrating")
}
