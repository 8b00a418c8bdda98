// Command pharmactl runs operational tasks against a PharmaTrack deployment.
package main

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/Sanjaykumaar123/pharmatrack-lite/internal/app/api"
)

var (
	cfg    api.Config
	logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
)

var rootCmd = &cobra.Command{
	Use:           "pharmactl",
	Short:         "Operate a PharmaTrack Lite deployment",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		loaded, err := api.LoadConfig()
		if err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd, seedCmd, purgeSessionsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("pharmactl failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
