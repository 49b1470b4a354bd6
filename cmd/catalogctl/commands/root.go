// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/taibuivan/recursos/internal/platform/config"
	"github.com/taibuivan/recursos/internal/platform/constants"
	"github.com/taibuivan/recursos/internal/platform/logging"
)

var (
	// Global flags
	dbURL         string
	migrationsDir string
	verbose       bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "catalogctl",
	Short: "Maintenance tool for the Recursos catalog",
	Long: `catalogctl manages the catalog database outside the API server.

Connection settings default to the same environment variables the API reads
(DATABASE_URL or DB_HOST, DB_USER, DB_PASS, DB_NAME, and MIGRATION_PATH).
Flags override them.`,
	Version:       constants.AppVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database connection URL (defaults to DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&migrationsDir, "migrations-dir", "", "Directory of SQL migrations (defaults to MIGRATION_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// settings holds the connection parameters shared by every subcommand.
type settings struct {
	DatabaseURL   string
	MigrationPath string
	Logger        *slog.Logger
}

// resolveSettings merges flags over the environment configuration.
func resolveSettings() (settings, error) {
	logger, _ := logging.New(logging.Options{Debug: verbose, Stdout: os.Stderr})

	resolved := settings{DatabaseURL: dbURL, MigrationPath: migrationsDir, Logger: logger}
	if resolved.DatabaseURL != "" && resolved.MigrationPath != "" {
		return resolved, nil
	}

	cfg, err := config.Load()
	if err != nil {
		if resolved.DatabaseURL == "" {
			return settings{}, fmt.Errorf("--db flag or DATABASE_URL is required: %w", err)
		}
		resolved.MigrationPath = "./data/migrations"
		return resolved, nil
	}

	if resolved.DatabaseURL == "" {
		resolved.DatabaseURL = cfg.DatabaseURL
	}
	if resolved.MigrationPath == "" {
		resolved.MigrationPath = cfg.MigrationPath
	}
	return resolved, nil
}
