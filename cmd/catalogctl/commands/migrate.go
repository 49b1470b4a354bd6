// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/recursos/internal/platform/migration"
)

var (
	// Migrate flags
	steps int
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Apply or roll back the bundled SQL migrations.

Subcommands:
  up       - Apply pending migrations
  down     - Roll back migrations
  version  - Show the current schema version`,
}

// migrateUpCmd applies pending migrations
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := resolveSettings()
		if err != nil {
			return err
		}
		return migration.RunUp(resolved.DatabaseURL, resolved.MigrationPath, resolved.Logger)
	},
}

// migrateDownCmd rolls back migrations
var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	Long: `Roll back applied migrations.

Examples:
  catalogctl migrate down              # Roll back the last migration
  catalogctl migrate down --steps 3    # Roll back the last three migrations`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if steps < 1 {
			return fmt.Errorf("--steps must be at least 1")
		}
		resolved, err := resolveSettings()
		if err != nil {
			return err
		}
		return migration.RunDown(resolved.DatabaseURL, resolved.MigrationPath, steps, resolved.Logger)
	},
}

// migrateVersionCmd prints the schema version
var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the current schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, err := resolveSettings()
		if err != nil {
			return err
		}

		status, err := migration.Version(resolved.DatabaseURL, resolved.MigrationPath, resolved.Logger)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch {
		case status.Empty:
			fmt.Fprintln(out, "no migrations applied")
		case status.Dirty:
			fmt.Fprintf(out, "version %d (dirty)\n", status.Version)
		default:
			fmt.Fprintf(out, "version %d\n", status.Version)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)

	migrateDownCmd.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")
}
