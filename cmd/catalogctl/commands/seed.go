// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/recursos/internal/catalog/reference"
	"github.com/taibuivan/recursos/internal/catalog/seed"
	"github.com/taibuivan/recursos/internal/platform/constants"
	pgstore "github.com/taibuivan/recursos/internal/platform/postgres"
)

var (
	// Seed flags
	seedFile string
)

// seedCmd loads reference entities from a YAML file
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load reference data from a YAML file",
	Long: `Create the reference entities listed in a YAML seed file.

Names that already exist (ignoring case) are skipped, so the command can be
run repeatedly.

Examples:
  catalogctl seed --file data/seed.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd)
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVarP(&seedFile, "file", "f", "", "Path of the YAML seed file")
	_ = seedCmd.MarkFlagRequired("file")
}

func runSeed(cmd *cobra.Command) error {
	file, err := seed.Load(seedFile)
	if err != nil {
		return err
	}

	resolved, err := resolveSettings()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), constants.StartupTimeout)
	defer cancel()

	pool, err := pgstore.NewPool(ctx, resolved.DatabaseURL, resolved.Logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	service := reference.NewService(reference.NewPostgresRepository(pool), nil)

	result, err := seed.Apply(ctx, service, file, resolved.Logger)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "created %d, skipped %d\n", result.Created, result.Skipped)
	return nil
}
