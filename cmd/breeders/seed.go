package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/erazemk/breeders/internal/seed"
	"github.com/erazemk/breeders/internal/store"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace all breeders with the sample data set",
	Long: `Create the breeders table if needed, delete every row in it and insert
the sample breeders. Failures while deleting or inserting are logged and
seeding carries on; only a database that cannot be opened or initialized
makes the command fail.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		database, err := openDatabase(cfg.DB)
		if err != nil {
			return fmt.Errorf("preparing database: %w", err)
		}
		st := store.New(database)
		defer st.Close()

		slog.Info("table ready", "driver", cfg.DB.Driver, "path", cfg.DB.Path)

		n := seed.Load(cmd.Context(), st)
		fmt.Fprintf(cmd.OutOrStdout(), "Added %d of %d sample breeders.\n", n, len(seed.SampleBreeders))
		return nil
	},
}
