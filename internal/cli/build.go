package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesetl/internal/db"
	"github.com/pgEdge/pgedge-salesetl/internal/logging"
	"github.com/pgEdge/pgedge-salesetl/internal/warehouse"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Rebuild all dimension and fact tables from staging",
	Long: `Rebuild the dimensional model from the currently staged data: the
customer, product, supplier, category and time dimensions plus the sales
fact table. All outputs are replaced atomically in one transaction; if any
staged set is missing or any order date is malformed, the run aborts and
the previous outputs stay in place.`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	result, err := warehouse.Rebuild(ctx, pool)
	if err != nil {
		return fmt.Errorf("warehouse rebuild failed: %w", err)
	}

	if err := db.SaveRunMetadata(ctx, pool, result.Facts, result.Unmatched); err != nil {
		return fmt.Errorf("failed to save run metadata: %w", err)
	}

	logging.Info().
		Int("customers", result.Customers).
		Int("products", result.Products).
		Int("suppliers", result.Suppliers).
		Int("categories", result.Categories).
		Int("time_rows", result.TimeRows).
		Int("facts", result.Facts).
		Int("unmatched_lines", result.Unmatched).
		Msg("Build complete")

	return nil
}
