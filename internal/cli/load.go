package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesetl/internal/db"
	"github.com/pgEdge/pgedge-salesetl/internal/logging"
	"github.com/pgEdge/pgedge-salesetl/internal/staging"
)

var (
	loadSourceDir string
	loadDelimiter string
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Bulk-load the source CSV files into staging tables",
	Long: `Bulk-load the six source CSV files (plus employees and shippers) from
the source directory into untyped staging tables. Existing staged rows are
replaced. Per-entity loads run concurrently.

Example:
  pgedge-salesetl load --source-dir ./data --connection "postgres://..."`,
	RunE: runLoad,
}

func init() {
	loadCmd.Flags().StringVar(&loadSourceDir, "source-dir", "",
		"directory containing the source CSV files")
	loadCmd.Flags().StringVar(&loadDelimiter, "delimiter", "",
		"field delimiter used in the source files (default: ,)")
}

func runLoad(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if loadSourceDir != "" {
		cfg.Load.SourceDir = loadSourceDir
	}
	if loadDelimiter != "" {
		cfg.Load.Delimiter = loadDelimiter
	}

	if err := cfg.ValidateLoad(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	logging.Info().
		Str("source_dir", cfg.Load.SourceDir).
		Msg("Staging source files")

	counts, err := staging.LoadAll(ctx, pool, cfg.Load.SourceDir, cfg.DelimiterRune())
	if err != nil {
		return fmt.Errorf("staging load failed: %w", err)
	}

	var total int64
	for _, n := range counts {
		total += n
	}
	logging.Info().
		Int("tables", len(counts)).
		Int64("rows", total).
		Msg("Staging load complete")

	return nil
}
