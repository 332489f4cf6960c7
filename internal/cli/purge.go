package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesetl/internal/db"
	"github.com/pgEdge/pgedge-salesetl/internal/logging"
	"github.com/pgEdge/pgedge-salesetl/internal/staging"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Drop all staging tables",
	Long: `Drop every staging table. Retention is total: the tables the build
never reads (employees, shippers) are dropped along with the rest. The
dimension and fact tables are not touched.`,
	RunE: runPurge,
}

func runPurge(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if err := staging.DropSchema(ctx, pool); err != nil {
		return fmt.Errorf("failed to drop staging tables: %w", err)
	}

	logging.Info().Msg("Staging tables purged")
	return nil
}
