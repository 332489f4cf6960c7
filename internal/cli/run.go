package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/pgEdge/pgedge-salesetl/internal/db"
	"github.com/pgEdge/pgedge-salesetl/internal/logging"
	"github.com/pgEdge/pgedge-salesetl/internal/staging"
	"github.com/pgEdge/pgedge-salesetl/internal/warehouse"
)

var (
	runEvery       int
	runKeepStaging bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline: load, build, purge",
	Long: `Run the full ETL pipeline end to end: stage the source files, rebuild
all dimension and fact tables, then purge staging. Stages run strictly in
order; each must complete before the next begins.

With --every, the pipeline repeats on the given interval until interrupted
with Ctrl+C.

Example:
  pgedge-salesetl run --source-dir ./data --connection "postgres://..."
  pgedge-salesetl run --every 60`,
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&runEvery, "every", 0,
		"repeat the pipeline on this interval in minutes (0 = run once)")
	runCmd.Flags().BoolVar(&runKeepStaging, "keep-staging", false,
		"skip the staging purge after a successful build")
	runCmd.Flags().StringVar(&loadSourceDir, "source-dir", "",
		"directory containing the source CSV files")
	runCmd.Flags().StringVar(&loadDelimiter, "delimiter", "",
		"field delimiter used in the source files (default: ,)")
}

func runRun(cmd *cobra.Command, args []string) error {
	// Override config with CLI flags
	if runEvery > 0 {
		cfg.Run.Every = runEvery
	}
	if runKeepStaging {
		cfg.Run.KeepStaging = true
	}
	if loadSourceDir != "" {
		cfg.Load.SourceDir = loadSourceDir
	}
	if loadDelimiter != "" {
		cfg.Load.Delimiter = loadDelimiter
	}

	if err := cfg.ValidateRun(); err != nil {
		return err
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.Connection)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Run.Every == 0 {
		return runPipeline(ctx, pool)
	}

	// Scheduled mode: repeat the full pipeline until interrupted.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		logging.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	}()

	interval := time.Duration(cfg.Run.Every) * time.Minute
	logging.Info().
		Dur("interval", interval).
		Msg("Starting scheduled pipeline runs")

	scheduler, err := newPipelineScheduler(interval, func() {
		if err := runPipeline(ctx, pool); err != nil {
			logging.Error().Err(err).Msg("Scheduled pipeline run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule pipeline: %w", err)
	}

	scheduler.StartAsync()
	<-ctx.Done()
	scheduler.Stop()

	logging.Info().Msg("Scheduler stopped")
	return nil
}

// newPipelineScheduler schedules task on the given interval, with the first
// run fired at startup rather than after the interval elapses.
func newPipelineScheduler(interval time.Duration, task func()) (*gocron.Scheduler, error) {
	scheduler := gocron.NewScheduler(time.UTC)
	if _, err := scheduler.Every(interval).StartImmediately().Do(task); err != nil {
		return nil, err
	}
	return scheduler, nil
}

// runPipeline executes one full load, build, purge cycle.
func runPipeline(ctx context.Context, pool *pgxpool.Pool) error {
	start := time.Now()

	if lastRun, err := db.GetMetadataValue(ctx, pool, "last_run_at"); err == nil {
		logging.Info().Str("last_run_at", lastRun).Msg("Previous pipeline run found")
	}

	counts, err := staging.LoadAll(ctx, pool, cfg.Load.SourceDir, cfg.DelimiterRune())
	if err != nil {
		return fmt.Errorf("staging load failed: %w", err)
	}

	var staged int64
	for _, n := range counts {
		staged += n
	}

	result, err := warehouse.Rebuild(ctx, pool)
	if err != nil {
		return fmt.Errorf("warehouse rebuild failed: %w", err)
	}

	if err := db.SaveRunMetadata(ctx, pool, result.Facts, result.Unmatched); err != nil {
		return fmt.Errorf("failed to save run metadata: %w", err)
	}

	if !cfg.Run.KeepStaging {
		if err := staging.DropSchema(ctx, pool); err != nil {
			return fmt.Errorf("failed to purge staging tables: %w", err)
		}
	}

	logging.Info().
		Int64("staged_rows", staged).
		Int("facts", result.Facts).
		Int("unmatched_lines", result.Unmatched).
		Dur("elapsed", time.Since(start)).
		Msg("Pipeline run complete")

	return nil
}
