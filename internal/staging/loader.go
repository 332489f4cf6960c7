//-------------------------------------------------------------------------
//
// pgEdge Sales ETL
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package staging

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/pgEdge/pgedge-salesetl/internal/logging"
)

// LoadAll bulk-loads every source CSV file from dir into its staging table.
// Existing staged rows are replaced. Per-table loads run concurrently; the
// first failure cancels the rest. Returns rows loaded per table.
func LoadAll(ctx context.Context, pool *pgxpool.Pool, dir string, delimiter rune) (map[string]int64, error) {
	if err := CreateSchema(ctx, pool); err != nil {
		return nil, fmt.Errorf("failed to create staging schema: %w", err)
	}

	var (
		mu     sync.Mutex
		counts = make(map[string]int64, len(Tables))
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, table := range Tables {
		g.Go(func() error {
			n, err := loadTable(gctx, pool, dir, table, delimiter)
			if err != nil {
				return fmt.Errorf("%s: %w", table.Name, err)
			}
			mu.Lock()
			counts[table.Name] = n
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return counts, nil
}

// loadTable replaces the contents of one staging table with the rows parsed
// from its source file.
func loadTable(ctx context.Context, pool *pgxpool.Pool, dir string, table Table, delimiter rune) (int64, error) {
	path := filepath.Join(dir, table.File)

	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open source file: %w", err)
	}
	defer f.Close()

	rows, err := ReadRecords(f, delimiter, table.Columns)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s: %w", table.File, err)
	}

	start := time.Now()

	if _, err := pool.Exec(ctx, "TRUNCATE "+table.Name); err != nil {
		return 0, fmt.Errorf("failed to truncate: %w", err)
	}

	n, err := pool.CopyFrom(ctx,
		pgx.Identifier{table.Name},
		table.Columns,
		pgx.CopyFromRows(rows))
	if err != nil {
		return 0, fmt.Errorf("copy failed: %w", err)
	}

	logging.Info().
		Str("table", table.Name).
		Str("file", table.File).
		Int64("rows", n).
		Dur("elapsed", time.Since(start)).
		Msg("Staged source file")

	return n, nil
}
