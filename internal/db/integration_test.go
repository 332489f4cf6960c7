//-------------------------------------------------------------------------
//
// pgEdge Sales ETL
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

//go:build integration

package db

import (
	"context"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-salesetl/internal/testutil"
	"github.com/pgEdge/pgedge-salesetl/pkg/version"
)

func TestRunMetadata(t *testing.T) {
	pool := testutil.NewTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := SaveRunMetadata(ctx, pool, 1234, 7); err != nil {
		t.Fatalf("SaveRunMetadata: %v", err)
	}

	got, err := GetMetadataValue(ctx, pool, "fact_rows")
	if err != nil {
		t.Fatalf("GetMetadataValue: %v", err)
	}
	if got != "1234" {
		t.Errorf("fact_rows = %q, want 1234", got)
	}

	all, err := GetAllMetadata(ctx, pool)
	if err != nil {
		t.Fatalf("GetAllMetadata: %v", err)
	}
	if all["dropped_lines"] != "7" {
		t.Errorf("dropped_lines = %q, want 7", all["dropped_lines"])
	}
	if all["version"] != version.Short() {
		t.Errorf("version = %q, want %q", all["version"], version.Short())
	}
	if _, err := time.Parse(time.RFC3339, all["last_run_at"]); err != nil {
		t.Errorf("last_run_at %q not RFC3339: %v", all["last_run_at"], err)
	}

	// A later run overwrites, never duplicates.
	if err := SaveRunMetadata(ctx, pool, 5678, 0); err != nil {
		t.Fatalf("second SaveRunMetadata: %v", err)
	}
	got, err = GetMetadataValue(ctx, pool, "fact_rows")
	if err != nil {
		t.Fatalf("GetMetadataValue: %v", err)
	}
	if got != "5678" {
		t.Errorf("fact_rows = %q, want 5678", got)
	}

	if err := DropMetadata(ctx, pool); err != nil {
		t.Fatalf("DropMetadata: %v", err)
	}
	if _, err := GetMetadataValue(ctx, pool, "fact_rows"); err == nil {
		t.Error("expected error after DropMetadata")
	}
}
