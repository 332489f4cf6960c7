//-------------------------------------------------------------------------
//
// pgEdge Sales ETL
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package datagen

import (
	"testing"
	"time"
)

func TestFakerSeededReproducibility(t *testing.T) {
	a := NewFakerWithSeed(42)
	b := NewFakerWithSeed(42)

	for i := 0; i < 10; i++ {
		if a.Company() != b.Company() {
			t.Fatal("same seed should produce the same sequence")
		}
		if a.Int(1, 1000) != b.Int(1, 1000) {
			t.Fatal("same seed should produce the same integers")
		}
	}
}

func TestFakerIntRange(t *testing.T) {
	f := NewFakerWithSeed(7)
	for i := 0; i < 100; i++ {
		n := f.Int(1, 5)
		if n < 1 || n > 5 {
			t.Fatalf("Int(1, 5) = %d, out of range", n)
		}
	}
}

func TestFakerDateRange(t *testing.T) {
	f := NewFakerWithSeed(7)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 50; i++ {
		d := f.DateRange(start, end)
		if d.Before(start) || d.After(end) {
			t.Fatalf("DateRange out of range: %v", d)
		}
	}
}

func TestChoose(t *testing.T) {
	f := NewFakerWithSeed(7)

	items := []string{"a", "b", "c"}
	for i := 0; i < 20; i++ {
		got := Choose(f, items)
		if got != "a" && got != "b" && got != "c" {
			t.Fatalf("Choose returned %q, not in slice", got)
		}
	}

	if got := Choose(f, []string(nil)); got != "" {
		t.Errorf("Choose on empty slice should return zero value, got %q", got)
	}
}
