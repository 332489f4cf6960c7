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
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/pgEdge/pgedge-salesetl/internal/staging"
)

func testSpec() Spec {
	return Spec{
		Customers:        10,
		Suppliers:        4,
		Categories:       3,
		Employees:        5,
		Shippers:         2,
		Products:         8,
		Orders:           20,
		MaxLinesPerOrder: 3,
	}
}

func TestWriteSourceFiles(t *testing.T) {
	dir := t.TempDir()
	spec := testSpec()

	counts, err := WriteSourceFiles(dir, spec, NewFakerWithSeed(42))
	if err != nil {
		t.Fatalf("WriteSourceFiles: %v", err)
	}

	want := map[string]int{
		"customers.csv":  spec.Customers,
		"categories.csv": spec.Categories,
		"employees.csv":  spec.Employees,
		"shippers.csv":   spec.Shippers,
		"suppliers.csv":  spec.Suppliers,
		"products.csv":   spec.Products,
		"orders.csv":     spec.Orders,
	}
	for file, n := range want {
		if counts[file] != n {
			t.Errorf("%s: wrote %d rows, want %d", file, counts[file], n)
		}
	}

	// Line items: at least one per order, at most the configured cap.
	details := counts["order_details.csv"]
	if details < spec.Orders || details > spec.Orders*spec.MaxLinesPerOrder {
		t.Errorf("order_details.csv: %d rows, want between %d and %d",
			details, spec.Orders, spec.Orders*spec.MaxLinesPerOrder)
	}

	// Every generated file must parse back through the staging reader.
	for _, table := range staging.Tables {
		f, err := os.Open(filepath.Join(dir, table.File))
		if err != nil {
			t.Fatalf("%s not written: %v", table.File, err)
		}
		rows, err := staging.ReadRecords(f, ',', table.Columns)
		f.Close()
		if err != nil {
			t.Fatalf("%s does not parse: %v", table.File, err)
		}
		if len(rows) != counts[table.File] {
			t.Errorf("%s: parsed %d rows, reported %d", table.File, len(rows), counts[table.File])
		}
	}
}

func TestWriteSourceFilesReferences(t *testing.T) {
	dir := t.TempDir()
	spec := testSpec()

	if _, err := WriteSourceFiles(dir, spec, NewFakerWithSeed(7)); err != nil {
		t.Fatalf("WriteSourceFiles: %v", err)
	}

	rows := readTestFile(t, dir, "order_details.csv")
	for _, row := range rows {
		orderID := mustAtoi(t, row[1].(string))
		productID := mustAtoi(t, row[2].(string))
		quantity := mustAtoi(t, row[3].(string))

		if orderID < 1 || orderID > spec.Orders {
			t.Fatalf("order_id %d out of range", orderID)
		}
		if productID < 1 || productID > spec.Products {
			t.Fatalf("product_id %d out of range", productID)
		}
		if quantity < 1 {
			t.Fatalf("quantity %d not positive", quantity)
		}
	}

	// (order, product) pairs are distinct so the fact grain holds.
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		key := row[1].(string) + "/" + row[2].(string)
		if _, dup := seen[key]; dup {
			t.Fatalf("duplicate (order, product) pair %s", key)
		}
		seen[key] = struct{}{}
	}

	for _, row := range readTestFile(t, dir, "orders.csv") {
		raw := row[3].(string)
		if len(raw) < 10 {
			t.Fatalf("order date %q shorter than a date prefix", raw)
		}
		customerID := mustAtoi(t, row[1].(string))
		if customerID < 1 || customerID > spec.Customers {
			t.Fatalf("customer_id %d out of range", customerID)
		}
	}
}

func TestWriteSourceFilesMoreLinesThanProducts(t *testing.T) {
	dir := t.TempDir()
	spec := testSpec()
	spec.Products = 2
	spec.MaxLinesPerOrder = 10

	counts, err := WriteSourceFiles(dir, spec, NewFakerWithSeed(3))
	if err != nil {
		t.Fatalf("WriteSourceFiles: %v", err)
	}
	if counts["order_details.csv"] > spec.Orders*spec.Products {
		t.Errorf("line count %d exceeds distinct (order, product) capacity", counts["order_details.csv"])
	}
}

func readTestFile(t *testing.T, dir, file string) [][]any {
	t.Helper()
	var columns []string
	for _, table := range staging.Tables {
		if table.File == file {
			columns = table.Columns
		}
	}
	f, err := os.Open(filepath.Join(dir, file))
	if err != nil {
		t.Fatalf("open %s: %v", file, err)
	}
	defer f.Close()
	rows, err := staging.ReadRecords(f, ',', columns)
	if err != nil {
		t.Fatalf("parse %s: %v", file, err)
	}
	return rows
}

func mustAtoi(t *testing.T, s string) int {
	t.Helper()
	n, err := strconv.Atoi(s)
	if err != nil {
		t.Fatalf("not an integer: %q", s)
	}
	return n
}
