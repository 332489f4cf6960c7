//-------------------------------------------------------------------------
//
// pgEdge Sales ETL
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import (
	"strings"
	"testing"
)

// Output table names are part of the external surface: reporting consumers
// address them directly.
func TestOutputTableNames(t *testing.T) {
	tables := []string{
		"dim_customer",
		"dim_product",
		"dim_supplier",
		"dim_category",
		"dim_time",
		"sales_fact",
	}

	for _, table := range tables {
		if !strings.Contains(createSchemaSQL, "CREATE TABLE "+table+" (") {
			t.Errorf("createSchemaSQL does not create %s", table)
		}
		if !strings.Contains(dropSchemaSQL, "DROP TABLE IF EXISTS "+table+";") {
			t.Errorf("dropSchemaSQL does not drop %s", table)
		}
	}

	if strings.Count(createSchemaSQL, "CREATE TABLE ") != len(tables) {
		t.Errorf("unexpected extra tables in createSchemaSQL")
	}

	// The fact table drops first so its date reference never outlives
	// dim_time mid-script.
	if strings.Index(dropSchemaSQL, "sales_fact") > strings.Index(dropSchemaSQL, "dim_time") {
		t.Error("sales_fact must be dropped before dim_time")
	}
}
