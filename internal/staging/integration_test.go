//-------------------------------------------------------------------------
//
// pgEdge Sales ETL
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

//go:build integration

package staging

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-salesetl/internal/testutil"
)

// writeSourceDir writes a minimal but complete set of source files.
func writeSourceDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"customers.csv": "id,name,contact,address,city,postal_code,country\n" +
			"1,Alfreds Futterkiste,Maria Anders,Obere Str. 57,Berlin,12209,Germany\n" +
			"2,Ana Trujillo,Ana Trujillo,Avda. 2222,Mexico D.F.,05021,Mexico\n",
		"categories.csv": "id,name,description\n1,Beverages,Soft drinks\n",
		"employees.csv": "id,last_name,first_name,birth_date,photo,notes\n" +
			"1,Davolio,Nancy,1968-12-08,EmpID1.pic,Education includes a BA\n",
		"shippers.csv": "id,name,phone\n1,Speedy Express,(503) 555-9831\n",
		"suppliers.csv": "id,name,contact,address,city,postal_code,country,phone\n" +
			"1,Exotic Liquid,Charlotte Cooper,49 Gilbert St.,London,EC1 4SD,UK,(171) 555-2222\n",
		"products.csv": "id,name,supplier_id,category_id,unit,price\n" +
			"1,Chai,1,1,10 boxes x 20 bags,18.00\n",
		"orders.csv": "id,customer_id,employee_id,order_date,shipper_id\n" +
			"1,2,1,1996-07-04 00:00:00,1\n",
		"order_details.csv": "id,order_id,product_id,quantity\n1,1,1,12\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	return dir
}

func TestLoadAllAndReadBack(t *testing.T) {
	pool := testutil.NewTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dir := writeSourceDir(t)

	counts, err := LoadAll(ctx, pool, dir, ',')
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if counts["stage_customers"] != 2 || counts["stage_orders"] != 1 {
		t.Errorf("unexpected staged counts: %v", counts)
	}

	customers, err := ReadCustomers(ctx, pool)
	if err != nil {
		t.Fatalf("ReadCustomers: %v", err)
	}
	if len(customers) != 2 {
		t.Fatalf("expected 2 customers, got %d", len(customers))
	}
	found := false
	for _, c := range customers {
		if c.ID == "1" && c.Name == "Alfreds Futterkiste" && c.Country == "Germany" {
			found = true
		}
	}
	if !found {
		t.Errorf("staged customer not read back: %+v", customers)
	}

	orders, err := ReadOrders(ctx, pool)
	if err != nil {
		t.Fatalf("ReadOrders: %v", err)
	}
	if len(orders) != 1 || orders[0].OrderDateRaw != "1996-07-04 00:00:00" {
		t.Errorf("order date must stay raw in staging: %+v", orders)
	}

	// Reloading replaces, not appends.
	counts, err = LoadAll(ctx, pool, dir, ',')
	if err != nil {
		t.Fatalf("second LoadAll: %v", err)
	}
	if counts["stage_customers"] != 2 {
		t.Errorf("reload should truncate first, got %d customers", counts["stage_customers"])
	}
}

func TestLoadAllMissingFile(t *testing.T) {
	pool := testutil.NewTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dir := writeSourceDir(t)
	if err := os.Remove(filepath.Join(dir, "orders.csv")); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadAll(ctx, pool, dir, ','); err == nil {
		t.Error("expected error when a source file is missing")
	}
}

func TestDropSchema(t *testing.T) {
	pool := testutil.NewTestDB(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	dir := writeSourceDir(t)
	if _, err := LoadAll(ctx, pool, dir, ','); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	if err := DropSchema(ctx, pool); err != nil {
		t.Fatalf("DropSchema: %v", err)
	}

	_, err := ReadCustomers(ctx, pool)
	var unavailable *UnavailableError
	if !errors.As(err, &unavailable) {
		t.Fatalf("expected UnavailableError after purge, got %v", err)
	}
	if unavailable.Empty {
		t.Errorf("table was dropped, not emptied: %+v", unavailable)
	}

	// Purging twice is fine.
	if err := DropSchema(ctx, pool); err != nil {
		t.Errorf("second DropSchema: %v", err)
	}
}
