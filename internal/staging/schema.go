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

	"github.com/jackc/pgx/v5/pgxpool"
)

// Staging tables are deliberately untyped: every column is TEXT, mirroring
// the source file fields. Typing happens during the warehouse build.
const createSchemaSQL = `
CREATE TABLE IF NOT EXISTS stage_customers (
    id          TEXT,
    name        TEXT,
    contact     TEXT,
    address     TEXT,
    city        TEXT,
    postal_code TEXT,
    country     TEXT
);

CREATE TABLE IF NOT EXISTS stage_categories (
    id          TEXT,
    name        TEXT,
    description TEXT
);

CREATE TABLE IF NOT EXISTS stage_employees (
    id         TEXT,
    last_name  TEXT,
    first_name TEXT,
    birth_date TEXT,
    photo      TEXT,
    notes      TEXT
);

CREATE TABLE IF NOT EXISTS stage_shippers (
    id    TEXT,
    name  TEXT,
    phone TEXT
);

CREATE TABLE IF NOT EXISTS stage_suppliers (
    id          TEXT,
    name        TEXT,
    contact     TEXT,
    address     TEXT,
    city        TEXT,
    postal_code TEXT,
    country     TEXT,
    phone       TEXT
);

CREATE TABLE IF NOT EXISTS stage_products (
    id          TEXT,
    name        TEXT,
    supplier_id TEXT,
    category_id TEXT,
    unit        TEXT,
    price       TEXT
);

CREATE TABLE IF NOT EXISTS stage_orders (
    id          TEXT,
    customer_id TEXT,
    employee_id TEXT,
    order_date  TEXT,
    shipper_id  TEXT
);

CREATE TABLE IF NOT EXISTS stage_order_details (
    id         TEXT,
    order_id   TEXT,
    product_id TEXT,
    quantity   TEXT
);
`

// Retention is total: purge drops every staging table, including the ones
// the build never reads.
const dropSchemaSQL = `
DROP TABLE IF EXISTS stage_order_details;
DROP TABLE IF EXISTS stage_orders;
DROP TABLE IF EXISTS stage_products;
DROP TABLE IF EXISTS stage_suppliers;
DROP TABLE IF EXISTS stage_shippers;
DROP TABLE IF EXISTS stage_employees;
DROP TABLE IF EXISTS stage_categories;
DROP TABLE IF EXISTS stage_customers;
`

// CreateSchema creates the staging tables.
func CreateSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, createSchemaSQL)
	return err
}

// DropSchema drops all staging tables.
func DropSchema(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, dropSchemaSQL)
	return err
}
