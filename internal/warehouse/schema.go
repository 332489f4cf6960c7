//-------------------------------------------------------------------------
//
// pgEdge Sales ETL
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

// Warehouse output schema: five dimensions and one fact table. Dimension
// attributes stay textual (straight renames of staging fields); the fact
// table and the time dimension carry the typed derived values.
//
// Foreign keys are natural identifiers and deliberately unenforced: the
// fact build already decides, per line, whether a reference resolves.
const createSchemaSQL = `
CREATE TABLE dim_customer (
    customer_id   TEXT,
    customer_name TEXT,
    contact_name  TEXT,
    address       TEXT,
    city          TEXT,
    postal_code   TEXT,
    country       TEXT
);

CREATE TABLE dim_product (
    product_id   TEXT,
    product_name TEXT,
    supplier_id  TEXT,
    category_id  TEXT,
    unit         TEXT,
    price        TEXT
);

CREATE TABLE dim_supplier (
    supplier_id   TEXT,
    supplier_name TEXT,
    contact_name  TEXT,
    address       TEXT,
    city          TEXT,
    postal_code   TEXT,
    country       TEXT,
    phone         TEXT
);

CREATE TABLE dim_category (
    category_id   TEXT,
    category_name TEXT,
    description   TEXT
);

CREATE TABLE dim_time (
    order_date DATE PRIMARY KEY,
    year       INTEGER NOT NULL,
    month      INTEGER NOT NULL,
    day        INTEGER NOT NULL,
    quarter    INTEGER NOT NULL
);

CREATE TABLE sales_fact (
    order_id      TEXT,
    customer_id   TEXT,
    employee_id   TEXT,
    product_id    TEXT,
    quantity      INTEGER NOT NULL,
    total_revenue NUMERIC(14,2) NOT NULL,
    order_date    DATE NOT NULL
);

CREATE INDEX idx_sales_fact_order_date ON sales_fact(order_date);
CREATE INDEX idx_sales_fact_product ON sales_fact(product_id);
CREATE INDEX idx_sales_fact_customer ON sales_fact(customer_id);
`

const dropSchemaSQL = `
DROP TABLE IF EXISTS sales_fact;
DROP TABLE IF EXISTS dim_time;
DROP TABLE IF EXISTS dim_category;
DROP TABLE IF EXISTS dim_supplier;
DROP TABLE IF EXISTS dim_product;
DROP TABLE IF EXISTS dim_customer;
`
