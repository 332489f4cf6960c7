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
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// undefinedTable is the PostgreSQL SQLSTATE for a missing relation.
const undefinedTable = "42P01"

// readSet runs a staging snapshot query and maps each row through scan.
// A missing table or an empty result is reported as *UnavailableError:
// the warehouse build reads complete sets and cannot proceed without one.
func readSet[T any](ctx context.Context, pool *pgxpool.Pool, table, query string, scan func(pgx.Rows) (T, error)) ([]T, error) {
	rows, err := pool.Query(ctx, query)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == undefinedTable {
			return nil, &UnavailableError{Table: table}
		}
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", table, err)
	}

	if len(out) == 0 {
		return nil, &UnavailableError{Table: table, Empty: true}
	}
	return out, nil
}

// ReadCustomers returns the complete staged customer set.
func ReadCustomers(ctx context.Context, pool *pgxpool.Pool) ([]Customer, error) {
	return readSet(ctx, pool, "stage_customers", `
        SELECT id, name, contact, address, city, postal_code, country
        FROM stage_customers
    `, func(rows pgx.Rows) (Customer, error) {
		var c Customer
		err := rows.Scan(&c.ID, &c.Name, &c.Contact, &c.Address, &c.City, &c.PostalCode, &c.Country)
		return c, err
	})
}

// ReadCategories returns the complete staged category set.
func ReadCategories(ctx context.Context, pool *pgxpool.Pool) ([]Category, error) {
	return readSet(ctx, pool, "stage_categories", `
        SELECT id, name, description FROM stage_categories
    `, func(rows pgx.Rows) (Category, error) {
		var c Category
		err := rows.Scan(&c.ID, &c.Name, &c.Description)
		return c, err
	})
}

// ReadSuppliers returns the complete staged supplier set.
func ReadSuppliers(ctx context.Context, pool *pgxpool.Pool) ([]Supplier, error) {
	return readSet(ctx, pool, "stage_suppliers", `
        SELECT id, name, contact, address, city, postal_code, country, phone
        FROM stage_suppliers
    `, func(rows pgx.Rows) (Supplier, error) {
		var s Supplier
		err := rows.Scan(&s.ID, &s.Name, &s.Contact, &s.Address, &s.City, &s.PostalCode, &s.Country, &s.Phone)
		return s, err
	})
}

// ReadProducts returns the complete staged product set.
func ReadProducts(ctx context.Context, pool *pgxpool.Pool) ([]Product, error) {
	return readSet(ctx, pool, "stage_products", `
        SELECT id, name, supplier_id, category_id, unit, price
        FROM stage_products
    `, func(rows pgx.Rows) (Product, error) {
		var p Product
		err := rows.Scan(&p.ID, &p.Name, &p.SupplierID, &p.CategoryID, &p.Unit, &p.Price)
		return p, err
	})
}

// ReadOrders returns the complete staged order header set.
func ReadOrders(ctx context.Context, pool *pgxpool.Pool) ([]Order, error) {
	return readSet(ctx, pool, "stage_orders", `
        SELECT id, customer_id, employee_id, order_date, shipper_id
        FROM stage_orders
    `, func(rows pgx.Rows) (Order, error) {
		var o Order
		err := rows.Scan(&o.ID, &o.CustomerID, &o.EmployeeID, &o.OrderDateRaw, &o.ShipperID)
		return o, err
	})
}

// ReadOrderDetails returns the complete staged order line item set.
func ReadOrderDetails(ctx context.Context, pool *pgxpool.Pool) ([]OrderDetail, error) {
	return readSet(ctx, pool, "stage_order_details", `
        SELECT id, order_id, product_id, quantity
        FROM stage_order_details
    `, func(rows pgx.Rows) (OrderDetail, error) {
		var d OrderDetail
		err := rows.Scan(&d.ID, &d.OrderID, &d.ProductID, &d.Quantity)
		return d, err
	})
}
