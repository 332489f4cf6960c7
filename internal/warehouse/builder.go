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
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-salesetl/internal/logging"
	"github.com/pgEdge/pgedge-salesetl/internal/staging"
)

// BuildResult summarizes a completed warehouse rebuild.
type BuildResult struct {
	Customers  int
	Products   int
	Suppliers  int
	Categories int
	TimeRows   int
	Facts      int

	// Unmatched counts order lines dropped because their order or product
	// reference did not resolve (or their quantity/price did not parse).
	Unmatched int

	// EmptyIDs counts dimension rows projected with an empty natural
	// identifier.
	EmptyIDs int
}

// Rebuild derives the full dimensional model from the staged sets and
// replaces the warehouse tables atomically: every output table is dropped,
// recreated and reloaded inside one transaction, so a failing run leaves
// the previous outputs untouched. Staging data is read, never mutated.
func Rebuild(ctx context.Context, pool *pgxpool.Pool) (*BuildResult, error) {
	// Read complete staging snapshots first; any missing or empty required
	// set aborts before the outputs are touched.
	customers, err := staging.ReadCustomers(ctx, pool)
	if err != nil {
		return nil, err
	}
	categories, err := staging.ReadCategories(ctx, pool)
	if err != nil {
		return nil, err
	}
	suppliers, err := staging.ReadSuppliers(ctx, pool)
	if err != nil {
		return nil, err
	}
	products, err := staging.ReadProducts(ctx, pool)
	if err != nil {
		return nil, err
	}
	orders, err := staging.ReadOrders(ctx, pool)
	if err != nil {
		return nil, err
	}
	details, err := staging.ReadOrderDetails(ctx, pool)
	if err != nil {
		return nil, err
	}

	// Pure transforms over the immutable snapshots.
	custDim := ProjectCustomers(customers)
	prodDim := ProjectProducts(products)
	suppDim := ProjectSuppliers(suppliers)
	catDim := ProjectCategories(categories)

	timeDim, err := BuildTimeDimension(orders)
	if err != nil {
		return nil, err
	}

	factSet, err := BuildFacts(details, orders, products)
	if err != nil {
		return nil, err
	}

	for _, u := range factSet.Unmatched {
		logging.Warn().
			Str("detail_id", u.DetailID).
			Str("order_id", u.OrderID).
			Str("product_id", u.ProductID).
			Str("reason", u.Reason).
			Msg("Order line excluded from sales_fact")
	}

	result := &BuildResult{
		Customers:  len(custDim.Rows),
		Products:   len(prodDim.Rows),
		Suppliers:  len(suppDim.Rows),
		Categories: len(catDim.Rows),
		TimeRows:   len(timeDim),
		Facts:      len(factSet.Facts),
		Unmatched:  len(factSet.Unmatched),
		EmptyIDs:   custDim.EmptyIDs + prodDim.EmptyIDs + suppDim.EmptyIDs + catDim.EmptyIDs,
	}

	if result.EmptyIDs > 0 {
		logging.Warn().
			Int("rows", result.EmptyIDs).
			Msg("Dimension rows projected with empty natural identifier")
	}

	if err := replaceOutputs(ctx, pool, custDim, prodDim, suppDim, catDim, timeDim, factSet); err != nil {
		return nil, err
	}

	logging.Info().
		Int("facts", result.Facts).
		Int("time_rows", result.TimeRows).
		Int("unmatched", result.Unmatched).
		Msg("Warehouse rebuilt")

	return result, nil
}

// replaceOutputs swaps in the new dimension and fact tables in a single
// transaction.
func replaceOutputs(
	ctx context.Context,
	pool *pgxpool.Pool,
	custDim Projection[CustomerRow],
	prodDim Projection[ProductRow],
	suppDim Projection[SupplierRow],
	catDim Projection[CategoryRow],
	timeDim []Date,
	factSet FactSet,
) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, dropSchemaSQL); err != nil {
		return fmt.Errorf("failed to drop warehouse tables: %w", err)
	}
	if _, err := tx.Exec(ctx, createSchemaSQL); err != nil {
		return fmt.Errorf("failed to create warehouse tables: %w", err)
	}

	if err := copyRows(ctx, tx, "dim_customer",
		[]string{"customer_id", "customer_name", "contact_name", "address", "city", "postal_code", "country"},
		custDim.Rows, func(r CustomerRow) []any {
			return []any{r.CustomerID, r.CustomerName, r.ContactName, r.Address, r.City, r.PostalCode, r.Country}
		}); err != nil {
		return err
	}

	if err := copyRows(ctx, tx, "dim_product",
		[]string{"product_id", "product_name", "supplier_id", "category_id", "unit", "price"},
		prodDim.Rows, func(r ProductRow) []any {
			return []any{r.ProductID, r.ProductName, r.SupplierID, r.CategoryID, r.Unit, r.Price}
		}); err != nil {
		return err
	}

	if err := copyRows(ctx, tx, "dim_supplier",
		[]string{"supplier_id", "supplier_name", "contact_name", "address", "city", "postal_code", "country", "phone"},
		suppDim.Rows, func(r SupplierRow) []any {
			return []any{r.SupplierID, r.SupplierName, r.ContactName, r.Address, r.City, r.PostalCode, r.Country, r.Phone}
		}); err != nil {
		return err
	}

	if err := copyRows(ctx, tx, "dim_category",
		[]string{"category_id", "category_name", "description"},
		catDim.Rows, func(r CategoryRow) []any {
			return []any{r.CategoryID, r.CategoryName, r.Description}
		}); err != nil {
		return err
	}

	if err := copyRows(ctx, tx, "dim_time",
		[]string{"order_date", "year", "month", "day", "quarter"},
		timeDim, func(d Date) []any {
			return []any{d.AsTime(), d.Year, d.Month, d.Day, d.Quarter}
		}); err != nil {
		return err
	}

	if err := copyRows(ctx, tx, "sales_fact",
		[]string{"order_id", "customer_id", "employee_id", "product_id", "quantity", "total_revenue", "order_date"},
		factSet.Facts, func(f FactRow) []any {
			return []any{f.OrderID, f.CustomerID, f.EmployeeID, f.ProductID, f.Quantity,
				numericFromDecimal(f.TotalRevenue), f.OrderDate.AsTime()}
		}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit warehouse rebuild: %w", err)
	}
	return nil
}

// copyRows bulk-copies a typed row slice into a warehouse table.
func copyRows[T any](ctx context.Context, tx pgx.Tx, table string, columns []string, rows []T, values func(T) []any) error {
	src := make([][]any, len(rows))
	for i, r := range rows {
		src[i] = values(r)
	}
	if _, err := tx.CopyFrom(ctx, pgx.Identifier{table}, columns, pgx.CopyFromRows(src)); err != nil {
		return fmt.Errorf("failed to load %s: %w", table, err)
	}
	return nil
}

// numericFromDecimal converts a shopspring decimal into the pgtype value
// CopyFrom can encode into a NUMERIC column.
func numericFromDecimal(d decimal.Decimal) pgtype.Numeric {
	return pgtype.Numeric{
		Int:   d.Coefficient(),
		Exp:   d.Exponent(),
		Valid: true,
	}
}
