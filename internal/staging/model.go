//-------------------------------------------------------------------------
//
// pgEdge Sales ETL
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package staging implements the flat-file staging layer: untyped staging
// tables mirroring the source file schemas, bulk CSV loading into them, and
// typed snapshot reads for the warehouse build.
package staging

import "fmt"

// Table describes one staging table and the source file it is loaded from.
// Columns are listed in source file order.
type Table struct {
	Name    string
	File    string
	Columns []string
}

// Tables lists every staging table, one per source entity.
var Tables = []Table{
	{
		Name:    "stage_customers",
		File:    "customers.csv",
		Columns: []string{"id", "name", "contact", "address", "city", "postal_code", "country"},
	},
	{
		Name:    "stage_categories",
		File:    "categories.csv",
		Columns: []string{"id", "name", "description"},
	},
	{
		Name:    "stage_employees",
		File:    "employees.csv",
		Columns: []string{"id", "last_name", "first_name", "birth_date", "photo", "notes"},
	},
	{
		Name:    "stage_shippers",
		File:    "shippers.csv",
		Columns: []string{"id", "name", "phone"},
	},
	{
		Name:    "stage_suppliers",
		File:    "suppliers.csv",
		Columns: []string{"id", "name", "contact", "address", "city", "postal_code", "country", "phone"},
	},
	{
		Name:    "stage_products",
		File:    "products.csv",
		Columns: []string{"id", "name", "supplier_id", "category_id", "unit", "price"},
	},
	{
		Name:    "stage_orders",
		File:    "orders.csv",
		Columns: []string{"id", "customer_id", "employee_id", "order_date", "shipper_id"},
	},
	{
		Name:    "stage_order_details",
		File:    "order_details.csv",
		Columns: []string{"id", "order_id", "product_id", "quantity"},
	},
}

// Customer is a raw staged customer record.
type Customer struct {
	ID         string
	Name       string
	Contact    string
	Address    string
	City       string
	PostalCode string
	Country    string
}

// Category is a raw staged category record.
type Category struct {
	ID          string
	Name        string
	Description string
}

// Supplier is a raw staged supplier record.
type Supplier struct {
	ID         string
	Name       string
	Contact    string
	Address    string
	City       string
	PostalCode string
	Country    string
	Phone      string
}

// Product is a raw staged product record. Price is kept textual; it is
// parsed only where a derived value needs it.
type Product struct {
	ID         string
	Name       string
	SupplierID string
	CategoryID string
	Unit       string
	Price      string
}

// Order is a raw staged order header. OrderDateRaw may carry a time-of-day
// suffix after the YYYY-MM-DD prefix.
type Order struct {
	ID           string
	CustomerID   string
	EmployeeID   string
	OrderDateRaw string
	ShipperID    string
}

// OrderDetail is a raw staged order line item.
type OrderDetail struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  string
}

// UnavailableError reports a staging set that is missing or empty at
// derivation time. It is fatal to the run.
type UnavailableError struct {
	Table string
	Empty bool
}

func (e *UnavailableError) Error() string {
	if e.Empty {
		return fmt.Sprintf("staging table %s is empty", e.Table)
	}
	return fmt.Sprintf("staging table %s does not exist", e.Table)
}
