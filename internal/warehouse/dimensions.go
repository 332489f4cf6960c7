//-------------------------------------------------------------------------
//
// pgEdge Sales ETL
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

package warehouse

import "github.com/pgEdge/pgedge-salesetl/internal/staging"

// The dimension projections are fixed column renames: every staging row
// yields exactly one dimension row, no filtering, no dedup, no computed
// fields. Rows with an empty natural identifier pass through unchanged but
// are counted so the gap is visible instead of silent.

// CustomerRow is a dim_customer row.
type CustomerRow struct {
	CustomerID   string
	CustomerName string
	ContactName  string
	Address      string
	City         string
	PostalCode   string
	Country      string
}

// ProductRow is a dim_product row.
type ProductRow struct {
	ProductID   string
	ProductName string
	SupplierID  string
	CategoryID  string
	Unit        string
	Price       string
}

// SupplierRow is a dim_supplier row.
type SupplierRow struct {
	SupplierID   string
	SupplierName string
	ContactName  string
	Address      string
	City         string
	PostalCode   string
	Country      string
	Phone        string
}

// CategoryRow is a dim_category row.
type CategoryRow struct {
	CategoryID   string
	CategoryName string
	Description  string
}

// Projection carries a projected dimension plus the count of rows whose
// natural identifier was empty.
type Projection[T any] struct {
	Rows     []T
	EmptyIDs int
}

// ProjectCustomers maps staged customers 1:1 into dim_customer rows.
func ProjectCustomers(customers []staging.Customer) Projection[CustomerRow] {
	p := Projection[CustomerRow]{Rows: make([]CustomerRow, 0, len(customers))}
	for _, c := range customers {
		if c.ID == "" {
			p.EmptyIDs++
		}
		p.Rows = append(p.Rows, CustomerRow{
			CustomerID:   c.ID,
			CustomerName: c.Name,
			ContactName:  c.Contact,
			Address:      c.Address,
			City:         c.City,
			PostalCode:   c.PostalCode,
			Country:      c.Country,
		})
	}
	return p
}

// ProjectProducts maps staged products 1:1 into dim_product rows.
func ProjectProducts(products []staging.Product) Projection[ProductRow] {
	p := Projection[ProductRow]{Rows: make([]ProductRow, 0, len(products))}
	for _, pr := range products {
		if pr.ID == "" {
			p.EmptyIDs++
		}
		p.Rows = append(p.Rows, ProductRow{
			ProductID:   pr.ID,
			ProductName: pr.Name,
			SupplierID:  pr.SupplierID,
			CategoryID:  pr.CategoryID,
			Unit:        pr.Unit,
			Price:       pr.Price,
		})
	}
	return p
}

// ProjectSuppliers maps staged suppliers 1:1 into dim_supplier rows.
func ProjectSuppliers(suppliers []staging.Supplier) Projection[SupplierRow] {
	p := Projection[SupplierRow]{Rows: make([]SupplierRow, 0, len(suppliers))}
	for _, s := range suppliers {
		if s.ID == "" {
			p.EmptyIDs++
		}
		p.Rows = append(p.Rows, SupplierRow{
			SupplierID:   s.ID,
			SupplierName: s.Name,
			ContactName:  s.Contact,
			Address:      s.Address,
			City:         s.City,
			PostalCode:   s.PostalCode,
			Country:      s.Country,
			Phone:        s.Phone,
		})
	}
	return p
}

// ProjectCategories maps staged categories 1:1 into dim_category rows.
func ProjectCategories(categories []staging.Category) Projection[CategoryRow] {
	p := Projection[CategoryRow]{Rows: make([]CategoryRow, 0, len(categories))}
	for _, c := range categories {
		if c.ID == "" {
			p.EmptyIDs++
		}
		p.Rows = append(p.Rows, CategoryRow{
			CategoryID:   c.ID,
			CategoryName: c.Name,
			Description:  c.Description,
		})
	}
	return p
}
