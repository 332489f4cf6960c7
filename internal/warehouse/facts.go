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
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/pgEdge/pgedge-salesetl/internal/staging"
)

// FactRow is one sales fact: one row per surviving (order, product) line.
// Foreign keys are carried as natural identifiers and are not enforced.
type FactRow struct {
	OrderID      string
	CustomerID   string
	EmployeeID   string
	ProductID    string
	Quantity     int
	TotalRevenue decimal.Decimal
	OrderDate    Date
}

// Unmatched reasons.
const (
	ReasonMissingOrder   = "order not in staging"
	ReasonMissingProduct = "product not in staging"
	ReasonBadQuantity    = "quantity is not a positive integer"
	ReasonBadPrice       = "price is not a valid decimal"
)

// UnmatchedLine is an order line that produced no fact row. The inner-join
// semantics of the source silently dropped these; here every drop is a
// countable outcome instead.
type UnmatchedLine struct {
	DetailID  string
	OrderID   string
	ProductID string
	Reason    string
}

// FactSet is the outcome of a fact build: the surviving fact rows plus
// every dropped line with its reason.
type FactSet struct {
	Facts     []FactRow
	Unmatched []UnmatchedLine
}

// BuildFacts joins order line items to their order and product and derives
// one fact row per matched line, with total_revenue = quantity * unit price
// computed exactly at staging-time price. Lines whose order or product is
// missing, or whose quantity/price does not parse, are excluded and
// reported in Unmatched. A malformed order date is fatal: it poisons the
// time dimension, not just one line.
func BuildFacts(details []staging.OrderDetail, orders []staging.Order, products []staging.Product) (FactSet, error) {
	orderByID := make(map[string]staging.Order, len(orders))
	for _, o := range orders {
		orderByID[o.ID] = o
	}
	productByID := make(map[string]staging.Product, len(products))
	for _, p := range products {
		productByID[p.ID] = p
	}

	set := FactSet{Facts: make([]FactRow, 0, len(details))}

	for _, d := range details {
		order, ok := orderByID[d.OrderID]
		if !ok {
			set.drop(d, ReasonMissingOrder)
			continue
		}
		product, ok := productByID[d.ProductID]
		if !ok {
			set.drop(d, ReasonMissingProduct)
			continue
		}

		quantity, err := strconv.Atoi(d.Quantity)
		if err != nil || quantity <= 0 {
			set.drop(d, ReasonBadQuantity)
			continue
		}

		price, err := decimal.NewFromString(product.Price)
		if err != nil {
			set.drop(d, ReasonBadPrice)
			continue
		}

		orderDate, err := NormalizeDate(order.OrderDateRaw)
		if err != nil {
			return FactSet{}, fmt.Errorf("order %s: %w", order.ID, err)
		}

		set.Facts = append(set.Facts, FactRow{
			OrderID:      order.ID,
			CustomerID:   order.CustomerID,
			EmployeeID:   order.EmployeeID,
			ProductID:    product.ID,
			Quantity:     quantity,
			TotalRevenue: decimal.NewFromInt(int64(quantity)).Mul(price),
			OrderDate:    orderDate,
		})
	}

	return set, nil
}

func (s *FactSet) drop(d staging.OrderDetail, reason string) {
	s.Unmatched = append(s.Unmatched, UnmatchedLine{
		DetailID:  d.ID,
		OrderID:   d.OrderID,
		ProductID: d.ProductID,
		Reason:    reason,
	})
}
