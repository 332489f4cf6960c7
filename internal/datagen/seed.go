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
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pgEdge/pgedge-salesetl/internal/staging"
)

// Spec controls how many rows each sample source file gets.
type Spec struct {
	Customers        int
	Suppliers        int
	Categories       int
	Employees        int
	Shippers         int
	Products         int
	Orders           int
	MaxLinesPerOrder int
}

var units = []string{
	"10 boxes x 20 bags", "24 - 12 oz bottles", "12 - 550 ml bottles",
	"48 - 6 oz jars", "36 boxes", "12 - 8 oz jars", "10 - 500 g pkgs.",
	"24 - 500 ml bottles", "32 - 1 kg pkgs.", "20 - 1 kg tins",
}

// WriteSourceFiles generates the eight sample source CSV files in dir with
// coherent cross-file references, so a seeded directory always loads and
// builds cleanly. Returns rows written per file.
func WriteSourceFiles(dir string, spec Spec, f *Faker) (map[string]int, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	counts := make(map[string]int, len(staging.Tables))

	writers := map[string]func(w *csv.Writer) (int, error){
		"customers.csv":     func(w *csv.Writer) (int, error) { return writeCustomers(w, spec.Customers, f) },
		"categories.csv":    func(w *csv.Writer) (int, error) { return writeCategories(w, spec.Categories, f) },
		"employees.csv":     func(w *csv.Writer) (int, error) { return writeEmployees(w, spec.Employees, f) },
		"shippers.csv":      func(w *csv.Writer) (int, error) { return writeShippers(w, spec.Shippers, f) },
		"suppliers.csv":     func(w *csv.Writer) (int, error) { return writeSuppliers(w, spec.Suppliers, f) },
		"products.csv":      func(w *csv.Writer) (int, error) { return writeProducts(w, spec, f) },
		"orders.csv":        func(w *csv.Writer) (int, error) { return writeOrders(w, spec, f) },
		"order_details.csv": func(w *csv.Writer) (int, error) { return writeOrderDetails(w, spec, f) },
	}

	for _, table := range staging.Tables {
		write := writers[table.File]
		n, err := writeFile(filepath.Join(dir, table.File), table.Columns, write)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", table.File, err)
		}
		counts[table.File] = n
	}

	return counts, nil
}

func writeFile(path string, header []string, write func(w *csv.Writer) (int, error)) (int, error) {
	out, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	if err := w.Write(header); err != nil {
		return 0, err
	}

	n, err := write(w)
	if err != nil {
		return 0, err
	}

	w.Flush()
	return n, w.Error()
}

func writeCustomers(w *csv.Writer, count int, f *Faker) (int, error) {
	for i := 1; i <= count; i++ {
		err := w.Write([]string{
			strconv.Itoa(i), f.Company(), f.Name(), f.Street(),
			f.City(), f.Zip(), f.Country(),
		})
		if err != nil {
			return 0, err
		}
	}
	return count, nil
}

func writeCategories(w *csv.Writer, count int, f *Faker) (int, error) {
	for i := 1; i <= count; i++ {
		err := w.Write([]string{
			strconv.Itoa(i), f.ProductCategory(), f.Sentence(6),
		})
		if err != nil {
			return 0, err
		}
	}
	return count, nil
}

func writeEmployees(w *csv.Writer, count int, f *Faker) (int, error) {
	start := time.Date(1955, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(1995, 12, 31, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= count; i++ {
		err := w.Write([]string{
			strconv.Itoa(i), f.LastName(), f.FirstName(),
			f.DateRange(start, end).Format("2006-01-02"),
			fmt.Sprintf("EmpID%d.pic", i),
			f.Sentence(8),
		})
		if err != nil {
			return 0, err
		}
	}
	return count, nil
}

func writeShippers(w *csv.Writer, count int, f *Faker) (int, error) {
	for i := 1; i <= count; i++ {
		err := w.Write([]string{strconv.Itoa(i), f.Company(), f.Phone()})
		if err != nil {
			return 0, err
		}
	}
	return count, nil
}

func writeSuppliers(w *csv.Writer, count int, f *Faker) (int, error) {
	for i := 1; i <= count; i++ {
		err := w.Write([]string{
			strconv.Itoa(i), f.Company(), f.Name(), f.Street(),
			f.City(), f.Zip(), f.Country(), f.Phone(),
		})
		if err != nil {
			return 0, err
		}
	}
	return count, nil
}

func writeProducts(w *csv.Writer, spec Spec, f *Faker) (int, error) {
	for i := 1; i <= spec.Products; i++ {
		err := w.Write([]string{
			strconv.Itoa(i), f.ProductName(),
			strconv.Itoa(f.Int(1, spec.Suppliers)),
			strconv.Itoa(f.Int(1, spec.Categories)),
			Choose(f, units),
			strconv.FormatFloat(f.Price(2, 250), 'f', 2, 64),
		})
		if err != nil {
			return 0, err
		}
	}
	return spec.Products, nil
}

func writeOrders(w *csv.Writer, spec Spec, f *Faker) (int, error) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
	for i := 1; i <= spec.Orders; i++ {
		// Raw timestamps keep a time-of-day suffix after the date prefix,
		// like the real source files do.
		err := w.Write([]string{
			strconv.Itoa(i),
			strconv.Itoa(f.Int(1, spec.Customers)),
			strconv.Itoa(f.Int(1, spec.Employees)),
			f.DateRange(start, end).Format("2006-01-02 15:04:05"),
			strconv.Itoa(f.Int(1, spec.Shippers)),
		})
		if err != nil {
			return 0, err
		}
	}
	return spec.Orders, nil
}

func writeOrderDetails(w *csv.Writer, spec Spec, f *Faker) (int, error) {
	id := 0
	for order := 1; order <= spec.Orders; order++ {
		lines := min(f.Int(1, spec.MaxLinesPerOrder), spec.Products)

		// Distinct products per order: one fact row per (order, product).
		seen := make(map[int]struct{}, lines)
		for len(seen) < lines {
			seen[f.Int(1, spec.Products)] = struct{}{}
		}

		for product := range seen {
			id++
			err := w.Write([]string{
				strconv.Itoa(id),
				strconv.Itoa(order),
				strconv.Itoa(product),
				strconv.Itoa(f.Int(1, 40)),
			})
			if err != nil {
				return 0, err
			}
		}
	}
	return id, nil
}
