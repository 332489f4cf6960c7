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
	"encoding/csv"
	"fmt"
	"io"
	"strings"
)

// utf8BOM is stripped from the first header cell if present. Exports from
// spreadsheet tools routinely prepend it.
const utf8BOM = "\ufeff"

// ReadRecords parses one source CSV file. The first row must be a header
// naming exactly the expected columns in order; every data row must have
// the same width. Returned rows are aligned to the column order and ready
// for CopyFrom.
func ReadRecords(r io.Reader, delimiter rune, columns []string) ([][]any, error) {
	cr := csv.NewReader(r)
	cr.Comma = delimiter
	cr.FieldsPerRecord = len(columns)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("file is empty")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	header = stripHeaderBOM(header)
	if err := validateHeader(header, columns); err != nil {
		return nil, err
	}

	rows := make([][]any, 0, 1024)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}

		row := make([]any, len(record))
		for i, field := range record {
			row[i] = field
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// stripHeaderBOM removes a UTF-8 BOM from the first header cell if present.
func stripHeaderBOM(header []string) []string {
	if len(header) > 0 && strings.HasPrefix(header[0], utf8BOM) {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	return header
}

// validateHeader requires the header to name the expected columns in order.
// A reordered header would otherwise load misaligned into staging.
func validateHeader(header, columns []string) error {
	for i, want := range columns {
		if header[i] != want {
			return fmt.Errorf("unexpected header: column %d is %q, want %q", i+1, header[i], want)
		}
	}
	return nil
}
