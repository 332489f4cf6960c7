//-------------------------------------------------------------------------
//
// pgEdge Sales ETL
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package warehouse derives the dimensional model from staged sales data:
// date normalization, the time dimension, the five dimension projections,
// and the sales fact build.
package warehouse

import (
	"fmt"
	"sort"
	"time"

	"github.com/pgEdge/pgedge-salesetl/internal/staging"
)

// isoDateLen is the length of the YYYY-MM-DD prefix that is interpreted.
// Anything after it (time of day, timezone junk) is ignored.
const isoDateLen = 10

// Date is a normalized calendar date with its derived parts.
type Date struct {
	// ISO is the normalized YYYY-MM-DD form; it keys the time dimension.
	ISO     string
	Year    int
	Month   int
	Day     int
	Quarter int
}

// AsTime returns the date as a UTC midnight time.Time.
func (d Date) AsTime() time.Time {
	return time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
}

// MalformedDateError reports a raw order timestamp whose leading 10
// characters do not form a valid calendar date. Fatal to the run.
type MalformedDateError struct {
	Raw string
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("malformed order date %q: leading %d characters are not a valid YYYY-MM-DD date",
		e.Raw, isoDateLen)
}

// NormalizeDate parses a raw order timestamp into a Date. Only the first 10
// characters are interpreted, and they must form a valid YYYY-MM-DD calendar
// date; a shorter value or an invalid prefix yields *MalformedDateError
// naming the raw value. Identical input always yields identical output.
func NormalizeDate(raw string) (Date, error) {
	if len(raw) < isoDateLen {
		return Date{}, &MalformedDateError{Raw: raw}
	}

	prefix := raw[:isoDateLen]
	t, err := time.Parse("2006-01-02", prefix)
	if err != nil {
		return Date{}, &MalformedDateError{Raw: raw}
	}

	month := int(t.Month())
	return Date{
		ISO:     prefix,
		Year:    t.Year(),
		Month:   month,
		Day:     t.Day(),
		Quarter: (month-1)/3 + 1,
	}, nil
}

// BuildTimeDimension normalizes every order's raw timestamp and collapses
// the results to one Date per distinct normalized value, sorted by date.
// The derived parts are recomputed per distinct date, not carried through
// the dedup. A malformed timestamp fails the build, naming the order.
func BuildTimeDimension(orders []staging.Order) ([]Date, error) {
	distinct := make(map[string]struct{}, len(orders))
	for _, o := range orders {
		d, err := NormalizeDate(o.OrderDateRaw)
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", o.ID, err)
		}
		distinct[d.ISO] = struct{}{}
	}

	keys := make([]string, 0, len(distinct))
	for iso := range distinct {
		keys = append(keys, iso)
	}
	sort.Strings(keys)

	dates := make([]Date, 0, len(keys))
	for _, iso := range keys {
		d, err := NormalizeDate(iso)
		if err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return dates, nil
}
