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
	"errors"
	"strings"
	"testing"

	"github.com/pgEdge/pgedge-salesetl/internal/staging"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Date
		wantErr bool
	}{
		{
			name: "bare date",
			raw:  "1996-07-04",
			want: Date{ISO: "1996-07-04", Year: 1996, Month: 7, Day: 4, Quarter: 3},
		},
		{
			name: "time suffix ignored",
			raw:  "1996-07-04 00:00:00",
			want: Date{ISO: "1996-07-04", Year: 1996, Month: 7, Day: 4, Quarter: 3},
		},
		{
			name: "T suffix ignored",
			raw:  "1996-07-04T23:59",
			want: Date{ISO: "1996-07-04", Year: 1996, Month: 7, Day: 4, Quarter: 3},
		},
		{
			name: "fourth quarter",
			raw:  "2025-12-31 08:15:00",
			want: Date{ISO: "2025-12-31", Year: 2025, Month: 12, Day: 31, Quarter: 4},
		},
		{
			name: "leap day",
			raw:  "2000-02-29",
			want: Date{ISO: "2000-02-29", Year: 2000, Month: 2, Day: 29, Quarter: 1},
		},
		{
			name:    "non-leap february 29",
			raw:     "1999-02-29",
			wantErr: true,
		},
		{
			name:    "day-first field order",
			raw:     "04-07-1996",
			wantErr: true,
		},
		{
			name:    "calendar-invalid day",
			raw:     "1996-02-31 00:00:00",
			wantErr: true,
		},
		{
			name:    "shorter than ten characters",
			raw:     "1996-07",
			wantErr: true,
		},
		{
			name:    "empty string",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "not a date at all",
			raw:     "hello world",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDate(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NormalizeDate(%q) expected error, got %+v", tt.raw, got)
				}
				var mde *MalformedDateError
				if !errors.As(err, &mde) {
					t.Fatalf("expected MalformedDateError, got %T: %v", err, err)
				}
				if mde.Raw != tt.raw {
					t.Errorf("error should name raw value %q, got %q", tt.raw, mde.Raw)
				}
				if !strings.Contains(err.Error(), tt.raw) && tt.raw != "" {
					t.Errorf("error message should contain the raw value: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeDate(%q) unexpected error: %v", tt.raw, err)
			}
			if got != tt.want {
				t.Errorf("NormalizeDate(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeDateIdempotent(t *testing.T) {
	raws := []string{
		"1996-07-04 00:00:00",
		"2024-01-01",
		"2025-11-30T12:00:00Z",
	}
	for _, raw := range raws {
		first, err := NormalizeDate(raw)
		if err != nil {
			t.Fatalf("NormalizeDate(%q): %v", raw, err)
		}
		second, err := NormalizeDate(raw)
		if err != nil {
			t.Fatalf("NormalizeDate(%q) second call: %v", raw, err)
		}
		if first != second {
			t.Errorf("NormalizeDate(%q) not idempotent: %+v != %+v", raw, first, second)
		}

		// Normalizing the normalized form is also stable.
		again, err := NormalizeDate(first.ISO)
		if err != nil {
			t.Fatalf("NormalizeDate(%q): %v", first.ISO, err)
		}
		if again != first {
			t.Errorf("re-normalizing %q changed the result: %+v != %+v", first.ISO, again, first)
		}
	}
}

func TestNormalizeDateQuarterLaw(t *testing.T) {
	months := []string{"01", "02", "03", "04", "05", "06", "07", "08", "09", "10", "11", "12"}
	for i, m := range months {
		d, err := NormalizeDate("2025-" + m + "-15")
		if err != nil {
			t.Fatalf("month %s: %v", m, err)
		}
		want := i/3 + 1
		if d.Quarter != want {
			t.Errorf("month %d: quarter = %d, want %d", i+1, d.Quarter, want)
		}
		if d.Quarter != (d.Month-1)/3+1 {
			t.Errorf("month %d: quarter law violated", i+1)
		}
	}
}

func TestBuildTimeDimensionDedup(t *testing.T) {
	orders := []staging.Order{
		{ID: "1", OrderDateRaw: "1996-07-04T10:00"},
		{ID: "2", OrderDateRaw: "1996-07-04T23:59"},
		{ID: "3", OrderDateRaw: "1996-07-05 00:00:00"},
	}

	dates, err := BuildTimeDimension(orders)
	if err != nil {
		t.Fatalf("BuildTimeDimension: %v", err)
	}

	if len(dates) != 2 {
		t.Fatalf("expected 2 distinct dates, got %d: %+v", len(dates), dates)
	}
	if dates[0].ISO != "1996-07-04" || dates[1].ISO != "1996-07-05" {
		t.Errorf("unexpected dates: %+v", dates)
	}
	if dates[0].Quarter != 3 || dates[0].Year != 1996 {
		t.Errorf("derived parts not recomputed: %+v", dates[0])
	}
}

func TestBuildTimeDimensionSorted(t *testing.T) {
	orders := []staging.Order{
		{ID: "1", OrderDateRaw: "2025-03-01"},
		{ID: "2", OrderDateRaw: "2024-12-31"},
		{ID: "3", OrderDateRaw: "2025-01-15"},
	}

	dates, err := BuildTimeDimension(orders)
	if err != nil {
		t.Fatalf("BuildTimeDimension: %v", err)
	}

	for i := 1; i < len(dates); i++ {
		if dates[i-1].ISO >= dates[i].ISO {
			t.Errorf("dates not sorted: %q before %q", dates[i-1].ISO, dates[i].ISO)
		}
	}
}

func TestBuildTimeDimensionMalformed(t *testing.T) {
	orders := []staging.Order{
		{ID: "41", OrderDateRaw: "2025-03-01"},
		{ID: "42", OrderDateRaw: "04-07-1996"},
	}

	_, err := BuildTimeDimension(orders)
	if err == nil {
		t.Fatal("expected error for malformed date")
	}
	var mde *MalformedDateError
	if !errors.As(err, &mde) {
		t.Fatalf("expected MalformedDateError, got %T: %v", err, err)
	}
	if mde.Raw != "04-07-1996" {
		t.Errorf("error should name the raw value, got %q", mde.Raw)
	}
	if !strings.Contains(err.Error(), "42") {
		t.Errorf("error should name the offending order: %v", err)
	}
}
