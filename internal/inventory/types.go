// Package inventory implements the Inventory Parser (C4) and Inventory
// Filter (C5): it turns a raw index file (wgrib2 or eccodes dialect)
// into a table of Row values keyed by search_key, and filters that table
// by a user regex.
package inventory

import (
	"fmt"
	"strings"
	"time"
)

// Row is one GRIB message, normalized across both dialects (§3.3).
type Row struct {
	Message       int
	StartByte     int64
	EndByte       int64 // -1 means open-ended (final row of a wgrib2 index).
	ReferenceTime time.Time
	ValidTime     time.Time

	// wgrib2 dialect columns.
	Variable     string
	Level        string
	ForecastTime string

	// eccodes dialect columns.
	Param    string
	Levelist string
	Levtype  string
	Number   string
	Domain   string
	Expver   string
	Class    string
	Type     string
	Stream   string
	Step     string

	SearchKey string
}

// HasOpenEnd reports whether EndByte is unknown (the final row of a
// wgrib2 inventory, per §3.3/§4.4.1).
func (r Row) HasOpenEnd() bool { return r.EndByte < 0 }

// buildSearchKey joins non-empty, non-"nan" fields with ":" and prefixes
// the result with ":" per §4.4.1/§4.4.2.
func buildSearchKey(fields ...string) string {
	var kept []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" || strings.EqualFold(f, "nan") {
			continue
		}
		kept = append(kept, f)
	}
	if len(kept) == 0 {
		return ":"
	}
	return ":" + strings.Join(kept, ":")
}

// Table is a parsed, ordered inventory.
type Table struct {
	Rows []Row
}

// validateMessageSequence enforces §8.1's invariant that message values
// form 1..N contiguous, in order; a repeated or skipped message number
// means a corrupted index, which both dialect parsers reject as
// BadDialect per §9 rather than accepting silently.
func validateMessageSequence(rows []Row) error {
	for i, row := range rows {
		if row.Message != i+1 {
			return fmt.Errorf("message numbers not contiguous 1..N: row %d has message %d", i, row.Message)
		}
	}
	return nil
}
