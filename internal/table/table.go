// Package table holds the in-memory tabular dataset that flows through
// the pipeline: arbitrary column names, untyped string cells.
//
// Loading is intentionally best-effort and designed for messy vendor
// spreadsheets:
//   - headers are whitespace-trimmed, a UTF-8 BOM on the first header
//     is stripped
//   - records with the wrong field count are skipped and reported via
//     an optional callback, never failing the load
//   - non-UTF-8 input falls back to a windows-1252 decode
//
// The table is read-only once built; pipeline stages derive new data
// instead of mutating cells.
package table

import (
	"strings"
)

// Row is one input record keyed by original column name. Cells are raw
// strings; numeric interpretation happens at the point of use.
type Row map[string]string

// Table is an ordered set of columns plus the rows that carry them.
type Table struct {
	Columns []string
	Rows    []Row
}

// Empty reports whether the table has no usable data rows.
func (t *Table) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// Get returns the trimmed cell value for a column, or "" when the
// column is absent.
func (r Row) Get(column string) string {
	return strings.TrimSpace(r[column])
}

// Has reports whether the row carries a non-blank value for a column.
func (r Row) Has(column string) bool {
	return r.Get(column) != ""
}

// Sample returns up to n non-empty values from one column, in row
// order. Used by content-based column classification.
func (t *Table) Sample(column string, n int) []string {
	out := make([]string, 0, n)
	for _, row := range t.Rows {
		if v := row.Get(column); v != "" {
			out = append(out, v)
			if len(out) >= n {
				break
			}
		}
	}
	return out
}
