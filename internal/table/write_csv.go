package table

import (
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV serializes the table as UTF-8 CSV: one header row in the
// table's exact column order, blanks as empty fields. Cells for
// columns a row does not carry serialize as "".
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rec := make([]string, len(t.Columns))
	for i, row := range t.Rows {
		for j, col := range t.Columns {
			rec[j] = row[col]
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
