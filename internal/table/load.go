package table

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LoadFile reads a source spreadsheet by extension: ".xlsx" goes
// through the workbook reader, everything else is treated as CSV.
func LoadFile(path string, opt ReadOptions) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(f)
	}
	return ReadCSV(f, opt)
}
