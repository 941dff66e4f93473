package table

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// ReadOptions control CSV decoding. The zero value is usable.
type ReadOptions struct {
	// Comma is the field delimiter. Zero means ','.
	Comma rune

	// OnErr receives skipped-record errors with a 1-based line number.
	// Nil disables reporting; skipping still happens.
	OnErr func(line int, err error)
}

// ReadCSV decodes a CSV export into a Table.
//
// Headers are trimmed and a leading BOM is stripped. Records whose
// field count does not match the header are skipped via OnErr rather
// than failing the read. Input that is not valid UTF-8 is re-decoded
// as windows-1252, the usual culprit for spreadsheet exports.
func ReadCSV(r io.Reader, opt ReadOptions) (*Table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	if !utf8.Valid(data) {
		decoded, derr := charmap.Windows1252.NewDecoder().Bytes(data)
		if derr != nil {
			return nil, fmt.Errorf("decode input: %w", derr)
		}
		data = decoded
	}

	comma := opt.Comma
	if comma == 0 {
		comma = ','
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = comma
	cr.FieldsPerRecord = -1 // validated manually
	cr.LazyQuotes = true

	line := 0
	readRec := func() ([]string, error) {
		line++
		return cr.Read()
	}

	headers, err := readRec()
	if err != nil {
		if err == io.EOF {
			return &Table{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	t := &Table{Columns: headers}
	for {
		rec, err := readRec()
		if err == io.EOF {
			break
		}
		if err != nil {
			if opt.OnErr != nil {
				opt.OnErr(line, err)
			}
			continue
		}
		if len(rec) != len(headers) {
			if opt.OnErr != nil {
				opt.OnErr(line, fmt.Errorf("record has %d fields, header has %d", len(rec), len(headers)))
			}
			continue
		}
		row := make(Row, len(headers))
		for i, h := range headers {
			row[h] = strings.TrimSpace(rec[i])
		}
		t.Rows = append(t.Rows, row)
	}

	return t, nil
}
