// Package describe renders ordered (column, label, markup) elements
// into one HTML description fragment per product row.
//
// Markup wraps differently per style: the standalone styles (none, br,
// li, p) keep label and value inside the same unit, while any other
// tag name decorates the label only and appends the value outside it.
package describe

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"catalogcsv/internal/table"
)

// Element is one building block of a composed description. Column
// names a source-table column; Label is optional display text; Tag is
// the markup style ("none", "br", "li", "p", or any HTML tag name);
// Order sets the rendering position.
type Element struct {
	Column string `json:"column"`
	Label  string `json:"label"`
	Tag    string `json:"html_tag"`
	Order  int    `json:"order"`
}

// valuePolicy strips all markup from source cell values so a
// spreadsheet cell can never inject tags into the output.
var valuePolicy = bluemonday.StrictPolicy()

// Compose renders the elements against one source row and joins the
// fragments with single spaces. Elements with a blank column or a
// blank resolved value are skipped entirely.
func Compose(elements []Element, row table.Row) string {
	ordered := make([]Element, 0, len(elements))
	for _, e := range elements {
		if strings.TrimSpace(e.Column) != "" {
			ordered = append(ordered, e)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Order < ordered[j].Order
	})

	var parts []string
	for _, e := range ordered {
		if !row.Has(e.Column) {
			continue
		}
		value := cleanValue(row.Get(e.Column), e.Column)
		if value == "" {
			continue
		}
		parts = append(parts, renderFragment(e, value))
	}
	return strings.Join(parts, " ")
}

func renderFragment(e Element, value string) string {
	label := strings.TrimSpace(e.Label)
	tag := strings.TrimSpace(e.Tag)
	if tag == "" {
		tag = "p"
	}

	if label == "" {
		switch tag {
		case "none":
			return value
		case "br":
			return value + "<br>"
		case "li":
			return "<li>" + value + "</li>"
		default:
			return fmt.Sprintf("<%s>%s</%s>", tag, value, tag)
		}
	}

	switch tag {
	case "none":
		return label + ": " + value
	case "br":
		return label + ": " + value + "<br>"
	case "li":
		return "<li>" + label + ": " + value + "</li>"
	case "p":
		// Label and value share the same paragraph.
		return "<p>" + label + ": " + value + "</p>"
	default:
		// The tag decorates the label only; the value sits outside it
		// inside an enclosing paragraph.
		return fmt.Sprintf("<p><%s>%s : </%s> %s</p>", tag, label, tag, value)
	}
}

// countFields are column-name hints marking values that are always
// whole counts, never fractions.
var countFields = []string{
	"no of components", "components", "number_of_components",
	"component_count", "quantity", "qty", "count", "pieces",
	"set", "items", "number", "no",
}

// cleanValue sanitizes and normalizes one cell value. Whole-number
// values lose their trailing ".0"; values from count-hinted columns
// are forced to integer form even when fractional.
func cleanValue(raw, column string) string {
	v := strings.TrimSpace(valuePolicy.Sanitize(raw))
	if v == "" {
		return ""
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return v
	}

	lower := strings.ToLower(column)
	forced := false
	for _, field := range countFields {
		if strings.Contains(lower, field) {
			forced = true
			break
		}
	}
	if forced || f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return v
}
