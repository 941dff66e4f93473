// Package variants explodes each source row into one row per
// (size, color) combination and extracts per-variant quantity and
// compare-price values under the configured policies.
//
// The engine never reaches into ambient state: per-variant overrides
// live in an explicit, caller-owned Overrides store passed in by
// reference and consumed read-only.
package variants

import (
	"strings"

	"github.com/shopspring/decimal"

	"catalogcsv/internal/config"
	"catalogcsv/internal/mapping"
	"catalogcsv/internal/sizes"
	"catalogcsv/internal/table"
)

// Exploded is one source row × one (size, color) combination.
//
// Size carries the parsed size label used for inventory extraction and
// override keys; DisplaySize is the human-facing form with any embedded
// quantity suffix stripped. The two must never be conflated: display
// text uses DisplaySize, everything keyed uses Size.
type Exploded struct {
	Source table.Row

	Title       string
	Size        string
	DisplaySize string
	Color       string

	// Qty is the extracted inventory quantity after policy and
	// overrides.
	Qty int

	// ComparePrice distinguishes "absent" from zero: a blank source
	// cell stays invalid end-to-end so the output can leave the field
	// blank.
	ComparePrice decimal.NullDecimal

	// FinalPrice is set by the surcharge engine; when valid it is
	// preferred over the raw mapped price downstream.
	FinalPrice decimal.NullDecimal

	// Body and Tags are filled by description composition and
	// enrichment before shaping.
	Body string
	Tags string
}

// Key builds the override-store key for one variant.
func Key(size, color, title string) string {
	return size + "|" + color + "|" + title
}

// Overrides is the caller-owned per-variant override store. A key
// present in ComparePrices with an invalid NullDecimal is an explicit
// "no compare price", distinct from the key being absent.
type Overrides struct {
	Quantities    map[string]int
	ComparePrices map[string]decimal.NullDecimal
}

// Explode cross-joins every source row's size list and color list.
//
// Rows with no sizes produce a single empty-size placeholder; same for
// colors, so a row with neither still yields exactly one variant.
func Explode(t *table.Table, m mapping.Mapping, opts config.Options, ov *Overrides) []*Exploded {
	var out []*Exploded

	for _, row := range t.Rows {
		title := mapping.Value(row, m, "Title", "Unknown")

		sorted, qtys := sizes.Sort(mapping.Value(row, m, "Option1 Value", ""))
		colors := splitColors(mapping.Value(row, m, "Option2 Value", ""))

		if len(sorted) == 0 {
			sorted = []string{""}
			qtys = map[string]int{"": 0}
		}
		if len(colors) == 0 {
			colors = []string{""}
		}

		comparePrice := extractComparePrice(row, m, opts)

		for _, size := range sorted {
			for _, color := range colors {
				e := &Exploded{
					Source:       row,
					Title:        title,
					Size:         size,
					DisplaySize:  sizes.Display(size),
					Color:        color,
					Qty:          extractQuantity(size, qtys, opts),
					ComparePrice: comparePrice,
				}
				applyOverrides(e, ov)
				out = append(out, e)
			}
		}
	}

	return out
}

func splitColors(raw string) []string {
	var out []string
	for _, c := range strings.Split(raw, ",") {
		if c = strings.TrimSpace(c); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// extractQuantity applies the quantity policy for one variant:
// bulk mode wins outright; expected mode uses the size's embedded
// quantity when positive and falls back otherwise; plain mode always
// uses the default.
func extractQuantity(size string, qtys map[string]int, opts config.Options) int {
	if opts.Bool(config.KeyBulkQtyMode, false) {
		return opts.Int(config.KeyBulkQty, config.DefaultQty)
	}

	if opts.Bool(config.KeyUseExpectedQty, true) {
		if q := qtys[size]; q > 0 {
			return q
		}
		return opts.Int(config.KeyFallbackQty, opts.Int(config.KeyDefaultQty, config.DefaultQty))
	}

	return opts.Int(config.KeyDefaultQty, config.DefaultQty)
}

// extractComparePrice applies the compare-price policy for one source
// row. In expected mode a value is accepted only when present,
// non-blank, and parsing to a number >= 0; everything else is an
// explicit absent, never zero and never a default.
func extractComparePrice(row table.Row, m mapping.Mapping, opts config.Options) decimal.NullDecimal {
	if opts.Bool(config.KeyBulkComparePriceMode, false) {
		return decimal.NullDecimal{
			Decimal: decimal.NewFromFloat(opts.Float(config.KeyBulkComparePrice, 0)),
			Valid:   true,
		}
	}

	if opts.Bool(config.KeyUseExpectedCmpPrice, true) {
		raw := mapping.Value(row, m, "Variant Compare At Price", "")
		if raw != "" {
			if d, err := decimal.NewFromString(raw); err == nil && !d.IsNegative() {
				return decimal.NullDecimal{Decimal: d, Valid: true}
			}
		}
		return decimal.NullDecimal{}
	}

	return decimal.NullDecimal{
		Decimal: decimal.NewFromFloat(opts.Float(config.KeyDefaultComparePrice, 0)),
		Valid:   true,
	}
}

// applyOverrides lets a caller-supplied value win over the extracted
// one. A missing key falls back to the extraction result, not to zero.
func applyOverrides(e *Exploded, ov *Overrides) {
	if ov == nil {
		return
	}
	key := Key(e.Size, e.Color, e.Title)
	if q, ok := ov.Quantities[key]; ok {
		e.Qty = q
	}
	if p, ok := ov.ComparePrices[key]; ok {
		e.ComparePrice = p
	}
}
