package variants

import "github.com/shopspring/decimal"

// Variant identifies one exploded row within a product.
type Variant struct {
	Size  string
	Color string
	Title string
}

// SeedResult is what the caller needs to pre-populate its editable
// quantity and compare-price fields: the unique variants in first-seen
// order plus the values extraction produced for each.
type SeedResult struct {
	Variants      []Variant
	Quantities    map[string]int
	ComparePrices map[string]decimal.NullDecimal
}

// Seed collects the unique variant keys from an exploded row set. The
// first occurrence of a key wins; later duplicates are ignored.
func Seed(rows []*Exploded) *SeedResult {
	res := &SeedResult{
		Quantities:    map[string]int{},
		ComparePrices: map[string]decimal.NullDecimal{},
	}

	seen := map[string]struct{}{}
	for _, e := range rows {
		key := Key(e.Size, e.Color, e.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		res.Variants = append(res.Variants, Variant{Size: e.Size, Color: e.Color, Title: e.Title})
		res.Quantities[key] = e.Qty
		res.ComparePrices[key] = e.ComparePrice
	}

	return res
}
