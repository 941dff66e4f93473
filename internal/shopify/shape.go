package shopify

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"catalogcsv/internal/config"
	"catalogcsv/internal/mapping"
	"catalogcsv/internal/pricing"
	"catalogcsv/internal/sizes"
	"catalogcsv/internal/table"
	"catalogcsv/internal/variants"
)

// Shape groups exploded rows by handle and emits the final catalog
// table: one primary row per product followed by its subordinate
// variant rows, all conforming to the fixed schema.
//
// Within a group, rows are ordered by that group's own size ordering
// (recomputed from the sizes the group actually has) and then by
// color. An empty result after grouping is a terminal error for this
// generation attempt; the caller's session stays usable.
func Shape(rows []*variants.Exploded, m mapping.Mapping, opts config.Options) (*table.Table, error) {
	groups := map[string][]*variants.Exploded{}
	for _, e := range rows {
		h := Handle(e.Title, skuValue(e, m))
		groups[h] = append(groups[h], e)
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("no product groups to emit; check the title and size mappings")
	}

	handles := make([]string, 0, len(groups))
	for h := range groups {
		handles = append(handles, h)
	}
	sort.Strings(handles)

	out := &table.Table{Columns: Columns}
	for _, h := range handles {
		group := groups[h]
		sortGroup(group)
		for i, e := range group {
			if i == 0 {
				out.Rows = append(out.Rows, primaryRow(h, e, m, opts))
			} else {
				out.Rows = append(out.Rows, subordinateRow(h, e, m, opts))
			}
		}
	}
	return out, nil
}

// sortGroup orders a product group by the group's own size ordering,
// then color. A size somehow missing from the recomputed ordering
// sinks to the end.
func sortGroup(group []*variants.Exploded) {
	set := make([]string, 0, len(group))
	seen := map[string]struct{}{}
	for _, e := range group {
		if _, dup := seen[e.Size]; dup {
			continue
		}
		seen[e.Size] = struct{}{}
		set = append(set, e.Size)
	}

	ordered, _ := sizes.Sort(strings.Join(set, ", "))
	rank := make(map[string]int, len(ordered))
	for i, s := range ordered {
		rank[s] = i
	}

	sort.SliceStable(group, func(i, j int) bool {
		ri, ok := rank[group[i].Size]
		if !ok {
			ri = len(ordered)
		}
		rj, ok := rank[group[j].Size]
		if !ok {
			rj = len(ordered)
		}
		if ri != rj {
			return ri < rj
		}
		return group[i].Color < group[j].Color
	})
}

func primaryRow(handle string, e *variants.Exploded, m mapping.Mapping, opts config.Options) table.Row {
	row := blankRow()

	row["Handle"] = handle
	row["Title"] = e.Title
	row["Body (HTML)"] = bodyHTML(e, m)
	row["Vendor"] = opts.String(config.KeyVendorName, config.DefaultVendorName)
	row["Product Category"] = mapping.Value(e.Source, m, "Product Category", "")
	row["Type"] = mapping.Value(e.Source, m, "Type", "")
	row["Tags"] = e.Tags
	row["Published"] = publishedFlag(e, m)

	if e.DisplaySize != "" {
		row["Option1 Name"] = "Size"
	}
	row["Option1 Value"] = e.DisplaySize
	if e.Color != "" {
		row["Option2 Name"] = "Color"
	}
	row["Option2 Value"] = e.Color

	fillVariantFields(row, e, m, opts)
	row["Status"] = "draft"
	return row
}

func subordinateRow(handle string, e *variants.Exploded, m mapping.Mapping, opts config.Options) table.Row {
	row := blankRow()

	row["Handle"] = handle
	row["Option1 Value"] = e.DisplaySize
	row["Option2 Value"] = e.Color

	fillVariantFields(row, e, m, opts)
	return row
}

// fillVariantFields sets the variant-level columns shared by primary
// and subordinate rows.
func fillVariantFields(row table.Row, e *variants.Exploded, m mapping.Mapping, opts config.Options) {
	row["Variant SKU"] = skuValue(e, m)
	row["Variant Inventory Qty"] = strconv.Itoa(e.Qty)
	row["Variant Inventory Policy"] = opts.String(config.KeyInventoryPolicy, config.DefaultInventoryPolicy)
	row["Variant Fulfillment Service"] = "manual"
	row["Variant Price"] = priceValue(e, m)
	row["Variant Compare At Price"] = comparePriceValue(e)
	row["Variant Requires Shipping"] = "TRUE"
	row["Variant Taxable"] = "TRUE"
	row["Gift Card"] = "FALSE"
}

func skuValue(e *variants.Exploded, m mapping.Mapping) string {
	return mapping.Value(e.Source, m, "Variant SKU", "")
}

// priceValue prefers the surcharge engine's final price over the raw
// mapped one.
func priceValue(e *variants.Exploded, m mapping.Mapping) string {
	if e.FinalPrice.Valid {
		return e.FinalPrice.Decimal.String()
	}
	return pricing.BaseAmount(mapping.Value(e.Source, m, "Variant Price", "")).String()
}

// comparePriceValue serializes the one field where "no value" must be
// an empty string. An absent compare price renders blank; an actual
// zero renders "0" and is not conflated with absence.
func comparePriceValue(e *variants.Exploded) string {
	if !e.ComparePrice.Valid {
		return ""
	}
	return e.ComparePrice.Decimal.String()
}

func bodyHTML(e *variants.Exploded, m mapping.Mapping) string {
	if e.Body != "" {
		return e.Body
	}
	if desc := mapping.Value(e.Source, m, "Body (HTML)", ""); desc != "" {
		return "<p>" + desc + "</p>"
	}
	return ""
}

func publishedFlag(e *variants.Exploded, m mapping.Mapping) string {
	if strings.EqualFold(mapping.Value(e.Source, m, "Published", ""), "active") {
		return "TRUE"
	}
	return "FALSE"
}
