// Package pricing applies size-keyed surcharge rules to exploded
// variant rows. All money math runs on decimals; floats never touch a
// price after parsing.
package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"catalogcsv/internal/config"
	"catalogcsv/internal/mapping"
	"catalogcsv/internal/variants"
)

var one = decimal.NewFromInt(1)

// Apply computes each row's final price when surcharges are enabled.
//
// The mapped base price defaults to 0 and passes through untouched
// when <= 0. Bulk mode multiplies every price by
// (1 + bulk_surcharge_percent/100); otherwise the row's display size,
// uppercased, is looked up in surcharge_rules (size -> fractional
// percent) and (1 + percent) applied on a hit.
//
// The result lands in FinalPrice, which downstream shaping prefers
// over the raw mapped price. With surcharges disabled Apply is a
// no-op and FinalPrice stays unset.
func Apply(rows []*variants.Exploded, m mapping.Mapping, opts config.Options) {
	if !opts.Bool(config.KeyEnableSurcharge, false) {
		return
	}

	bulkMode := opts.Bool(config.KeyBulkSurchargeMode, false)
	bulkFactor := one.Add(decimal.NewFromFloat(opts.Float(config.KeyBulkSurchargePercent, 0)).Div(decimal.NewFromInt(100)))
	rules := opts.FloatMap(config.KeySurchargeRules)

	for _, row := range rows {
		base := BaseAmount(mapping.Value(row.Source, m, "Variant Price", ""))
		if !base.IsPositive() {
			row.FinalPrice = decimal.NullDecimal{Decimal: base, Valid: true}
			continue
		}

		final := base
		if bulkMode {
			final = base.Mul(bulkFactor)
		} else if pct, ok := rules[strings.ToUpper(row.DisplaySize)]; ok {
			final = base.Mul(one.Add(decimal.NewFromFloat(pct)))
		}

		row.FinalPrice = decimal.NullDecimal{Decimal: final, Valid: true}
	}
}

// BaseAmount parses a raw price cell. Unparsable or blank values
// default to zero, matching the rest of the pipeline's lenient cell
// handling.
func BaseAmount(raw string) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}
