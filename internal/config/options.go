// Package config holds the generation configuration: a flat record of
// recognized options with defaults applied at every read site, so an
// absent key can never fail the pipeline.
//
// Options decodes directly from the caller's JSON config object. The
// typed accessors tolerate JSON's habit of delivering every number as
// float64 and accept string forms where a spreadsheet-minded caller
// might send them.
package config

import (
	"strconv"
	"strings"
)

// Options is the raw configuration record. Values are whatever the
// JSON decoder produced; use the accessors instead of indexing.
type Options map[string]any

// Recognized option keys. Anything else in the record is ignored.
const (
	KeyVendorName            = "vendor_name"
	KeyInventoryPolicy       = "inventory_policy"
	KeyDefaultQty            = "default_qty"
	KeyFallbackQty           = "fallback_qty"
	KeyBulkQtyMode           = "bulk_qty_mode"
	KeyBulkQty               = "bulk_qty"
	KeyDefaultComparePrice   = "default_compare_price"
	KeyBulkComparePriceMode  = "bulk_compare_price_mode"
	KeyBulkComparePrice      = "bulk_compare_price"
	KeyEnableSurcharge       = "enable_surcharge"
	KeySurchargeRules        = "surcharge_rules"
	KeyBulkSurchargeMode     = "bulk_surcharge_mode"
	KeyBulkSurchargePercent  = "bulk_surcharge_percent"
	KeyUseExpectedQty        = "use_expected_qty"
	KeyUseExpectedCmpPrice   = "use_expected_compare_price"
)

// Default values, matching long-standing production behavior.
const (
	DefaultVendorName      = "YourBrandName"
	DefaultInventoryPolicy = "deny"
	DefaultQty             = 10
)

// Bool returns the option as a boolean, or def when absent or not
// interpretable as one.
func (o Options) Bool(key string, def bool) bool {
	v, ok := o[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		if b, err := strconv.ParseBool(strings.TrimSpace(t)); err == nil {
			return b
		}
	case float64:
		return t != 0
	}
	return def
}

// Int returns the option as an int, truncating fractional JSON
// numbers, or def when absent or unparsable.
func (o Options) Int(key string, def int) int {
	v, ok := o[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case int:
		return t
	case float64:
		return int(t)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return int(f)
		}
	}
	return def
}

// Float returns the option as a float64, or def when absent or
// unparsable.
func (o Options) Float(key string, def float64) float64 {
	v, ok := o[key]
	if !ok {
		return def
	}
	switch t := v.(type) {
	case float64:
		return t
	case int:
		return float64(t)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
			return f
		}
	}
	return def
}

// String returns the option as a trimmed string, or def when absent
// or empty.
func (o Options) String(key string, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return def
}

// FloatMap returns the option as a string -> float64 map. Used for
// surcharge rules (size -> fractional percent). Keys are uppercased
// so lookups by display size are case-insensitive.
func (o Options) FloatMap(key string) map[string]float64 {
	out := map[string]float64{}
	v, ok := o[key]
	if !ok {
		return out
	}
	m, ok := v.(map[string]any)
	if !ok {
		// Already-typed maps come from tests and programmatic callers.
		if typed, ok := v.(map[string]float64); ok {
			for k, f := range typed {
				out[strings.ToUpper(strings.TrimSpace(k))] = f
			}
		}
		return out
	}
	for k, raw := range m {
		switch t := raw.(type) {
		case float64:
			out[strings.ToUpper(strings.TrimSpace(k))] = t
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil {
				out[strings.ToUpper(strings.TrimSpace(k))] = f
			}
		}
	}
	return out
}

// Has reports whether the key is present at all, regardless of type.
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}
