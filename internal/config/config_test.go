package config

import (
	"encoding/json"
	"testing"
)

// TestAccessorsFromJSON verifies the accessors against values a real
// JSON config delivers: float64 numbers, strings, and absent keys.
func TestAccessorsFromJSON(t *testing.T) {
	t.Parallel()

	var o Options
	raw := `{
		"vendor_name": "Aarav Ethnics",
		"default_qty": 25,
		"bulk_qty_mode": true,
		"default_compare_price": "1999.50",
		"surcharge_rules": {"xl": 0.05, "xxl": "0.1"}
	}`
	if err := json.Unmarshal([]byte(raw), &o); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if got := o.String(KeyVendorName, DefaultVendorName); got != "Aarav Ethnics" {
		t.Errorf("vendor = %q", got)
	}
	if got := o.Int(KeyDefaultQty, DefaultQty); got != 25 {
		t.Errorf("default_qty = %d", got)
	}
	if !o.Bool(KeyBulkQtyMode, false) {
		t.Errorf("bulk_qty_mode should be true")
	}
	if got := o.Float(KeyDefaultComparePrice, 0); got != 1999.50 {
		t.Errorf("default_compare_price = %v", got)
	}

	rules := o.FloatMap(KeySurchargeRules)
	if rules["XL"] != 0.05 || rules["XXL"] != 0.1 {
		t.Errorf("surcharge rules = %v", rules)
	}
}

// TestAccessorDefaults verifies every accessor falls back to its
// default on an empty record: absence of a key must never fail.
func TestAccessorDefaults(t *testing.T) {
	t.Parallel()

	o := Options{}

	if got := o.String(KeyInventoryPolicy, DefaultInventoryPolicy); got != "deny" {
		t.Errorf("policy default = %q", got)
	}
	if got := o.Int(KeyDefaultQty, DefaultQty); got != 10 {
		t.Errorf("qty default = %d", got)
	}
	if !o.Bool(KeyUseExpectedQty, true) {
		t.Errorf("use_expected_qty default should be true")
	}
	if got := o.Int(KeyFallbackQty, o.Int(KeyDefaultQty, DefaultQty)); got != 10 {
		t.Errorf("fallback chain = %d", got)
	}
	if len(o.FloatMap(KeySurchargeRules)) != 0 {
		t.Errorf("rules default should be empty")
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		opts       Options
		wantErrors int
	}{
		{"empty record is valid", Options{}, 0},
		{"bad policy", Options{KeyInventoryPolicy: "maybe"}, 1},
		{"negative qty", Options{KeyDefaultQty: -1.0}, 1},
		{"negative surcharge", Options{
			KeyEnableSurcharge: true,
			KeySurchargeRules:  map[string]any{"L": -0.1},
		}, 1},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			errs := 0
			for _, iss := range Validate(tt.opts) {
				if iss.Severity == SeverityError {
					errs++
				}
			}
			if errs != tt.wantErrors {
				t.Fatalf("error count = %d, want %d (issues: %+v)",
					errs, tt.wantErrors, Validate(tt.opts))
			}
		})
	}
}
