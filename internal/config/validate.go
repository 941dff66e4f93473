package config

import "fmt"

// Severity levels for validation issues.
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
)

// Issue is one validation finding. Warnings never block a run.
type Issue struct {
	Severity string
	Path     string
	Message  string
}

// Validate checks recognized options for values that would produce a
// surprising catalog. It reports issues rather than failing: only
// error-severity issues should stop a run.
func Validate(o Options) []Issue {
	var issues []Issue

	if p := o.String(KeyInventoryPolicy, DefaultInventoryPolicy); p != "deny" && p != "continue" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     KeyInventoryPolicy,
			Message:  fmt.Sprintf("must be \"deny\" or \"continue\", got %q", p),
		})
	}

	if q := o.Int(KeyDefaultQty, DefaultQty); q < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     KeyDefaultQty,
			Message:  fmt.Sprintf("must be >= 0, got %d", q),
		})
	}

	if o.Bool(KeyBulkQtyMode, false) && !o.Has(KeyBulkQty) {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     KeyBulkQty,
			Message:  "bulk_qty_mode is on but bulk_qty is not set; the default applies",
		})
	}

	if o.Bool(KeyEnableSurcharge, false) &&
		!o.Bool(KeyBulkSurchargeMode, false) &&
		len(o.FloatMap(KeySurchargeRules)) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     KeySurchargeRules,
			Message:  "surcharge enabled with no rules; prices pass through unchanged",
		})
	}

	for size, pct := range o.FloatMap(KeySurchargeRules) {
		if pct < 0 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     KeySurchargeRules + "." + size,
				Message:  fmt.Sprintf("surcharge percent must be >= 0, got %v", pct),
			})
		}
	}

	return issues
}
