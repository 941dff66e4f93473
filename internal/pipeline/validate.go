package pipeline

import (
	"path/filepath"
	"strconv"
	"strings"

	"catalogcsv/internal/config"
	"catalogcsv/internal/enrich"
	"catalogcsv/internal/mapping"
)

// ValidateSpec checks a run spec before execution and returns all
// issues found. An empty result means the spec is runnable; warnings
// alone do not block a run.
func ValidateSpec(spec Spec) []config.Issue {
	var issues []config.Issue

	if strings.TrimSpace(spec.Source) == "" {
		issues = append(issues, config.Issue{
			Severity: config.SeverityError,
			Path:     "source",
			Message:  "source file path is required",
		})
	} else {
		switch strings.ToLower(filepath.Ext(spec.Source)) {
		case ".csv", ".xlsx":
		default:
			issues = append(issues, config.Issue{
				Severity: config.SeverityWarning,
				Path:     "source",
				Message:  "unrecognized extension; file will be read as CSV",
			})
		}
	}

	if mode := strings.TrimSpace(spec.Enrichment.Mode); mode != "" {
		if enrich.ParseMode(mode) == enrich.ModeNone && !strings.EqualFold(mode, "none") {
			issues = append(issues, config.Issue{
				Severity: config.SeverityWarning,
				Path:     "enrichment.mode",
				Message:  "unknown mode " + mode + "; enrichment disabled",
			})
		}
	}

	known := map[string]bool{}
	for _, f := range mapping.Fields() {
		known[f] = true
	}
	for field := range spec.MappingOverrides {
		if !known[field] {
			issues = append(issues, config.Issue{
				Severity: config.SeverityWarning,
				Path:     "mapping_overrides." + field,
				Message:  "not a recognized catalog field",
			})
		}
	}

	for i, e := range spec.Elements {
		if strings.TrimSpace(e.Column) == "" {
			issues = append(issues, config.Issue{
				Severity: config.SeverityWarning,
				Path:     "description_elements[" + strconv.Itoa(i) + "]",
				Message:  "element has no source column and will be skipped",
			})
		}
	}

	issues = append(issues, config.Validate(spec.Options)...)
	return issues
}
