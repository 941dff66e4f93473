package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"
	"testing"

	"catalogcsv/internal/config"
	"catalogcsv/internal/describe"
	"catalogcsv/internal/table"
)

func sourceTable() *table.Table {
	return &table.Table{
		Columns: []string{"Product Name", "Sizes", "Color", "Price", "Status", "SKU", "Description"},
		Rows: []table.Row{
			{
				"Product Name": "Aloha Shirt",
				"Sizes":        "M-5, S",
				"Color":        "Red, Blue",
				"Price":        "100",
				"Status":       "Active",
				"SKU":          "AL1",
				"Description":  "A breezy shirt. Wear it anywhere.",
			},
		},
	}
}

func memLoad(t *table.Table) LoadFn {
	return func(string) (*table.Table, error) { return t, nil }
}

// fakeEnricher implements enrich.Service with canned responses.
type fakeEnricher struct{ calls int }

func (f *fakeEnricher) Rewrite(ctx context.Context, text string) (string, string, error) {
	f.calls++
	return "Enhanced: " + text, "beach,shirt", nil
}

func (f *fakeEnricher) Tags(ctx context.Context, text string) (string, error) {
	f.calls++
	return "beach,shirt", nil
}

// TestRunEndToEnd drives the full pipeline from an in-memory table to
// the shaped output.
func TestRunEndToEnd(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	r := &Runner{
		Logger: log.New(&logs, "", 0),
		Load:   memLoad(sourceTable()),
	}

	spec := Spec{
		Job:    "test",
		Source: "mem.csv",
		Options: config.Options{
			config.KeyVendorName:      "Acme",
			config.KeyEnableSurcharge: true,
			config.KeySurchargeRules:  map[string]float64{"M": 0.1},
		},
		Elements: []describe.Element{
			{Column: "Description", Label: "About", Tag: "p", Order: 1},
		},
	}

	res, err := r.Run(context.Background(), spec)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.SourceRows != 1 {
		t.Errorf("SourceRows = %d, want 1", res.SourceRows)
	}
	if res.Variants != 4 {
		t.Errorf("Variants = %d, want 4 (2 sizes x 2 colors)", res.Variants)
	}
	if len(res.Table.Rows) != 4 {
		t.Fatalf("output rows = %d, want 4", len(res.Table.Rows))
	}

	// Mapping inferred every column.
	for field, col := range map[string]string{
		"Title":         "Product Name",
		"Option1 Value": "Sizes",
		"Option2 Value": "Color",
		"Variant Price": "Price",
		"Published":     "Status",
		"Variant SKU":   "SKU",
		"Body (HTML)":   "Description",
	} {
		if got := res.Mapping.Mapping[field]; got != col {
			t.Errorf("Mapping[%q] = %q, want %q", field, got, col)
		}
	}

	// Group ordering: S before M, Blue before Red.
	primary := res.Table.Rows[0]
	if primary["Handle"] != "aloha-shirt-al1" {
		t.Errorf("Handle = %q", primary["Handle"])
	}
	if primary["Option1 Value"] != "S" || primary["Option2 Value"] != "Blue" {
		t.Errorf("primary options = %q/%q, want S/Blue", primary["Option1 Value"], primary["Option2 Value"])
	}
	if primary["Title"] != "Aloha Shirt" || primary["Vendor"] != "Acme" {
		t.Errorf("primary product fields = %q/%q", primary["Title"], primary["Vendor"])
	}
	if primary["Published"] != "TRUE" {
		t.Errorf("Published = %q", primary["Published"])
	}
	if primary["Body (HTML)"] != "<p>About: A breezy shirt. Wear it anywhere.</p>" {
		t.Errorf("Body = %q", primary["Body (HTML)"])
	}
	// Surcharge applies only to M rows.
	if primary["Variant Price"] != "100" {
		t.Errorf("S price = %q, want 100", primary["Variant Price"])
	}
	last := res.Table.Rows[3]
	if last["Option1 Value"] != "M" || last["Variant Price"] != "110" {
		t.Errorf("M row = %q @ %q, want M @ 110", last["Option1 Value"], last["Variant Price"])
	}
	if last["Title"] != "" {
		t.Errorf("subordinate row carries Title %q", last["Title"])
	}
	// M-5 embeds a quantity; S falls back to the default.
	if last["Variant Inventory Qty"] != "5" {
		t.Errorf("M qty = %q, want 5", last["Variant Inventory Qty"])
	}
	if primary["Variant Inventory Qty"] != "10" {
		t.Errorf("S qty = %q, want default 10", primary["Variant Inventory Qty"])
	}

	for _, stage := range []string{"load", "map", "explode", "price", "compose", "shape"} {
		if !strings.Contains(logs.String(), "stage="+stage+" ok") {
			t.Errorf("missing %q stage log; logs:\n%s", stage, logs.String())
		}
	}
}

// TestRunEnrichment checks the enrichment stage rewrites bodies and
// fills tags.
func TestRunEnrichment(t *testing.T) {
	t.Parallel()

	fe := &fakeEnricher{}
	r := &Runner{
		Load:    memLoad(sourceTable()),
		Service: fe,
	}

	spec := Spec{
		Source:     "mem.csv",
		Enrichment: EnrichmentSpec{Mode: "full", PaceMS: 1},
	}

	res, err := r.Run(context.Background(), spec)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if fe.calls != 4 {
		t.Errorf("enrichment calls = %d, want 4", fe.calls)
	}
	primary := res.Table.Rows[0]
	if !strings.HasPrefix(primary["Body (HTML)"], "<p>Enhanced: ") {
		t.Errorf("Body = %q, want enhanced", primary["Body (HTML)"])
	}
	if primary["Tags"] != "beach,shirt" {
		t.Errorf("Tags = %q", primary["Tags"])
	}
}

// TestRunRefusesEmptyInput checks the up-front empty-table error.
func TestRunRefusesEmptyInput(t *testing.T) {
	t.Parallel()

	r := &Runner{
		Load: memLoad(&table.Table{Columns: []string{"A"}}),
	}
	_, err := r.Run(context.Background(), Spec{Source: "empty.csv"})
	if err == nil || !strings.Contains(err.Error(), "no data rows") {
		t.Fatalf("err = %v, want no-data-rows error", err)
	}
}

// TestRunLoadError checks load failures carry the source path.
func TestRunLoadError(t *testing.T) {
	t.Parallel()

	r := &Runner{
		Load: func(string) (*table.Table, error) { return nil, fmt.Errorf("boom") },
	}
	_, err := r.Run(context.Background(), Spec{Source: "gone.csv"})
	if err == nil || !strings.Contains(err.Error(), "gone.csv") {
		t.Fatalf("err = %v, want path in error", err)
	}
}

// TestRunMappingOverrides checks verbatim override application,
// including explicit unmapping.
func TestRunMappingOverrides(t *testing.T) {
	t.Parallel()

	src := &table.Table{
		Columns: []string{"Internal Ref", "Product Name", "Price"},
		Rows: []table.Row{
			{"Internal Ref": "X9", "Product Name": "Vest", "Price": "50"},
		},
	}
	r := &Runner{Load: memLoad(src)}

	spec := Spec{
		Source: "mem.csv",
		MappingOverrides: map[string]string{
			"Variant SKU":   "Internal Ref",
			"Variant Price": "",
		},
	}

	res, err := r.Run(context.Background(), spec)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Mapping.Mapping["Variant SKU"] != "Internal Ref" {
		t.Errorf("override not applied: %v", res.Mapping.Mapping)
	}
	if _, ok := res.Mapping.Mapping["Variant Price"]; ok {
		t.Errorf("empty override should unmap Variant Price")
	}
	if res.Table.Rows[0]["Variant SKU"] != "X9" {
		t.Errorf("Variant SKU = %q, want X9", res.Table.Rows[0]["Variant SKU"])
	}
	if res.Table.Rows[0]["Variant Price"] != "0" {
		t.Errorf("unmapped price = %q, want 0", res.Table.Rows[0]["Variant Price"])
	}
}

// TestValidateSpec exercises the pre-run validation issues.
func TestValidateSpec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		spec     Spec
		path     string
		severity string
	}{
		{
			name:     "missing source",
			spec:     Spec{},
			path:     "source",
			severity: config.SeverityError,
		},
		{
			name:     "odd extension",
			spec:     Spec{Source: "file.tsv"},
			path:     "source",
			severity: config.SeverityWarning,
		},
		{
			name:     "unknown enrichment mode",
			spec:     Spec{Source: "f.csv", Enrichment: EnrichmentSpec{Mode: "turbo"}},
			path:     "enrichment.mode",
			severity: config.SeverityWarning,
		},
		{
			name:     "unknown override field",
			spec:     Spec{Source: "f.csv", MappingOverrides: map[string]string{"Bogus Field": "col"}},
			path:     "mapping_overrides.Bogus Field",
			severity: config.SeverityWarning,
		},
		{
			name:     "blank element column",
			spec:     Spec{Source: "f.csv", Elements: []describe.Element{{Label: "L"}}},
			path:     "description_elements[0]",
			severity: config.SeverityWarning,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			issues := ValidateSpec(tt.spec)
			for _, iss := range issues {
				if iss.Path == tt.path && iss.Severity == tt.severity {
					return
				}
			}
			t.Fatalf("no %s issue at %q; got %+v", tt.severity, tt.path, issues)
		})
	}

	t.Run("clean spec", func(t *testing.T) {
		t.Parallel()
		if issues := ValidateSpec(Spec{Source: "f.csv"}); len(issues) != 0 {
			t.Fatalf("unexpected issues: %+v", issues)
		}
	})
}
