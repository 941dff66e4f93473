// Package pipeline orchestrates one catalog generation run: load the
// spreadsheet, infer the column mapping, explode variants, price,
// compose and enrich descriptions, and shape the final import table.
//
// Stages run strictly in sequence; each stage finishes before the next
// starts. All per-run state lives in the Spec and the returned Result,
// owned exclusively by the caller.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"catalogcsv/internal/config"
	"catalogcsv/internal/describe"
	"catalogcsv/internal/enrich"
	"catalogcsv/internal/mapping"
	"catalogcsv/internal/metrics"
	"catalogcsv/internal/pricing"
	"catalogcsv/internal/shopify"
	"catalogcsv/internal/table"
	"catalogcsv/internal/variants"
)

// Logger is the minimal logging interface used by the runner.
// *log.Logger satisfies this interface.
type Logger interface {
	Printf(format string, v ...any)
}

// EnrichmentSpec selects the optional text-generation pass.
type EnrichmentSpec struct {
	// Mode is "none", "simple", or "full".
	Mode string `json:"mode"`

	// Model overrides the service's default model name.
	Model string `json:"model"`

	// PaceMS overrides the delay between service calls, in
	// milliseconds.
	PaceMS int `json:"pace_ms"`
}

// Spec is one run's full configuration, decodable from JSON.
type Spec struct {
	// Job names the run for logs and metrics tags.
	Job string `json:"job"`

	// Source is the input spreadsheet path (.csv, .xlsx).
	Source string `json:"source"`

	// Output is the destination CSV path; commands use it, the runner
	// itself only returns the shaped table.
	Output string `json:"output"`

	// Options is the flat generation configuration.
	Options config.Options `json:"options"`

	// MappingOverrides assigns source columns to canonical fields
	// verbatim, after inference. Keys are canonical field names.
	MappingOverrides map[string]string `json:"mapping_overrides"`

	// Elements drives description composition; empty disables it.
	Elements []describe.Element `json:"description_elements"`

	Enrichment EnrichmentSpec `json:"enrichment"`
}

// Result is what one successful run produces.
type Result struct {
	// Table is the shaped output, ready for CSV serialization.
	Table *table.Table

	// Mapping is the inference result after overrides.
	Mapping mapping.Result

	// SourceRows and Variants count the input rows and exploded
	// variants.
	SourceRows int
	Variants   int
}

// LoadFn is a seam for providing the source table; tests inject
// in-memory tables without file I/O. When nil, table.LoadFile is used.
type LoadFn func(path string) (*table.Table, error)

// Runner executes generation runs. The zero value works: logs are
// discarded, enrichment is skipped unless Service is set.
type Runner struct {
	Logger Logger

	// Service handles enrichment calls; nil disables enrichment
	// regardless of the spec.
	Service enrich.Service

	// Overrides is the caller-owned per-variant override store from
	// the interactive editor; nil means none.
	Overrides *variants.Overrides

	// Progress receives per-row enrichment progress.
	Progress func(done, total int, title string)

	// Load is an optional seam; nil uses table.LoadFile.
	Load LoadFn
}

// Run executes the full pipeline for one spec.
//
// Errors are terminal for the attempt only: the runner holds no state,
// so the caller's session can adjust the spec and run again.
func (r *Runner) Run(ctx context.Context, spec Spec) (*Result, error) {
	logf := r.logger()

	start := time.Now()
	t, err := r.loadTable(spec)
	r.observeStage("load", start, err)
	if err != nil {
		return nil, err
	}
	metrics.IncCounter("catalog_rows_total", float64(len(t.Rows)), metrics.Labels{"kind": "source"})
	logf("stage=load ok duration=%s rows=%d", durMS(start), len(t.Rows))

	res := &Result{SourceRows: len(t.Rows)}

	start = time.Now()
	res.Mapping = mapping.Analyze(t)
	applyMappingOverrides(&res.Mapping, spec.MappingOverrides)
	r.observeStage("map", start, nil)
	logf("stage=map ok duration=%s mapped=%d unmapped=%d",
		durMS(start), len(res.Mapping.Mapping), len(res.Mapping.Unmapped))

	start = time.Now()
	rows := variants.Explode(t, res.Mapping.Mapping, spec.Options, r.Overrides)
	res.Variants = len(rows)
	metrics.IncCounter("catalog_rows_total", float64(len(rows)), metrics.Labels{"kind": "variant"})
	r.observeStage("explode", start, nil)
	logf("stage=explode ok duration=%s variants=%d", durMS(start), len(rows))

	start = time.Now()
	pricing.Apply(rows, res.Mapping.Mapping, spec.Options)
	r.observeStage("price", start, nil)
	logf("stage=price ok duration=%s", durMS(start))

	if len(spec.Elements) > 0 {
		start = time.Now()
		for _, e := range rows {
			e.Body = describe.Compose(spec.Elements, e.Source)
		}
		r.observeStage("compose", start, nil)
		logf("stage=compose ok duration=%s elements=%d", durMS(start), len(spec.Elements))
	}

	if err := r.stageEnrich(ctx, spec, rows, res.Mapping.Mapping); err != nil {
		return nil, err
	}

	start = time.Now()
	out, err := shopify.Shape(rows, res.Mapping.Mapping, spec.Options)
	r.observeStage("shape", start, err)
	if err != nil {
		return nil, fmt.Errorf("shape: %w", err)
	}
	metrics.IncCounter("catalog_rows_total", float64(len(out.Rows)), metrics.Labels{"kind": "output"})
	logf("stage=shape ok duration=%s rows=%d", durMS(start), len(out.Rows))

	res.Table = out
	return res, nil
}

func (r *Runner) loadTable(spec Spec) (*table.Table, error) {
	load := r.Load
	if load == nil {
		logf := r.logger()
		load = func(path string) (*table.Table, error) {
			return table.LoadFile(path, table.ReadOptions{
				OnErr: func(line int, err error) {
					logf("load: skipping row %d: %v", line, err)
				},
			})
		}
	}

	t, err := load(spec.Source)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", spec.Source, err)
	}
	if len(t.Rows) == 0 {
		return nil, fmt.Errorf("load %s: no data rows", spec.Source)
	}
	return t, nil
}

func (r *Runner) stageEnrich(ctx context.Context, spec Spec, rows []*variants.Exploded, m mapping.Mapping) error {
	mode := enrich.ParseMode(spec.Enrichment.Mode)
	if mode == enrich.ModeNone || r.Service == nil {
		return nil
	}

	start := time.Now()
	d := &enrich.Driver{
		Service:  r.Service,
		Pace:     time.Duration(spec.Enrichment.PaceMS) * time.Millisecond,
		Logger:   r.Logger,
		Progress: r.Progress,
	}
	err := d.Run(ctx, rows, m, mode)
	r.observeStage("enrich", start, err)
	if err != nil {
		return fmt.Errorf("enrich: %w", err)
	}
	r.logger()("stage=enrich ok duration=%s mode=%s rows=%d", durMS(start), mode, len(rows))
	return nil
}

// applyMappingOverrides mutates the inference result with verbatim
// caller assignments. Overridden columns leave the unmapped list; an
// empty column value unmaps the field.
func applyMappingOverrides(res *mapping.Result, overrides map[string]string) {
	for field, column := range overrides {
		if column == "" {
			delete(res.Mapping, field)
			continue
		}
		res.Mapping[field] = column
		res.Unmapped = remove(res.Unmapped, column)
	}
}

func remove(xs []string, v string) []string {
	out := xs[:0]
	for _, x := range xs {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}

func (r *Runner) observeStage(stage string, start time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	labels := metrics.Labels{"stage": stage, "status": status}
	metrics.IncCounter("catalog_stage_total", 1, labels)
	metrics.ObserveHistogram("catalog_stage_duration_seconds", time.Since(start).Seconds(), labels)
}

func (r *Runner) logger() func(format string, v ...any) {
	if r.Logger == nil {
		l := log.New(discardWriter{}, "", 0)
		return l.Printf
	}
	return r.Logger.Printf
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func durMS(start time.Time) time.Duration { return time.Since(start).Truncate(time.Millisecond) }
