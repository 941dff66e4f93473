// Command catalogcsv turns a product spreadsheet into a Shopify-style
// catalog CSV.
//
// It loads a run spec (JSON), validates it, executes the generation
// pipeline, and writes the shaped table. Enrichment is enabled by the
// spec's enrichment.mode plus a GEMINI_API_KEY in the environment; a
// missing key downgrades the run to no enrichment with a log line
// rather than failing.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"catalogcsv/internal/config"
	"catalogcsv/internal/enrich"
	"catalogcsv/internal/metrics"
	"catalogcsv/internal/metrics/datadog"
	"catalogcsv/internal/pipeline"
	"catalogcsv/internal/table"
)

func main() {
	var (
		specPath          string
		outPath           string
		metricsBackendFlg string
		validate          bool
	)

	flag.StringVar(&specPath, "config", "catalog.json", "run spec JSON path")
	flag.StringVar(&outPath, "out", "", "output CSV path (overrides spec output)")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "none", "metrics backend to use (datadog, none)")
	flag.BoolVar(&validate, "validate", false, "validate the spec and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	f, err := os.Open(specPath)
	if err != nil {
		fatalf("open config: %v", err)
	}
	defer f.Close()

	var spec pipeline.Spec
	if err := json.NewDecoder(f).Decode(&spec); err != nil {
		fatalf("decode config: %v", err)
	}

	issues := pipeline.ValidateSpec(spec)
	hasError := false
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
		if iss.Severity == config.SeverityError {
			hasError = true
		}
	}
	if hasError {
		log.Printf("spec is invalid: %v", specPath)
		os.Exit(1)
	}
	if validate {
		log.Printf("spec is valid: %v", specPath)
		os.Exit(0)
	}

	// Decide metrics backend: flag → env → none.
	backendName := metricsBackendFlg
	if backendName == "" {
		backendName = os.Getenv("METRICS_BACKEND")
	}
	switch backendName {
	case "datadog":
		jobName := spec.Job
		if jobName == "" {
			jobName = "catalogcsv"
		}
		extraTags := datadog.ParseTagsCSV(os.Getenv("METRICS_TAGS"))

		b, err := datadog.NewBackend(context.Background(), datadog.Options{
			JobName:    jobName,
			Tags:       extraTags,
			FlushEvery: 60 * time.Second,
		})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
		} else {
			log.Printf("metrics: backend=%v job_name=%v tags=%v", backendName, jobName, extraTags)
			metrics.SetBackend(b)
			// Close stops the periodic flush loop and submits the final
			// batch.
			defer func() {
				if err := b.Close(); err != nil {
					log.Printf("metrics: datadog close/flush error: %v", err)
				}
			}()
		}

	case "", "none":
		if *verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
	}

	runner := &pipeline.Runner{}
	if *verbose {
		runner.Logger = log.Default()
	}

	if mode := enrich.ParseMode(spec.Enrichment.Mode); mode != enrich.ModeNone {
		svc, err := enrich.NewGemini(enrich.GeminiOptions{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  spec.Enrichment.Model,
		})
		if err != nil {
			log.Printf("enrich: %v; running without enrichment", err)
		} else {
			runner.Service = svc
			runner.Progress = func(done, total int, title string) {
				if *verbose {
					log.Printf("enrich: %d/%d %.30s", done, total, title)
				}
			}
		}
	}

	ctx := context.Background()
	start := time.Now()

	res, err := runner.Run(ctx, spec)
	if err != nil {
		log.Fatalf("%v", err)
	}

	dest := resolveDest(outPath, spec.Output)
	if err := writeTable(dest, res.Table); err != nil {
		fatalf("%v", err)
	}

	if *verbose {
		log.Printf("wrote %s: %d rows from %d source rows (%d variants) in %s",
			dest, len(res.Table.Rows), res.SourceRows, res.Variants,
			time.Since(start).Truncate(time.Millisecond))
	}
}

// resolveDest picks the output path: flag wins, then the spec, then a
// default next to the working directory.
func resolveDest(flagOut, specOut string) string {
	if flagOut != "" {
		return flagOut
	}
	if specOut != "" {
		return specOut
	}
	return "catalog.csv"
}

func writeTable(dest string, t *table.Table) error {
	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := table.WriteCSV(out, t); err != nil {
		out.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	return nil
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
