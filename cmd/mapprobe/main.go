// Command mapprobe samples a product spreadsheet and prints the
// inferred column mapping.
//
// It is intended for quickly checking what the mapping engine will do
// with a vendor sheet before running the full generation. Output modes:
//
//   - Default: a human-readable report (field <- column @ confidence,
//     then unmapped columns).
//   - -json: the mapping result as JSON, suitable for pasting into a
//     run spec's mapping_overrides after editing.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"catalogcsv/internal/config"
	"catalogcsv/internal/mapping"
	"catalogcsv/internal/table"
	"catalogcsv/internal/variants"
)

func main() {
	var (
		flagFile     = flag.String("file", "", "path of the source spreadsheet (.csv or .xlsx)")
		flagJSON     = flag.Bool("json", false, "emit the mapping result as JSON")
		flagPretty   = flag.Bool("pretty", true, "pretty-print JSON output")
		flagVariants = flag.Bool("variants", false, "also explode and list the unique variants")
	)
	flag.Parse()

	if strings.TrimSpace(*flagFile) == "" {
		fmt.Fprintln(os.Stderr, "missing -file")
		flag.Usage()
		os.Exit(2)
	}

	t, err := table.LoadFile(*flagFile, table.ReadOptions{
		OnErr: func(line int, err error) {
			log.Printf("skipping row %d: %v", line, err)
		},
	})
	if err != nil {
		log.Fatalf("load: %v", err)
	}

	res := mapping.Analyze(t)

	if *flagJSON {
		enc := json.NewEncoder(os.Stdout)
		if *flagPretty {
			enc.SetIndent("", "  ")
		}
		if err := enc.Encode(struct {
			Mapping    mapping.Mapping    `json:"mapping"`
			Unmapped   []string           `json:"unmapped"`
			Confidence map[string]float64 `json:"confidence"`
		}{res.Mapping, res.Unmapped, res.Confidence}); err != nil {
			log.Fatalf("encode: %v", err)
		}
		return
	}

	fields := make([]string, 0, len(res.Mapping))
	for f := range res.Mapping {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	fmt.Printf("%s: %d columns, %d rows sampled\n", *flagFile, len(t.Columns), len(t.Rows))
	fmt.Printf("mapped %d of %d columns:\n", len(res.Mapping), len(t.Columns))
	for _, f := range fields {
		col := res.Mapping[f]
		fmt.Printf("  %-28s <- %-24s @ %.2f\n", f, col, res.Confidence[col])
	}
	if len(res.Unmapped) > 0 {
		fmt.Printf("unmapped:\n")
		for _, c := range res.Unmapped {
			fmt.Printf("  %s\n", c)
		}
	}

	if *flagVariants {
		rows := variants.Explode(t, res.Mapping, config.Options{}, nil)
		seed := variants.Seed(rows)
		fmt.Printf("variants (%d unique):\n", len(seed.Variants))
		for _, v := range seed.Variants {
			key := variants.Key(v.Size, v.Color, v.Title)
			cmp := ""
			if p := seed.ComparePrices[key]; p.Valid {
				cmp = " compare=" + p.Decimal.String()
			}
			fmt.Printf("  %-24s size=%-10s color=%-12s qty=%d%s\n",
				v.Title, v.Size, v.Color, seed.Quantities[key], cmp)
		}
	}
}
