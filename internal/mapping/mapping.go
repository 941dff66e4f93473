// Package mapping infers which input spreadsheet column feeds each
// canonical catalog field.
//
// Analyze runs three passes, each one only filling fields the earlier
// passes left unmapped:
//  1. exact: case-insensitive, trimmed match against the accepted
//     spellings of every canonical field (confidence 1.0)
//  2. fuzzy: normalized edit-distance similarity against the spellings
//     of still-unmapped fields (accepted above 0.7)
//  3. content: classify leftover columns by sampling their values
//     (fixed confidences 0.6-0.8 per category)
//
// Inference is best-effort by design: an unmapped field is reported,
// not an error, and a column may legitimately serve several fields.
// Manual overrides from the caller are accepted verbatim and never
// re-validated here.
package mapping

import (
	"strings"

	"catalogcsv/internal/table"
)

// Mapping is canonical field name -> chosen input column name.
type Mapping map[string]string

// Result is the outcome of one analysis run.
type Result struct {
	// Mapping holds the final field -> column choices.
	Mapping Mapping

	// Unmapped lists input columns no field ended up using.
	Unmapped []string

	// Confidence scores the chosen columns: 1.0 for exact matches,
	// the similarity score for fuzzy ones, a fixed per-category value
	// for content-sniffed ones.
	Confidence map[string]float64
}

// Analyze infers a field mapping for the table's columns.
func Analyze(t *table.Table) Result {
	res := Result{
		Mapping:    Mapping{},
		Confidence: map[string]float64{},
	}

	// Pass 1: exact spellings.
	lowerToActual := make(map[string]string, len(t.Columns))
	for _, col := range t.Columns {
		lowerToActual[strings.ToLower(strings.TrimSpace(col))] = col
	}
	for field, spellings := range canonicalFields {
		for _, sp := range spellings {
			if actual, ok := lowerToActual[strings.ToLower(sp)]; ok {
				res.Mapping[field] = actual
				res.Confidence[actual] = 1.0
				break
			}
		}
	}

	// Pass 2: fuzzy similarity for columns nothing claimed yet.
	for _, col := range unusedColumns(t.Columns, res.Mapping) {
		field, score := bestFuzzyField(col, res.Mapping)
		if field == "" {
			continue
		}
		res.Mapping[field] = col
		res.Confidence[col] = score
	}

	// Pass 3: content sniffing for whatever is still unclaimed.
	for _, col := range unusedColumns(t.Columns, res.Mapping) {
		samples := t.Sample(col, sniffSampleSize)
		if len(samples) == 0 {
			continue
		}
		field, score := classifyColumn(samples, col)
		if field == "" {
			continue
		}
		if _, taken := res.Mapping[field]; taken {
			continue
		}
		res.Mapping[field] = col
		res.Confidence[col] = score
	}

	res.Unmapped = unusedColumns(t.Columns, res.Mapping)
	return res
}

// unusedColumns returns input columns, in table order, that no field
// currently maps to.
func unusedColumns(columns []string, m Mapping) []string {
	used := make(map[string]struct{}, len(m))
	for _, col := range m {
		used[col] = struct{}{}
	}
	out := make([]string, 0, len(columns))
	for _, col := range columns {
		if _, ok := used[col]; !ok {
			out = append(out, col)
		}
	}
	return out
}

// bestFuzzyField finds the still-unmapped canonical field whose
// spellings are most similar to the column name. Accepts only scores
// above FuzzyThreshold.
func bestFuzzyField(column string, m Mapping) (string, float64) {
	bestField := ""
	bestScore := 0.0
	col := strings.ToLower(column)

	for _, field := range Fields() {
		if _, taken := m[field]; taken {
			continue
		}
		for _, sp := range canonicalFields[field] {
			s := Similarity(col, strings.ToLower(sp))
			if s > bestScore && s > FuzzyThreshold {
				bestScore = s
				bestField = field
			}
		}
	}
	return bestField, bestScore
}

// Value resolves a canonical field through its alias priority chain:
// the first alias with a mapped column carrying a non-blank value in
// the row wins. Falls back to def when nothing resolves.
func Value(row table.Row, m Mapping, field, def string) string {
	aliases, ok := FieldAliases[field]
	if !ok {
		aliases = []string{field}
	}
	for _, alias := range aliases {
		col, mapped := m[alias]
		if !mapped {
			continue
		}
		if v := row.Get(col); v != "" {
			return v
		}
	}
	return def
}
