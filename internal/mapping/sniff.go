package mapping

import (
	"regexp"
	"strconv"
	"strings"
)

// Content-sniffing thresholds and vocabularies. These are hand-tuned
// heuristics carried over from production use; keep them as constants
// rather than re-deriving "correct" values.
const (
	sniffSampleSize = 10

	priceRatio    = 0.7
	statusRatio   = 0.6
	sizeRatio     = 0.6
	colorRatio    = 0.6
	categoryRatio = 0.5
	codeScore     = 0.7

	confidencePrice    = 0.8
	confidenceStatus   = 0.7
	confidenceSize     = 0.7
	confidenceColor    = 0.7
	confidenceCategory = 0.6
	confidenceCode     = 0.8

	// codeNameBonus is added when the column's own name hints at an
	// identifier ("sku", "code", ...).
	codeNameBonus = 0.3

	// priceMax bounds what a plausible single-item price can be.
	priceMax = 100000
)

var statusWords = map[string]struct{}{
	"active": {}, "inactive": {}, "draft": {}, "published": {},
	"unpublished": {}, "true": {}, "false": {}, "yes": {}, "no": {},
}

var colorWords = []string{
	"red", "blue", "green", "yellow", "black", "white", "pink", "purple",
	"orange", "brown", "gray", "grey", "navy", "maroon", "teal", "cyan",
}

var categoryWords = []string{
	"shirt", "dress", "pants", "jeans", "jacket", "shoes", "bag",
	"jewelry", "clothing", "apparel", "accessories", "footwear",
}

var codeNameHints = []string{"sku", "code", "id", "number", "ref"}

var (
	currencyRe = regexp.MustCompile(`[₹$€£,\s]`)
	sizeRes    = []*regexp.Regexp{
		regexp.MustCompile(`\b(xs|s|m|l|xl|xxl|xxxl)\b`),
		regexp.MustCompile(`\b\d{1,2}\b`),
		regexp.MustCompile(`\b(small|medium|large)\b`),
		regexp.MustCompile(`\b\d{1,2}-\d+\b`),
	}
	codeRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// classifyColumn inspects sample values and picks a target field by
// heuristics, in a fixed priority order. The first matching category
// wins. Returns ("", 0) when nothing is convincing.
//
// The returned field names are the legacy lowercase ones; the variant
// explosion alias chains resolve them.
func classifyColumn(samples []string, columnName string) (string, float64) {
	values := make([]string, 0, len(samples))
	for _, s := range samples {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			values = append(values, s)
		}
	}
	if len(values) == 0 {
		return "", 0
	}

	switch {
	case priceLikeness(values) > priceRatio:
		return "variant price", confidencePrice
	case statusLikeness(values) > statusRatio:
		return "published", confidenceStatus
	case sizeLikeness(values) > sizeRatio:
		return "size", confidenceSize
	case colorLikeness(values) > colorRatio:
		return "colour", confidenceColor
	case categoryLikeness(values) > categoryRatio:
		return "product category", confidenceCategory
	case codeLikeness(values, strings.ToLower(columnName)) > codeScore:
		return "product code", confidenceCode
	}
	return "", 0
}

func priceLikeness(values []string) float64 {
	n := 0
	for _, v := range values {
		clean := currencyRe.ReplaceAllString(v, "")
		f, err := strconv.ParseFloat(clean, 64)
		if err == nil && f > 0 && f < priceMax {
			n++
		}
	}
	return ratio(n, len(values))
}

func statusLikeness(values []string) float64 {
	n := 0
	for _, v := range values {
		if _, ok := statusWords[v]; ok {
			n++
		}
	}
	return ratio(n, len(values))
}

func sizeLikeness(values []string) float64 {
	n := 0
	for _, v := range values {
		for _, re := range sizeRes {
			if re.MatchString(v) {
				n++
				break
			}
		}
	}
	return ratio(n, len(values))
}

func colorLikeness(values []string) float64 {
	return containment(values, colorWords)
}

func categoryLikeness(values []string) float64 {
	return containment(values, categoryWords)
}

func codeLikeness(values []string, columnName string) float64 {
	bonus := 0.0
	for _, hint := range codeNameHints {
		if strings.Contains(columnName, hint) {
			bonus = codeNameBonus
			break
		}
	}

	n := 0
	for _, v := range values {
		v = strings.TrimSpace(v)
		if len(v) > 2 && codeRe.MatchString(v) {
			n++
		}
	}

	s := ratio(n, len(values)) + bonus
	if s > 1 {
		s = 1
	}
	return s
}

func containment(values []string, words []string) float64 {
	n := 0
	for _, v := range values {
		for _, w := range words {
			if strings.Contains(v, w) {
				n++
				break
			}
		}
	}
	return ratio(n, len(values))
}

func ratio(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total)
}
