// Package sizes parses apparel size tokens and orders them by the
// standard size taxonomy.
//
// A size token may carry an embedded quantity after a single hyphen
// ("M-5" means size M, five units). The reserved token "Custom" always
// parses as size "Custom" with zero quantity. Tokens with zero or more
// than one hyphen do not decompose and are treated as opaque custom
// sizes.
//
// All parsing is best-effort and never fails: an unparsable quantity
// degrades to zero, the caller decides what a zero quantity means.
package sizes

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// StandardOrder is the fixed size taxonomy used for ordering. Tokens
// matching one of these labels (case-insensitively) sort by taxonomy
// index, ahead of numeric and custom sizes.
var StandardOrder = []string{
	"XXS", "XS", "S", "M", "L", "XL", "XXL", "XXXL",
	"2XL", "3XL", "4XL", "5XL",
}

var (
	numericRe = regexp.MustCompile(`^\d+$`)
	xDigitRe  = regexp.MustCompile(`^X\d+`)
	digitsRe  = regexp.MustCompile(`\d+`)
)

// Parse splits a raw size token into its size label and embedded
// quantity.
//
// Behavior:
//   - "Custom" (any casing) -> ("Custom", 0)
//   - exactly one hyphen with a numeric right side -> (left, int(right)),
//     fractional quantities truncate toward zero
//   - anything else -> (token, 0), the token stays opaque
func Parse(token string) (string, int) {
	token = strings.TrimSpace(token)

	if strings.EqualFold(token, "custom") {
		return "Custom", 0
	}

	if strings.Count(token, "-") == 1 {
		parts := strings.SplitN(token, "-", 2)
		sizePart := strings.TrimSpace(parts[0])
		qtyPart := strings.TrimSpace(parts[1])
		f, err := strconv.ParseFloat(qtyPart, 64)
		if err != nil || f < 0 {
			return token, 0
		}
		return sizePart, int(f)
	}

	return token, 0
}

// Display strips the embedded quantity suffix from a full size token,
// producing the human-facing size label ("M-5" -> "M"). Tokens with no
// embedded quantity pass through whole ("X-LARGE" stays "X-LARGE").
// The full token must still be used for inventory extraction; the two
// forms are never interchangeable.
func Display(token string) string {
	size, _ := Parse(token)
	return size
}

// Sort splits a comma-delimited size list, de-duplicates it preserving
// first-seen order, and returns the sizes in taxonomy order together
// with a size -> embedded quantity map.
//
// Ordering is three partitions, concatenated:
//  1. standard taxonomy sizes, by taxonomy index
//  2. purely numeric sizes and "X<digits>" sizes, ascending by the
//     embedded integer
//  3. everything else, lexicographically
//
// Sort is idempotent on an already sorted, de-duplicated input and
// never drops or duplicates a token.
func Sort(raw string) ([]string, map[string]int) {
	fields := strings.Split(raw, ",")

	quantities := make(map[string]int)
	unique := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))

	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		size, qty := Parse(f)
		quantities[size] = qty
		if _, dup := seen[size]; dup {
			continue
		}
		seen[size] = struct{}{}
		unique = append(unique, size)
	}

	type ranked struct {
		rank int
		size string
	}

	var standard, numeric []ranked
	var custom []string

	for _, size := range unique {
		if idx := standardIndex(size); idx >= 0 {
			standard = append(standard, ranked{idx, size})
			continue
		}
		switch {
		case numericRe.MatchString(size):
			n, _ := strconv.Atoi(size)
			numeric = append(numeric, ranked{n, size})
		case xDigitRe.MatchString(strings.ToUpper(size)):
			if m := digitsRe.FindString(size); m != "" {
				n, _ := strconv.Atoi(m)
				numeric = append(numeric, ranked{n, size})
			} else {
				custom = append(custom, size)
			}
		default:
			custom = append(custom, size)
		}
	}

	sort.SliceStable(standard, func(i, j int) bool { return standard[i].rank < standard[j].rank })
	sort.SliceStable(numeric, func(i, j int) bool { return numeric[i].rank < numeric[j].rank })
	sort.Strings(custom)

	out := make([]string, 0, len(unique))
	for _, r := range standard {
		out = append(out, r.size)
	}
	for _, r := range numeric {
		out = append(out, r.size)
	}
	out = append(out, custom...)

	return out, quantities
}

func standardIndex(size string) int {
	for i, std := range StandardOrder {
		if strings.EqualFold(size, std) {
			return i
		}
	}
	return -1
}
