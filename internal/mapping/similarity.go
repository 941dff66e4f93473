package mapping

import (
	"regexp"
	"strings"
)

// FuzzyThreshold is the minimum similarity for the fuzzy pass to
// accept a column/spelling pair. Tuned on real vendor sheets; treat as
// a knob, not a derived value.
const FuzzyThreshold = 0.7

// SubstringFloor is the similarity floor applied when one cleaned name
// contains the other ("price" inside "unitprice" is a near-certain
// match regardless of raw edit distance).
const SubstringFloor = 0.8

var punctRe = regexp.MustCompile(`[_\-\s]+`)

// Similarity scores two column names in [0, 1] using a normalized
// Levenshtein distance over punctuation-stripped forms, with the
// substring floor applied on containment.
func Similarity(a, b string) float64 {
	a = punctRe.ReplaceAllString(a, "")
	b = punctRe.ReplaceAllString(b, "")

	if a == "" || b == "" {
		if a == b {
			return 1
		}
		return 0
	}

	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	s := 1 - float64(levenshtein(a, b))/float64(longest)

	if strings.Contains(a, b) || strings.Contains(b, a) {
		if s < SubstringFloor {
			s = SubstringFloor
		}
	}
	return s
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)

	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min3(cur[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
