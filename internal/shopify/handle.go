package shopify

import (
	"regexp"
	"strings"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	hyphenRunRe  = regexp.MustCompile(`-+`)
)

// Handle slugifies a product's title plus its SKU or product code into
// the group key the import format uses:
// lowercase, non-word/non-space/non-hyphen characters stripped,
// whitespace collapsed to single hyphens, hyphen runs collapsed,
// leading/trailing hyphens trimmed.
func Handle(title, code string) string {
	h := strings.TrimSpace(title) + "-" + strings.TrimSpace(code)
	h = nonWordRe.ReplaceAllString(h, "")
	h = whitespaceRe.ReplaceAllString(h, "-")
	h = strings.ToLower(h)
	h = hyphenRunRe.ReplaceAllString(h, "-")
	return strings.Trim(h, "-")
}
