// Package enrich rewrites product descriptions and generates tags via
// an external text-generation service.
//
// Enrichment is strictly best-effort: a failed call on one row falls
// back to that row's original text and the batch continues. Calls are
// serial with a fixed pacing delay so the external service is never
// hammered.
package enrich

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"catalogcsv/internal/mapping"
	"catalogcsv/internal/metrics"
	"catalogcsv/internal/variants"
)

// Mode selects the enrichment behavior.
type Mode string

const (
	// ModeNone leaves descriptions untouched.
	ModeNone Mode = "none"
	// ModeSimple keeps the first sentence of the original text and
	// asks the service only for tags.
	ModeSimple Mode = "simple"
	// ModeFull asks the service to rewrite the description and supply
	// tags in one call.
	ModeFull Mode = "full"
)

// ParseMode maps a config string to a Mode, defaulting to ModeNone.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeSimple:
		return ModeSimple
	case ModeFull:
		return ModeFull
	}
	return ModeNone
}

// Service is the external text-generation surface the driver calls.
type Service interface {
	// Rewrite returns an enhanced description and comma-separated tags
	// for the given plain text.
	Rewrite(ctx context.Context, text string) (desc, tags string, err error)
	// Tags returns comma-separated tags for the given plain text.
	Tags(ctx context.Context, text string) (string, error)
}

// Logger is the minimal logging surface the driver needs.
type Logger interface {
	Printf(format string, v ...any)
}

// DefaultPace is the delay between consecutive service calls.
const DefaultPace = 100 * time.Millisecond

// Driver runs enrichment over a batch of exploded rows.
type Driver struct {
	Service Service

	// Pace overrides DefaultPace when > 0.
	Pace time.Duration

	Logger Logger

	// Progress, when set, is called after each row.
	Progress func(done, total int, title string)

	// sleep is a test seam; production uses time.Sleep.
	sleep func(d time.Duration)
}

// Run enriches each row in place. The original description text is the
// row's composed body when present, otherwise the mapped description
// column. Per-row failures log, fall back to the original text with no
// tags, and never abort the batch. Run returns early only when ctx is
// done.
func (d *Driver) Run(ctx context.Context, rows []*variants.Exploded, m mapping.Mapping, mode Mode) error {
	if mode == ModeNone || d.Service == nil {
		return nil
	}

	pace := d.Pace
	if pace <= 0 {
		pace = DefaultPace
	}
	sleep := d.sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	for i, e := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}

		original := d.originalText(e, m)
		if original != "" {
			desc, tags := d.enrichOne(ctx, original, mode)
			if desc != "" {
				e.Body = "<p>" + desc + "</p>"
			}
			e.Tags = tags
		}

		if d.Progress != nil {
			d.Progress(i+1, len(rows), e.Title)
		}
		if i < len(rows)-1 {
			sleep(pace)
		}
	}
	return nil
}

func (d *Driver) enrichOne(ctx context.Context, original string, mode Mode) (desc, tags string) {
	switch mode {
	case ModeSimple:
		desc = firstSentence(original)
		t, err := d.Service.Tags(ctx, desc)
		if err != nil {
			d.logf("enrich: tags failed: %v", err)
			metrics.IncCounter("catalog_enrich_requests_total", 1, metrics.Labels{"status": "error"})
			return desc, ""
		}
		metrics.IncCounter("catalog_enrich_requests_total", 1, metrics.Labels{"status": "ok"})
		return desc, strings.TrimSpace(t)

	case ModeFull:
		dd, t, err := d.Service.Rewrite(ctx, original)
		if err != nil {
			d.logf("enrich: rewrite failed: %v", err)
			metrics.IncCounter("catalog_enrich_requests_total", 1, metrics.Labels{"status": "error"})
			return original, ""
		}
		metrics.IncCounter("catalog_enrich_requests_total", 1, metrics.Labels{"status": "ok"})
		return strings.TrimSpace(dd), strings.TrimSpace(t)
	}
	return "", ""
}

// originalText resolves the row's plain-text description: the composed
// body with markup stripped, or the mapped description column.
func (d *Driver) originalText(e *variants.Exploded, m mapping.Mapping) string {
	if e.Body != "" {
		return PlainText(e.Body)
	}
	return strings.TrimSpace(mapping.Value(e.Source, m, "Body (HTML)", ""))
}

func (d *Driver) logf(format string, v ...any) {
	if d.Logger != nil {
		d.Logger.Printf(format, v...)
	}
}

// firstSentence returns the text up to the first period, trimmed.
func firstSentence(text string) string {
	s, _, _ := strings.Cut(text, ".")
	return strings.TrimSpace(s)
}

// PlainText strips markup from an HTML fragment, returning its visible
// text. Unparsable input comes back trimmed as-is.
func PlainText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	return strings.TrimSpace(strings.Join(strings.Fields(doc.Text()), " "))
}
