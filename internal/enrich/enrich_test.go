package enrich

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"catalogcsv/internal/mapping"
	"catalogcsv/internal/table"
	"catalogcsv/internal/variants"
)

// fakeService records calls and returns canned or failing responses.
type fakeService struct {
	rewriteDesc string
	rewriteTags string
	tags        string
	err         error

	rewriteCalls int
	tagCalls     int
}

func (f *fakeService) Rewrite(ctx context.Context, text string) (string, string, error) {
	f.rewriteCalls++
	if f.err != nil {
		return "", "", f.err
	}
	return f.rewriteDesc, f.rewriteTags, nil
}

func (f *fakeService) Tags(ctx context.Context, text string) (string, error) {
	f.tagCalls++
	if f.err != nil {
		return "", f.err
	}
	return f.tags, nil
}

func rowsWith(desc string) ([]*variants.Exploded, mapping.Mapping) {
	src := table.Row{"Name": "Shirt", "Desc": desc}
	m := mapping.Mapping{"Title": "Name", "Body (HTML)": "Desc"}
	return []*variants.Exploded{
		{Source: src, Title: "Shirt"},
	}, m
}

// TestRunFullMode checks the rewrite path fills body and tags.
func TestRunFullMode(t *testing.T) {
	t.Parallel()

	rows, m := rowsWith("Plain old shirt. Very plain.")
	fs := &fakeService{rewriteDesc: "A shirt to love.", rewriteTags: "shirt,cotton"}
	d := &Driver{Service: fs, sleep: func(time.Duration) {}}

	require.NoError(t, d.Run(context.Background(), rows, m, ModeFull))
	require.Equal(t, 1, fs.rewriteCalls)
	require.Equal(t, "<p>A shirt to love.</p>", rows[0].Body)
	require.Equal(t, "shirt,cotton", rows[0].Tags)
}

// TestRunSimpleMode checks first-sentence extraction with a tags-only
// call.
func TestRunSimpleMode(t *testing.T) {
	t.Parallel()

	rows, m := rowsWith("Plain old shirt. Very plain.")
	fs := &fakeService{tags: "shirt,basic"}
	d := &Driver{Service: fs, sleep: func(time.Duration) {}}

	require.NoError(t, d.Run(context.Background(), rows, m, ModeSimple))
	require.Equal(t, 0, fs.rewriteCalls)
	require.Equal(t, 1, fs.tagCalls)
	require.Equal(t, "<p>Plain old shirt</p>", rows[0].Body)
	require.Equal(t, "shirt,basic", rows[0].Tags)
}

// TestRunFailureFallsBack checks a failing call keeps the original
// text and never aborts the batch.
func TestRunFailureFallsBack(t *testing.T) {
	t.Parallel()

	src1 := table.Row{"Name": "A", "Desc": "First desc."}
	src2 := table.Row{"Name": "B", "Desc": "Second desc."}
	m := mapping.Mapping{"Title": "Name", "Body (HTML)": "Desc"}
	rows := []*variants.Exploded{
		{Source: src1, Title: "A"},
		{Source: src2, Title: "B"},
	}

	fs := &fakeService{err: errors.New("quota exceeded")}
	d := &Driver{Service: fs, sleep: func(time.Duration) {}}

	require.NoError(t, d.Run(context.Background(), rows, m, ModeFull))
	require.Equal(t, 2, fs.rewriteCalls)
	require.Equal(t, "<p>First desc.</p>", rows[0].Body)
	require.Empty(t, rows[0].Tags)
	require.Equal(t, "<p>Second desc.</p>", rows[1].Body)
}

// TestRunModeNoneAndEmpty checks the no-op paths.
func TestRunModeNoneAndEmpty(t *testing.T) {
	t.Parallel()

	rows, m := rowsWith("Desc here.")
	fs := &fakeService{rewriteDesc: "x"}
	d := &Driver{Service: fs, sleep: func(time.Duration) {}}

	require.NoError(t, d.Run(context.Background(), rows, m, ModeNone))
	require.Zero(t, fs.rewriteCalls)
	require.Empty(t, rows[0].Body)

	// Blank description: the service is never called for the row.
	rows, m = rowsWith("")
	require.NoError(t, d.Run(context.Background(), rows, m, ModeFull))
	require.Zero(t, fs.rewriteCalls)
}

// TestRunPacingAndProgress checks one sleep between rows and progress
// callbacks for every row.
func TestRunPacingAndProgress(t *testing.T) {
	t.Parallel()

	m := mapping.Mapping{"Title": "Name", "Body (HTML)": "Desc"}
	var rows []*variants.Exploded
	for _, name := range []string{"A", "B", "C"} {
		rows = append(rows, &variants.Exploded{
			Source: table.Row{"Name": name, "Desc": name + " desc."},
			Title:  name,
		})
	}

	var sleeps []time.Duration
	var progress []int
	d := &Driver{
		Service:  &fakeService{rewriteDesc: "d", rewriteTags: "t"},
		Progress: func(done, total int, title string) { progress = append(progress, done) },
		sleep:    func(dur time.Duration) { sleeps = append(sleeps, dur) },
	}

	require.NoError(t, d.Run(context.Background(), rows, m, ModeFull))
	require.Equal(t, []int{1, 2, 3}, progress)
	// No sleep after the last row.
	require.Len(t, sleeps, 2)
	for _, s := range sleeps {
		require.Equal(t, DefaultPace, s)
	}
}

// TestRunContextCancel checks Run stops between rows when the context
// is done.
func TestRunContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rows, m := rowsWith("Desc.")
	fs := &fakeService{rewriteDesc: "x"}
	d := &Driver{Service: fs, sleep: func(time.Duration) {}}

	require.Error(t, d.Run(ctx, rows, m, ModeFull))
	require.Zero(t, fs.rewriteCalls)
}

// TestRunComposedBodyIsSource checks an already-composed body is
// stripped to text and used as the enrichment input.
func TestRunComposedBodyIsSource(t *testing.T) {
	t.Parallel()

	rows, m := rowsWith("ignored")
	rows[0].Body = "<p><b>Fabric : </b> Cotton</p>"

	var got string
	fs := &fakeService{rewriteDesc: "Enhanced.", rewriteTags: "t"}
	d := &Driver{
		Service: serviceFunc(func(ctx context.Context, text string) (string, string, error) {
			got = text
			return fs.Rewrite(ctx, text)
		}, fs.Tags),
		sleep: func(time.Duration) {},
	}

	require.NoError(t, d.Run(context.Background(), rows, m, ModeFull))
	require.Equal(t, "Fabric : Cotton", got)
}

type serviceFuncs struct {
	rewrite func(ctx context.Context, text string) (string, string, error)
	tags    func(ctx context.Context, text string) (string, error)
}

func serviceFunc(
	rewrite func(ctx context.Context, text string) (string, string, error),
	tags func(ctx context.Context, text string) (string, error),
) Service {
	return &serviceFuncs{rewrite: rewrite, tags: tags}
}

func (s *serviceFuncs) Rewrite(ctx context.Context, text string) (string, string, error) {
	return s.rewrite(ctx, text)
}

func (s *serviceFuncs) Tags(ctx context.Context, text string) (string, error) {
	return s.tags(ctx, text)
}

// TestPlainText checks markup stripping and whitespace collapsing.
func TestPlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"<p>Hello <b>world</b></p>", "Hello world"},
		{"plain text", "plain text"},
		{"<li>One</li> <li>Two</li>", "One Two"},
		{"  spaced \n out  ", "spaced out"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := PlainText(tt.in); got != tt.want {
			t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want Mode
	}{
		{"simple", ModeSimple},
		{" Full ", ModeFull},
		{"none", ModeNone},
		{"", ModeNone},
		{"bogus", ModeNone},
	}
	for _, tt := range tests {
		if got := ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// fakeDoer returns a canned HTTP response per request.
type fakeDoer struct {
	status int
	body   string

	lastURL  string
	lastKey  string
	lastBody string
}

func (f *fakeDoer) Do(req *http.Request) (*http.Response, error) {
	f.lastURL = req.URL.String()
	f.lastKey = req.Header.Get("x-goog-api-key")
	b, _ := io.ReadAll(req.Body)
	f.lastBody = string(b)

	return &http.Response{
		StatusCode: f.status,
		Body:       io.NopCloser(strings.NewReader(f.body)),
		Header:     http.Header{},
	}, nil
}

// TestGeminiRewrite checks request shape and two-line response
// parsing.
func TestGeminiRewrite(t *testing.T) {
	t.Parallel()

	fd := &fakeDoer{
		status: http.StatusOK,
		body:   `{"candidates":[{"content":{"parts":[{"text":"A better shirt.\ncotton,soft,shirt,basic,blue"}]}}]}`,
	}
	g, err := NewGemini(GeminiOptions{APIKey: "k", client: fd})
	require.NoError(t, err)

	desc, tags, err := g.Rewrite(context.Background(), "A shirt.")
	require.NoError(t, err)
	require.Equal(t, "A better shirt.", desc)
	require.Equal(t, "cotton,soft,shirt,basic,blue", tags)

	require.Contains(t, fd.lastURL, "models/gemini-2.5-flash:generateContent")
	require.Equal(t, "k", fd.lastKey)
	require.Contains(t, fd.lastBody, "A shirt.")
}

// TestGeminiRewriteSingleLine treats a one-line reply as
// description-only.
func TestGeminiRewriteSingleLine(t *testing.T) {
	t.Parallel()

	fd := &fakeDoer{
		status: http.StatusOK,
		body:   `{"candidates":[{"content":{"parts":[{"text":"Just a description"}]}}]}`,
	}
	g, err := NewGemini(GeminiOptions{APIKey: "k", client: fd})
	require.NoError(t, err)

	desc, tags, err := g.Rewrite(context.Background(), "x")
	require.NoError(t, err)
	require.Equal(t, "Just a description", desc)
	require.Empty(t, tags)
}

// TestGeminiErrors covers HTTP failure, empty candidates, and the
// missing-key constructor error.
func TestGeminiErrors(t *testing.T) {
	t.Parallel()

	_, err := NewGemini(GeminiOptions{})
	require.Error(t, err)

	g, err := NewGemini(GeminiOptions{APIKey: "k", client: &fakeDoer{status: http.StatusTooManyRequests, body: "quota"}})
	require.NoError(t, err)
	_, err = g.Tags(context.Background(), "x")
	require.ErrorContains(t, err, "429")

	g, err = NewGemini(GeminiOptions{APIKey: "k", client: &fakeDoer{status: http.StatusOK, body: `{"candidates":[]}`}})
	require.NoError(t, err)
	_, err = g.Tags(context.Background(), "x")
	require.ErrorContains(t, err, "empty response")
}
