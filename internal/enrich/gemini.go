package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"
	defaultModel   = "models/gemini-2.5-flash"
)

// doer is the minimal HTTP surface the client needs; tests substitute
// a fake to avoid real network calls.
type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// GeminiOptions configures a Gemini-backed Service.
type GeminiOptions struct {
	// APIKey is required.
	APIKey string

	// Model defaults to "models/gemini-2.5-flash".
	Model string

	// BaseURL overrides the production endpoint; used by tests.
	BaseURL string

	// Timeout bounds each HTTP call. Defaults to 30s.
	Timeout time.Duration

	client doer
}

// Gemini implements Service against the Google generative-language
// HTTP API.
type Gemini struct {
	apiKey  string
	model   string
	baseURL string
	client  doer
}

// NewGemini constructs a Gemini client. It fails only on a missing API
// key; network errors surface per call.
func NewGemini(opts GeminiOptions) (*Gemini, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, fmt.Errorf("gemini: missing API key")
	}

	model := opts.Model
	if model == "" {
		model = defaultModel
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	client := opts.client
	if client == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}

	return &Gemini{
		apiKey:  opts.APIKey,
		model:   model,
		baseURL: baseURL,
		client:  client,
	}, nil
}

// Rewrite implements Service. The response contract is two lines: the
// enhanced description, then comma-separated tags. A single-line reply
// is treated as description-only.
func (g *Gemini) Rewrite(ctx context.Context, text string) (string, string, error) {
	prompt := "You are a Shopify copywriter. Rewrite this product description to be engaging and clear.\n" +
		"Then provide 5 comma-separated tags.\n\n" +
		"Original: " + text + "\n\n" +
		"Respond with:\n" +
		"Line 1: Enhanced description\n" +
		"Line 2: tag1,tag2,tag3,tag4,tag5"

	result, err := g.generate(ctx, prompt)
	if err != nil {
		return "", "", err
	}

	desc, tags, found := strings.Cut(result, "\n")
	if !found {
		return strings.TrimSpace(result), "", nil
	}
	return strings.TrimSpace(desc), strings.TrimSpace(tags), nil
}

// Tags implements Service.
func (g *Gemini) Tags(ctx context.Context, text string) (string, error) {
	prompt := "Extract 5 relevant product tags from this text.\n" +
		"Return only tags as comma-separated list.\n\n" +
		"Text: " + text + "\n\n" +
		"Tags:"

	result, err := g.generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(result), nil
}

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: encode request: %w", err)
	}

	url := g.baseURL + "/v1beta/" + g.model + ":generateContent"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.apiKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("gemini: status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty response")
	}
	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}

var _ Service = (*Gemini)(nil)
