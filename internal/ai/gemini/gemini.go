// Package gemini implements ai.Generator against the Google Generative
// Language REST API (models/*:generateContent).
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aanand-mishra/sims/internal/ai"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// Gemini calls the generateContent endpoint for a fixed model. The API
// key travels in the x-goog-api-key header.
type Gemini struct {
	APIKey  string
	Model   string
	BaseURL string // overridable for tests
	client  *http.Client
}

// New constructs a Gemini generator for the given model, e.g.
// "gemini-2.0-flash".
func New(apiKey, model string) *Gemini {
	return &Gemini{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type request struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

// Generate sends one prompt and returns the first candidate's text.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if g.APIKey == "" {
		return "", errors.New("gemini: API key is missing")
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent", g.BaseURL, g.Model)

	body, err := json.Marshal(request{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("gemini: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("gemini: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ai.ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("gemini: http %d: %s", resp.StatusCode, msg)
	}

	var payload struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("gemini: decode response: %w", err)
	}

	if len(payload.Candidates) == 0 ||
		len(payload.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini: empty response")
	}

	return payload.Candidates[0].Content.Parts[0].Text, nil
}
