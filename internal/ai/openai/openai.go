// Package openai implements ai.Generator against the OpenAI chat
// completions REST API.
package openai

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

const defaultBaseURL = "https://api.openai.com/v1"

// OpenAI calls the chat/completions endpoint for a fixed model with a
// bearer API key.
type OpenAI struct {
	APIKey  string
	Model   string
	BaseURL string // overridable for tests
	client  *http.Client
}

// New constructs an OpenAI generator for the given model, e.g.
// "gpt-4o-mini".
func New(apiKey, model string) *OpenAI {
	return &OpenAI{
		APIKey:  apiKey,
		Model:   model,
		BaseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
}

// Generate sends one prompt as a single user message and returns the
// first choice's content.
func (o *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	if o.APIKey == "" {
		return "", errors.New("openai: API key is missing")
	}

	body, err := json.Marshal(request{
		Model:    o.Model,
		Messages: []message{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", fmt.Errorf("openai: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		o.BaseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("openai: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.APIKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("openai: send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", ai.ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("openai: http %d: %s", resp.StatusCode, msg)
	}

	var payload struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("openai: decode response: %w", err)
	}

	if len(payload.Choices) == 0 {
		return "", errors.New("openai: empty response")
	}

	return payload.Choices[0].Message.Content, nil
}
