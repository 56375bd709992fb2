// Package ai defines the capability interface for generative-text
// providers. The chat handler depends only on Generator; the concrete
// vendor (Gemini or OpenAI) is chosen once at boot by configuration and
// the two are interchangeable with no change to the HTTP contract.
package ai

import (
	"context"
	"errors"
)

// ErrRateLimited is returned by a Generator when the vendor throttles
// the request (HTTP 429). The chat handler turns it into a polite
// in-band reply rather than a hard failure.
var ErrRateLimited = errors.New("provider rate limit exceeded")

// Generator produces free-text output for a prompt. One request in, one
// response out — no retry, no streaming.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
