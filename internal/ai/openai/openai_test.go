package openai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aanand-mishra/sims/internal/ai"
)

func newTestOpenAI(t *testing.T, handler http.HandlerFunc) *OpenAI {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	o := New("test-key", "gpt-4o-mini")
	o.BaseURL = srv.URL
	return o
}

func TestGenerate(t *testing.T) {
	t.Run("returns the first choice content", func(t *testing.T) {
		o := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/chat/completions" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.Header.Get("Authorization") != "Bearer test-key" {
				t.Error("bearer token missing")
			}
			w.Write([]byte(`{"choices":[{"message":{"content":"hello"}}]}`))
		})

		text, err := o.Generate(context.Background(), "hi")
		if err != nil {
			t.Fatal(err)
		}
		if text != "hello" {
			t.Errorf("text = %q, want hello", text)
		}
	})

	t.Run("429 maps to ErrRateLimited", func(t *testing.T) {
		o := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := o.Generate(context.Background(), "hi")
		if !errors.Is(err, ai.ErrRateLimited) {
			t.Errorf("got %v, want ErrRateLimited", err)
		}
	})

	t.Run("empty choices is an error", func(t *testing.T) {
		o := newTestOpenAI(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"choices":[]}`))
		})

		if _, err := o.Generate(context.Background(), "hi"); err == nil {
			t.Error("expected an error for empty choices")
		}
	})
}
