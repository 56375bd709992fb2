// Package chat contains the handler bridging the roster UI's chat box to
// a generative-text provider.
//
// The flow is stateless and retry-free: fetch the roster, embed it in an
// instruction template together with the user's question, send one
// request to the configured provider, return the reply verbatim. The
// whole roster is serialised into every prompt — a known scaling limit
// for large rosters.
package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aanand-mishra/sims/internal/ai"
	"github.com/aanand-mishra/sims/internal/storage"
	"github.com/aanand-mishra/sims/internal/types"
	"github.com/aanand-mishra/sims/internal/utils/response"
)

// Request is the chat request body. The field name is "prompt".
type Request struct {
	Prompt string `json:"prompt"`
}

// Reply is the chat response body for every outcome — success, rate
// limit, and failure alike — so the chat box can always render reply.
type Reply struct {
	Reply string `json:"reply"`
}

const rateLimitApology = "I'm getting a lot of questions right now — " +
	"please give me a moment and ask again."

// New handles POST /api/chat.
//
//	200 {reply} — provider answer, verbatim
//	400 {reply} — empty prompt
//	429 {reply} — provider throttled; polite apology instead of an error
//	500 {reply} — store failure, unconfigured provider, or any other
//	              provider failure (generic message, no internals)
//
// gen is nil when no provider credentials were configured; the feature
// is disabled rather than the process refusing to start.
func New(store storage.Storage, gen ai.Generator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
			response.WriteJSON(w, http.StatusBadRequest,
				Reply{Reply: "Please type a message."})
			return
		}

		slog.Info("handling chat message")

		if gen == nil {
			response.WriteJSON(w, http.StatusInternalServerError,
				Reply{Reply: "The assistant is not configured."})
			return
		}

		students, err := store.ListStudents()
		if err != nil {
			slog.Error("chat: store failure", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				Reply{Reply: "Database connection failed."})
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
		defer cancel()

		reply, err := gen.Generate(ctx, BuildPrompt(students, req.Prompt))
		if errors.Is(err, ai.ErrRateLimited) {
			slog.Warn("chat: provider rate limited")
			response.WriteJSON(w, http.StatusTooManyRequests,
				Reply{Reply: rateLimitApology})
			return
		}
		if err != nil {
			slog.Error("chat: provider failure", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError,
				Reply{Reply: "Server Error"})
			return
		}

		response.WriteJSON(w, http.StatusOK, Reply{Reply: reply})
	}
}

// BuildPrompt composes the registrar-assistant instruction template
// around a fresh roster snapshot and the user's question.
func BuildPrompt(students []types.Student, question string) string {
	var b strings.Builder

	b.WriteString("You are a helpful school registrar assistant for \"SIMS\".\n\n")
	fmt.Fprintf(&b, "Here is the LIVE student database (%d records):\n\n", len(students))

	for i, s := range students {
		fmt.Fprintf(&b, "%d. [%s] %s (%s) - %s - Year %d - %s\n",
			i+1, s.ID, s.Name, s.Gender, s.Program, int(s.Year), s.University)
	}

	b.WriteString("\nINSTRUCTIONS:\n")
	b.WriteString("- Answer the user's question based ONLY on the data above.\n")
	b.WriteString("- If the student is not in the list, say \"I cannot find that student.\"\n")
	b.WriteString("- Be polite and concise.\n\n")
	fmt.Fprintf(&b, "USER QUESTION:\n%q\n", question)

	return b.String()
}
