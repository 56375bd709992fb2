// main is the entry point of the SIMS (Student Information Management
// System) server.
//
// STARTUP SEQUENCE:
//  1. Load .env (provider API keys) and the YAML configuration
//  2. Initialise the logger
//  3. Open the configured storage backend (jsonfile or sqlite);
//     jsonfile seeds itself from the bundled CSV on first boot
//  4. Build the chat generator for the configured vendor, if any
//  5. Register routes: the JSON API under /api, the UI at /
//  6. Serve in a goroutine; block until an OS signal arrives
//  7. Gracefully shut down, finishing in-flight requests
//
// RUNNING THE SERVER:
//
//	go run ./cmd/sims --config=config/local.yaml
//
// or with the environment variable:
//
//	CONFIG_PATH=config/local.yaml go run ./cmd/sims
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aanand-mishra/sims/internal/ai"
	"github.com/aanand-mishra/sims/internal/ai/gemini"
	"github.com/aanand-mishra/sims/internal/ai/openai"
	"github.com/aanand-mishra/sims/internal/config"
	"github.com/aanand-mishra/sims/internal/http/handlers/chat"
	"github.com/aanand-mishra/sims/internal/http/handlers/student"
	"github.com/aanand-mishra/sims/internal/storage"
	"github.com/aanand-mishra/sims/internal/storage/jsonfile"
	"github.com/aanand-mishra/sims/internal/storage/sqlite"
	"github.com/aanand-mishra/sims/internal/web"

	"github.com/joho/godotenv"
)

func main() {
	// A missing .env is fine — keys may come from the real environment.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)

	log.Info("starting sims",
		slog.String("env", cfg.Env),
		slog.String("storage", cfg.Storage.Driver),
	)

	store, err := openStorage(cfg)
	if err != nil {
		log.Error("failed to initialise storage",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("storage initialised",
		slog.String("driver", cfg.Storage.Driver),
		slog.String("path", cfg.Storage.Path))

	generator := buildGenerator(cfg, log)

	// Route table:
	//   GET    /api/students        → full roster
	//   POST   /api/students        → create
	//   PUT    /api/students/{id}   → update
	//   DELETE /api/students/{id}   → delete
	//   POST   /api/chat            → roster Q&A via the AI provider
	//   GET    /                    → server-rendered roster page
	//   GET    /static/             → UI assets
	router := http.NewServeMux()

	router.HandleFunc("GET /api/students", student.GetList(store))
	router.HandleFunc("POST /api/students", student.New(store))
	router.HandleFunc("PUT /api/students/{id}", student.Update(store))
	router.HandleFunc("DELETE /api/students/{id}", student.Delete(store))
	router.HandleFunc("POST /api/chat", chat.New(store, generator))

	router.HandleFunc("GET /{$}", web.Index(store))
	router.Handle("GET /static/", web.Static())

	server := &http.Server{
		Addr:    cfg.HTTPServer.Addr,
		Handler: router,

		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // chat waits on the provider
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.HTTPServer.Addr))

		if err := server.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			log.Error("server encountered an error",
				slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	<-done

	log.Info("shutdown signal received, stopping server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("failed to shutdown server gracefully",
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}

// openStorage picks the backend named by the config. The rest of the
// program only ever sees the storage.Storage interface.
func openStorage(cfg *config.Config) (storage.Storage, error) {
	switch cfg.Storage.Driver {
	case "sqlite":
		return sqlite.New(cfg.Storage.Path)
	default: // jsonfile
		return jsonfile.New(cfg.Storage.Path, cfg.Storage.SeedFile)
	}
}

// buildGenerator returns the configured chat provider, or nil when no
// provider or key is configured — chat then answers "not configured"
// instead of the process refusing to boot.
func buildGenerator(cfg *config.Config, log *slog.Logger) ai.Generator {
	switch cfg.AI.Provider {
	case "gemini":
		if cfg.AI.GeminiAPIKey == "" {
			log.Warn("GEMINI_API_KEY not set, chat disabled")
			return nil
		}
		return gemini.New(cfg.AI.GeminiAPIKey, cfg.AI.Model)
	case "openai":
		if cfg.AI.OpenAIAPIKey == "" {
			log.Warn("OPENAI_API_KEY not set, chat disabled")
			return nil
		}
		return openai.New(cfg.AI.OpenAIAPIKey, cfg.AI.Model)
	case "":
		log.Warn("no AI provider configured, chat disabled")
		return nil
	default:
		log.Warn("unknown AI provider, chat disabled",
			slog.String("provider", cfg.AI.Provider))
		return nil
	}
}

// setupLogger returns a *slog.Logger configured for the given
// environment: human-readable text in dev, JSON elsewhere.
func setupLogger(env string) *slog.Logger {
	switch env {
	case "prod":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case "staging":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default: // "dev" and anything unrecognised
		return slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	}
}
