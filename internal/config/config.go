// Package config handles loading and parsing application configuration.
// The config file path comes from (in priority order) the CONFIG_PATH
// environment variable or the --config command-line flag. Values in the
// YAML file can be overridden per-field through the env:"..." tags.
//
// Provider API keys never live in the YAML file — they are read from the
// environment only, with a .env file loaded at boot for local runs.
package config

import (
	"flag"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration structure.
type Config struct {
	// Env controls log format and verbosity: "dev", "staging", "prod".
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	HTTPServer `yaml:"http_server"`

	Storage StorageConfig `yaml:"storage"`

	AI AIConfig `yaml:"ai"`
}

// HTTPServer holds settings specific to the HTTP server.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`
}

// StorageConfig selects and configures the persistence backend.
type StorageConfig struct {
	// Driver picks the backend: "jsonfile" or "sqlite".
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"jsonfile"`

	// Path is the data file: a .json document for jsonfile, a .db file
	// for sqlite.
	Path string `yaml:"path" env:"STORAGE_PATH" env-required:"true"`

	// SeedFile is an optional CSV imported once when the jsonfile store
	// is empty at boot. Ignored by the sqlite backend.
	SeedFile string `yaml:"seed_file" env:"SEED_FILE"`
}

// AIConfig selects and configures the chat provider. A missing provider
// or key disables the chat feature; it never stops the server.
type AIConfig struct {
	// Provider picks the vendor: "gemini" or "openai". Empty disables chat.
	Provider string `yaml:"provider" env:"AI_PROVIDER"`

	// Model is the vendor model name, e.g. "gemini-2.0-flash" or
	// "gpt-4o-mini".
	Model string `yaml:"model" env:"AI_MODEL"`

	GeminiAPIKey string `yaml:"-" env:"GEMINI_API_KEY"`
	OpenAIAPIKey string `yaml:"-" env:"OPENAI_API_KEY"`
}

// MustLoad reads, validates, and returns the application config.
// Functions prefixed with "Must" are allowed to fatal on failure —
// if this returns, the config is valid.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}

	return &cfg
}
