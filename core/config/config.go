package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is read once at startup and passed into components at construction
// time. Nothing reads the environment after Load returns.
type Config struct {
	Env    string
	Port   string
	OTel   OTelConfig
	Ollama OllamaConfig
	Slack  SlackConfig

	// RequestTimeout bounds each Slack call. The inference call carries its
	// own, longer budget (Ollama.Timeout).
	RequestTimeout time.Duration
}

type OTelConfig struct {
	Endpoint       string
	Headers        string
	ServiceName    string
	ServiceVersion string
}

type OllamaConfig struct {
	URL     string
	Model   string
	Timeout time.Duration
}

type SlackConfig struct {
	// BotToken is optional. When absent the service still starts; lookup and
	// notify calls fail with a not_configured failure and readiness reports
	// not ready.
	BotToken string

	// APIURL overrides the Slack Web API base URL. Empty means the public
	// endpoint; tests point it at a local fake.
	APIURL string
}

// Load loads configuration from environment variables. In development it
// first loads a local .env file when present.
func Load() (Config, error) {
	if getEnv("BUILDALERT_ENV", "development") == "development" {
		_ = godotenv.Load(".env")
	}

	cfg := Config{
		Env:  getEnv("BUILDALERT_ENV", "development"),
		Port: getEnv("PORT", "8080"),
		OTel: OTelConfig{
			Endpoint:       getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:        getEnv("OTEL_EXPORTER_OTLP_HEADERS", ""),
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "buildalert"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "dev"),
		},
		Ollama: OllamaConfig{
			URL:     getEnv("OLLAMA_URL", "http://localhost:11434"),
			Model:   getEnv("OLLAMA_MODEL", "llama3"),
			Timeout: getEnvSeconds("OLLAMA_TIMEOUT", 60*time.Second),
		},
		Slack: SlackConfig{
			BotToken: getEnv("SLACK_BOT_TOKEN", ""),
			APIURL:   getEnv("SLACK_API_URL", ""),
		},
		RequestTimeout: getEnvSeconds("REQUEST_TIMEOUT", 30*time.Second),
	}

	if _, err := url.Parse(cfg.Ollama.URL); err != nil {
		return Config{}, fmt.Errorf("invalid OLLAMA_URL: %w", err)
	}
	if cfg.Ollama.Model == "" {
		return Config{}, fmt.Errorf("OLLAMA_MODEL must not be empty")
	}

	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}

func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c OTelConfig) Enabled() bool {
	return c.Endpoint != ""
}

func (c SlackConfig) Configured() bool {
	return c.BotToken != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getEnvSeconds reads an integer number of seconds, matching how the CI
// deployment manifests express the timeout knobs.
func getEnvSeconds(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if secs, err := strconv.Atoi(value); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}
