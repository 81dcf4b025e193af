// Package config loads application configuration from environment variables.
// All variables use the DISHA_ prefix.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Cache   CacheConfig
	AI      AIConfig
	Explain ExplainConfig
	Log     LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int
	Host string
}

// CatalogConfig holds the paths of the static catalog documents.
type CatalogConfig struct {
	StreamsPath   string
	QuestionsPath string
	MatrixPath    string
}

// CacheConfig holds Redis connection settings for the explanation cache.
// An empty URL disables caching.
type CacheConfig struct {
	URL        string
	TTLMinutes int
}

// AIConfig holds configuration for the text generation providers.
type AIConfig struct {
	Google GoogleConfig
	Ollama OllamaConfig
}

// GoogleConfig holds Google Gemini provider settings.
type GoogleConfig struct {
	APIKey string
	Model  string
}

// OllamaConfig holds self-hosted Ollama settings.
type OllamaConfig struct {
	Enabled bool
	URL     string
	Model   string
}

// ExplainConfig bounds the outbound generation call.
type ExplainConfig struct {
	TimeoutSeconds int
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from environment variables with DISHA_ prefix.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: envInt("DISHA_SERVER_PORT", 8080),
			Host: envStr("DISHA_SERVER_HOST", "0.0.0.0"),
		},
		Catalog: CatalogConfig{
			StreamsPath:   envStr("DISHA_CATALOG_STREAMS_PATH", "./data/streams.json"),
			QuestionsPath: envStr("DISHA_CATALOG_QUESTIONS_PATH", "./data/questions.json"),
			MatrixPath:    envStr("DISHA_CATALOG_MATRIX_PATH", "./data/course_matrix.json"),
		},
		Cache: CacheConfig{
			URL:        envStr("DISHA_CACHE_URL", ""),
			TTLMinutes: envInt("DISHA_CACHE_TTL_MINUTES", 1440),
		},
		AI: AIConfig{
			Google: GoogleConfig{
				APIKey: envStr("DISHA_AI_GOOGLE_API_KEY", ""),
				Model:  envStr("DISHA_AI_GOOGLE_MODEL", "gemini-2.5-flash"),
			},
			Ollama: OllamaConfig{
				Enabled: envBool("DISHA_AI_OLLAMA_ENABLED", false),
				URL:     envStr("DISHA_AI_OLLAMA_URL", "http://localhost:11434"),
				Model:   envStr("DISHA_AI_OLLAMA_MODEL", "llama3:8b"),
			},
		},
		Explain: ExplainConfig{
			TimeoutSeconds: envInt("DISHA_EXPLAIN_TIMEOUT_SECONDS", 10),
		},
		Log: LogConfig{
			Level:  envStr("DISHA_LOG_LEVEL", "info"),
			Format: envStr("DISHA_LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.Catalog.StreamsPath == "" || c.Catalog.QuestionsPath == "" || c.Catalog.MatrixPath == "" {
		return fmt.Errorf("all DISHA_CATALOG_*_PATH values are required")
	}

	if c.Explain.TimeoutSeconds <= 0 {
		return fmt.Errorf("DISHA_EXPLAIN_TIMEOUT_SECONDS must be positive, got %d", c.Explain.TimeoutSeconds)
	}

	return nil
}

// HasAIProvider returns true if at least one text generation provider is
// configured. The service still runs without one; explanations fall back to
// the built-in text.
func (c *Config) HasAIProvider() bool {
	return c.AI.Google.APIKey != "" || c.AI.Ollama.Enabled
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		return strings.EqualFold(v, "true") || v == "1"
	}
	return fallback
}
