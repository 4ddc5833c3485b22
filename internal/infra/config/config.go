// Package config provides application-wide configuration loaded from env vars.
// A .env file in the working directory is honored, but real environment
// variables always take precedence over it.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingAPIKey is returned by Validate when the selected provider needs
// an API key and none was configured.
var ErrMissingAPIKey = errors.New("config: " + envKeyGeminiAPIKey + " is not set")

// MissingAPIKeyMessage is shown to the operator when startup halts on ErrMissingAPIKey.
const MissingAPIKeyMessage = "API Key not found! Please check your .env file."

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
)

// Config holds runtime configuration for unitai.
type Config struct {
	// LLM
	LLMProvider     string        // LLM_PROVIDER: default: "gemini"
	GeminiAPIKey    string        // GEMINI_API_KEY: required for the gemini provider
	GeminiModel     string        // GEMINI_MODEL: default: "gemini-2.0-flash"
	GeminiBaseURL   string        // GEMINI_BASE_URL
	OllamaBaseURL   string        // OLLAMA_BASE_URL: default: "http://localhost:11434"
	OllamaChatModel string        // OLLAMA_CHAT_MODEL: default: "llama3.2:3b"
	LLMTimeout      time.Duration // LLM_TIMEOUT (seconds): default: 30

	// HTTP
	HTTPHost       string  // HTTP_HOST: default: "0.0.0.0"
	HTTPPort       int     // HTTP_PORT: default: 8080
	RateLimitRPS   float64 // RATE_LIMIT_RPS: default: 2; <= 0 disables limiting
	RateLimitBurst int     // RATE_LIMIT_BURST: default: 5

	// Storage
	DatabasePath     string // DATABASE_PATH: default: "unitai.db"; "off" disables history
	UnitsCatalogPath string // UNITS_CATALOG_PATH: empty uses the embedded catalog

	// Admin auth
	JWTSecret         string        // JWT_SECRET: empty leaves admin routes open
	JWTExpiry         time.Duration // JWT_EXPIRY (hours): default: 24
	AdminPasswordHash string        // ADMIN_PASSWORD_HASH: bcrypt hash for POST /auth/token

	// Logging
	Environment string // ENVIRONMENT: "production" switches logs to JSON
	LogLevel    string // LOG_LEVEL: default: "info"
}

const (
	envKeyLLMProvider       = "LLM_PROVIDER"
	envKeyGeminiAPIKey      = "GEMINI_API_KEY"
	envKeyGeminiModel       = "GEMINI_MODEL"
	envKeyGeminiBaseURL     = "GEMINI_BASE_URL"
	envKeyOllamaBaseURL     = "OLLAMA_BASE_URL"
	envKeyOllamaChatModel   = "OLLAMA_CHAT_MODEL"
	envKeyLLMTimeout        = "LLM_TIMEOUT"
	envKeyHTTPHost          = "HTTP_HOST"
	envKeyHTTPPort          = "HTTP_PORT"
	envKeyRateLimitRPS      = "RATE_LIMIT_RPS"
	envKeyRateLimitBurst    = "RATE_LIMIT_BURST"
	envKeyDatabasePath      = "DATABASE_PATH"
	envKeyUnitsCatalogPath  = "UNITS_CATALOG_PATH"
	envKeyJWTSecret         = "JWT_SECRET"
	envKeyJWTExpiry         = "JWT_EXPIRY"
	envKeyAdminPasswordHash = "ADMIN_PASSWORD_HASH"
	envKeyEnvironment       = "ENVIRONMENT"
	envKeyLogLevel          = "LOG_LEVEL"
)

// DefaultGeminiBaseURL is the public Generative Language API root.
const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// HistoryDisabled is the DATABASE_PATH value that turns conversion history off.
const HistoryDisabled = "off"

// Load reads configuration from environment variables, applying defaults for missing values.
func Load() Config {
	return Config{
		LLMProvider:     strings.ToLower(envOr(envKeyLLMProvider, ProviderGemini)),
		GeminiAPIKey:    strings.TrimSpace(os.Getenv(envKeyGeminiAPIKey)),
		GeminiModel:     envOr(envKeyGeminiModel, "gemini-2.0-flash"),
		GeminiBaseURL:   strings.TrimRight(envOr(envKeyGeminiBaseURL, DefaultGeminiBaseURL), "/"),
		OllamaBaseURL:   strings.TrimRight(envOr(envKeyOllamaBaseURL, "http://localhost:11434"), "/"),
		OllamaChatModel: envOr(envKeyOllamaChatModel, "llama3.2:3b"),
		LLMTimeout:      time.Duration(envIntOr(envKeyLLMTimeout, 30)) * time.Second,

		HTTPHost:       envOr(envKeyHTTPHost, "0.0.0.0"),
		HTTPPort:       envIntOr(envKeyHTTPPort, 8080),
		RateLimitRPS:   envFloatOr(envKeyRateLimitRPS, 2),
		RateLimitBurst: envIntOr(envKeyRateLimitBurst, 5),

		DatabasePath:     envOr(envKeyDatabasePath, "unitai.db"),
		UnitsCatalogPath: os.Getenv(envKeyUnitsCatalogPath),

		JWTSecret:         os.Getenv(envKeyJWTSecret),
		JWTExpiry:         time.Duration(envIntOr(envKeyJWTExpiry, 24)) * time.Hour,
		AdminPasswordHash: os.Getenv(envKeyAdminPasswordHash),

		Environment: strings.ToLower(os.Getenv(envKeyEnvironment)),
		LogLevel:    strings.ToLower(envOr(envKeyLogLevel, "info")),
	}
}

// LoadDotEnv loads KEY=VALUE pairs from the given files (".env" when none are
// given) into the process environment. Missing files are skipped; variables
// already present in the environment are never overwritten.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("config: load %s: %w", p, err)
		}
	}
	return nil
}

// Validate reports configuration that would make the first remote call fail.
func (c Config) Validate() error {
	switch c.LLMProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return ErrMissingAPIKey
		}
	case ProviderOllama:
		// local provider, no key
	default:
		return fmt.Errorf("config: unknown %s %q (want %q or %q)", envKeyLLMProvider, c.LLMProvider, ProviderGemini, ProviderOllama)
	}
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("config: %s %d out of range", envKeyHTTPPort, c.HTTPPort)
	}
	return nil
}

// HistoryEnabled reports whether conversions should be persisted.
func (c Config) HistoryEnabled() bool {
	return c.DatabasePath != "" && c.DatabasePath != HistoryDisabled
}

// envOr returns the value of the environment variable key, or fallback if not set.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envIntOr parses key as an int, returning fallback when unset or malformed.
func envIntOr(key string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return n
}

func envFloatOr(key string, fallback float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil {
		return fallback
	}
	return f
}
