// Package config defines configuration parsing and helpers.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
)

// Supported AI providers.
const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

// Config holds all application configuration parsed from environment variables.
type Config struct {
	AppEnv string `env:"APP_ENV" envDefault:"dev"`
	Port   int    `env:"PORT" envDefault:"8080"`

	AIProvider    string  `env:"AI_PROVIDER" envDefault:"gemini"`
	AITemperature float64 `env:"AI_TEMPERATURE" envDefault:"0.3"`
	AIMaxTokens   int     `env:"AI_MAX_TOKENS" envDefault:"0"`
	// AIHTTPTimeout bounds one model round trip. Zero leaves the call unbounded
	// so only the caller's context or the transport can end it.
	AIHTTPTimeout time.Duration `env:"AI_HTTP_TIMEOUT" envDefault:"0s"`

	GeminiAPIKey  string `env:"GEMINI_API_KEY"`
	LegacyAPIKey  string `env:"API_KEY"`
	GeminiModel   string `env:"GEMINI_MODEL" envDefault:"gemini-3-flash-preview"`
	GeminiBaseURL string `env:"GEMINI_BASE_URL"`

	OpenRouterAPIKey  string `env:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL string `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	OpenRouterModel   string `env:"OPENROUTER_MODEL" envDefault:"google/gemini-2.5-flash"`
	OpenRouterReferer string `env:"OPENROUTER_REFERER"`
	OpenRouterTitle   string `env:"OPENROUTER_TITLE" envDefault:"Career Insight"`

	// QuestionBankPath overrides the embedded question bank with a YAML file.
	QuestionBankPath string `env:"QUESTION_BANK_PATH"`

	// RedisURL enables the shared analysis quota. Empty disables it.
	RedisURL             string `env:"REDIS_URL"`
	AnalysisQuotaPerHour int    `env:"ANALYSIS_QUOTA_PER_HOUR" envDefault:"20"`

	OTLPEndpoint    string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:""`
	OTELServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"career-insight"`

	CORSAllowOrigins      string        `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`
	RateLimitPerMin       int           `env:"RATE_LIMIT_PER_MIN" envDefault:"30"`
	ServerShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	HTTPReadTimeout       time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"15s"`
	// Analysis requests wait on the model, so the write timeout is generous.
	HTTPWriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"120s"`
	HTTPIdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" envDefault:"60s"`
}

// Load parses environment variables into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	cfg.AIProvider = strings.ToLower(strings.TrimSpace(cfg.AIProvider))
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("op=config.Load: %w", err)
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.AIProvider {
	case ProviderGemini, ProviderOpenRouter:
	default:
		return fmt.Errorf("unknown AI_PROVIDER %q", c.AIProvider)
	}
	if c.AITemperature < 0 || c.AITemperature > 2 {
		return fmt.Errorf("AI_TEMPERATURE %v out of range [0,2]", c.AITemperature)
	}
	if c.AnalysisQuotaPerHour < 0 || c.RateLimitPerMin < 0 || c.AIMaxTokens < 0 {
		return fmt.Errorf("limits must not be negative")
	}
	return nil
}

// GeminiCredential returns GEMINI_API_KEY, falling back to API_KEY.
func (c Config) GeminiCredential() string {
	if k := strings.TrimSpace(c.GeminiAPIKey); k != "" {
		return k
	}
	return strings.TrimSpace(c.LegacyAPIKey)
}

// AICredential returns the credential of the configured provider.
func (c Config) AICredential() string {
	if c.AIProvider == ProviderOpenRouter {
		return strings.TrimSpace(c.OpenRouterAPIKey)
	}
	return c.GeminiCredential()
}

// AIModel returns the model of the configured provider.
func (c Config) AIModel() string {
	if c.AIProvider == ProviderOpenRouter {
		return c.OpenRouterModel
	}
	return c.GeminiModel
}

// QuotaEnabled reports whether the Redis analysis quota is active.
func (c Config) QuotaEnabled() bool { return c.RedisURL != "" && c.AnalysisQuotaPerHour > 0 }

// IsDev reports whether the app is running in development mode.
func (c Config) IsDev() bool { return strings.ToLower(c.AppEnv) == "dev" }

// IsProd reports whether the app is running in production mode.
func (c Config) IsProd() bool { return strings.ToLower(c.AppEnv) == "prod" }

// IsTest reports whether the app is running in test mode.
func (c Config) IsTest() bool { return strings.ToLower(c.AppEnv) == "test" }
