package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"brand_server/pkg/apperr"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    string

	// Anthropic
	AnthropicAPIKey    string
	AnthropicModel     string
	AnthropicModelLogo string

	// Mistral (OpenAI-compatible endpoint)
	MistralAPIKey  string
	MistralBaseURL string
	MistralModel   string

	// OpenAI
	OpenAIAPIKey string
	OpenAIModel  string

	// Suggestion
	SuggestProvider    string
	SuggestMaxTokens   int
	SuggestTemperature float64

	// Logo fan-out
	LogoMaxTokens    int
	LogoTemperature  float64
	LogoVariantCount int

	// Resilience
	ProviderTimeout    time.Duration
	BreakerMaxFailures int
	BreakerOpen        time.Duration

	// Export cache
	RedisURL       string
	ExportCacheTTL time.Duration

	// CORS
	AllowedOrigins []string

	// Generation endpoints, requests per IP per minute; 0 disables the limit
	GenerateRateLimit int
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		// Anthropic
		AnthropicAPIKey:    getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:     getEnv("ANTHROPIC_MODEL", "claude-3-5-sonnet-latest"),
		AnthropicModelLogo: getEnv("ANTHROPIC_MODEL_LOGO", getEnv("ANTHROPIC_MODEL", "claude-3-5-sonnet-latest")),

		// Mistral
		MistralAPIKey:  getEnv("MISTRAL_API_KEY", ""),
		MistralBaseURL: getEnv("MISTRAL_BASE_URL", "https://api.mistral.ai/v1"),
		MistralModel:   getEnv("MISTRAL_MODEL", "mistral-large-latest"),

		// OpenAI
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		// Suggestion
		SuggestProvider:    strings.ToLower(getEnv("SUGGEST_PROVIDER", "anthropic")),
		SuggestMaxTokens:   getEnvInt("SUGGEST_MAX_TOKENS", 1000),
		SuggestTemperature: getEnvFloat("SUGGEST_TEMPERATURE", 0.7),

		// Logo fan-out
		LogoMaxTokens:    getEnvInt("LOGO_MAX_TOKENS", 500),
		LogoTemperature:  getEnvFloat("LOGO_TEMPERATURE", 1.0),
		LogoVariantCount: getEnvInt("LOGO_VARIANT_COUNT", 3),

		// Resilience
		ProviderTimeout:    time.Duration(getEnvInt("PROVIDER_TIMEOUT_SEC", 45)) * time.Second,
		BreakerMaxFailures: getEnvInt("BREAKER_MAX_FAILURES", 5),
		BreakerOpen:        time.Duration(getEnvInt("BREAKER_OPEN_SEC", 30)) * time.Second,

		// Export cache
		RedisURL:       getEnv("REDIS_URL", ""),
		ExportCacheTTL: time.Duration(getEnvInt("EXPORT_CACHE_TTL_MIN", 60)) * time.Minute,

		// CORS
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"}),

		GenerateRateLimit: getEnvInt("GENERATE_RATE_LIMIT", 30),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MaxLogoVariants bounds LOGO_VARIANT_COUNT.
const MaxLogoVariants = 8

// Validate rejects settings the generation core cannot run with. Failures
// are apperr.CodeConfigError.
func (c *Config) Validate() error {
	if c.ProviderTimeout <= 0 {
		return apperr.ConfigError("PROVIDER_TIMEOUT_SEC must be positive")
	}
	if c.SuggestTemperature <= 0 {
		return apperr.ConfigError(fmt.Sprintf("SUGGEST_TEMPERATURE must be greater than zero, got %v", c.SuggestTemperature))
	}
	if c.SuggestMaxTokens <= 0 || c.LogoMaxTokens <= 0 {
		return apperr.ConfigError("SUGGEST_MAX_TOKENS and LOGO_MAX_TOKENS must be positive")
	}
	if c.LogoVariantCount < 0 || c.LogoVariantCount > MaxLogoVariants {
		return apperr.ConfigError(fmt.Sprintf("LOGO_VARIANT_COUNT must be within 0..%d, got %d", MaxLogoVariants, c.LogoVariantCount))
	}
	if c.GenerateRateLimit < 0 {
		return apperr.ConfigError("GENERATE_RATE_LIMIT must not be negative")
	}
	if c.BreakerMaxFailures <= 0 {
		return apperr.ConfigError("BREAKER_MAX_FAILURES must be positive")
	}
	switch c.SuggestProvider {
	case "anthropic", "openai", "mistral":
	default:
		return apperr.ConfigError(fmt.Sprintf("SUGGEST_PROVIDER must be anthropic, openai or mistral, got %q", c.SuggestProvider))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ExportCacheEnabled reports whether a Redis URL was configured.
func (c *Config) ExportCacheEnabled() bool {
	return c.RedisURL != ""
}
