package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/shopmate/backend/internal/domain"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Shopify   ShopifyConfig
	Search    SearchConfig
	Cache     CacheConfig
	AI        AIConfig
	Stores    StoresConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Environment     string        `mapstructure:"environment"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ShopifyConfig holds Admin API client configuration
type ShopifyConfig struct {
	APIVersion        string        `mapstructure:"api_version"`
	Timeout           time.Duration `mapstructure:"timeout"`
	MaxRetries        int           `mapstructure:"max_retries"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Burst             int           `mapstructure:"burst"`
	CatalogFetchSize  int           `mapstructure:"catalog_fetch_size"`
}

// SearchConfig holds multi-store search configuration
type SearchConfig struct {
	PerStoreLimit       int           `mapstructure:"per_store_limit"`
	CompareLimit        int           `mapstructure:"compare_limit"`
	FetchTimeout        time.Duration `mapstructure:"fetch_timeout"`
	MaxConcurrentStores int           `mapstructure:"max_concurrent_stores"`
	EnableDebugLogging  bool          `mapstructure:"enable_debug_logging"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	CatalogTTL time.Duration `mapstructure:"catalog_ttl"` // 0 disables catalog caching
}

// AIConfig holds the initial AI provider configuration
type AIConfig struct {
	Provider       string        `mapstructure:"provider"`
	Model          string        `mapstructure:"model"`
	AnthropicKey   string        `mapstructure:"anthropic_key"`
	OpenAIKey      string        `mapstructure:"openai_key"`
	GeminiKey      string        `mapstructure:"gemini_key"`
	HuggingFaceKey string        `mapstructure:"huggingface_key"`
	DeepSeekKey    string        `mapstructure:"deepseek_key"`
	OllamaURL      string        `mapstructure:"ollama_url"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// StoresConfig holds store connection persistence configuration
type StoresConfig struct {
	ConnectionsFile string `mapstructure:"connections_file"` // empty disables persistence
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute, 0 disables
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Domain returns the AI settings as the run-time AI configuration
func (c AIConfig) Domain() domain.AIConfig {
	return domain.AIConfig{
		Provider:       c.Provider,
		Model:          c.Model,
		AnthropicKey:   c.AnthropicKey,
		OpenAIKey:      c.OpenAIKey,
		GeminiKey:      c.GeminiKey,
		HuggingFaceKey: c.HuggingFaceKey,
		OllamaURL:      c.OllamaURL,
		DeepSeekKey:    c.DeepSeekKey,
	}
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	if err := loadEnvFile(); err != nil {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shopmate/")

	// Environment variable settings: server.port -> SHOPMATE_SERVER_PORT
	v.SetEnvPrefix("SHOPMATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// loadEnvFile loads a .env file from the working directory if there is one.
// Variables already set in the environment win.
func loadEnvFile() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "30s")

	// Shopify defaults
	v.SetDefault("shopify.api_version", "2024-10")
	v.SetDefault("shopify.timeout", "30s")
	v.SetDefault("shopify.max_retries", 3)
	v.SetDefault("shopify.requests_per_second", 2)
	v.SetDefault("shopify.burst", 40)
	v.SetDefault("shopify.catalog_fetch_size", 250)

	// Search defaults
	v.SetDefault("search.per_store_limit", 10)
	v.SetDefault("search.compare_limit", 50)
	v.SetDefault("search.fetch_timeout", "15s")
	v.SetDefault("search.max_concurrent_stores", 8)
	v.SetDefault("search.enable_debug_logging", false)

	// Cache defaults
	v.SetDefault("cache.catalog_ttl", "60s")

	// AI defaults
	v.SetDefault("ai.provider", domain.ProviderNone)
	v.SetDefault("ai.model", "claude-3-sonnet-20240229")
	v.SetDefault("ai.anthropic_key", "")
	v.SetDefault("ai.openai_key", "")
	v.SetDefault("ai.gemini_key", "")
	v.SetDefault("ai.huggingface_key", "")
	v.SetDefault("ai.deepseek_key", "")
	v.SetDefault("ai.ollama_url", "http://localhost:11434")
	v.SetDefault("ai.timeout", "30s")

	// Store persistence defaults
	v.SetDefault("stores.connections_file", "store-connections.json")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 100)

	// Log defaults
	v.SetDefault("log.level", "info")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server port is required (set SHOPMATE_SERVER_PORT)")
	}

	provider := config.AI.Provider
	if provider != domain.ProviderNone && !domain.IsSupportedProvider(provider) {
		return fmt.Errorf("ai provider must be 'none' or one of %s, got: %s",
			strings.Join(domain.SupportedProviders, ", "), provider)
	}

	if config.Shopify.MaxRetries < 1 {
		return fmt.Errorf("shopify max_retries must be at least 1, got: %d", config.Shopify.MaxRetries)
	}

	if config.Search.PerStoreLimit < 1 || config.Search.CompareLimit < 1 {
		return fmt.Errorf("search limits must be positive")
	}

	if config.Cache.CatalogTTL < 0 {
		return fmt.Errorf("cache catalog_ttl must not be negative, got: %s", config.Cache.CatalogTTL)
	}

	if config.RateLimit.PerIP < 0 {
		return fmt.Errorf("ratelimit per_ip must not be negative, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
