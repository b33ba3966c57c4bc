package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Gemini    GeminiConfig
	Fetch     FetchConfig
	Audit     AuditConfig
	Cache     CacheConfig
	Compare   CompareConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// GeminiConfig holds Gemini extraction configuration. The extractor is
// optional; leaving the key empty disables it.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

// FetchConfig holds page-fetch configuration
type FetchConfig struct {
	Enabled           bool          `mapstructure:"enabled"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// AuditConfig holds the comparison audit trail configuration
type AuditConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// CacheConfig holds cache-related configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// CompareConfig holds comparison engine configuration
type CompareConfig struct {
	MinConfidence  float64       `mapstructure:"min_confidence"`
	AdapterTimeout time.Duration `mapstructure:"adapter_timeout"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pricelens/")

	// Environment variable settings
	v.SetEnvPrefix("PRICELENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
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

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Gemini defaults
	v.SetDefault("gemini.model", "gemini-1.5-flash")

	// Fetch defaults
	v.SetDefault("fetch.enabled", true)
	v.SetDefault("fetch.requests_per_second", 1.0)
	v.SetDefault("fetch.timeout", "30s")

	// Audit defaults
	v.SetDefault("audit.enabled", true)
	v.SetDefault("audit.path", "pricelens_audit.db")

	// Cache defaults
	v.SetDefault("cache.ttl", "5m")

	// Compare defaults
	v.SetDefault("compare.min_confidence", 0.6)
	v.SetDefault("compare.adapter_timeout", "10s")

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 60)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Compare.MinConfidence < 0 || config.Compare.MinConfidence > 1 {
		return fmt.Errorf("compare min_confidence must be between 0 and 1, got: %v", config.Compare.MinConfidence)
	}

	if config.Compare.AdapterTimeout <= 0 {
		return fmt.Errorf("compare adapter_timeout must be positive, got: %v", config.Compare.AdapterTimeout)
	}

	if config.Audit.Enabled && config.Audit.Path == "" {
		return fmt.Errorf("audit path is required when audit is enabled")
	}

	if config.Fetch.Enabled && config.Fetch.RequestsPerSecond <= 0 {
		return fmt.Errorf("fetch requests_per_second must be positive, got: %v", config.Fetch.RequestsPerSecond)
	}

	return nil
}
