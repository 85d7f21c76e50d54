package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the pawmatch API configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Feed       FeedConfig       `yaml:"feed"`
	Generation GenerationConfig `yaml:"generation"`
	Cache      CacheConfig      `yaml:"cache"`
	Matching   MatchingConfig   `yaml:"matching"`
	Storage    StorageConfig    `yaml:"storage"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// AuthConfig holds API authentication settings. An empty key list
// disables authentication.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds key-value store connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// FeedConfig holds listing-feed client settings.
type FeedConfig struct {
	BaseURL           string `yaml:"base_url"`
	ClientID          string `yaml:"client_id"`
	ClientSecret      string `yaml:"client_secret"`
	TimeoutSec        int    `yaml:"timeout_sec"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
	FreshnessHours    int    `yaml:"freshness_hours"`
	PageSize          int    `yaml:"page_size"`
	MaxPages          int    `yaml:"max_pages"`
}

// GenerationConfig holds text-generation provider settings.
type GenerationConfig struct {
	APIKey       string  `yaml:"api_key"`
	BaseURL      string  `yaml:"base_url"`
	Model        string  `yaml:"model"`
	MaxTokens    int     `yaml:"max_tokens"`
	Temperature  float32 `yaml:"temperature"`
	TimeoutSec   int     `yaml:"timeout_sec"`
	BatchSize    int     `yaml:"batch_size"`
	BatchPauseMS int     `yaml:"batch_pause_ms"`
}

// CacheConfig holds response-cache TTLs. A zero generation TTL disables
// the generation cache entirely.
type CacheConfig struct {
	GenerationTTLSec int `yaml:"generation_ttl_sec"`
	SearchTTLSec     int `yaml:"search_ttl_sec"`
	DetailTTLSec     int `yaml:"detail_ttl_sec"`
	FactsTTLSec      int `yaml:"facts_ttl_sec"`
}

// MatchingConfig holds pipeline settings.
type MatchingConfig struct {
	TopMatches          int `yaml:"top_matches"`
	SearchRatePerMinute int `yaml:"search_rate_per_minute"`
	EnrichQueueSize     int `yaml:"enrich_queue_size"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Feed.BaseURL == "" {
		c.Feed.BaseURL = "https://api.petfinder.com"
	}
	if c.Feed.TimeoutSec <= 0 {
		c.Feed.TimeoutSec = 10
	}
	if c.Feed.RequestsPerMinute <= 0 {
		c.Feed.RequestsPerMinute = 50
	}
	if c.Feed.FreshnessHours <= 0 {
		c.Feed.FreshnessHours = 24
	}
	if c.Feed.PageSize <= 0 {
		c.Feed.PageSize = 100
	}
	if c.Feed.MaxPages <= 0 {
		c.Feed.MaxPages = 3
	}
	if c.Generation.Model == "" {
		c.Generation.Model = "gpt-4o-mini"
	}
	if c.Generation.MaxTokens <= 0 {
		c.Generation.MaxTokens = 300
	}
	if c.Generation.TimeoutSec <= 0 {
		c.Generation.TimeoutSec = 10
	}
	if c.Generation.BatchSize <= 0 {
		c.Generation.BatchSize = 10
	}
	if c.Generation.BatchPauseMS <= 0 {
		c.Generation.BatchPauseMS = 500
	}
	if c.Cache.SearchTTLSec <= 0 {
		c.Cache.SearchTTLSec = 120
	}
	if c.Cache.DetailTTLSec <= 0 {
		c.Cache.DetailTTLSec = 300
	}
	if c.Cache.FactsTTLSec <= 0 {
		c.Cache.FactsTTLSec = 3600
	}
	if c.Matching.TopMatches <= 0 {
		c.Matching.TopMatches = 3
	}
	if c.Matching.SearchRatePerMinute <= 0 {
		c.Matching.SearchRatePerMinute = 5
	}
	if c.Matching.EnrichQueueSize <= 0 {
		c.Matching.EnrichQueueSize = 256
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "pawmatch:"
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if c.Generation.Temperature < 0 || c.Generation.Temperature > 2 {
		return fmt.Errorf("generation.temperature must be between 0 and 2, got %v", c.Generation.Temperature)
	}
	if c.Cache.GenerationTTLSec < 0 {
		return fmt.Errorf("cache.generation_ttl_sec must not be negative, got %d", c.Cache.GenerationTTLSec)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
