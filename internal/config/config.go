// Package config loads the server configuration: built-in defaults, then an
// optional YAML file, then ENGINE_* environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete process configuration.
type Config struct {
	Port int `yaml:"port"`

	// HNSW parameters applied to every namespace.
	M              int    `yaml:"m"`
	EfConstruction int    `yaml:"ef_construction"`
	EfSearch       int    `yaml:"ef_search"`
	Metric         string `yaml:"metric"`
	Precision      string `yaml:"precision"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// RateLimit is the global request budget per second. 0 disables limiting.
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`

	// AuthToken, when set, is required as a bearer token on every API route.
	AuthToken string `yaml:"auth_token"`

	MCPEnabled      bool          `yaml:"mcp_enabled"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Port:            50051,
		M:               16,
		EfConstruction:  200,
		EfSearch:        64,
		Metric:          "cosine",
		Precision:       "float32",
		LogLevel:        "info",
		LogFormat:       "text",
		RateLimit:       0,
		RateBurst:       50,
		MCPEnabled:      true,
		ShutdownTimeout: 5 * time.Second,
	}
}

// Addr returns the listen address for Port.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Load builds the configuration. path may be empty; a named file that is
// missing or malformed is an error. Environment variables are applied last
// and never fail: a blank, unparsable or non-positive number keeps the
// previous value.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to open config: %w", err)
		}
		defer file.Close()

		decoder := yaml.NewDecoder(file)
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("YAML syntax error in config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Port = envInt("ENGINE_PORT", cfg.Port)
	cfg.M = envInt("ENGINE_M", cfg.M)
	cfg.EfConstruction = envInt("ENGINE_EF_CONSTRUCTION", cfg.EfConstruction)
	cfg.EfSearch = envInt("ENGINE_EF_SEARCH", cfg.EfSearch)
	cfg.RateLimit = envFloat("ENGINE_RATE_LIMIT", cfg.RateLimit)
	cfg.RateBurst = envInt("ENGINE_RATE_BURST", cfg.RateBurst)

	cfg.LogLevel = envString("ENGINE_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envString("ENGINE_LOG_FORMAT", cfg.LogFormat)
	cfg.AuthToken = envString("ENGINE_AUTH_TOKEN", cfg.AuthToken)
	cfg.Metric = envString("ENGINE_METRIC", cfg.Metric)
	cfg.Precision = envString("ENGINE_PRECISION", cfg.Precision)

	if v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv("ENGINE_MCP_ENABLED"))); err == nil {
		cfg.MCPEnabled = v
	}
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func envFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func envString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
