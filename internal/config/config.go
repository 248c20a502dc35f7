// Package config loads the zen-council YAML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/neves/zen-council/internal/council"
)

type Config struct {
	Gateway  GatewayConfig  `yaml:"gateway"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Roles    []RoleConfig   `yaml:"roles"`
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GatewayConfig configures the provider adapter.
type GatewayConfig struct {
	BaseURL           string  `yaml:"base_url"`
	APIKeyEnv         string  `yaml:"api_key_env"`         // Env var holding the bearer token (default ZEN_COUNCIL_API_KEY)
	TimeoutSeconds    int     `yaml:"timeout_seconds"`     // Per-request deadline (default 120)
	MaxInFlight       int     `yaml:"max_in_flight"`       // Concurrent request cap (default 32)
	RequestsPerSecond float64 `yaml:"requests_per_second"` // Per-model rate limit
	Burst             int     `yaml:"burst"`
}

// DefaultsConfig holds per-deliberation defaults applied when the request
// omits a field.
type DefaultsConfig struct {
	OutputMode      string `yaml:"output_mode"`
	Anonymize       *bool  `yaml:"anonymize"`
	Review          *bool  `yaml:"review"`
	Aggregation     string `yaml:"aggregation"`
	ChairmanModel   string `yaml:"chairman_model"`
	DeadlineMinutes int    `yaml:"deadline_minutes"` // Whole-deliberation deadline (default 10)
}

// RoleConfig defines one configured council seat.
type RoleConfig struct {
	Name         string  `yaml:"name"`
	Model        string  `yaml:"model"`
	SystemPrompt string  `yaml:"system_prompt"`
	Temperature  float64 `yaml:"temperature"`
	TopP         float64 `yaml:"top_p"`
	MaxTokens    int     `yaml:"max_tokens"`
	Weight       float64 `yaml:"weight"`
}

// ServerConfig configures the HTTP gateway.
type ServerConfig struct {
	Addr string `yaml:"addr"` // default :8791
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfigPath returns the default config path
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./zen-council.yaml"
	}
	return filepath.Join(home, ".zen", "zen-council", "config.yaml")
}

// NewDefaultConfig returns the built-in configuration.
func NewDefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadConfig loads configuration from path, falling back to defaults when the
// file does not exist.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return NewDefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse config YAML: %w", err)
	}
	config.applyDefaults()

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Gateway.APIKeyEnv == "" {
		c.Gateway.APIKeyEnv = "ZEN_COUNCIL_API_KEY"
	}
	if c.Gateway.TimeoutSeconds <= 0 {
		c.Gateway.TimeoutSeconds = 120
	}
	if c.Gateway.MaxInFlight <= 0 {
		c.Gateway.MaxInFlight = 32
	}
	if c.Defaults.OutputMode == "" {
		c.Defaults.OutputMode = council.ModeBoth
	}
	if c.Defaults.Aggregation == "" {
		c.Defaults.Aggregation = "borda"
	}
	if c.Defaults.DeadlineMinutes <= 0 {
		c.Defaults.DeadlineMinutes = 10
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8791"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// APIKey resolves the gateway bearer token from the environment.
func (c *Config) APIKey() string {
	return os.Getenv(c.Gateway.APIKeyEnv)
}

// Deadline returns the whole-deliberation deadline.
func (c *Config) Deadline() time.Duration {
	return time.Duration(c.Defaults.DeadlineMinutes) * time.Minute
}

// Options builds engine options from the configured defaults.
func (c *Config) Options() council.Options {
	opts := council.DefaultOptions()
	opts.OutputMode = c.Defaults.OutputMode
	opts.Aggregation = c.Defaults.Aggregation
	opts.ChairmanModel = c.Defaults.ChairmanModel
	if c.Defaults.Anonymize != nil {
		opts.Anonymize = *c.Defaults.Anonymize
	}
	if c.Defaults.Review != nil {
		opts.Review = *c.Defaults.Review
	}
	return opts
}

// CouncilRoles converts the configured seats into engine roles.
func (c *Config) CouncilRoles() []council.Role {
	roles := make([]council.Role, 0, len(c.Roles))
	for _, r := range c.Roles {
		role := council.Role{
			Name:         r.Name,
			SystemPrompt: r.SystemPrompt,
			Model:        r.Model,
			Weight:       r.Weight,
		}
		role.Sampling.Temperature = r.Temperature
		role.Sampling.TopP = r.TopP
		role.Sampling.MaxTokens = r.MaxTokens
		if role.Weight == 0 {
			role.Weight = 1
		}
		roles = append(roles, role)
	}
	return roles
}
