package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultTimeout   = 10 * time.Second
	DefaultUserAgent = "DomainReputationChecker/1.0"
)

// Config holds the file-based configuration
type Config struct {
	Timeout            time.Duration             `yaml:"timeout"`
	UserAgent          string                    `yaml:"user_agent"`
	ExtraPresetDomains []string                  `yaml:"extra_preset_domains"`
	Providers          map[string]ProviderConfig `yaml:"providers"`
}

// ProviderConfig overrides a built-in provider, keyed by lowercase name
type ProviderConfig struct {
	Endpoint  string `yaml:"endpoint"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		Providers: map[string]ProviderConfig{},
	}
}

// Load reads a YAML config file. An empty path returns Default().
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	normalized := make(map[string]ProviderConfig, len(cfg.Providers))
	for name, p := range cfg.Providers {
		normalized[strings.ToLower(name)] = p
	}
	cfg.Providers = normalized

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be > 0, got %s", c.Timeout)
	}
	return nil
}

// Provider returns the overrides for name, if any
func (c *Config) Provider(name string) ProviderConfig {
	return c.Providers[strings.ToLower(name)]
}

// LoadEnvFile loads KEY=VALUE pairs from path into the process
// environment. Variables with a non-empty value are left untouched; an
// exported but empty variable is filled from the file. A missing file
// is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	for key, value := range values {
		if os.Getenv(key) != "" {
			continue
		}
		if err := os.Setenv(key, value); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return nil
}

// ResolveKey returns the first non-empty value among the named variables
func ResolveKey(getenv func(string) string, names ...string) string {
	for _, name := range names {
		if name == "" {
			continue
		}
		if v := strings.TrimSpace(getenv(name)); v != "" {
			return v
		}
	}
	return ""
}
