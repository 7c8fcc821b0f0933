package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the top-level application configuration.
type Config struct {
	Server     ServerConfig              `yaml:"server"`
	Database   DatabaseConfig            `yaml:"database"`
	Storage    StorageConfig             `yaml:"storage"`
	Providers  map[string]ProviderConfig `yaml:"providers"`
	Summarizer SummarizerConfig          `yaml:"summarizer"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig holds database connection settings.
// An empty URL runs the service with in-memory metadata only.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// StorageConfig holds blob storage settings.
type StorageConfig struct {
	Dir string `yaml:"dir"`
}

// ProviderConfig holds AI provider settings.
type ProviderConfig struct {
	Type   string `yaml:"type"`    // e.g. "openai"
	URL    string `yaml:"url"`     // base URL
	APIKey string `yaml:"api_key"` // supports ${ENV_VAR} expansion
}

// SummarizerConfig selects the model used for document summaries.
type SummarizerConfig struct {
	Model     string `yaml:"model"`      // "provider/model"
	MaxTokens int    `yaml:"max_tokens"` // bounded output length
}

// defaults returns a Config populated with sensible default values.
// The default provider is GitHub Models, authenticated via GITHUB_TOKEN.
func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{Dir: "data/documents"},
		Providers: map[string]ProviderConfig{
			"github": {
				Type:   "openai",
				URL:    "https://models.inference.ai.azure.com",
				APIKey: "${GITHUB_TOKEN}",
			},
		},
		Summarizer: SummarizerConfig{
			Model:     "github/gpt-4.1-mini",
			MaxTokens: 500,
		},
	}
}

// Load reads a YAML configuration file at path and returns a Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Ensure Providers map is never nil even if YAML has "providers: {}" or omits it.
	if cfg.Providers == nil {
		cfg.Providers = map[string]ProviderConfig{}
	}

	cfg.expandEnv()
	return cfg, nil
}

// LoadDefault tries to load "config.yaml" from the current directory.
// If the file does not exist, it returns sensible defaults.
// Any other error (e.g. permission denied, malformed YAML) is returned.
func LoadDefault() (*Config, error) {
	cfg, err := Load("config.yaml")
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg = defaults()
			cfg.expandEnv()
			return cfg, nil
		}
		return nil, err
	}
	return cfg, nil
}

// expandEnv resolves ${VAR} references in credential fields and applies
// the DATABASE_URL override.
func (c *Config) expandEnv() {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		c.Database.URL = url
	}
	c.Database.URL = os.ExpandEnv(c.Database.URL)
	for name, p := range c.Providers {
		p.APIKey = os.ExpandEnv(p.APIKey)
		c.Providers[name] = p
	}
}
