package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port            int    `yaml:"port"`
		Mode            string `yaml:"mode"`
		ShutdownTimeout int    `yaml:"shutdown_timeout_seconds"`
	} `yaml:"server"`

	Database struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
		Seed   bool   `yaml:"seed"`
	} `yaml:"database"`

	Auth struct {
		JWTSecret string `yaml:"jwt_secret"`
	} `yaml:"auth"`

	LLM struct {
		Provider   string `yaml:"provider"` // openai, github or azure
		APIKey     string `yaml:"api_key"`
		Model      string `yaml:"model"`
		BaseURL    string `yaml:"base_url"`
		APIVersion string `yaml:"api_version"`
	} `yaml:"llm"`

	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`

	MetricsConfig struct {
		Enabled bool   `yaml:"enabled"`
		Port    int    `yaml:"port"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.Server.Port = 8080
	cfg.Server.Mode = "release"
	cfg.Server.ShutdownTimeout = 10
	cfg.Database.Driver = "sqlite3"
	cfg.Database.DSN = "kitchenmate.db"
	cfg.Database.Seed = true
	cfg.LLM.Provider = "openai"
	cfg.LLM.Model = "gpt-4o-mini"
	cfg.Log.Level = "info"
	cfg.MetricsConfig.Enabled = true
	cfg.MetricsConfig.Port = 9090
	cfg.MetricsConfig.Path = "/metrics"
	return cfg
}

// Load reads the YAML file at path over the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("KITCHENMATE_DATABASE_DRIVER"); v != "" {
		c.Database.Driver = v
	}
	if v := os.Getenv("KITCHENMATE_DATABASE_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("KITCHENMATE_JWT_SECRET"); v != "" {
		c.Auth.JWTSecret = v
	}

	var keyEnv string
	switch c.LLM.Provider {
	case "github":
		keyEnv = "GITHUB_TOKEN"
	case "azure":
		keyEnv = "AZURE_OPENAI_API_KEY"
		if v := os.Getenv("AZURE_OPENAI_ENDPOINT"); v != "" {
			c.LLM.BaseURL = v
		}
		if v := os.Getenv("AZURE_OPENAI_DEPLOYMENT_NAME"); v != "" {
			c.LLM.Model = v
		}
	default:
		keyEnv = "OPENAI_API_KEY"
	}
	if v := os.Getenv(keyEnv); v != "" {
		c.LLM.APIKey = v
	}
}

// Validate checks the configuration for values the server cannot run with
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("invalid server mode: %s", c.Server.Mode)
	}
	switch c.Database.Driver {
	case "sqlite3", "postgres":
	default:
		return fmt.Errorf("unsupported database driver: %s", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}
	switch c.LLM.Provider {
	case "openai", "github":
	case "azure":
		if c.LLM.APIKey != "" && c.LLM.BaseURL == "" {
			return fmt.Errorf("azure llm provider requires base_url")
		}
	default:
		return fmt.Errorf("unsupported llm provider: %s", c.LLM.Provider)
	}
	if c.MetricsConfig.Enabled {
		if c.MetricsConfig.Port <= 0 || c.MetricsConfig.Port > 65535 {
			return fmt.Errorf("invalid metrics port: %d", c.MetricsConfig.Port)
		}
		if c.MetricsConfig.Port == c.Server.Port {
			return fmt.Errorf("metrics port must differ from server port")
		}
	}
	return nil
}
