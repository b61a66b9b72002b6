package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Settings file names, in lookup order.
const (
	TOMLFile = "superkit.toml"
	YAMLFile = "superkit.yaml"
)

// Config holds all application configuration.
type Config struct {
	Environment string          `envconfig:"ENVIRONMENT" toml:"environment" yaml:"environment" validate:"oneof=development production test"`
	Server      ServerConfig    `toml:"server" yaml:"server"`
	App         AppConfig       `toml:"app" yaml:"app"`
	Apps        AppsConfig      `toml:"apps" yaml:"apps"`
	Logging     LogConfig       `toml:"logging" yaml:"logging"`
	RateLimit   RateLimitConfig `toml:"rate_limit" yaml:"rate_limit"`
	CORS        CORSConfig      `toml:"cors" yaml:"cors"`

	// Source is the settings file the config was read from, if any.
	Source string `ignored:"true" toml:"-" yaml:"-"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host   string `envconfig:"HOST" toml:"host" yaml:"host" validate:"required"`
	Port   int    `envconfig:"PORT" toml:"port" yaml:"port" validate:"min=1,max=65535"`
	Reload bool   `envconfig:"RELOAD" toml:"reload" yaml:"reload"`
}

// Addr returns host:port.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// AppConfig holds application metadata.
type AppConfig struct {
	Title       string `envconfig:"TITLE" toml:"title" yaml:"title" validate:"required"`
	Description string `envconfig:"DESCRIPTION" toml:"description" yaml:"description"`
	Version     string `envconfig:"VERSION" toml:"version" yaml:"version"`
	Debug       bool   `envconfig:"DEBUG" toml:"debug" yaml:"debug"`
	// DocsURL serves the route listing. Empty disables it.
	DocsURL string `envconfig:"DOCS_URL" toml:"docs_url" yaml:"docs_url" validate:"omitempty,startswith=/"`
}

// AppsConfig selects the apps mounted at startup. Leaving both include_all
// and include unset mounts every discovered app.
type AppsConfig struct {
	// IncludeAll is nil when not set anywhere.
	IncludeAll *bool    `envconfig:"APPS_INCLUDE_ALL" toml:"include_all" yaml:"include_all"`
	Include    []string `envconfig:"APPS_INCLUDE" toml:"include" yaml:"include" validate:"dive,required"`
	Exclude    []string `envconfig:"APPS_EXCLUDE" toml:"exclude" yaml:"exclude" validate:"dive,required"`
}

// AllSelected reports whether every discovered app is selected: include_all
// when set, otherwise whether include is empty.
func (a AppsConfig) AllSelected() bool {
	if a.IncludeAll != nil {
		return *a.IncludeAll
	}
	return len(a.Include) == 0
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" toml:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `envconfig:"LOG_DEV" toml:"development" yaml:"development"`
}

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	RequestsPerSecond int  `envconfig:"RATE_LIMIT_RPS" toml:"requests_per_second" yaml:"requests_per_second" validate:"min=1"`
	Burst             int  `envconfig:"RATE_LIMIT_BURST" toml:"burst" yaml:"burst" validate:"min=1"`
	Enabled           bool `envconfig:"RATE_LIMIT_ENABLED" toml:"enabled" yaml:"enabled"`
}

// CORSConfig holds cross-origin configuration.
type CORSConfig struct {
	AllowOrigins []string `envconfig:"CORS_ALLOW_ORIGINS" toml:"allow_origins" yaml:"allow_origins"`
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Host:   "127.0.0.1",
			Port:   8000,
			Reload: true,
		},
		App: AppConfig{
			Title:   "SuperKit App",
			Version: "0.1.0",
			DocsURL: "/docs",
		},
		Logging: LogConfig{
			Level: "info",
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: 100,
			Burst:             200,
			Enabled:           false,
		},
	}
}

// Load builds the configuration for the project in dir: defaults, then the
// settings file found in dir, then environment variables.
func Load(dir string) (*Config, error) {
	cfg := Default()

	if err := cfg.loadFile(dir); err != nil {
		return nil, err
	}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads configuration or returns the default on error.
func LoadOrDefault(dir string) *Config {
	cfg, err := Load(dir)
	if err != nil {
		return Default()
	}
	return cfg
}

func (c *Config) loadFile(dir string) error {
	for _, name := range []string{TOMLFile, YAMLFile} {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}

		if name == TOMLFile {
			err = toml.Unmarshal(data, c)
		} else {
			err = yaml.Unmarshal(data, c)
		}
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
		c.Source = path
		return nil
	}
	return nil
}

// IsDevelopment reports whether the environment is development.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// Settings returns the application settings as stored in the runtime registry.
func (c *Config) Settings() map[string]any {
	return map[string]any{
		"title":       c.App.Title,
		"description": c.App.Description,
		"version":     c.App.Version,
		"debug":       c.App.Debug,
		"docs_url":    c.App.DocsURL,
		"environment": c.Environment,
	}
}
