// Package config loads server configuration from a YAML file, environment
// variables, and built-in defaults, in that order of increasing precedence
// for the environment and decreasing for the file (viper semantics:
// env > file > defaults).
//
// Environment variables use the PROMPTNEXUS_ prefix, e.g.
// PROMPTNEXUS_PORT=3000 or PROMPTNEXUS_JWT_SECRET=$(openssl rand -hex 32).
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds everything the server needs to start.
type Config struct {
	Port      int    `mapstructure:"port"`
	DBPath    string `mapstructure:"db_path"`
	JWTSecret string `mapstructure:"jwt_secret"`

	GitHubClientID     string `mapstructure:"github_client_id"`
	GitHubClientSecret string `mapstructure:"github_client_secret"`
	GitHubCallbackURL  string `mapstructure:"github_callback_url"`

	// Listing policy knobs. The defaults match the product behavior:
	// guests see at most 3 prompts, authenticated pages hold 9, search
	// input settles for 300ms before the filter applies.
	GuestLimit     int           `mapstructure:"guest_limit"`
	PageSize       int           `mapstructure:"page_size"`
	SearchDebounce time.Duration `mapstructure:"search_debounce"`

	// FetchTimeout bounds each remote read issued by the listing layer.
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`

	LogLevel string `mapstructure:"log_level"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Port:           8080,
		DBPath:         "data/promptnexus.db",
		GuestLimit:     3,
		PageSize:       9,
		SearchDebounce: 300 * time.Millisecond,
		FetchTimeout:   12 * time.Second,
		LogLevel:       "info",
	}
}

// Load reads configuration from cfgFile (or ./config.yaml and
// ~/.promptnexus/config.yaml when empty) plus PROMPTNEXUS_* env vars.
// A missing config file is fine — defaults and env vars still apply.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	def := Defaults()
	v.SetDefault("port", def.Port)
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("guest_limit", def.GuestLimit)
	v.SetDefault("page_size", def.PageSize)
	v.SetDefault("search_debounce", def.SearchDebounce)
	v.SetDefault("fetch_timeout", def.FetchTimeout)
	v.SetDefault("log_level", def.LogLevel)

	v.SetEnvPrefix("PROMPTNEXUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.promptnexus")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("config: port must be in 1-65535, got %d", c.Port)
	}
	if c.GuestLimit < 1 {
		return fmt.Errorf("config: guest_limit must be at least 1, got %d", c.GuestLimit)
	}
	if c.PageSize < 1 {
		return fmt.Errorf("config: page_size must be at least 1, got %d", c.PageSize)
	}
	if c.FetchTimeout <= 0 {
		return fmt.Errorf("config: fetch_timeout must be positive, got %s", c.FetchTimeout)
	}
	return nil
}
