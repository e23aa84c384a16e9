// Package config loads runtime configuration for the binaries.
//
// Configuration is resolved from, in order of precedence:
//  1. Environment variables (SERVER_PORT, DATABASE_DSN, LOG_LEVEL, ...)
//  2. An optional config.yaml file
//  3. Built-in defaults
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/luannguen/vrc-cms/internal/i18n"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Locales  LocalesConfig  `mapstructure:"locales"`
	Bulk     BulkConfig     `mapstructure:"bulk"`
	Homepage HomepageConfig `mapstructure:"homepage"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig selects the storage backend. Driver is "sqlite" or
// "postgres"; DSN is the driver-specific connection string.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// LocalesConfig mirrors the locale resolution settings.
type LocalesConfig struct {
	Default   string              `mapstructure:"default"`
	Supported []string            `mapstructure:"supported"`
	Fallbacks map[string][]string `mapstructure:"fallbacks"`
}

// I18n converts the raw settings into a validated resolution config,
// falling back to the built-in defaults when nothing is configured.
func (c LocalesConfig) I18n() (i18n.Config, error) {
	if c.Default == "" && len(c.Supported) == 0 {
		return i18n.DefaultConfig(), nil
	}
	cfg := i18n.Config{
		Default:   c.Default,
		Locales:   c.Supported,
		Fallbacks: c.Fallbacks,
	}
	if err := cfg.Validate(); err != nil {
		return i18n.Config{}, err
	}
	return cfg, nil
}

// BulkConfig tunes batch mutation behaviour.
type BulkConfig struct {
	PoolSize int `mapstructure:"pool_size"`
}

// HomepageConfig tunes the homepage aggregator.
type HomepageConfig struct {
	SectionTimeout time.Duration `mapstructure:"section_timeout"`
}

// Load reads configuration from file, environment and defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/vrc-cms")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// Config file is optional, use defaults and env vars.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// Validate checks for critical configuration errors.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535")
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	if _, err := c.Locales.I18n(); err != nil {
		return err
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "30s")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "file:vrc-cms.db?cache=shared")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("bulk.pool_size", 16)
	v.SetDefault("homepage.section_timeout", "3s")
}
