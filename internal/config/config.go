// Package config provides configuration management for the journal application.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"tradebook/internal/models"
)

// Config holds all application configuration.
type Config struct {
	Journal JournalConfig `mapstructure:"journal"`
	Access  AccessConfig  `mapstructure:"access"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// JournalConfig holds journal-related configuration.
type JournalConfig struct {
	DatabasePath string `mapstructure:"database_path"`
	DefaultType  string `mapstructure:"default_type"` // default trade type for add/list
	UserID       string `mapstructure:"user_id"`      // journal owner for single-user CLI use
	ExportDir    string `mapstructure:"export_dir"`
}

// AccessConfig holds plan/feature gating configuration.
type AccessConfig struct {
	Plan string `mapstructure:"plan"` // free, pro, elite
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/tradebook"
	}
	return filepath.Join(home, ".config", "tradebook")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	applyDefaults(cfg, configDir)
	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir, name string, target interface{}) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found, create template
			return createTemplateConfig(configDir, name)
		}
		return err
	}

	return v.Unmarshal(target)
}

func applyDefaults(cfg *Config, configDir string) {
	if cfg.Journal.DatabasePath == "" {
		cfg.Journal.DatabasePath = filepath.Join(configDir, "tradebook.db")
	}
	if cfg.Journal.DefaultType == "" {
		cfg.Journal.DefaultType = string(models.TypeOptions)
	}
	if cfg.Journal.UserID == "" {
		cfg.Journal.UserID = "local"
	}
	if cfg.Journal.ExportDir == "" {
		cfg.Journal.ExportDir = "."
	}
	if cfg.Access.Plan == "" {
		cfg.Access.Plan = "free"
	}
	if cfg.UI.DateFormat == "" {
		cfg.UI.DateFormat = "2006-01-02"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("TRADEBOOK_DB"); v != "" {
		cfg.Journal.DatabasePath = v
	}
	if v := os.Getenv("TRADEBOOK_USER"); v != "" {
		cfg.Journal.UserID = v
	}
	if v := os.Getenv("TRADEBOOK_PLAN"); v != "" {
		cfg.Access.Plan = v
	}
	if v := os.Getenv("TRADEBOOK_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if !models.TradeType(c.Journal.DefaultType).Valid() {
		return fmt.Errorf("invalid default trade type: %s", c.Journal.DefaultType)
	}

	switch c.Access.Plan {
	case "free", "pro", "elite":
	default:
		return fmt.Errorf("invalid plan: %s (must be 'free', 'pro' or 'elite')", c.Access.Plan)
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	return nil
}

// DefaultTradeType returns the configured default trade type.
func (c *Config) DefaultTradeType() models.TradeType {
	return models.TradeType(c.Journal.DefaultType)
}
