package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# Tradebook Configuration

[journal]
# Path to the SQLite journal database. Empty means <config dir>/tradebook.db.
database_path = ""
# Default trade type for add/list/dashboard: OPTIONS, EQUITY_INTRADAY,
# FUTURES_INTRADAY, OPTIONS_POSITIONAL, FUTURES_POSITIONAL, SWING
default_type = "OPTIONS"
# Journal owner id. A single-user install can leave the default.
user_id = "local"
# Directory for CSV exports
export_dir = "."

[access]
# Subscription plan: free, pro, elite
plan = "free"

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "2006-01-02"

[logging]
# Log level: debug, info, warn, error
level = "info"
console = true
file = true
`

func createTemplateConfig(configDir, name string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name+".toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	// First run: the template carries only defaults, so continue with them.
	return nil
}
