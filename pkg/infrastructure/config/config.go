// Package config loads runtime settings from TOML files
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	defaultDatabaseFile = "prodplan.db"
	defaultFormat       = "text"
)

// Config stores runtime settings for the CLI
type Config struct {
	DatabasePath string
	RecipesFile  string
	StockFile    string
	Format       string
}

type fileConfig struct {
	DatabasePath *string `toml:"database_path"`
	RecipesFile  *string `toml:"recipes_file"`
	StockFile    *string `toml:"stock_file"`
	Format       *string `toml:"format"`
}

func defaults() *Config {
	return &Config{
		DatabasePath: defaultDatabaseFile,
		Format:       defaultFormat,
	}
}

// Load reads config from path, or from ./prodplan.toml when path is empty.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path == "" {
		path = filepath.Join(".", "prodplan.toml")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return cfg, nil
		}
	}

	var fc fileConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if fc.DatabasePath != nil {
		cfg.DatabasePath = *fc.DatabasePath
	}
	if fc.RecipesFile != nil {
		cfg.RecipesFile = *fc.RecipesFile
	}
	if fc.StockFile != nil {
		cfg.StockFile = *fc.StockFile
	}
	if fc.Format != nil {
		cfg.Format = *fc.Format
	}

	if cfg.Format != "text" && cfg.Format != "json" {
		return nil, fmt.Errorf("unsupported output format %q", cfg.Format)
	}

	return cfg, nil
}
