package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// Journal types.
const (
	JournalNone   = "none"
	JournalCSV    = "csv"
	JournalSQLite = "sqlite"
)

// Config represents the complete game configuration
type Config struct {
	Market  MarketConfig  `json:"market" yaml:"market"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Save    SaveConfig    `json:"save" yaml:"save"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// MarketConfig contains engine construction and game clock parameters
type MarketConfig struct {
	Seed        int64   `json:"seed" yaml:"seed"` // 0 seeds from the clock
	TickSeconds float64 `json:"tick_seconds" yaml:"tick_seconds"`
	Speed       float64 `json:"speed" yaml:"speed"` // game seconds per wall second
	CatalogFile string  `json:"catalog_file" yaml:"catalog_file"`
}

// TickInterval converts TickSeconds to a duration.
func (m MarketConfig) TickInterval() time.Duration {
	return time.Duration(m.TickSeconds * float64(time.Second))
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type             string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	TransactionsFile string `json:"transactions_file" yaml:"transactions_file"`
	TicksFile        string `json:"ticks_file" yaml:"ticks_file"`
	DBPath           string `json:"db_path" yaml:"db_path"`
}

// SaveConfig locates the save file
type SaveConfig struct {
	Path string `json:"path" yaml:"path"`
}

// LogConfig selects the slog handler
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug, info, warn, error
	Format string `json:"format" yaml:"format"` // text or json
}

// LoadFromFile loads configuration from a file (YAML first, JSON fallback)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		cfg = Default()
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Market.TickSeconds <= 0 {
		return fmt.Errorf("market.tick_seconds must be positive")
	}
	if c.Market.Speed <= 0 {
		return fmt.Errorf("market.speed must be positive")
	}
	switch c.Journal.Type {
	case JournalNone:
	case JournalCSV:
		if c.Journal.TransactionsFile == "" || c.Journal.TicksFile == "" {
			return fmt.Errorf("journal transactions_file and ticks_file required for CSV type")
		}
	case JournalSQLite:
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}
	if c.Save.Path == "" {
		return fmt.Errorf("save.path is required")
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Log.Level) {
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be 'text' or 'json'")
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Market: MarketConfig{
			TickSeconds: 60,
			Speed:       1,
		},
		Journal: JournalConfig{
			Type:   JournalSQLite,
			DBPath: "./voidmarket.db",
		},
		Save: SaveConfig{
			Path: "./voidmarket.save.yaml",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
