package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, int64(0), cfg.Market.Seed)
	assert.Equal(t, 60.0, cfg.Market.TickSeconds)
	assert.Equal(t, time.Minute, cfg.Market.TickInterval())
	assert.Equal(t, JournalSQLite, cfg.Journal.Type)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:   "journal disabled",
			mutate: func(c *Config) { c.Journal = JournalConfig{Type: JournalNone} },
		},
		{
			name:    "zero tick",
			mutate:  func(c *Config) { c.Market.TickSeconds = 0 },
			wantErr: true,
			errMsg:  "market.tick_seconds must be positive",
		},
		{
			name:    "negative speed",
			mutate:  func(c *Config) { c.Market.Speed = -2 },
			wantErr: true,
			errMsg:  "market.speed must be positive",
		},
		{
			name:    "unknown journal type",
			mutate:  func(c *Config) { c.Journal.Type = "postgres" },
			wantErr: true,
			errMsg:  "journal.type must be",
		},
		{
			name: "csv without ticks file",
			mutate: func(c *Config) {
				c.Journal = JournalConfig{Type: JournalCSV, TransactionsFile: "tx.csv"}
			},
			wantErr: true,
			errMsg:  "journal transactions_file and ticks_file required",
		},
		{
			name:    "sqlite without db path",
			mutate:  func(c *Config) { c.Journal.DBPath = "" },
			wantErr: true,
			errMsg:  "journal db_path required",
		},
		{
			name:    "missing save path",
			mutate:  func(c *Config) { c.Save.Path = "" },
			wantErr: true,
			errMsg:  "save.path is required",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.Log.Level = "trace" },
			wantErr: true,
			errMsg:  "log.level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: true,
			errMsg:  "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name string
		ext  string
	}{
		{"json format", ".json"},
		{"yaml format", ".yaml"},
		{"yml format", ".yml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Market.Seed = 1234
			cfg.Market.Speed = 10
			cfg.Journal = JournalConfig{Type: JournalCSV, TransactionsFile: "tx.csv", TicksFile: "ticks.csv"}
			path := filepath.Join(tmpDir, "test"+tt.ext)

			require.NoError(t, cfg.SaveToFile(path))

			_, err := os.Stat(path)
			require.NoError(t, err)

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
			assert.Empty(t, loaded.Journal.DBPath, "cleared fields must not reload as defaults")
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("market:\n  seed: 7\n  tick_seconds: 30\n  speed: 1\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Market.Seed)
	assert.Equal(t, 30*time.Second, cfg.Market.TickInterval())
	assert.Equal(t, Default().Save, cfg.Save)
	assert.Equal(t, Default().Log, cfg.Log)
}

func TestSaveAndLoadKeepsClearedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cleared.yaml")

	cfg := Default()
	cfg.Journal = JournalConfig{Type: JournalNone}
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, JournalConfig{Type: JournalNone}, loaded.Journal)
	assert.Empty(t, loaded.Market.CatalogFile)
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"journal": {"type": "mongo"}}`), 0644))

	_, err := LoadFromFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
