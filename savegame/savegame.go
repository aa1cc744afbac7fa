// Package savegame persists the market state between sessions as a YAML
// document.
package savegame

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/voidmarket/market"
)

// Version is written into every save. Load accepts any version up to it.
const Version = 1

// ErrNoSave is returned by Load when the save file does not exist.
var ErrNoSave = errors.New("no saved game")

// Game is the on-disk save document.
type Game struct {
	Version int          `yaml:"version"`
	SavedAt time.Time    `yaml:"saved_at"`
	Market  market.State `yaml:"market"`
}

// Save writes g to path, replacing any previous save. The file is written
// next to the target and renamed into place so a failed write never leaves
// a truncated save behind.
func Save(path string, g Game) error {
	if g.Version == 0 {
		g.Version = Version
	}
	if g.SavedAt.IsZero() {
		g.SavedAt = time.Now().UTC()
	}

	data, err := yaml.Marshal(&g)
	if err != nil {
		return fmt.Errorf("marshal save: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create save dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".save-*")
	if err != nil {
		return fmt.Errorf("create save file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write save file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close save file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace save file: %w", err)
	}
	return nil
}

// Load reads the save at path.
func Load(path string) (Game, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Game{}, ErrNoSave
	}
	if err != nil {
		return Game{}, fmt.Errorf("read save file: %w", err)
	}

	var g Game
	if err := yaml.Unmarshal(data, &g); err != nil {
		return Game{}, fmt.Errorf("parse save file: %w", err)
	}
	if g.Version < 1 || g.Version > Version {
		return Game{}, fmt.Errorf("unsupported save version %d", g.Version)
	}
	return g, nil
}

// Exists reports whether a save file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Delete removes the save at path. A missing save is not an error.
func Delete(path string) error {
	err := os.Remove(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete save file: %w", err)
	}
	return nil
}
