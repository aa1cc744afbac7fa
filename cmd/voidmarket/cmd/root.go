package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/voidmarket/catalog"
	"github.com/rustyeddy/voidmarket/config"
	"github.com/rustyeddy/voidmarket/journal"
	"github.com/rustyeddy/voidmarket/market"
	"github.com/rustyeddy/voidmarket/savegame"
)

var rootCmd = &cobra.Command{
	Use:   "voidmarket",
	Short: "A dynamic commodity market for a space trading game",
	Long: `Voidmarket runs the commodity markets of a space trading game.

Every market location prices every commodity from supply and demand. Your
trades push prices around; the game clock pulls them back, restocks shelves
and now and then shocks a category.

It provides tools for:
  - Starting, saving and resuming a market
  - Quoting, buying and selling at any market location
  - Finding the most profitable trade routes
  - Running the market clock in real or accelerated time
  - Replaying scripted trading sessions
  - Querying the transaction journal`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		appConfig = cfg
		slog.SetDefault(newLogger(cmd.ErrOrStderr(), cfg.Log))
		return nil
	},
}

var (
	cfgFile   string
	appConfig *config.Config
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON); defaults are used when empty")
}

func loadConfig() (*config.Config, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}
	cfg, err := config.LoadFromFile(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, lc config.LogConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(lc.Level))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if lc.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func loadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Market.CatalogFile == "" {
		return catalog.Default(), nil
	}
	cat, err := catalog.LoadFromFile(cfg.Market.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

func openJournal(cfg *config.Config) (journal.Journal, error) {
	var (
		j   journal.Journal
		err error
	)
	switch cfg.Journal.Type {
	case config.JournalCSV:
		j, err = journal.NewCSV(cfg.Journal.TransactionsFile, cfg.Journal.TicksFile)
	case config.JournalSQLite:
		j, err = journal.NewSQLite(cfg.Journal.DBPath)
	default:
		j = journal.Nop{}
	}
	if err != nil {
		return nil, fmt.Errorf("create journal: %w", err)
	}
	return j, nil
}

func engineOptions(seed int64) market.Options {
	return market.Options{
		Seed:   seed,
		Logger: slog.Default(),
	}
}

// sessionSeed mixes the configured seed with the time of the last save so
// that each resumed session draws a different, still reproducible, random
// sequence. A zero seed stays zero and seeds from the clock.
func sessionSeed(seed int64, savedAt time.Time) int64 {
	if seed == 0 {
		return 0
	}
	if s := seed ^ savedAt.UnixNano(); s != 0 {
		return s
	}
	return seed
}

// session is a loaded game: the engine plus the journal it writes to.
type session struct {
	cfg     *config.Config
	engine  *market.Engine
	journal journal.Journal
}

// openSession restores the saved game.
func openSession(cfg *config.Config) (*session, error) {
	g, err := savegame.Load(cfg.Save.Path)
	if errors.Is(err, savegame.ErrNoSave) {
		return nil, fmt.Errorf("%w at %s; start one with 'voidmarket new'", err, cfg.Save.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("load game: %w", err)
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	j, err := openJournal(cfg)
	if err != nil {
		return nil, err
	}

	e, err := market.Restore(cat, g.Market, j, engineOptions(sessionSeed(cfg.Market.Seed, g.SavedAt)))
	if err != nil {
		j.Close()
		return nil, fmt.Errorf("restore game: %w", err)
	}
	return &session{cfg: cfg, engine: e, journal: j}, nil
}

// save writes the engine state back to the save file.
func (s *session) save() error {
	if err := savegame.Save(s.cfg.Save.Path, savegame.Game{Market: s.engine.Snapshot()}); err != nil {
		return fmt.Errorf("save game: %w", err)
	}
	slog.Debug("game saved", "path", s.cfg.Save.Path)
	return nil
}

func (s *session) Close() error {
	return s.journal.Close()
}

// location checks a location argument so commands can fail with a clearer
// message than the engine's zero price.
func (s *session) location(id string) (catalog.Location, error) {
	loc, ok := s.engine.Catalog().Location(id)
	if !ok {
		return catalog.Location{}, fmt.Errorf("unknown location %q", id)
	}
	return loc, nil
}
