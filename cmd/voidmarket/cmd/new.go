package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/voidmarket/market"
	"github.com/rustyeddy/voidmarket/savegame"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Start a new market",
	Long: `Seed every market location with fresh prices, stock and supply/demand
levels and write them to the save file.

An existing save is only replaced with --force.

Example:
  voidmarket new --force`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

var newForce bool

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().BoolVar(&newForce, "force", false, "replace an existing save")
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	if savegame.Exists(cfg.Save.Path) && !newForce {
		return fmt.Errorf("a saved game already exists at %s (use --force to replace it)", cfg.Save.Path)
	}

	cat, err := loadCatalog(cfg)
	if err != nil {
		return err
	}
	j, err := openJournal(cfg)
	if err != nil {
		return err
	}

	e, err := market.New(cat, j, engineOptions(cfg.Market.Seed))
	if err != nil {
		j.Close()
		return err
	}
	s := &session{cfg: cfg, engine: e, journal: j}
	defer s.Close()

	if err := s.save(); err != nil {
		return err
	}

	locs := cat.MarketLocations()
	slog.Info("new game", "save", cfg.Save.Path, "markets", len(locs))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ New market created: %s\n", cfg.Save.Path)
	fmt.Fprintf(out, "  %d commodities at %d markets\n", len(cat.Commodities), len(locs))
	for _, id := range locs {
		loc, _ := cat.Location(id)
		fmt.Fprintf(out, "  - %s (%s)\n", loc.Name, id)
	}
	return nil
}
