package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var advanceCmd = &cobra.Command{
	Use:   "advance <duration>",
	Short: "Advance the market clock",
	Long: `Let game time pass in one step: levels drift back toward equilibrium,
shelves restock and random shocks may hit.

Example:
  voidmarket advance 30m`,
	Args: cobra.ExactArgs(1),
	RunE: runAdvance,
}

func init() {
	rootCmd.AddCommand(advanceCmd)
}

func runAdvance(cmd *cobra.Command, args []string) error {
	d, err := time.ParseDuration(args[0])
	if err != nil {
		return fmt.Errorf("bad duration %q: %w", args[0], err)
	}
	if d <= 0 {
		return fmt.Errorf("duration must be positive, got %s", d)
	}

	s, err := openSession(appConfig)
	if err != nil {
		return err
	}
	defer s.Close()

	sum := s.engine.Advance(d)
	if err := s.save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Advanced %s: %d markets updated, %d units restocked, %d shocks\n",
		d, sum.Records, sum.Replenished, sum.Shocks)
	return nil
}
