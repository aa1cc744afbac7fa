package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/voidmarket/market"
)

var buyCmd = &cobra.Command{
	Use:   "buy <location> <commodity> <quantity>",
	Short: "Buy from a market",
	Long: `Buy units of a commodity from the market at a location. The trade pushes
demand up and the price with it.

Example:
  voidmarket buy nexus_prime protein_rations 50`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrade(cmd, args, (*market.Engine).Buy)
	},
}

var sellCmd = &cobra.Command{
	Use:   "sell <location> <commodity> <quantity>",
	Short: "Sell to a market",
	Long: `Sell units of a commodity to the market at a location. The trade pushes
supply up and the price down.

Example:
  voidmarket sell kepler_station protein_rations 50`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTrade(cmd, args, (*market.Engine).Sell)
	},
}

func init() {
	rootCmd.AddCommand(buyCmd)
	rootCmd.AddCommand(sellCmd)
}

type tradeFunc func(e *market.Engine, location, commodity string, quantity int) (market.Receipt, error)

func runTrade(cmd *cobra.Command, args []string, trade tradeFunc) error {
	qty, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("bad quantity %q: %w", args[2], err)
	}

	s, err := openSession(appConfig)
	if err != nil {
		return err
	}
	defer s.Close()

	rec, err := trade(s.engine, args[0], args[1], qty)
	if err != nil {
		return err
	}
	if err := s.save(); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s (tx %s)\n", rec.Message, rec.Transaction.ID)
	return nil
}
