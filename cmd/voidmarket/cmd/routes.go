package cmd

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the most profitable trade routes",
	Long: `For every commodity, find the cheapest market to buy at and the best
market to sell at, and list the most profitable pairs.`,
	Args: cobra.NoArgs,
	RunE: runRoutes,
}

func init() {
	rootCmd.AddCommand(routesCmd)
}

func runRoutes(cmd *cobra.Command, args []string) error {
	s, err := openSession(appConfig)
	if err != nil {
		return err
	}
	defer s.Close()

	out := cmd.OutOrStdout()
	routes := s.engine.BestTradeRoutes()
	if len(routes) == 0 {
		fmt.Fprintln(out, "No profitable routes right now.")
		return nil
	}

	fmt.Fprintf(out, "%-22s %-16s %9s  %-16s %9s %9s %7s\n",
		"Commodity", "Buy at", "Price", "Sell at", "Price", "Profit", "Margin")
	fmt.Fprintln(out, strings.Repeat("-", 95))
	for _, r := range routes {
		fmt.Fprintf(out, "%-22s %-16s %9s  %-16s %9s %9s %6.1f%%\n",
			r.Commodity,
			r.BuyAt, humanize.Comma(int64(r.BuyPrice)),
			r.SellAt, humanize.Comma(int64(r.SellPrice)),
			humanize.Comma(int64(r.Profit)), r.ProfitMargin)
	}
	return nil
}
