package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/voidmarket/market"
)

var marketCmd = &cobra.Command{
	Use:   "market <location>",
	Short: "Show the market at a location",
	Long: `List every commodity traded at a location with buy and sell prices,
stock and supply/demand levels.

Examples:
  voidmarket market nexus_prime
  voidmarket market ironhold --category minerals`,
	Args: cobra.ExactArgs(1),
	RunE: runMarket,
}

var marketCategory string

func init() {
	rootCmd.AddCommand(marketCmd)

	marketCmd.Flags().StringVar(&marketCategory, "category", "", "only list one commodity category")
}

func runMarket(cmd *cobra.Command, args []string) error {
	s, err := openSession(appConfig)
	if err != nil {
		return err
	}
	defer s.Close()

	loc, err := s.location(args[0])
	if err != nil {
		return err
	}
	if !loc.HasMarket() {
		return fmt.Errorf("%s has no market", loc.Name)
	}

	listings := s.engine.Overview(loc.ID, marketCategory)
	printListings(cmd.OutOrStdout(), loc.Name, listings)
	return nil
}

func printListings(w io.Writer, title string, listings []market.Listing) {
	fmt.Fprintf(w, "%s market\n", title)
	fmt.Fprintln(w, strings.Repeat("-", 84))
	fmt.Fprintf(w, "%-22s %-11s %10s %10s %11s %7s %7s %s\n",
		"Commodity", "Category", "Buy", "Sell", "Stock", "Supply", "Demand", "Trend")
	for _, l := range listings {
		fmt.Fprintf(w, "%-22s %-11s %10s %10s %5d/%-5d %7.2f %7.2f %s\n",
			l.Name, l.Category,
			humanize.Comma(int64(l.BuyPrice)), humanize.Comma(int64(l.SellPrice)),
			l.Stock, l.MaxStock, l.Supply, l.Demand, trendArrow(l.Trend))
	}
}

func trendArrow(trend float64) string {
	switch {
	case trend > 0.01:
		return "↑"
	case trend < -0.01:
		return "↓"
	default:
		return "→"
	}
}
