package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var priceCmd = &cobra.Command{
	Use:   "price <location> <commodity>",
	Short: "Quote one commodity at one location",
	Args:  cobra.ExactArgs(2),
	RunE:  runPrice,
}

func init() {
	rootCmd.AddCommand(priceCmd)
}

func runPrice(cmd *cobra.Command, args []string) error {
	s, err := openSession(appConfig)
	if err != nil {
		return err
	}
	defer s.Close()

	q, ok := s.engine.Quote(args[0], args[1])
	if !ok {
		return fmt.Errorf("%s is not traded at %s", args[1], args[0])
	}
	rec, _ := s.engine.Record(args[0], args[1])

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s @ %s\n", args[1], args[0])
	fmt.Fprintf(out, "  Buy:    %s CR\n", humanize.Comma(int64(q.Buy)))
	fmt.Fprintf(out, "  Sell:   %s CR\n", humanize.Comma(int64(q.Sell)))
	fmt.Fprintf(out, "  Spread: %s CR\n", humanize.Comma(int64(q.Spread())))
	fmt.Fprintf(out, "  Stock:  %d/%d\n", rec.Stock, rec.MaxStock)
	return nil
}
