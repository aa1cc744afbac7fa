package cmd

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/voidmarket/replay"
)

var replayCmd = &cobra.Command{
	Use:   "replay <script.csv>",
	Short: "Replay a scripted trading session",
	Long: `Apply a CSV script of BUY, SELL and ADVANCE rows to the saved market.

Script columns:
  action,arg1,arg2,arg3

  BUY,<location>,<commodity>,<quantity>
  SELL,<location>,<commodity>,<quantity>
  ADVANCE,<duration>

The result is saved unless --dry-run is given.

Example:
  voidmarket replay session.csv --dry-run`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

var (
	replayStopOnReject bool
	replayDryRun       bool
)

func init() {
	rootCmd.AddCommand(replayCmd)

	replayCmd.Flags().BoolVar(&replayStopOnReject, "stop-on-reject", false, "abort on the first rejected trade")
	replayCmd.Flags().BoolVar(&replayDryRun, "dry-run", false, "do not save the resulting market")
}

func runReplay(cmd *cobra.Command, args []string) error {
	s, err := openSession(appConfig)
	if err != nil {
		return err
	}
	defer s.Close()

	res, err := replay.CSV(cmd.Context(), args[0], s.engine, replay.Options{StopOnReject: replayStopOnReject})
	if err != nil {
		return fmt.Errorf("replay %s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ Replayed %d rows from %s\n", res.Rows, args[0])
	fmt.Fprintf(out, "  Bought:   %d units for %s CR\n", res.Bought, humanize.Comma(int64(res.Spent)))
	fmt.Fprintf(out, "  Sold:     %d units for %s CR\n", res.Sold, humanize.Comma(int64(res.Earned)))
	fmt.Fprintf(out, "  Net:      %s CR\n", humanize.Comma(int64(res.Net())))
	fmt.Fprintf(out, "  Rejected: %d\n", res.Rejected)
	fmt.Fprintf(out, "  Elapsed:  %s\n", res.Elapsed)

	if replayDryRun {
		fmt.Fprintln(out, "  (dry run, not saved)")
		return nil
	}
	return s.save()
}
