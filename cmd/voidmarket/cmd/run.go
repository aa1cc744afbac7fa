package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/voidmarket/journal"
	"github.com/rustyeddy/voidmarket/sim"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the market clock",
	Long: `Advance the market on the configured tick interval until interrupted or
until --ticks steps have run, then save.

--speed multiplies game time per tick, so --speed 60 with a 1s interval runs
one game minute every wall second.

Examples:
  voidmarket run
  voidmarket run --interval 1s --speed 60 --ticks 120`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

var (
	runTicks    int
	runInterval time.Duration
	runSpeed    float64
	runQuiet    bool
)

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().IntVar(&runTicks, "ticks", 0, "stop after this many ticks (0 runs until interrupted)")
	runCmd.Flags().DurationVar(&runInterval, "interval", 0, "wall time between ticks (default from config)")
	runCmd.Flags().Float64Var(&runSpeed, "speed", 0, "game time per wall time (default from config)")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "do not print tick summaries")
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg := appConfig

	s, err := openSession(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	loop := sim.NewLoop(s.engine, cfg.Market.TickInterval())
	loop.Speed = cfg.Market.Speed
	loop.MaxTicks = runTicks
	loop.Logger = slog.Default()
	if runInterval > 0 {
		loop.Interval = runInterval
	}
	if runSpeed > 0 {
		loop.Speed = runSpeed
	}

	out := cmd.OutOrStdout()
	if !runQuiet {
		loop.OnTick = func(sum journal.TickRecord) {
			fmt.Fprintf(out, "tick %4d  +%s  restocked %5d  shocks %2d\n",
				loop.Ticks(), sum.Elapsed, sum.Replenished, sum.Shocks)
		}
	}

	fmt.Fprintf(out, "Running market clock (interval %s, speed %gx). Ctrl-C to stop.\n", loop.Interval, loop.Speed)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := loop.Run(ctx)
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}

	if err := s.save(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n✓ Ran %d ticks (%s game time), saved to %s\n", loop.Ticks(), loop.Elapsed(), cfg.Save.Path)
	return nil
}
