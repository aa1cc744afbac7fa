// Package sim drives the market on a game clock. A Loop calls Advance at a
// fixed wall-clock interval and scales each step by a speed multiplier so a
// session can fast-forward the economy.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rustyeddy/voidmarket/journal"
)

// Advancer is the part of the market engine the loop drives.
type Advancer interface {
	Advance(elapsed time.Duration) journal.TickRecord
}

// Loop advances an Advancer until its context is cancelled or MaxTicks
// steps have run. It is the engine's only mutator while Run is active.
type Loop struct {
	Market   Advancer
	Interval time.Duration // wall time between steps
	Speed    float64       // game time per wall time; 1 is real time
	MaxTicks int           // 0 runs until cancelled

	// OnTick, when set, sees every tick summary after it is applied.
	OnTick func(journal.TickRecord)
	Logger *slog.Logger

	ticks   int
	elapsed time.Duration
}

// NewLoop returns a real-time loop with the given step interval.
func NewLoop(m Advancer, interval time.Duration) *Loop {
	return &Loop{
		Market:   m,
		Interval: interval,
		Speed:    1.0,
	}
}

// Step advances the market by one interval of game time.
func (l *Loop) Step() journal.TickRecord {
	d := l.gameStep()
	sum := l.Market.Advance(d)

	l.ticks++
	l.elapsed += d
	l.logger().Debug("tick",
		"tick", l.ticks,
		"elapsed", d,
		"shocks", sum.Shocks,
		"replenished", sum.Replenished,
	)
	if l.OnTick != nil {
		l.OnTick(sum)
	}
	return sum
}

// Run blocks, stepping once per Interval. It returns nil after MaxTicks
// steps and ctx.Err() when cancelled.
func (l *Loop) Run(ctx context.Context) error {
	if l.Market == nil {
		return fmt.Errorf("sim loop: market is required")
	}
	if l.Interval <= 0 {
		return fmt.Errorf("sim loop: interval must be positive, got %s", l.Interval)
	}
	if l.Speed <= 0 {
		return fmt.Errorf("sim loop: speed must be positive, got %g", l.Speed)
	}

	log := l.logger()
	log.Info("sim loop started", "interval", l.Interval, "speed", l.Speed, "max_ticks", l.MaxTicks)

	ticker := time.NewTicker(l.Interval)
	defer ticker.Stop()

	start := l.ticks
	for {
		if l.MaxTicks > 0 && l.ticks-start >= l.MaxTicks {
			log.Info("sim loop finished", "ticks", l.ticks, "game_time", l.elapsed)
			return nil
		}

		select {
		case <-ctx.Done():
			log.Info("sim loop stopped", "ticks", l.ticks, "game_time", l.elapsed)
			return ctx.Err()
		case <-ticker.C:
			l.Step()
		}
	}
}

// Ticks is the number of steps taken so far.
func (l *Loop) Ticks() int { return l.ticks }

// Elapsed is the total game time advanced so far.
func (l *Loop) Elapsed() time.Duration { return l.elapsed }

func (l *Loop) gameStep() time.Duration {
	speed := l.Speed
	if speed <= 0 {
		speed = 1
	}
	return time.Duration(float64(l.Interval) * speed)
}

func (l *Loop) logger() *slog.Logger {
	if l.Logger == nil {
		return slog.Default()
	}
	return l.Logger
}
