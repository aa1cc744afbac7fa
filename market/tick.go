package market

import (
	"time"

	"github.com/rustyeddy/voidmarket/journal"
)

// Tick constants. Rates are per TickInterval of elapsed game time.
const (
	TickInterval  = 60 * time.Second
	DriftRate     = 0.1  // share of the gap to equilibrium closed per interval
	RestockRate   = 0.05 // share of MaxStock restocked per interval
	ShockChance   = 0.1  // scales the category coefficients into a probability
	ShockLow      = 0.95
	ShockHigh     = 1.05
	EquilibriumLv = 1.0
)

// Advance moves every market forward by elapsed game time: supply and
// demand drift back toward equilibrium, stock restocks, random shocks hit
// volatile categories and every record is repriced.
//
// Drift and restock scale linearly with elapsed; they are not compounded,
// so a single call covering several intervals can overshoot equilibrium.
// Shock probabilities are per call regardless of elapsed.
func (e *Engine) Advance(elapsed time.Duration) journal.TickRecord {
	if elapsed <= 0 {
		return journal.TickRecord{Time: e.now()}
	}

	steps := elapsed.Seconds() / TickInterval.Seconds()
	drift := DriftRate * steps

	summary := journal.TickRecord{Elapsed: elapsed}

	for _, k := range e.order {
		r := e.records[k]
		com := e.cat.Commodities[k.Commodity]
		cat := e.cat.Categories[com.Category]

		r.SupplyLevel += (EquilibriumLv - r.SupplyLevel) * drift
		r.DemandLevel += (EquilibriumLv - r.DemandLevel) * drift

		if r.Stock < r.MaxStock {
			restock := int(float64(r.MaxStock) * RestockRate * steps)
			next := min(r.Stock+restock, r.MaxStock)
			summary.Replenished += next - r.Stock
			r.Stock = next
		}

		if e.rng.Float64() < cat.DemandVolatility*ShockChance {
			r.DemandLevel *= e.uniform(ShockLow, ShockHigh)
			summary.Shocks++
		}
		if e.rng.Float64() < (1-cat.SupplyStability)*ShockChance {
			r.SupplyLevel *= e.uniform(ShockLow, ShockHigh)
			summary.Shocks++
		}

		r.floorLevels()
		e.reprice(r, com)
		summary.Records++
	}

	summary.Time = e.now()
	if err := e.journal.RecordTick(summary); err != nil {
		e.log.Warn("journal tick failed", "error", err)
	}
	e.log.Debug("markets advanced",
		"elapsed", elapsed,
		"records", summary.Records,
		"shocks", summary.Shocks,
		"replenished", summary.Replenished,
	)
	return summary
}
