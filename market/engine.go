// Package market is the dynamic commodity market: one record per commodity
// per market location, priced from supply and demand pressure, moved by
// player trades and pulled back toward equilibrium by the game clock.
//
// An Engine is not safe for concurrent use. The game loop is its only caller.
package market

import (
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/rustyeddy/voidmarket/catalog"
	"github.com/rustyeddy/voidmarket/internal/id"
	"github.com/rustyeddy/voidmarket/journal"
)

const (
	opBuy  = "buy"
	opSell = "sell"
)

// Options controls engine construction. The zero value is usable.
type Options struct {
	// Seed seeds the engine's random source. Zero seeds from the clock.
	Seed int64
	// Rand overrides Seed when set.
	Rand *rand.Rand
	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

type Engine struct {
	cat     *catalog.Catalog
	records map[key]*Record
	order   []key // location-major, both sorted; fixes RNG consumption order

	history []Transaction
	events  []Event

	rng     *rand.Rand
	now     func() time.Time
	journal journal.Journal
	log     *slog.Logger
}

// Receipt is the result of a successful trade.
type Receipt struct {
	Transaction Transaction
	Message     string
	Total       int
}

// New builds an engine over the catalog and seeds every market record.
// A nil journal discards transactions.
func New(cat *catalog.Catalog, j journal.Journal, opts Options) (*Engine, error) {
	if cat == nil {
		return nil, fmt.Errorf("new market: catalog is required")
	}
	if err := cat.Validate(); err != nil {
		return nil, fmt.Errorf("new market: %w", err)
	}

	e := newEngine(cat, j, opts)
	e.Initialize()
	return e, nil
}

func newEngine(cat *catalog.Catalog, j journal.Journal, opts Options) *Engine {
	if j == nil {
		j = journal.Nop{}
	}

	rng := opts.Rand
	if rng == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Engine{
		cat:     cat,
		records: make(map[key]*Record),
		rng:     rng,
		now:     clock,
		journal: j,
		log:     logger,
	}
}

// Initialize discards all market state and seeds a fresh, independently
// randomised record for every market location and commodity.
func (e *Engine) Initialize() {
	e.records = make(map[key]*Record)
	e.order = e.order[:0]
	e.history = nil
	e.events = nil

	now := e.now()
	for _, loc := range e.cat.MarketLocations() {
		for _, cid := range e.cat.CommodityIDs() {
			com := e.cat.Commodities[cid]

			supply := e.uniform(0.7, 1.3)
			demand := e.uniform(0.7, 1.3)
			mult := (demand / supply) * e.uniform(0.95, 1.05)
			stock := 100 + e.rng.Intn(401)

			k := key{Location: loc, Commodity: cid}
			e.records[k] = &Record{
				CurrentPrice: int(float64(com.BasePrice) * mult),
				SupplyLevel:  supply,
				DemandLevel:  demand,
				Stock:        stock,
				MaxStock:     stock * 2,
				LastUpdate:   now,
			}
			e.order = append(e.order, k)
		}
	}

	e.log.Info("markets initialized",
		"locations", len(e.cat.MarketLocations()),
		"commodities", len(e.cat.Commodities),
		"records", len(e.records),
	)
}

// Catalog returns the catalog the engine prices against.
func (e *Engine) Catalog() *catalog.Catalog { return e.cat }

// HasMarket reports whether the engine tracks any records at location.
func (e *Engine) HasMarket(location string) bool {
	return e.hasAny(location)
}

func (e *Engine) hasAny(location string) bool {
	for _, k := range e.order {
		if k.Location == location {
			return true
		}
	}
	return false
}

// Record returns a copy of one market record.
func (e *Engine) Record(location, commodity string) (Record, bool) {
	r, ok := e.records[key{location, commodity}]
	if !ok {
		return Record{}, false
	}
	return *r, true
}

// Price returns the player-facing unit price, or 0 when the location has no
// market or does not track the commodity. Callers must treat 0 as
// "unavailable".
func (e *Engine) Price(location, commodity string, side Side) int {
	r, ok := e.records[key{location, commodity}]
	if !ok {
		return 0
	}
	return r.price(side)
}

// Quote returns both sides of the spread.
func (e *Engine) Quote(location, commodity string) (Quote, bool) {
	r, ok := e.records[key{location, commodity}]
	if !ok {
		return Quote{}, false
	}
	return r.quote(), true
}

// Buy sells quantity units from the market to the player.
func (e *Engine) Buy(location, commodity string, quantity int) (Receipt, error) {
	r, com, err := e.lookup(opBuy, location, commodity, quantity)
	if err != nil {
		return Receipt{}, err
	}
	if quantity > r.Stock {
		return Receipt{}, &TradeError{
			Op:        opBuy,
			Location:  location,
			Commodity: commodity,
			Requested: quantity,
			Available: r.Stock,
			Err:       ErrInsufficientStock,
		}
	}

	unit := r.price(Buying)
	total := unit * quantity

	r.Stock -= quantity
	r.DemandLevel += float64(quantity) * MicroPressure

	tx := e.recordTransaction(location, commodity, journal.ActionBuy, quantity, unit, total)
	e.applyImpact(r, com, quantity, opBuy)

	return Receipt{
		Transaction: tx,
		Message:     fmt.Sprintf("Purchased %d units for %s CR", quantity, humanize.Comma(int64(total))),
		Total:       total,
	}, nil
}

// Sell buys quantity units from the player into the market.
func (e *Engine) Sell(location, commodity string, quantity int) (Receipt, error) {
	r, com, err := e.lookup(opSell, location, commodity, quantity)
	if err != nil {
		return Receipt{}, err
	}
	if r.Stock+quantity > r.MaxStock {
		return Receipt{}, &TradeError{
			Op:        opSell,
			Location:  location,
			Commodity: commodity,
			Requested: quantity,
			Available: max(r.MaxStock-r.Stock, 0),
			Err:       ErrMarketOversupplied,
		}
	}

	unit := r.price(Selling)
	total := unit * quantity

	r.Stock += quantity
	r.SupplyLevel += float64(quantity) * MicroPressure

	tx := e.recordTransaction(location, commodity, journal.ActionSell, quantity, unit, total)
	e.applyImpact(r, com, quantity, opSell)

	return Receipt{
		Transaction: tx,
		Message:     fmt.Sprintf("Sold %d units for %s CR", quantity, humanize.Comma(int64(total))),
		Total:       total,
	}, nil
}

// lookup validates a trade request and returns the record it targets.
func (e *Engine) lookup(op, location, commodity string, quantity int) (*Record, catalog.Commodity, error) {
	fail := func(err error) (*Record, catalog.Commodity, error) {
		return nil, catalog.Commodity{}, &TradeError{
			Op:        op,
			Location:  location,
			Commodity: commodity,
			Requested: quantity,
			Err:       err,
		}
	}

	if !e.hasAny(location) {
		return fail(ErrNoMarket)
	}
	r, ok := e.records[key{location, commodity}]
	if !ok {
		return fail(ErrNotAvailable)
	}
	com, ok := e.cat.Commodity(commodity)
	if !ok {
		return fail(ErrNotAvailable)
	}
	if quantity <= 0 {
		return fail(ErrInvalidQuantity)
	}
	return r, com, nil
}

// applyImpact moves supply or demand by at most MaxImpact per trade and
// reprices the record.
func (e *Engine) applyImpact(r *Record, com catalog.Commodity, quantity int, op string) {
	impact := min(float64(quantity)/ImpactDivisor, MaxImpact)

	if op == opBuy {
		r.DemandLevel += impact
		r.PriceTrend += impact * TrendPerImpact
	} else {
		r.SupplyLevel += impact
		r.PriceTrend -= impact * TrendPerImpact
	}

	r.floorLevels()
	e.reprice(r, com)
}

// reprice derives CurrentPrice from the supply/demand ratio with
// volatility noise, clamped to [MinMultiplier, MaxMultiplier] of base.
func (e *Engine) reprice(r *Record, com catalog.Commodity) {
	mult := r.multiplier()
	mult *= 1 + e.uniform(-com.Volatility, com.Volatility)*NoiseScale
	mult = clamp(mult, MinMultiplier, MaxMultiplier)

	r.CurrentPrice = int(float64(com.BasePrice) * mult)
	r.LastUpdate = e.now()
}

func (e *Engine) recordTransaction(location, commodity, action string, quantity, unit, total int) Transaction {
	now := e.now()
	tx := Transaction{
		ID:        id.At(now),
		Time:      now,
		Location:  location,
		Commodity: commodity,
		Action:    action,
		Quantity:  quantity,
		Price:     unit,
		Total:     total,
	}

	e.history = append(e.history, tx)
	if over := len(e.history) - MaxHistory; over > 0 {
		e.history = slices.Clone(e.history[over:])
	}

	if err := e.journal.RecordTransaction(tx.journalRecord()); err != nil {
		// The trade has already been applied; the journal is an audit trail.
		e.log.Warn("journal transaction failed", "tx", tx.ID, "error", err)
	}
	e.log.Debug("market trade",
		"action", action,
		"location", location,
		"commodity", commodity,
		"quantity", quantity,
		"unit_price", unit,
		"total", total,
	)
	return tx
}

// History returns the retained transactions, oldest first.
func (e *Engine) History() []Transaction {
	return slices.Clone(e.history)
}

// Events returns the active market events.
func (e *Engine) Events() []Event {
	return slices.Clone(e.events)
}

func (e *Engine) uniform(lo, hi float64) float64 {
	return lo + e.rng.Float64()*(hi-lo)
}
