// journal/journal.go
package journal

import "time"

// Actions recorded in TransactionRecord.Action.
const (
	ActionBuy  = "buy"
	ActionSell = "sell"
)

// TransactionRecord is one completed player trade against a market.
type TransactionRecord struct {
	ID        string
	Time      time.Time
	Location  string
	Commodity string
	Action    string // ActionBuy or ActionSell, from the player's side
	Quantity  int
	UnitPrice int
	Total     int
}

// TickRecord summarises one call to the market tick.
type TickRecord struct {
	Time        time.Time
	Elapsed     time.Duration
	Records     int // records updated
	Shocks      int // random supply/demand shocks applied
	Replenished int // units restocked across all markets
}

type Journal interface {
	RecordTransaction(TransactionRecord) error
	RecordTick(TickRecord) error
	Close() error
}

// Nop discards everything. It is the engine's journal when none is configured.
type Nop struct{}

func (Nop) RecordTransaction(TransactionRecord) error { return nil }
func (Nop) RecordTick(TickRecord) error               { return nil }
func (Nop) Close() error                              { return nil }
