package market

import (
	"fmt"
	"slices"
	"time"

	"github.com/rustyeddy/voidmarket/catalog"
	"github.com/rustyeddy/voidmarket/journal"
)

// MaxHistory is how many transactions the engine retains and saves.
const MaxHistory = 100

// Transaction is a completed trade as kept in the engine history.
type Transaction struct {
	ID        string    `json:"id" yaml:"id"`
	Time      time.Time `json:"timestamp" yaml:"timestamp"`
	Location  string    `json:"location" yaml:"location"`
	Commodity string    `json:"commodity" yaml:"commodity"`
	Quantity  int       `json:"quantity" yaml:"quantity"`
	Action    string    `json:"action" yaml:"action"`
	Price     int       `json:"price" yaml:"price"` // unit price
	Total     int       `json:"total" yaml:"total"`
}

func (t Transaction) journalRecord() journal.TransactionRecord {
	return journal.TransactionRecord{
		ID:        t.ID,
		Time:      t.Time,
		Location:  t.Location,
		Commodity: t.Commodity,
		Action:    t.Action,
		Quantity:  t.Quantity,
		UnitPrice: t.Price,
		Total:     t.Total,
	}
}

// Event is a time-limited market event. Nothing creates events yet; the
// list is carried through saves so older and newer builds agree on layout.
type Event struct {
	ID          string    `json:"id" yaml:"id"`
	Location    string    `json:"location,omitempty" yaml:"location,omitempty"`
	Commodity   string    `json:"commodity,omitempty" yaml:"commodity,omitempty"`
	Description string    `json:"description" yaml:"description"`
	Expires     time.Time `json:"expires" yaml:"expires"`
}

// State is the serialized form of an engine: location -> commodity -> record.
type State struct {
	Markets            map[string]map[string]Record `json:"markets" yaml:"markets"`
	TransactionHistory []Transaction                `json:"transaction_history" yaml:"transaction_history"`
	ActiveEvents       []Event                      `json:"active_events" yaml:"active_events"`
}

// Snapshot captures the engine state for saving.
func (e *Engine) Snapshot() State {
	st := State{
		Markets:            make(map[string]map[string]Record),
		TransactionHistory: slices.Clone(e.history),
		ActiveEvents:       slices.Clone(e.events),
	}
	if st.TransactionHistory == nil {
		st.TransactionHistory = []Transaction{}
	}
	if st.ActiveEvents == nil {
		st.ActiveEvents = []Event{}
	}

	for _, k := range e.order {
		m, ok := st.Markets[k.Location]
		if !ok {
			m = make(map[string]Record)
			st.Markets[k.Location] = m
		}
		m[k.Commodity] = *e.records[k]
	}
	return st
}

// Restore rebuilds an engine from a snapshot. Catalog pairs the snapshot
// does not mention (content added since the save) are seeded fresh; records
// the catalog no longer supports are rejected.
func Restore(cat *catalog.Catalog, st State, j journal.Journal, opts Options) (*Engine, error) {
	e, err := New(cat, j, opts)
	if err != nil {
		return nil, err
	}

	for loc, commodities := range st.Markets {
		l, ok := cat.Location(loc)
		if !ok || !l.HasMarket() {
			return nil, fmt.Errorf("restore market: location %q: %w", loc, ErrCorruptState)
		}
		for cid, rec := range commodities {
			if _, ok := cat.Commodity(cid); !ok {
				return nil, fmt.Errorf("restore market: commodity %q at %q: %w", cid, loc, ErrCorruptState)
			}
			if rec.MaxStock < 0 || rec.Stock < 0 || rec.Stock > rec.MaxStock {
				return nil, fmt.Errorf("restore market: %s/%s stock %d outside [0, %d]: %w",
					loc, cid, rec.Stock, rec.MaxStock, ErrCorruptState)
			}
			r := rec
			e.records[key{loc, cid}] = &r
		}
	}

	history := st.TransactionHistory
	if over := len(history) - MaxHistory; over > 0 {
		history = history[over:]
	}
	e.history = slices.Clone(history)
	e.events = slices.Clone(st.ActiveEvents)

	e.log.Info("markets restored",
		"records", len(e.records),
		"history", len(e.history),
	)
	return e, nil
}
