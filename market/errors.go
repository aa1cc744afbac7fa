package market

import (
	"errors"
	"fmt"
)

var (
	ErrNoMarket           = errors.New("no market at this location")
	ErrNotAvailable       = errors.New("commodity not available")
	ErrInsufficientStock  = errors.New("insufficient stock")
	ErrMarketOversupplied = errors.New("market is oversupplied")
	ErrInvalidQuantity    = errors.New("invalid quantity")
	ErrCorruptState       = errors.New("corrupt market state")
)

// TradeError describes a rejected buy or sell. Error returns the message
// shown to the player; Unwrap returns one of the sentinel errors above.
type TradeError struct {
	Op        string // "buy" or "sell"
	Location  string
	Commodity string
	Requested int
	Available int // units in stock (buy) or units the market can still absorb (sell)
	Err       error
}

func (e *TradeError) Error() string {
	switch {
	case errors.Is(e.Err, ErrNoMarket):
		return fmt.Sprintf("no market at %s", e.Location)
	case errors.Is(e.Err, ErrNotAvailable):
		if e.Op == opSell {
			return fmt.Sprintf("market at %s doesn't buy %s", e.Location, e.Commodity)
		}
		return fmt.Sprintf("%s not available at %s", e.Commodity, e.Location)
	case errors.Is(e.Err, ErrInsufficientStock):
		return fmt.Sprintf("only %d units available", e.Available)
	case errors.Is(e.Err, ErrMarketOversupplied):
		if e.Available <= 0 {
			return "market is oversupplied"
		}
		return fmt.Sprintf("market can only buy %d units", e.Available)
	case errors.Is(e.Err, ErrInvalidQuantity):
		return fmt.Sprintf("quantity must be positive, got %d", e.Requested)
	}
	return fmt.Sprintf("%s %s at %s: %v", e.Op, e.Commodity, e.Location, e.Err)
}

func (e *TradeError) Unwrap() error { return e.Err }
