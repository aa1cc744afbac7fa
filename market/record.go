package market

import (
	"math"
	"time"
)

// Pricing constants.
const (
	BuyMarkup      = 1.10 // player buys from the market
	SellDiscount   = 0.90 // player sells to the market
	MinMultiplier  = 0.5
	MaxMultiplier  = 3.0
	MinLevel       = 0.05 // floor for supply and demand levels
	NoiseScale     = 0.1  // volatility is scaled down by this before use as noise
	MicroPressure  = 0.001
	MaxImpact      = 0.10
	ImpactDivisor  = 100.0
	TrendPerImpact = 0.5
)

// Record is the market state of one commodity at one location.
type Record struct {
	CurrentPrice int       `json:"current_price" yaml:"current_price"`
	SupplyLevel  float64   `json:"supply_level" yaml:"supply_level"`
	DemandLevel  float64   `json:"demand_level" yaml:"demand_level"`
	PriceTrend   float64   `json:"price_trend" yaml:"price_trend"` // advisory momentum, not priced in
	Stock        int       `json:"stock" yaml:"stock"`
	MaxStock     int       `json:"max_stock" yaml:"max_stock"`
	LastUpdate   time.Time `json:"last_update" yaml:"last_update"`
}

// Side selects which half of the spread a price query returns.
type Side int

const (
	Buying  Side = iota // the player buys; the market sells at a markup
	Selling             // the player sells; the market buys at a discount
)

func (s Side) String() string {
	if s == Selling {
		return "sell"
	}
	return "buy"
}

// Quote is both sides of the spread for one record.
type Quote struct {
	Buy  int
	Sell int
}

func (q Quote) Spread() int { return q.Buy - q.Sell }

type key struct {
	Location  string
	Commodity string
}

func (r *Record) price(side Side) int {
	if side == Selling {
		return int(float64(r.CurrentPrice) * SellDiscount)
	}
	return int(float64(r.CurrentPrice) * BuyMarkup)
}

func (r *Record) quote() Quote {
	return Quote{Buy: r.price(Buying), Sell: r.price(Selling)}
}

// floorLevels keeps supply and demand strictly positive so the price ratio
// never divides by zero or flips sign.
func (r *Record) floorLevels() {
	r.SupplyLevel = math.Max(r.SupplyLevel, MinLevel)
	r.DemandLevel = math.Max(r.DemandLevel, MinLevel)
}

// multiplier returns demand/supply, or 2.0 when supply is not positive.
func (r *Record) multiplier() float64 {
	if r.SupplyLevel <= 0 {
		return 2.0
	}
	return r.DemandLevel / r.SupplyLevel
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
