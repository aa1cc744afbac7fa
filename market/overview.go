package market

import (
	"cmp"
	"slices"
)

// MaxRoutes caps BestTradeRoutes.
const MaxRoutes = 10

// Listing is one row of a market overview.
type Listing struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	Description string  `json:"description" yaml:"description"`
	Category    string  `json:"category" yaml:"category"`
	BuyPrice    int     `json:"buy_price" yaml:"buy_price"`
	SellPrice   int     `json:"sell_price" yaml:"sell_price"`
	Stock       int     `json:"stock" yaml:"stock"`
	MaxStock    int     `json:"max_stock" yaml:"max_stock"`
	Supply      float64 `json:"supply" yaml:"supply"`
	Demand      float64 `json:"demand" yaml:"demand"`
	Trend       float64 `json:"trend" yaml:"trend"`
	Volume      float64 `json:"volume" yaml:"volume"`
}

// Overview lists every commodity traded at location, sorted by name. An
// empty category lists all categories. Unknown locations yield nothing.
func (e *Engine) Overview(location, category string) []Listing {
	var out []Listing
	for _, k := range e.order {
		if k.Location != location {
			continue
		}
		com := e.cat.Commodities[k.Commodity]
		if category != "" && com.Category != category {
			continue
		}

		r := e.records[k]
		q := r.quote()
		out = append(out, Listing{
			ID:          com.ID,
			Name:        com.Name,
			Description: com.Description,
			Category:    com.Category,
			BuyPrice:    q.Buy,
			SellPrice:   q.Sell,
			Stock:       r.Stock,
			MaxStock:    r.MaxStock,
			Supply:      r.SupplyLevel,
			Demand:      r.DemandLevel,
			Trend:       r.PriceTrend,
			Volume:      com.Volume,
		})
	}

	slices.SortFunc(out, func(a, b Listing) int {
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

// Route is a buy-here, sell-there opportunity for one commodity.
type Route struct {
	CommodityID  string  `json:"commodity_id" yaml:"commodity_id"`
	Commodity    string  `json:"commodity" yaml:"commodity"`
	BuyAt        string  `json:"buy_at" yaml:"buy_at"`
	BuyPrice     int     `json:"buy_price" yaml:"buy_price"`
	SellAt       string  `json:"sell_at" yaml:"sell_at"`
	SellPrice    int     `json:"sell_price" yaml:"sell_price"`
	Profit       int     `json:"profit" yaml:"profit"`
	ProfitMargin float64 `json:"profit_margin" yaml:"profit_margin"` // percent of BuyPrice
}

// BestTradeRoutes finds, per commodity, the market with the lowest sell-side
// price and the market with the highest buy-side price. Pairs at distinct
// locations with positive profit are returned, most profitable first, capped
// at MaxRoutes.
func (e *Engine) BestTradeRoutes() []Route {
	locations := e.cat.MarketLocations()

	var routes []Route
	for _, cid := range e.cat.CommodityIDs() {
		var (
			buyAt, sellAt       string
			buyPrice, sellPrice int
			found               bool
		)

		for _, loc := range locations {
			r, ok := e.records[key{loc, cid}]
			if !ok {
				continue
			}
			q := r.quote()
			if !found || q.Sell < buyPrice {
				buyAt, buyPrice = loc, q.Sell
			}
			if !found || q.Buy > sellPrice {
				sellAt, sellPrice = loc, q.Buy
			}
			found = true
		}

		if !found || buyAt == sellAt {
			continue
		}
		profit := sellPrice - buyPrice
		if profit <= 0 {
			continue
		}

		margin := 0.0
		if buyPrice > 0 {
			margin = float64(profit) / float64(buyPrice) * 100
		}
		routes = append(routes, Route{
			CommodityID:  cid,
			Commodity:    e.cat.Commodities[cid].Name,
			BuyAt:        buyAt,
			BuyPrice:     buyPrice,
			SellAt:       sellAt,
			SellPrice:    sellPrice,
			Profit:       profit,
			ProfitMargin: margin,
		})
	}

	slices.SortStableFunc(routes, func(a, b Route) int {
		return cmp.Compare(b.Profit, a.Profit)
	})
	if len(routes) > MaxRoutes {
		routes = routes[:MaxRoutes]
	}
	return routes
}
