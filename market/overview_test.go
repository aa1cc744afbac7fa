package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/voidmarket/catalog"
)

func TestOverviewSortedByName(t *testing.T) {
	e, _ := newTestEngine(t)
	setRecord(t, e, "alpha", "iron", 100, 300, 600)

	got := e.Overview("alpha", "")
	require.Len(t, got, 3)
	assert.Equal(t, "Iron", got[0].Name)
	assert.Equal(t, "Rations", got[1].Name)
	assert.Equal(t, "Silk", got[2].Name)

	iron := got[0]
	assert.Equal(t, "iron", iron.ID)
	assert.Equal(t, "ore", iron.Category)
	assert.Equal(t, 110, iron.BuyPrice)
	assert.Equal(t, 90, iron.SellPrice)
	assert.Equal(t, 300, iron.Stock)
	assert.Equal(t, 600, iron.MaxStock)
	assert.Equal(t, 1.0, iron.Supply)
	assert.Equal(t, 1.0, iron.Demand)
	assert.Equal(t, 3.0, iron.Volume)
}

func TestOverviewCategoryFilter(t *testing.T) {
	e, _ := newTestEngine(t)

	got := e.Overview("beta", "lux")
	require.Len(t, got, 1)
	assert.Equal(t, "silk", got[0].ID)

	assert.Empty(t, e.Overview("beta", "nothing"))
}

func TestOverviewUnknownLocation(t *testing.T) {
	e, _ := newTestEngine(t)
	assert.Empty(t, e.Overview("gamma", ""))
	assert.Empty(t, e.Overview("nowhere", ""))
}

// equalize gives every commodity the same price at every market so that no
// route exists unless a test creates one.
func equalize(t *testing.T, e *Engine) {
	t.Helper()
	for _, k := range e.order {
		base := e.Catalog().Commodities[k.Commodity].BasePrice
		setRecord(t, e, k.Location, k.Commodity, base, 300, 600)
	}
}

func TestBestTradeRoutesScenario(t *testing.T) {
	e, _ := newTestEngine(t)
	equalize(t, e)

	// Sell-side 90 at alpha, buy-side 150 at beta.
	setRecord(t, e, "alpha", "iron", 100, 300, 600)
	setRecord(t, e, "beta", "iron", 137, 300, 600)
	require.Equal(t, 90, e.Price("alpha", "iron", Selling))
	require.Equal(t, 150, e.Price("beta", "iron", Buying))

	routes := e.BestTradeRoutes()
	require.Len(t, routes, 1)

	r := routes[0]
	assert.Equal(t, "iron", r.CommodityID)
	assert.Equal(t, "Iron", r.Commodity)
	assert.Equal(t, "alpha", r.BuyAt)
	assert.Equal(t, 90, r.BuyPrice)
	assert.Equal(t, "beta", r.SellAt)
	assert.Equal(t, 150, r.SellPrice)
	assert.Equal(t, 60, r.Profit)
	assert.InDelta(t, 66.7, r.ProfitMargin, 0.05)
}

func TestBestTradeRoutesSameLocationYieldsNothing(t *testing.T) {
	e, _ := newTestEngine(t)
	equalize(t, e)

	// Alpha is both cheapest to buy and best to sell at.
	setRecord(t, e, "alpha", "iron", 100, 300, 600)
	setRecord(t, e, "beta", "iron", 100, 300, 600)
	assert.Empty(t, e.BestTradeRoutes())
}

func TestBestTradeRoutesSingleMarket(t *testing.T) {
	cat := testCatalog()
	delete(cat.Locations, "beta")

	e, err := New(cat, nil, testOptions(9))
	require.NoError(t, err)
	assert.Empty(t, e.BestTradeRoutes())
}

func TestBestTradeRoutesRankedAndCapped(t *testing.T) {
	e, err := New(catalog.Default(), nil, testOptions(21))
	require.NoError(t, err)

	// Spread every commodity across markets so each one has a route.
	locs := e.Catalog().MarketLocations()
	for _, cid := range e.Catalog().CommodityIDs() {
		base := e.Catalog().Commodities[cid].BasePrice
		for i, loc := range locs {
			setRecord(t, e, loc, cid, base+i*base/10, 300, 600)
		}
	}

	routes := e.BestTradeRoutes()
	require.Len(t, routes, MaxRoutes)
	for i, r := range routes {
		assert.NotEqual(t, r.BuyAt, r.SellAt)
		assert.Positive(t, r.Profit)
		assert.Equal(t, r.SellPrice-r.BuyPrice, r.Profit)
		if i > 0 {
			assert.GreaterOrEqual(t, routes[i-1].Profit, r.Profit)
		}
	}
}
