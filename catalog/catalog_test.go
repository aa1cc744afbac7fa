package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	require.NotNil(t, c)
	assert.NoError(t, c.Validate())

	assert.Equal(t, []string{
		"ironhold", "kepler_station", "nexus_prime", "outer_rim_depot", "verdant_reach",
	}, c.MarketLocations())

	com, ok := c.Commodity("protein_rations")
	require.True(t, ok)
	assert.Equal(t, "protein_rations", com.ID)
	assert.Equal(t, "Protein Rations", com.Name)
	assert.Equal(t, 40, com.BasePrice)

	cat, ok := c.CategoryOf("protein_rations")
	require.True(t, ok)
	assert.Equal(t, "food", cat.ID)

	loc, ok := c.Location("ashfall_belt")
	require.True(t, ok)
	assert.False(t, loc.HasMarket())
}

func TestCommodityIDsSorted(t *testing.T) {
	ids := Default().CommodityIDs()
	require.NotEmpty(t, ids)
	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
}

func TestValidate(t *testing.T) {
	base := func() *Catalog {
		return &Catalog{
			Categories: map[string]Category{
				"food": {Name: "Food", DemandVolatility: 0.3, SupplyStability: 0.8},
			},
			Commodities: map[string]Commodity{
				"rations": {Name: "Rations", Category: "food", BasePrice: 10, Volatility: 0.1},
			},
			Locations: map[string]Location{
				"hub": {Name: "Hub", Services: []string{ServiceMarket}},
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Catalog)
		errMsg string
	}{
		{
			name:   "valid",
			mutate: func(c *Catalog) {},
		},
		{
			name:   "no commodities",
			mutate: func(c *Catalog) { c.Commodities = nil },
			errMsg: "at least one commodity is required",
		},
		{
			name: "unknown category",
			mutate: func(c *Catalog) {
				c.Commodities["rations"] = Commodity{Name: "Rations", Category: "nope", BasePrice: 10}
			},
			errMsg: `unknown category "nope"`,
		},
		{
			name: "zero base price",
			mutate: func(c *Catalog) {
				c.Commodities["rations"] = Commodity{Name: "Rations", Category: "food"}
			},
			errMsg: "base_price must be positive",
		},
		{
			name: "volatility out of range",
			mutate: func(c *Catalog) {
				c.Commodities["rations"] = Commodity{Name: "Rations", Category: "food", BasePrice: 10, Volatility: 1.5}
			},
			errMsg: "volatility must be between 0 and 1",
		},
		{
			name: "supply stability out of range",
			mutate: func(c *Catalog) {
				c.Categories["food"] = Category{Name: "Food", SupplyStability: -0.1}
			},
			errMsg: "supply_stability must be between 0 and 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			err := c.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadFromFileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	data := `{
	  "categories": {"ore": {"name": "Ore", "demand_volatility": 0.2, "supply_stability": 0.9}},
	  "commodities": {"iron": {"name": "Iron", "category": "ore", "base_price": 50, "volatility": 0.2, "volume": 3}},
	  "locations": {"mine": {"name": "Mine", "services": ["market"]}, "void": {"name": "Void", "services": []}}
	}`
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	c, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"mine"}, c.MarketLocations())
	assert.Equal(t, "iron", c.Commodities["iron"].ID)
	assert.Equal(t, 3.0, c.Commodities["iron"].Volume)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/catalog.yaml")
	assert.Error(t, err)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte("commodities: {x: {name: X, category: missing, base_price: 1}}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid catalog")
}
