// Package catalog holds the static game data the market trades against:
// commodities, commodity categories and the locations that host markets.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// ServiceMarket is the location service that enables a commodity market.
const ServiceMarket = "market"

//go:embed default.yaml
var defaultCatalog []byte

// Commodity is a tradable good.
type Commodity struct {
	ID          string  `json:"-" yaml:"-"`
	Name        string  `json:"name" yaml:"name"`
	Category    string  `json:"category" yaml:"category"`
	BasePrice   int     `json:"base_price" yaml:"base_price"`
	Volatility  float64 `json:"volatility" yaml:"volatility"` // 0..1, scales price noise
	Volume      float64 `json:"volume" yaml:"volume"`         // cargo space per unit
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// Category groups commodities and sets how often random supply and demand
// shocks hit them.
type Category struct {
	ID               string  `json:"-" yaml:"-"`
	Name             string  `json:"name" yaml:"name"`
	DemandVolatility float64 `json:"demand_volatility" yaml:"demand_volatility"`
	SupplyStability  float64 `json:"supply_stability" yaml:"supply_stability"`
}

// Location is a place the player can dock.
type Location struct {
	ID       string   `json:"-" yaml:"-"`
	Name     string   `json:"name" yaml:"name"`
	Services []string `json:"services" yaml:"services"`
}

// HasMarket reports whether the location offers the market service.
func (l Location) HasMarket() bool {
	return slices.Contains(l.Services, ServiceMarket)
}

// Catalog is the complete read-only data set.
type Catalog struct {
	Categories  map[string]Category  `json:"categories" yaml:"categories"`
	Commodities map[string]Commodity `json:"commodities" yaml:"commodities"`
	Locations   map[string]Location  `json:"locations" yaml:"locations"`
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		// The embedded file is covered by tests.
		panic(fmt.Sprintf("catalog: built-in catalog is invalid: %v", err))
	}
	return c
}

// LoadFromFile reads a catalog from a YAML or JSON file and validates it.
func LoadFromFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a catalog (YAML first, JSON fallback) and validates it.
func Parse(data []byte) (*Catalog, error) {
	c := &Catalog{}

	if err := yaml.Unmarshal(data, c); err != nil {
		c = &Catalog{}
		if err := json.Unmarshal(data, c); err != nil {
			return nil, fmt.Errorf("parse catalog (tried YAML and JSON): %w", err)
		}
	}
	c.fillIDs()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog: %w", err)
	}
	return c, nil
}

// fillIDs copies map keys into the ID fields, which are not serialized.
func (c *Catalog) fillIDs() {
	for k, v := range c.Categories {
		v.ID = k
		c.Categories[k] = v
	}
	for k, v := range c.Commodities {
		v.ID = k
		c.Commodities[k] = v
	}
	for k, v := range c.Locations {
		v.ID = k
		c.Locations[k] = v
	}
}

// Validate checks the catalog for references and ranges the market relies on.
func (c *Catalog) Validate() error {
	if len(c.Commodities) == 0 {
		return fmt.Errorf("at least one commodity is required")
	}
	for id, cat := range c.Categories {
		if id == "" {
			return fmt.Errorf("category id must not be empty")
		}
		if !unit(cat.DemandVolatility) {
			return fmt.Errorf("category %s: demand_volatility must be between 0 and 1", id)
		}
		if !unit(cat.SupplyStability) {
			return fmt.Errorf("category %s: supply_stability must be between 0 and 1", id)
		}
	}
	for id, com := range c.Commodities {
		if id == "" {
			return fmt.Errorf("commodity id must not be empty")
		}
		if com.Name == "" {
			return fmt.Errorf("commodity %s: name is required", id)
		}
		if _, ok := c.Categories[com.Category]; !ok {
			return fmt.Errorf("commodity %s: unknown category %q", id, com.Category)
		}
		if com.BasePrice <= 0 {
			return fmt.Errorf("commodity %s: base_price must be positive", id)
		}
		if !unit(com.Volatility) {
			return fmt.Errorf("commodity %s: volatility must be between 0 and 1", id)
		}
		if com.Volume < 0 {
			return fmt.Errorf("commodity %s: volume must not be negative", id)
		}
	}
	for id := range c.Locations {
		if id == "" {
			return fmt.Errorf("location id must not be empty")
		}
	}
	return nil
}

// MarketLocations returns the IDs of every location with a market, sorted.
func (c *Catalog) MarketLocations() []string {
	var out []string
	for id, loc := range c.Locations {
		if loc.HasMarket() {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// CommodityIDs returns every commodity ID, sorted.
func (c *Catalog) CommodityIDs() []string {
	out := make([]string, 0, len(c.Commodities))
	for id := range c.Commodities {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Commodity looks up a commodity by ID.
func (c *Catalog) Commodity(id string) (Commodity, bool) {
	com, ok := c.Commodities[id]
	return com, ok
}

// CategoryOf returns the category of a commodity.
func (c *Catalog) CategoryOf(commodityID string) (Category, bool) {
	com, ok := c.Commodities[commodityID]
	if !ok {
		return Category{}, false
	}
	cat, ok := c.Categories[com.Category]
	return cat, ok
}

// Location looks up a location by ID.
func (c *Catalog) Location(id string) (Location, bool) {
	loc, ok := c.Locations[id]
	return loc, ok
}

func unit(x float64) bool {
	return x >= 0 && x <= 1
}
