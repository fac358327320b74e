package models

import (
	"github.com/shopspring/decimal"

	apperrors "github.com/etivest/rebalancer/internal/errors"
)

// Selector extracts one numeric field from an asset.
type Selector func(*Asset) decimal.Decimal

// Field selectors accepted by AssetCollection.Aggregate.
var (
	ByCurrentAmount     Selector = (*Asset).CurrentAmount
	ByTargetPercentage  Selector = (*Asset).TargetPercentage
	ByCurrentPercentage Selector = (*Asset).CurrentPercentage
	ByTargetAmount      Selector = (*Asset).TargetAmount
)

// AssetCollection is a set of assets keyed by exact name. Insertion order is
// remembered so results can be reported in the order they were submitted.
//
// A collection is not safe for concurrent use; build one per calculation.
type AssetCollection struct {
	assets map[string]*Asset
	order  []string
}

// NewAssetCollection returns an empty collection.
func NewAssetCollection() *AssetCollection {
	return &AssetCollection{assets: make(map[string]*Asset)}
}

// Insert adds the asset and takes ownership of it. The collection is left
// unchanged if an asset with the same name is already present.
func (c *AssetCollection) Insert(asset *Asset) error {
	if c.assets == nil {
		c.assets = make(map[string]*Asset)
	}
	if _, ok := c.assets[asset.name]; ok {
		return &apperrors.DuplicateNameError{Name: asset.name}
	}
	c.assets[asset.name] = asset
	c.order = append(c.order, asset.name)
	return nil
}

// Get returns a copy of the named asset.
func (c *AssetCollection) Get(name string) (Asset, bool) {
	a, ok := c.assets[name]
	if !ok {
		return Asset{}, false
	}
	return *a, true
}

// Lookup returns the stored asset itself so its derived fields can be updated.
func (c *AssetCollection) Lookup(name string) (*Asset, bool) {
	a, ok := c.assets[name]
	return a, ok
}

func (c *AssetCollection) Len() int {
	return len(c.assets)
}

// Assets returns the stored assets in insertion order.
func (c *AssetCollection) Assets() []*Asset {
	out := make([]*Asset, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.assets[name])
	}
	return out
}

// Aggregate sums the selected field over every asset without rounding.
func (c *AssetCollection) Aggregate(selector Selector) decimal.Decimal {
	return Sum[*Asset](c.Assets(), selector)
}

// Clone returns an independent copy of the collection and its assets.
func (c *AssetCollection) Clone() *AssetCollection {
	out := &AssetCollection{
		assets: make(map[string]*Asset, len(c.assets)),
		order:  append([]string(nil), c.order...),
	}
	for name, a := range c.assets {
		cp := *a
		out.assets[name] = &cp
	}
	return out
}

// Results reports every asset in insertion order.
func (c *AssetCollection) Results() []AssetResult {
	out := make([]AssetResult, 0, len(c.order))
	for _, a := range c.Assets() {
		out = append(out, NewAssetResult(a))
	}
	return out
}

// Sum adds a decimal projection of every item.
func Sum[T any](items []T, selector func(T) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(selector(item))
	}
	return total
}
