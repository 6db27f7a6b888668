package economy

import (
	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/parameter"
)

// Catalog holds base prices indexed by item
type Catalog struct {
	prices [core.ItemCount]float64
}

// DefaultCatalog returns the standard price list
func DefaultCatalog() Catalog {
	var c Catalog
	c.prices[core.ItemStandard] = parameter.PriceStandard
	c.prices[core.ItemMining] = parameter.PriceMining
	c.prices[core.ItemResidential] = parameter.PriceResidential
	c.prices[core.ItemAI] = parameter.PriceAI
	c.prices[core.ItemMicroHub] = parameter.PriceMicroHub
	c.prices[core.ItemFusionHub] = parameter.PriceFusionHub
	c.prices[core.ItemTerminal] = parameter.PriceTerminal
	c.prices[core.ItemEfficiency] = parameter.PriceEfficiency
	c.prices[core.ItemCPU] = parameter.PriceCPU
	return c
}

// WithPrice returns a copy of the catalog with one base price replaced
func (c Catalog) WithPrice(item core.Item, price float64) Catalog {
	if item < core.ItemCount && price >= 0 {
		c.prices[item] = price
	}
	return c
}

// Base returns the unscaled price of an item
func (c Catalog) Base(item core.Item) (float64, error) {
	if item >= core.ItemCount {
		return 0, ErrUnknownItem
	}
	return c.prices[item], nil
}

// Price returns the price of the next unit; upgrades scale with the level being bought
func (c Catalog) Price(item core.Item, l *Ledger) (float64, error) {
	base, err := c.Base(item)
	if err != nil {
		return 0, err
	}
	switch item {
	case core.ItemEfficiency:
		return base * float64(l.Efficiency+1), nil
	case core.ItemCPU:
		return base * float64(l.CPU+1), nil
	default:
		return base, nil
	}
}

// Refund returns the scrap returned for selling a car of the given kind
func (c Catalog) Refund(kind core.CarKind) (float64, error) {
	var item core.Item
	switch kind {
	case core.CarStandard:
		item = core.ItemStandard
	case core.CarMining:
		item = core.ItemMining
	case core.CarResidential:
		item = core.ItemResidential
	case core.CarAI:
		item = core.ItemAI
	case core.CarLocomotive:
		return 0, ErrNotSellable
	default:
		return 0, ErrUnknownItem
	}
	return c.prices[item] * parameter.SellRefundRatio, nil
}
