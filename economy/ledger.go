// Package economy holds the resource ledger and the rules tying it to train composition
package economy

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/parameter"
	"github.com/lixenwraith/perimeter/vmath"
)

var (
	ErrInsufficientScrap = errors.New("insufficient scrap")
	ErrWagonLimit        = errors.New("wagon limit reached")
	ErrNotSellable       = errors.New("car not sellable")
	ErrMaxLevel          = errors.New("upgrade at max level")
	ErrUnknownItem       = errors.New("unknown item")
)

// Ledger is the mutable resource state of the train
// Energy stays within [0, EnergyCap(cars)], Passengers within [0, PassengerCapacity(cars)]
type Ledger struct {
	Energy        float64 `json:"energy"`
	Scrap         float64 `json:"scrap"`
	Passengers    int     `json:"passengers"`
	Population    int     `json:"population"`
	TotalDistance float64 `json:"total_distance"`
	Efficiency    int     `json:"efficiency"`
	CPU           int     `json:"cpu"`
}

// NewLedger returns the startup ledger
func NewLedger() Ledger {
	return Ledger{
		Energy: parameter.InitialEnergy,
		Scrap:  parameter.InitialScrap,
	}
}

// Receipt describes an accepted purchase
type Receipt struct {
	Item  core.Item
	Cost  float64
	Cars  []core.CarKind // Composition after the purchase
	Hub   core.HubKind   // Valid when IsHub
	IsHub bool
}

// Buy charges scrap for an item and applies it
// Wagons are appended to the returned composition; hubs are reported for the caller to place
func (l *Ledger) Buy(c Catalog, item core.Item, cars []core.CarKind) (Receipt, error) {
	price, err := c.Price(item, l)
	if err != nil {
		return Receipt{}, err
	}

	rcpt := Receipt{Item: item, Cost: price, Cars: cars}

	switch item {
	case core.ItemStandard, core.ItemMining, core.ItemResidential, core.ItemAI:
		if Wagons(cars) >= parameter.MaxWagons {
			return Receipt{}, ErrWagonLimit
		}
	case core.ItemEfficiency:
		if l.Efficiency >= parameter.MaxUpgradeLevel {
			return Receipt{}, ErrMaxLevel
		}
	case core.ItemCPU:
		if l.CPU >= parameter.MaxUpgradeLevel {
			return Receipt{}, ErrMaxLevel
		}
	case core.ItemMicroHub, core.ItemFusionHub, core.ItemTerminal:
	default:
		return Receipt{}, ErrUnknownItem
	}

	if l.Scrap+vmath.Epsilon < price {
		return Receipt{}, fmt.Errorf("%s costs %.0f, have %.0f: %w", item, price, l.Scrap, ErrInsufficientScrap)
	}
	l.Scrap = math.Max(0, l.Scrap-price)

	if kind, ok := item.Car(); ok {
		next := make([]core.CarKind, len(cars), len(cars)+1)
		copy(next, cars)
		rcpt.Cars = append(next, kind)
		if kind == core.CarResidential {
			l.Population += parameter.PopulationPerResidential
		}
	} else if hub, ok := item.Hub(); ok {
		rcpt.Hub = hub
		rcpt.IsHub = true
	} else {
		switch item {
		case core.ItemEfficiency:
			l.Efficiency++
		case core.ItemCPU:
			l.CPU++
		}
	}

	return rcpt, nil
}

// Sell removes the car at index and refunds part of its price
// The locomotive at index 0 is never sellable; energy and passengers are clamped to the reduced capacity
func (l *Ledger) Sell(c Catalog, cars []core.CarKind, index int) ([]core.CarKind, float64, error) {
	if index <= 0 || index >= len(cars) {
		return cars, 0, ErrNotSellable
	}

	kind := cars[index]
	refund, err := c.Refund(kind)
	if err != nil {
		return cars, 0, err
	}

	next := make([]core.CarKind, 0, len(cars)-1)
	next = append(next, cars[:index]...)
	next = append(next, cars[index+1:]...)

	l.Scrap += refund
	if kind == core.CarResidential {
		l.Population = max(0, l.Population-parameter.PopulationPerResidential)
	}
	l.Clamp(next)

	return next, refund, nil
}

// Clamp enforces the capacity invariants against a composition
func (l *Ledger) Clamp(cars []core.CarKind) {
	l.Energy = vmath.Clamp(l.Energy, 0, EnergyCap(cars))
	l.Passengers = max(0, min(l.Passengers, PassengerCapacity(cars)))
	l.Scrap = math.Max(0, l.Scrap)
	l.Population = max(0, l.Population)
}

// AddEnergy credits energy up to the cap and returns the amount actually added
func (l *Ledger) AddEnergy(amount float64, cars []core.CarKind) float64 {
	if amount <= 0 {
		return 0
	}
	before := l.Energy
	l.Energy = math.Min(EnergyCap(cars), l.Energy+amount)
	if l.Energy < before {
		// Energy above a shrunk cap is never raised further
		l.Energy = before
		return 0
	}
	return l.Energy - before
}

// Drain removes energy, never below zero, and returns the amount actually removed
func (l *Ledger) Drain(amount float64) float64 {
	if amount <= 0 {
		return 0
	}
	before := l.Energy
	l.Energy = math.Max(0, l.Energy-amount)
	return before - l.Energy
}

// SetEnergyRatio sets energy to a fraction of the cap
func (l *Ledger) SetEnergyRatio(ratio float64, cars []core.CarKind) {
	l.Energy = EnergyCap(cars) * vmath.Clamp(ratio, 0, 1)
}

// EarnScrap credits scrap scaled by the mining multiplier
func (l *Ledger) EarnScrap(base float64, cars []core.CarKind) float64 {
	if base <= 0 {
		return 0
	}
	earned := base * MiningMultiplier(cars)
	l.Scrap += earned
	return earned
}

// Settle disembarks all passengers for a payout and boards up to capacity from waiting
// Returns the payout and the number boarded
func (l *Ledger) Settle(cars []core.CarKind, waiting int) (float64, int) {
	payout := float64(l.Passengers) * parameter.ScrapPerPassenger * MiningMultiplier(cars)
	l.Scrap += payout
	l.Passengers = 0

	boarded := max(0, min(PassengerCapacity(cars), waiting))
	l.Passengers = boarded
	return payout, boarded
}
