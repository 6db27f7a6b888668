package economy

import (
	"math"

	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/parameter"
	"github.com/lixenwraith/perimeter/vmath"
)

// Count returns the number of cars of a kind
func Count(cars []core.CarKind, kind core.CarKind) int {
	n := 0
	for _, c := range cars {
		if c == kind {
			n++
		}
	}
	return n
}

// Wagons returns the number of cars behind the locomotive
func Wagons(cars []core.CarKind) int {
	return max(0, len(cars)-1)
}

// EnergyCap grows with standard wagons only
func EnergyCap(cars []core.CarKind) float64 {
	return parameter.BaseEnergyCap + parameter.EnergyCapPerStandard*float64(Count(cars, core.CarStandard))
}

// PassengerCapacity is the seat count of all standard wagons
func PassengerCapacity(cars []core.CarKind) int {
	return parameter.PassengersPerStandard * Count(cars, core.CarStandard)
}

// MiningMultiplier scales scrap income
func MiningMultiplier(cars []core.CarKind) float64 {
	return 1 + parameter.MiningMultiplierStep*float64(Count(cars, core.CarMining))
}

// EnergyFactor maps the energy ratio to a speed fraction: zero when empty, floor plus sqrt ramp otherwise
func EnergyFactor(energy, capacity float64) float64 {
	if energy <= 0 || capacity <= 0 {
		return 0
	}
	ratio := vmath.Clamp(energy/capacity, 0, 1)
	return parameter.EnergyFactorFloor + (1-parameter.EnergyFactorFloor)*math.Sqrt(ratio)
}

// EfficiencyMultiplier is the drain reduction of the efficiency upgrade level
func EfficiencyMultiplier(level int) float64 {
	return vmath.Pow(parameter.EfficiencyStep, max(0, level))
}

// ThermalPenalty is the drain multiplier for the current temperature
func ThermalPenalty(temperature float64) float64 {
	if temperature > parameter.ThermalThreshold {
		return parameter.ThermalDrainPenalty
	}
	return 1
}

// ThermalThrottle is the speed multiplier for the current temperature
func ThermalThrottle(temperature float64) float64 {
	if temperature > parameter.ThermalThreshold {
		return parameter.ThermalThrottleFactor
	}
	return 1
}

// LapCost is the energy one full lap costs, independent of loop geometry
func LapCost(efficiency int, temperature float64) float64 {
	return parameter.LapEnergyBudget * EfficiencyMultiplier(efficiency) * ThermalPenalty(temperature)
}

// DistanceDrain is the energy cost of moving a distance on a loop of the given length
// Returns 0 on a degenerate loop
func DistanceDrain(move, length float64, efficiency int, temperature float64) float64 {
	if move <= 0 || length <= vmath.Epsilon {
		return 0
	}
	return move * LapCost(efficiency, temperature) / length
}

// IdleDrain is the flat drain over dt seconds while not moving
func IdleDrain(seconds float64, derailed bool) float64 {
	if seconds <= 0 {
		return 0
	}
	drain := parameter.IdleDrainPerSecond * seconds
	if derailed {
		drain *= parameter.DerailDrainMultiplier
	}
	return drain
}

// RefuelAmount is the energy delivered by a drone homed at a hub kind
func RefuelAmount(kind core.HubKind) float64 {
	switch kind {
	case core.HubCommand:
		return parameter.RefuelCommand
	case core.HubMicro:
		return parameter.RefuelMicro
	case core.HubFusion:
		return parameter.RefuelFusion
	case core.HubTerminal:
		return 0
	default:
		return 0
	}
}
