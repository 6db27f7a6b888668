package parameter

import "time"

// Speed
const (
	// DefaultSpeed is the base speed setting
	DefaultSpeed = 8.0

	// MaxSpeed bounds SetSpeed
	MaxSpeed = 30.0

	// UnitsPerSecond converts a speed setting into loop distance per second
	UnitsPerSecond = 20.0
)

// Idle Cruise
const (
	// IdleGrace is the inactivity before speed starts decaying
	IdleGrace = 10 * time.Second

	// IdleDecayWindow is the time over which speed eases down to the idle floor
	IdleDecayWindow = 20 * time.Second

	// IdleFloor is the idle speed fraction with idle cruise enabled
	IdleFloor = 0.25

	// WakeBoost is the speed multiplier applied when activity resumes after decay
	WakeBoost = 1.5

	// WakeBoostDuration is the time for the wake boost to fade back to 1
	WakeBoostDuration = 2 * time.Second
)

// Energy
const (
	// BaseEnergyCap is the energy capacity with no standard wagons
	BaseEnergyCap = 100.0

	// EnergyCapPerStandard is the capacity added by each standard wagon
	EnergyCapPerStandard = 20.0

	// EnergyFactorFloor is the speed fraction at the lowest non-zero energy
	EnergyFactorFloor = 0.35

	// LapEnergyBudget is the energy one full lap costs at efficiency level 0
	LapEnergyBudget = 10.0

	// EfficiencyStep is the per-level multiplier on distance drain
	EfficiencyStep = 0.85

	// IdleDrainPerSecond is the flat drain while not moving
	IdleDrainPerSecond = 0.05

	// DerailDrainMultiplier scales idle drain while derailed
	DerailDrainMultiplier = 2.0

	// ThermalThreshold is the temperature above which speed throttles and drain grows
	ThermalThreshold = 85.0

	// ThermalThrottleFactor is the speed fraction above the thermal threshold
	ThermalThrottleFactor = 0.5

	// ThermalDrainPenalty scales distance drain above the thermal threshold
	ThermalDrainPenalty = 1.5
)

// Pulse
const (
	// PulseImpulse is the loop distance granted by one pulse, released geometrically
	PulseImpulse = 40.0

	// ImpulseDecay is the fraction of pending impulse released each frame
	ImpulseDecay = 0.1

	// ImpulseEpsilon is the pending impulse below which it is discarded
	ImpulseEpsilon = 0.01

	// PulseEnergy is the energy a pulse restores
	PulseEnergy = 2.0

	// PulseScrap is the scrap a pulse yields before the mining multiplier
	PulseScrap = 1.0

	// PulseCooldown is the minimum interval between accepted pulses
	PulseCooldown = 150 * time.Millisecond
)

// Scrap & Passengers
const (
	// ScrapPerResidentialPerSecond accrues while moving, per residential wagon
	ScrapPerResidentialPerSecond = 0.2

	// MiningMultiplierStep is the scrap multiplier added by each mining wagon
	MiningMultiplierStep = 0.5

	// PassengersPerStandard is the seat count of one standard wagon
	PassengersPerStandard = 10

	// PopulationPerResidential is the population housed by one residential wagon
	PopulationPerResidential = 5

	// ScrapPerPassenger is the settlement payout per disembarked passenger
	ScrapPerPassenger = 2.0

	// GodModeScrap is the scrap granted by the developer grant
	GodModeScrap = 999.0
)

// Catalog
const (
	// MaxWagons caps the cars behind the locomotive
	MaxWagons = 12

	// SellRefundRatio is the fraction of the price returned on sale
	SellRefundRatio = 0.5

	// MaxUpgradeLevel caps efficiency and CPU upgrades
	MaxUpgradeLevel = 5

	PriceStandard    = 15.0
	PriceMining      = 40.0
	PriceResidential = 20.0
	PriceAI          = 60.0
	PriceMicroHub    = 50.0
	PriceFusionHub   = 120.0
	PriceTerminal    = 80.0
	PriceEfficiency  = 30.0 // Multiplied by (level + 1)
	PriceCPU         = 45.0 // Multiplied by (level + 1)
)

// Initial resources
const (
	InitialEnergy = 100.0
	InitialScrap  = 0.0
)
