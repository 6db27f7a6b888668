package parameter

import "time"

// Service Agent (Drone)
const (
	// LowEnergyRatio is the energy/cap ratio that dispatches a refuel
	LowEnergyRatio = 0.25

	// AgentCooldown is the minimum time between completed actions and a new refuel dispatch
	AgentCooldown = 8 * time.Second

	// AgentSpeedPerMs is the drone flight speed in virtual pixels per millisecond
	AgentSpeedPerMs = 0.25

	// AgentArrivalEpsilon is the distance considered arrived
	AgentArrivalEpsilon = 6.0

	// RefuelDelay is the settlement delay of a refuel after arrival
	RefuelDelay = 1 * time.Second

	// RebootDelay is the settlement delay of a reboot after arrival
	RebootDelay = 2 * time.Second

	// RebootEnergyRatio is the energy/cap ratio set by a completed reboot
	RebootEnergyRatio = 0.5
)

// Refuel amounts per home hub kind
const (
	RefuelCommand = 40.0
	RefuelMicro   = 30.0
	RefuelFusion  = 60.0
)
