package core

import "fmt"

// CarKind is the closed set of cars a train is composed of
type CarKind uint8

const (
	CarLocomotive CarKind = iota
	CarStandard           // Passenger seats, raises energy cap
	CarMining             // Scrap multiplier
	CarResidential        // Population, passive scrap while moving
	CarAI                 // Autopilot: suppresses idle decay, heavy hardware load
)

// String returns the car name
func (k CarKind) String() string {
	switch k {
	case CarLocomotive:
		return "locomotive"
	case CarStandard:
		return "standard"
	case CarMining:
		return "mining"
	case CarResidential:
		return "residential"
	case CarAI:
		return "ai"
	default:
		return "unknown"
	}
}

// MarshalText encodes the car kind by name
func (k CarKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a car kind name
func (k *CarKind) UnmarshalText(b []byte) error {
	for c := CarLocomotive; c <= CarAI; c++ {
		if c.String() == string(b) {
			*k = c
			return nil
		}
	}
	return fmt.Errorf("unknown car kind %q", b)
}

// HubKind is the closed set of energy hub variants
type HubKind uint8

const (
	HubCommand  HubKind = iota // Bound to the draggable anchor
	HubMicro                   // Small refuel depot on the loop
	HubFusion                  // Large refuel depot on the loop
	HubTerminal                // Passenger terminal, never a drone home
)

var hubKindNames = [...]string{"command", "micro", "fusion", "terminal"}

// String returns the hub name
func (k HubKind) String() string {
	if int(k) < len(hubKindNames) {
		return hubKindNames[k]
	}
	return "unknown"
}

// MarshalText encodes the hub kind by name
func (k HubKind) MarshalText() ([]byte, error) {
	if int(k) >= len(hubKindNames) {
		return nil, fmt.Errorf("invalid hub kind %d", k)
	}
	return []byte(hubKindNames[k]), nil
}

// UnmarshalText decodes a hub kind name
func (k *HubKind) UnmarshalText(b []byte) error {
	for i, name := range hubKindNames {
		if name == string(b) {
			*k = HubKind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown hub kind %q", b)
}

// IsEnergy reports whether the drone can be homed at this hub
func (k HubKind) IsEnergy() bool {
	switch k {
	case HubCommand, HubMicro, HubFusion:
		return true
	case HubTerminal:
		return false
	default:
		return false
	}
}

// Item is the closed set of purchasable goods
type Item uint8

const (
	ItemStandard Item = iota
	ItemMining
	ItemResidential
	ItemAI
	ItemMicroHub
	ItemFusionHub
	ItemTerminal
	ItemEfficiency
	ItemCPU
	ItemCount
)

// String returns the item name
func (i Item) String() string {
	switch i {
	case ItemStandard:
		return "standard"
	case ItemMining:
		return "mining"
	case ItemResidential:
		return "residential"
	case ItemAI:
		return "ai"
	case ItemMicroHub:
		return "micro"
	case ItemFusionHub:
		return "fusion"
	case ItemTerminal:
		return "terminal"
	case ItemEfficiency:
		return "efficiency"
	case ItemCPU:
		return "cpu"
	default:
		return "unknown"
	}
}

// Car returns the wagon kind an item buys, ok is false for hubs and upgrades
func (i Item) Car() (CarKind, bool) {
	switch i {
	case ItemStandard:
		return CarStandard, true
	case ItemMining:
		return CarMining, true
	case ItemResidential:
		return CarResidential, true
	case ItemAI:
		return CarAI, true
	default:
		return 0, false
	}
}

// Hub returns the hub kind an item builds, ok is false for wagons and upgrades
func (i Item) Hub() (HubKind, bool) {
	switch i {
	case ItemMicroHub:
		return HubMicro, true
	case ItemFusionHub:
		return HubFusion, true
	case ItemTerminal:
		return HubTerminal, true
	default:
		return 0, false
	}
}

// AgentStatus is the service drone state
type AgentStatus uint8

const (
	AgentIdle AgentStatus = iota
	AgentApproaching
	AgentServicing
	AgentReturning
	AgentRebooting
)

// String returns the status name
func (s AgentStatus) String() string {
	switch s {
	case AgentIdle:
		return "idle"
	case AgentApproaching:
		return "approaching"
	case AgentServicing:
		return "servicing"
	case AgentReturning:
		return "returning"
	case AgentRebooting:
		return "rebooting"
	default:
		return "unknown"
	}
}

// MarshalText encodes the status by name
func (s AgentStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name
func (s *AgentStatus) UnmarshalText(b []byte) error {
	for st := AgentIdle; st <= AgentRebooting; st++ {
		if st.String() == string(b) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("unknown agent status %q", b)
}

// AgentTask is the transaction a drone sortie performs
type AgentTask uint8

const (
	TaskNone AgentTask = iota
	TaskRefuel
	TaskReboot
)

// String returns the task name
func (t AgentTask) String() string {
	switch t {
	case TaskNone:
		return "none"
	case TaskRefuel:
		return "refuel"
	case TaskReboot:
		return "reboot"
	default:
		return "unknown"
	}
}

// MarshalText encodes the task by name
func (t AgentTask) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a task name
func (t *AgentTask) UnmarshalText(b []byte) error {
	for tk := TaskNone; tk <= TaskReboot; tk++ {
		if tk.String() == string(b) {
			*t = tk
			return nil
		}
	}
	return fmt.Errorf("unknown agent task %q", b)
}

// ParticleShape distinguishes smoke puffs from storm sparks
type ParticleShape uint8

const (
	ShapePuff ParticleShape = iota
	ShapeSpark
)

// Level is the console entry severity
type Level uint8

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelInput
)

var levelNames = [...]string{"info", "success", "warning", "input"}

// String returns the level name
func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// MarshalText encodes the level by name
func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText decodes a level name
func (l *Level) UnmarshalText(b []byte) error {
	for i, name := range levelNames {
		if name == string(b) {
			*l = Level(i)
			return nil
		}
	}
	return fmt.Errorf("unknown level %q", b)
}
