package parameter

import "time"

// Terminal Stops
const (
	// TerminalWindowMin is the minimum stop window length past a terminal
	TerminalWindowMin = 3.0

	// TerminalWindowSpeedFactor scales the last frame's movement into the stop window
	TerminalWindowSpeedFactor = 1.5

	// TerminalStopDuration is the halt before passenger settlement
	TerminalStopDuration = 3 * time.Second

	// TerminalClearDistance is the distance past a terminal that re-arms it
	TerminalClearDistance = 200.0

	// TerminalSpawnInterval is the time for one more passenger to arrive at a terminal
	TerminalSpawnInterval = 2 * time.Second

	// TerminalMaxWaiting caps waiting passengers per terminal
	TerminalMaxWaiting = 48

	// TerminalInitialWaiting is the queue of a freshly built terminal
	TerminalInitialWaiting = 8
)
