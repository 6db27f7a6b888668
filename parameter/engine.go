package parameter

import "time"

// Frame Loop & Engine Timing
const (
	// FrameUpdateInterval is the frame driver interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// MaxFrameDelta clamps a single frame's integration step, a stalled host never injects a catch-up jump
	MaxFrameDelta = 100 * time.Millisecond

	// HardwareInterval is the hardware stress cadence, independent of the frame driver
	HardwareInterval = 1 * time.Second

	// SnapshotInterval is the cadence of read-only snapshot publication
	SnapshotInterval = 250 * time.Millisecond

	// PausedPollInterval is the scheduler sleep while paused
	PausedPollInterval = 100 * time.Millisecond
)

// Event Queue
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 256

	// EventBufferMask is the bitmask for fast modulo operations (256 - 1)
	EventBufferMask = 255
)

// Console
const (
	// ConsoleCapacity is the number of console entries retained for display
	ConsoleCapacity = 50
)
