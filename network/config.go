package network

import (
	"time"

	"github.com/lixenwraith/perimeter/parameter"
)

// Config holds observer server configuration
type Config struct {
	// Address to bind, empty disables the server
	Address string

	// Snapshot push cadence for websocket clients
	PushInterval time.Duration

	// Connection limits
	MaxClients int

	// Timing
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	PingInterval    time.Duration
	ShutdownTimeout time.Duration

	// Buffer sizes
	ReadBufferSize  int
	WriteBufferSize int
	SendQueueSize   int
}

// DefaultConfig returns a disabled server with production-safe defaults
func DefaultConfig() *Config {
	return &Config{
		Address:         "",
		PushInterval:    parameter.SnapshotInterval,
		MaxClients:      16,
		ReadTimeout:     60 * time.Second,
		WriteTimeout:    5 * time.Second,
		PingInterval:    20 * time.Second,
		ShutdownTimeout: 3 * time.Second,
		ReadBufferSize:  4 * 1024,
		WriteBufferSize: 64 * 1024,
		SendQueueSize:   16,
	}
}

// DebugConfig returns defaults bound to addr
func DebugConfig(addr string) *Config {
	cfg := DefaultConfig()
	cfg.Address = addr
	return cfg
}
