// Package service runs the long-lived host subsystems (audio, observer server, skin generator)
// behind one lifecycle so the host can start and stop them in dependency order
package service

// Service defines the lifecycle interface for infrastructure subsystems
//
// Lifecycle:
//  1. Construction (via factory)
//  2. Init(args...) - configuration from parsed flags and config file
//  3. Start() - launch background goroutines
//  4. [runtime operation]
//  5. Stop() - halt goroutines, release resources
type Service interface {
	// Name returns the unique identifier for this service
	Name() string

	// Dependencies returns names of services that must Init before this one
	Dependencies() []string

	// Init configures the service from optional args
	Init(args ...any) error

	// Start begins service operation, called after all services have initialized
	Start() error

	// Stop halts service operation and releases resources
	// Must be idempotent
	Stop() error
}

// ResourcePublisher is a callback for services to contribute world resources
// Services call this with wrapped resources; receiver handles type routing
type ResourcePublisher func(resource any)

// ResourceContributor is implemented by services that expose APIs to systems
// Services not implementing it are skipped during contribution
type ResourceContributor interface {
	Contribute(publish ResourcePublisher)
}
