package parameter

// Frame System Execution Priorities (lower runs first)
const (
	PriorityIntent      = 0  // Event-driven only
	PriorityMotion      = 10 // Economy integration and distance advance
	PriorityTerminal    = 20 // After distance advance
	PriorityAgent       = 30 // After terminal snap, reads live locomotive position
	PriorityParticle    = 40 // After agent, reads final speed and storm state
	PriorityTransform   = 50 // Publishes the frame for presentation
	PriorityConsole     = 60 // Event-driven only
	PriorityAudio       = 70 // Event-driven only
	PriorityPersistence = 80 // Event-driven only
)
