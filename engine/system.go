package engine

// System is a per-frame simulation step
// Systems run in ascending Priority order under the world lock
type System interface {
	Name() string
	Priority() int
	Update()
}
