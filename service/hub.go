package service

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

var (
	ErrDuplicateService  = errors.New("service already registered")
	ErrMissingDependency = errors.New("missing service dependency")
	ErrDependencyCycle   = errors.New("service dependency cycle")
)

// Hub owns registered services and drives their lifecycle in dependency order
type Hub struct {
	logger   *log.Logger
	services map[string]Service
	names    []string // Registration order, used as tie breaker
	order    []Service
	started  []Service
}

// NewHub creates an empty hub, nil logger discards
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(discard{})
	}
	return &Hub{
		logger:   logger,
		services: make(map[string]Service),
	}
}

// Register adds a service, names must be unique
func (h *Hub) Register(s Service) error {
	name := s.Name()
	if _, ok := h.services[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateService, name)
	}
	h.services[name] = s
	h.names = append(h.names, name)
	return nil
}

// Get returns a registered service by name
func (h *Hub) Get(name string) (Service, bool) {
	s, ok := h.services[name]
	return s, ok
}

// Order returns service names in resolved init order, valid after InitAll
func (h *Hub) Order() []string {
	out := make([]string, len(h.order))
	for i, s := range h.order {
		out[i] = s.Name()
	}
	return out
}

// InitAll resolves dependencies and initializes every service
// args maps a service name to its Init arguments
func (h *Hub) InitAll(args map[string][]any) error {
	order, err := h.resolve()
	if err != nil {
		return err
	}
	h.order = order
	for _, s := range order {
		if err := s.Init(args[s.Name()]...); err != nil {
			return fmt.Errorf("init %s: %w", s.Name(), err)
		}
		h.logger.Debug("service initialized", "name", s.Name())
	}
	return nil
}

// StartAll starts services in init order; on failure already started services are stopped
func (h *Hub) StartAll() error {
	for _, s := range h.order {
		if err := s.Start(); err != nil {
			stopErr := h.StopAll()
			return errors.Join(fmt.Errorf("start %s: %w", s.Name(), err), stopErr)
		}
		h.started = append(h.started, s)
		h.logger.Info("service started", "name", s.Name())
	}
	return nil
}

// StopAll stops started services in reverse order and joins their errors
func (h *Hub) StopAll() error {
	var errs []error
	for i := len(h.started) - 1; i >= 0; i-- {
		s := h.started[i]
		if err := s.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", s.Name(), err))
		}
		h.logger.Info("service stopped", "name", s.Name())
	}
	h.started = nil
	return errors.Join(errs...)
}

// Contribute lets every contributing service publish its resources
func (h *Hub) Contribute(publish ResourcePublisher) {
	for _, s := range h.order {
		if c, ok := s.(ResourceContributor); ok {
			c.Contribute(publish)
		}
	}
}

// resolve orders services depth-first so dependencies come first
func (h *Hub) resolve() ([]Service, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(h.services))
	order := make([]Service, 0, len(h.services))

	var visit func(name, from string) error
	visit = func(name, from string) error {
		s, ok := h.services[name]
		if !ok {
			return fmt.Errorf("%w: %s needs %s", ErrMissingDependency, from, name)
		}
		switch state[name] {
		case visiting:
			return fmt.Errorf("%w: %s", ErrDependencyCycle, name)
		case done:
			return nil
		}
		state[name] = visiting
		for _, dep := range s.Dependencies() {
			if err := visit(dep, name); err != nil {
				return err
			}
		}
		state[name] = done
		order = append(order, s)
		return nil
	}

	for _, name := range h.names {
		if err := visit(name, ""); err != nil {
			return nil, err
		}
	}
	return order, nil
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
