package skin

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/event"
	"github.com/lixenwraith/perimeter/parameter"
	"github.com/lixenwraith/perimeter/status"
)

// Pusher receives outcome events, implemented by engine.World
type Pusher interface {
	PushEvent(eventType event.EventType, payload any)
}

// Config holds generator settings
type Config struct {
	Endpoint          string // Empty disables the service
	RequestsPerMinute float64
	Burst             int
	Timeout           time.Duration
}

// DefaultConfig returns a disabled service with default throttling
func DefaultConfig() *Config {
	return &Config{
		RequestsPerMinute: parameter.SkinRequestsPerMinute,
		Burst:             parameter.SkinBurst,
		Timeout:           parameter.SkinTimeout,
	}
}

// Service runs one generation at a time and reports results as events
type Service struct {
	config    *Config
	generator Generator
	pusher    Pusher
	logger    *log.Logger
	limiter   *rate.Limiter

	busy     atomic.Bool
	disabled atomic.Bool
	themeIdx atomic.Int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	statRequests *atomic.Int64
	statFailures *atomic.Int64
}

// NewService creates a skin service; a nil generator is built from the configured endpoint at Init
func NewService(gen Generator, pusher Pusher, registry *status.Registry, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(discard{})
	}
	s := &Service{
		config:    DefaultConfig(),
		generator: gen,
		pusher:    pusher,
		logger:    logger,

		statRequests: registry.Ints.Get("skin.requests"),
		statFailures: registry.Ints.Get("skin.failures"),
	}
	s.themeIdx.Store(-1)
	return s
}

// Name implements service.Service
func (s *Service) Name() string {
	return "skin"
}

// Dependencies implements service.Service
func (s *Service) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: *Config (optional, overrides default)
func (s *Service) Init(args ...any) error {
	if len(args) > 0 {
		if cfg, ok := args[0].(*Config); ok && cfg != nil {
			s.config = cfg
		}
	}
	if s.generator == nil && s.config.Endpoint != "" {
		s.generator = NewHTTPGenerator(s.config.Endpoint)
	}
	s.disabled.Store(s.generator == nil)

	burst := s.config.Burst
	if burst < 1 {
		burst = 1
	}
	s.limiter = rate.NewLimiter(rate.Limit(s.config.RequestsPerMinute/60), burst)
	return nil
}

// Start implements service.Service
func (s *Service) Start() error {
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return nil
}

// Stop implements service.Service, cancelling an in-flight request
func (s *Service) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	return nil
}

// Enabled reports whether a generator is configured
func (s *Service) Enabled() bool {
	return !s.disabled.Load()
}

// NextTheme cycles the preset themes
func (s *Service) NextTheme() string {
	i := s.themeIdx.Add(1)
	return parameter.SkinThemes[int(i)%len(parameter.SkinThemes)]
}

// Request starts generation for theme; the outcome arrives as EventSkinApplied or EventSkinFailed
// Rejections are returned synchronously and also reported as EventSkinFailed
func (s *Service) Request(theme string) error {
	theme = strings.TrimSpace(theme)
	var err error
	switch {
	case s.disabled.Load() || s.ctx == nil:
		err = ErrDisabled
	case theme == "":
		err = ErrEmptyTheme
	case !s.limiter.Allow():
		err = ErrRateLimited
	case !s.busy.CompareAndSwap(false, true):
		err = ErrBusy
	}
	if err != nil {
		s.fail(theme, err)
		return err
	}

	s.statRequests.Add(1)
	s.wg.Add(1)
	core.Go(func() {
		defer s.wg.Done()
		defer s.busy.Store(false)
		s.run(theme)
	})
	return nil
}

func (s *Service) run(theme string) {
	ctx, cancel := context.WithTimeout(s.ctx, s.config.Timeout)
	defer cancel()

	s.logger.Debug("skin requested", "theme", theme)
	ref, err := s.generator.Generate(ctx, theme)
	if err != nil {
		s.fail(theme, err)
		return
	}
	s.logger.Info("skin generated", "theme", theme, "bytes", len(ref))
	s.pusher.PushEvent(event.EventSkinApplied, &event.SkinPayload{Theme: theme, Ref: ref})
}

func (s *Service) fail(theme string, err error) {
	s.statFailures.Add(1)
	s.logger.Warn("skin generation failed", "theme", theme, "err", err)
	s.pusher.PushEvent(event.EventSkinFailed, &event.SkinPayload{Theme: theme, Err: err})
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
