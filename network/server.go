// Package network serves read-only observers: a JSON snapshot endpoint, the telemetry registry
// and a websocket stream of periodic snapshots
package network

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/lixenwraith/perimeter/core"
	"github.com/lixenwraith/perimeter/engine"
	"github.com/lixenwraith/perimeter/status"
)

// Source produces snapshots, implemented by engine.World
type Source interface {
	Snapshot() engine.Snapshot
}

// Server is the observer service
type Server struct {
	config   *Config
	source   Source
	registry *status.Registry
	logger   *log.Logger

	clients  *ClientManager
	upgrader websocket.Upgrader
	router   chi.Router

	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener

	seq      atomic.Uint64
	running  atomic.Bool
	disabled atomic.Bool

	statClients *atomic.Int64
	statSent    *atomic.Int64
	statDropped *atomic.Int64
}

// NewServer creates an observer server (disabled until Init with an address)
func NewServer(source Source, registry *status.Registry, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(discard{})
	}
	s := &Server{
		config:   DefaultConfig(),
		source:   source,
		registry: registry,
		logger:   logger,

		statClients: registry.Ints.Get("observer.clients"),
		statSent:    registry.Ints.Get("observer.sent"),
		statDropped: registry.Ints.Get("observer.dropped"),
	}
	s.configure()
	return s
}

func (s *Server) configure() {
	s.clients = NewClientManager(s.config)
	s.clients.onDisconnect = func(id ClientID) {
		s.statClients.Store(int64(s.clients.Count()))
		s.logger.Debug("observer disconnected", "client", id)
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  s.config.ReadBufferSize,
		WriteBufferSize: s.config.WriteBufferSize,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
	s.router = s.routes()
}

// Name implements service.Service
func (s *Server) Name() string {
	return "network"
}

// Dependencies implements service.Service
func (s *Server) Dependencies() []string {
	return nil
}

// Init implements service.Service
// args[0]: *Config (optional, overrides default)
func (s *Server) Init(args ...any) error {
	if len(args) > 0 {
		if cfg, ok := args[0].(*Config); ok && cfg != nil {
			s.config = cfg
			s.configure()
		}
	}
	s.disabled.Store(s.config.Address == "")
	return nil
}

// Start implements service.Service, binding the listener synchronously
func (s *Server) Start() error {
	if s.disabled.Load() || !s.running.CompareAndSwap(false, true) {
		return nil
	}

	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		s.running.Store(false)
		return fmt.Errorf("observer listen: %w", err)
	}
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: s.config.WriteTimeout,
	}

	s.mu.Lock()
	s.listener = ln
	s.httpServer = srv
	s.mu.Unlock()

	core.Go(func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("observer server stopped", "err", err)
		}
	})
	s.logger.Info("observer listening", "addr", ln.Addr().String())
	return nil
}

// Stop implements service.Service
func (s *Server) Stop() error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}
	s.clients.Close()

	s.mu.Lock()
	srv := s.httpServer
	s.httpServer = nil
	s.listener = nil
	s.mu.Unlock()
	if srv == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}

// IsRunning reports whether the listener is bound
func (s *Server) IsRunning() bool {
	return s.running.Load()
}

// Addr returns the bound address, empty when not running
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Handler exposes the router for embedding and tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// ClientCount returns connected websocket observers
func (s *Server) ClientCount() int {
	return s.clients.Count()
}

// Publish pushes one snapshot to every observer; scheduled at the snapshot cadence
func (s *Server) Publish(now time.Time) {
	if s.clients.Count() == 0 {
		return
	}
	snap := s.source.Snapshot()
	data, err := s.encode(MsgSnapshot, &snap)
	if err != nil {
		s.logger.Error("snapshot encode failed", "err", err)
		return
	}
	sent, dropped := s.clients.Broadcast(data)
	s.statSent.Add(int64(sent))
	s.statDropped.Add(int64(dropped))
}

func (s *Server) encode(t MessageType, snap *engine.Snapshot) ([]byte, error) {
	msg := &Message{
		Type:     t,
		Seq:      s.seq.Add(1),
		Snapshot: snap,
	}
	if t == MsgHello {
		msg.Version = ProtocolVersion
	}
	return msg.Encode()
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(corsMiddleware)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/snapshot", s.handleSnapshot)
	r.Get("/metrics", s.handleMetrics)
	r.Get("/ws", s.handleStream)
	return r
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	snap := s.source.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		http.Error(w, "failed to encode", http.StatusInternalServerError)
	}
}

// handleMetrics dumps the registry, ?prefix=hardware. narrows it to one subsystem
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.registry.Export(r.URL.Query().Get("prefix"))); err != nil {
		http.Error(w, "failed to encode", http.StatusInternalServerError)
	}
}

// handleStream upgrades and greets the observer with the current snapshot
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	if s.config.MaxClients > 0 && s.clients.Count() >= s.config.MaxClients {
		http.Error(w, ErrServerFull.Error(), http.StatusServiceUnavailable)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("observer upgrade failed", "err", err)
		return
	}
	c, err := s.clients.Add(conn)
	if err != nil {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseTryAgainLater, err.Error()),
			time.Now().Add(time.Second))
		conn.Close()
		return
	}
	s.statClients.Store(int64(s.clients.Count()))
	s.logger.Debug("observer connected", "client", c.ID, "addr", c.Addr)

	snap := s.source.Snapshot()
	if data, err := s.encode(MsgHello, &snap); err == nil {
		c.Send(data)
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
