package network

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lixenwraith/perimeter/core"
)

// ErrServerFull is returned when MaxClients observers are already connected
var ErrServerFull = errors.New("observer limit reached")

// ClientID uniquely identifies a connected observer
type ClientID uint32

// Client is one websocket observer
type Client struct {
	ID       ClientID
	Addr     string
	LastSeen atomic.Int64 // UnixNano

	conn   *websocket.Conn
	sendCh chan []byte
	cfg    *Config

	closeCh   chan struct{}
	closeOnce sync.Once
}

func newClient(id ClientID, conn *websocket.Conn, cfg *Config) *Client {
	c := &Client{
		ID:      id,
		Addr:    conn.RemoteAddr().String(),
		conn:    conn,
		sendCh:  make(chan []byte, cfg.SendQueueSize),
		cfg:     cfg,
		closeCh: make(chan struct{}),
	}
	c.LastSeen.Store(time.Now().UnixNano())
	return c
}

// Send queues an encoded frame, false when closed or the queue is full
func (c *Client) Send(data []byte) bool {
	select {
	case <-c.closeCh:
		return false
	default:
	}
	select {
	case c.sendCh <- data:
		return true
	default:
		return false
	}
}

// Close initiates shutdown, idempotent; the write loop sends the close frame and releases the socket
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		close(c.closeCh)
	})
}

// Done is closed when the client shuts down
func (c *Client) Done() <-chan struct{} {
	return c.closeCh
}

// readLoop drains inbound frames to observe close and pong
func (c *Client) readLoop() {
	defer c.Close()

	c.conn.SetReadLimit(4 * 1024)
	c.conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		c.LastSeen.Store(time.Now().UnixNano())
		return c.conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
		c.LastSeen.Store(time.Now().UnixNano())
		c.conn.SetReadDeadline(time.Now().Add(c.cfg.ReadTimeout))
	}
}

// writeLoop sends queued frames and keepalive pings
func (c *Client) writeLoop() {
	defer func() {
		c.Close()
		c.conn.Close()
	}()

	ping := time.NewTicker(c.cfg.PingInterval)
	defer ping.Stop()

	for {
		select {
		case <-c.closeCh:
			c.conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"),
				time.Now().Add(time.Second))
			return
		case data := <-c.sendCh:
			c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ping.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(c.cfg.WriteTimeout)); err != nil {
				return
			}
		}
	}
}

// ClientManager tracks connected observers
type ClientManager struct {
	mu         sync.RWMutex
	clients    map[ClientID]*Client
	nextID     atomic.Uint32
	maxClients int
	config     *Config

	onDisconnect func(ClientID)
}

// NewClientManager creates a client manager
func NewClientManager(cfg *Config) *ClientManager {
	return &ClientManager{
		clients:    make(map[ClientID]*Client),
		maxClients: cfg.MaxClients,
		config:     cfg,
	}
}

// Add registers an upgraded connection and starts its loops
func (cm *ClientManager) Add(conn *websocket.Conn) (*Client, error) {
	cm.mu.Lock()
	if cm.maxClients > 0 && len(cm.clients) >= cm.maxClients {
		cm.mu.Unlock()
		return nil, ErrServerFull
	}
	c := newClient(ClientID(cm.nextID.Add(1)), conn, cm.config)
	cm.clients[c.ID] = c
	cm.mu.Unlock()

	core.Go(c.readLoop)
	core.Go(c.writeLoop)
	core.Go(func() { cm.monitor(c) })
	return c, nil
}

// monitor removes the client once it closes
func (cm *ClientManager) monitor(c *Client) {
	<-c.closeCh
	cm.mu.Lock()
	delete(cm.clients, c.ID)
	cb := cm.onDisconnect
	cm.mu.Unlock()
	if cb != nil {
		cb(c.ID)
	}
}

// Broadcast queues data to every client, returning delivered and dropped counts
func (cm *ClientManager) Broadcast(data []byte) (sent, dropped int) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	for _, c := range cm.clients {
		if c.Send(data) {
			sent++
		} else {
			dropped++
		}
	}
	return sent, dropped
}

// Count returns connected clients
func (cm *ClientManager) Count() int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.clients)
}

// Close disconnects every client
func (cm *ClientManager) Close() {
	cm.mu.RLock()
	clients := make([]*Client, 0, len(cm.clients))
	for _, c := range cm.clients {
		clients = append(clients, c)
	}
	cm.mu.RUnlock()
	for _, c := range clients {
		c.Close()
	}
}
