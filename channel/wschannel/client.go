package wschannel

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/ntutangyun/ai-ran-sim/channel"
	"github.com/ntutangyun/ai-ran-sim/errors"
)

// Envelope wraps all WebSocket messages with type discrimination. Type
// carries the (namespace, action) key in subject form; ID is a per-message
// identifier used in diagnostics only, never for correlation.
type Envelope struct {
	Type string          `json:"type"`
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Client is a WebSocket-backed channel adapter
type Client struct {
	url      string
	clientID string
	logger   *slog.Logger

	dialer           *websocket.Dialer
	handshakeTimeout time.Duration
	reconnectWait    time.Duration
	maxReconnects    int

	conn    *websocket.Conn
	connMu  sync.Mutex // serializes writes; gorilla allows one writer
	stateMu sync.Mutex // protects conn swap during reconnect

	handlers   map[channel.Key]channel.Handler
	handlersMu sync.RWMutex

	group    *errgroup.Group
	shutdown chan struct{}
	started  atomic.Bool

	reconnects atomic.Int32
	dropped    atomic.Int64
}

// Option configures the Client
type Option func(*Client)

// WithLogger sets a custom logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger.With("component", "wschannel")
		}
	}
}

// WithHandshakeTimeout sets the WebSocket handshake timeout
func WithHandshakeTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.handshakeTimeout = d
	}
}

// WithReconnectWait sets the wait time between reconnection attempts
func WithReconnectWait(d time.Duration) Option {
	return func(c *Client) {
		c.reconnectWait = d
	}
}

// WithMaxReconnects sets the maximum number of reconnection attempts
// (-1 for infinite)
func WithMaxReconnects(max int) Option {
	return func(c *Client) {
		c.maxReconnects = max
	}
}

// NewClient creates a WebSocket channel adapter for the given URL
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:              url,
		clientID:         uuid.NewString(),
		logger:           slog.Default().With("component", "wschannel"),
		handshakeTimeout: 45 * time.Second,
		reconnectWait:    2 * time.Second,
		maxReconnects:    -1,
		handlers:         make(map[channel.Key]channel.Handler),
		shutdown:         make(chan struct{}),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.dialer = &websocket.Dialer{HandshakeTimeout: c.handshakeTimeout}
	return c
}

// ClientID returns the session identifier reported in diagnostics
func (c *Client) ClientID() string {
	return c.clientID
}

// Connect dials the backend and starts the read loop. The loop redials on
// connection loss until Close or the reconnect budget is spent.
func (c *Client) Connect(ctx context.Context) error {
	if !c.started.CompareAndSwap(false, true) {
		return errors.WrapFatal(errors.ErrAlreadyStarted, "Client", "Connect",
			"start adapter")
	}

	// Fresh shutdown channel so a closed client can connect again.
	c.stateMu.Lock()
	c.shutdown = make(chan struct{})
	c.stateMu.Unlock()

	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		c.started.Store(false)
		return errors.WrapTransient(err, "Client", "Connect", "dial "+c.url)
	}

	c.stateMu.Lock()
	c.conn = conn
	c.stateMu.Unlock()

	c.logger.Info("connected to backend", "url", c.url, "client_id", c.clientID)

	c.group, _ = errgroup.WithContext(ctx)
	c.group.Go(func() error {
		c.connectLoop(ctx, conn)
		return nil
	})

	return nil
}

// connectLoop reads from the current connection and redials after loss.
func (c *Client) connectLoop(ctx context.Context, conn *websocket.Conn) {
	for {
		c.readLoop(conn)

		c.stateMu.Lock()
		c.conn = nil
		c.stateMu.Unlock()

		if !c.shouldReconnect() {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-c.shutdown:
			return
		case <-time.After(c.reconnectWait):
		}

		next, _, err := c.dialer.DialContext(ctx, c.url, nil)
		if err != nil {
			c.logger.Warn("reconnect failed", "error", err)
			continue
		}

		c.reconnects.Add(1)
		c.stateMu.Lock()
		c.conn = next
		c.stateMu.Unlock()
		c.logger.Info("reconnected to backend", "url", c.url)
		conn = next
	}
}

func (c *Client) shouldReconnect() bool {
	select {
	case <-c.shutdown:
		return false
	default:
	}
	if c.maxReconnects < 0 {
		return true
	}
	return int(c.reconnects.Load()) < c.maxReconnects
}

// readLoop reads envelopes until the connection drops or shutdown
func (c *Client) readLoop(conn *websocket.Conn) {
	for {
		select {
		case <-c.shutdown:
			return
		default:
			_, message, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var envelope Envelope
			if err := json.Unmarshal(message, &envelope); err != nil {
				c.dropped.Add(1)
				c.logger.Warn("dropping unparseable message", "error", err)
				continue
			}

			c.dispatch(&envelope)
		}
	}
}

// dispatch routes an envelope to the handler registered for its key.
// Envelopes for unregistered keys are dropped with no observable effect.
func (c *Client) dispatch(envelope *Envelope) {
	key, ok := parseKey(envelope.Type)
	if !ok {
		c.dropped.Add(1)
		c.logger.Warn("dropping message with malformed type", "type", envelope.Type)
		return
	}

	c.handlersMu.RLock()
	handler, registered := c.handlers[key]
	c.handlersMu.RUnlock()

	if !registered {
		c.dropped.Add(1)
		c.logger.Debug("dropping message for unregistered key", "key", key.String())
		return
	}

	handler(envelope.Data)
}

// parseKey splits a subject-form message type into its key
func parseKey(messageType string) (channel.Key, bool) {
	namespace, action, found := strings.Cut(messageType, ".")
	if !found || namespace == "" || action == "" {
		return channel.Key{}, false
	}
	return channel.Key{Namespace: namespace, Action: action}, true
}

// SendMessage writes a fire-and-forget envelope on the connection
func (c *Client) SendMessage(_ context.Context, key channel.Key, payload []byte) error {
	c.stateMu.Lock()
	conn := c.conn
	c.stateMu.Unlock()

	if conn == nil {
		return errors.WrapTransient(errors.ErrNotConnected, "Client", "SendMessage",
			"send "+key.Subject())
	}

	envelope := Envelope{
		Type: key.Subject(),
		ID:   uuid.NewString(),
		Data: payload,
	}

	c.connMu.Lock()
	defer c.connMu.Unlock()

	if err := conn.WriteJSON(&envelope); err != nil {
		return errors.WrapTransient(err, "Client", "SendMessage",
			"send "+key.Subject())
	}
	return nil
}

// RegisterMessageHandler installs the handler for the key, silently
// replacing any prior one
func (c *Client) RegisterMessageHandler(key channel.Key, handler channel.Handler) error {
	c.handlersMu.Lock()
	defer c.handlersMu.Unlock()

	c.handlers[key] = handler
	return nil
}

// DeregisterMessageHandler removes the handler for the key; subsequent
// messages for it are dropped
func (c *Client) DeregisterMessageHandler(key channel.Key) error {
	c.handlersMu.Lock()
	defer c.handlersMu.Unlock()

	delete(c.handlers, key)
	return nil
}

// Dropped returns the number of inbound messages dropped so far
func (c *Client) Dropped() int64 {
	return c.dropped.Load()
}

// Close stops the read loop and closes the connection. Registered handlers
// survive Close, so the client can Connect again afterwards.
func (c *Client) Close(_ context.Context) error {
	if !c.started.CompareAndSwap(true, false) {
		return nil
	}

	c.stateMu.Lock()
	close(c.shutdown)
	conn := c.conn
	c.conn = nil
	c.stateMu.Unlock()

	if conn != nil {
		c.connMu.Lock()
		_ = conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(time.Second))
		c.connMu.Unlock()
		_ = conn.Close()
	}

	if c.group != nil {
		_ = c.group.Wait()
	}
	return nil
}

var _ channel.Adapter = (*Client)(nil)
