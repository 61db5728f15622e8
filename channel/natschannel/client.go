package natschannel

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/ntutangyun/ai-ran-sim/channel"
	"github.com/ntutangyun/ai-ran-sim/errors"
)

// ConnectionStatus represents the state of the NATS connection
type ConnectionStatus int

// Possible connection statuses
const (
	StatusDisconnected ConnectionStatus = iota
	StatusConnecting
	StatusConnected
	StatusReconnecting
	StatusClosed
)

// String returns the string representation of ConnectionStatus
func (s ConnectionStatus) String() string {
	switch s {
	case StatusDisconnected:
		return "disconnected"
	case StatusConnecting:
		return "connecting"
	case StatusConnected:
		return "connected"
	case StatusReconnecting:
		return "reconnecting"
	case StatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Client is a NATS-backed channel adapter
type Client struct {
	url      string
	status   atomic.Value // stores ConnectionStatus
	failures atomic.Int32
	logger   *slog.Logger

	conn *nats.Conn

	// One subscription per key. Replaced, never stacked.
	subs map[channel.Key]*nats.Subscription

	// Connection options
	maxReconnects int
	reconnectWait time.Duration
	timeout       time.Duration
	drainTimeout  time.Duration
	clientName    string

	metrics *clientMetrics

	mu     sync.RWMutex
	closed atomic.Bool
}

// NewClient creates a new NATS channel adapter with optional configuration
func NewClient(url string, opts ...ClientOption) (*Client, error) {
	c := &Client{
		url:    url,
		logger: slog.Default(),
		subs:   make(map[channel.Key]*nats.Subscription),
		// Sensible defaults
		maxReconnects: -1, // infinite by default
		reconnectWait: 2 * time.Second,
		timeout:       5 * time.Second,
		drainTimeout:  10 * time.Second,
		clientName:    "knowledge-explorer",
	}
	c.status.Store(StatusDisconnected)

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, errors.WrapInvalid(err, "Client", "NewClient", "apply option")
		}
	}

	return c, nil
}

// URL returns the configured server URL
func (c *Client) URL() string {
	return c.url
}

// Status returns the current connection status
func (c *Client) Status() ConnectionStatus {
	return c.status.Load().(ConnectionStatus)
}

// Failures returns the recorded connection failure count
func (c *Client) Failures() int32 {
	return c.failures.Load()
}

// IsHealthy reports whether the client has a live connection
func (c *Client) IsHealthy() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conn != nil && c.conn.IsConnected()
}

// Connect establishes the NATS connection
func (c *Client) Connect(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != nil && c.conn.IsConnected() {
		return nil
	}

	c.status.Store(StatusConnecting)

	conn, err := nats.Connect(c.url,
		nats.Name(c.clientName),
		nats.MaxReconnects(c.maxReconnects),
		nats.ReconnectWait(c.reconnectWait),
		nats.Timeout(c.timeout),
		nats.DrainTimeout(c.drainTimeout),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			c.status.Store(StatusReconnecting)
			c.failures.Add(1)
			c.metrics.setConnected(false)
			c.logger.Warn("NATS disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			c.status.Store(StatusConnected)
			c.metrics.setConnected(true)
			c.metrics.recordReconnect()
			c.logger.Info("NATS reconnected")
		}),
		nats.ClosedHandler(func(_ *nats.Conn) {
			c.status.Store(StatusClosed)
			c.metrics.setConnected(false)
			c.logger.Info("NATS connection closed")
		}),
	)
	if err != nil {
		c.status.Store(StatusDisconnected)
		c.failures.Add(1)
		return errors.WrapTransient(err, "Client", "Connect", "dial NATS")
	}

	c.conn = conn
	c.status.Store(StatusConnected)
	c.metrics.setConnected(true)
	c.logger.Info("connected to NATS", "url", c.url)
	return nil
}

// SendMessage publishes a fire-and-forget message on the key's subject.
// A nil payload sends an empty message.
func (c *Client) SendMessage(_ context.Context, key channel.Key, payload []byte) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil || !conn.IsConnected() {
		return errors.WrapTransient(errors.ErrNotConnected, "Client", "SendMessage",
			"publish to "+key.Subject())
	}

	if err := conn.Publish(key.Subject(), payload); err != nil {
		return errors.WrapTransient(err, "Client", "SendMessage",
			"publish to "+key.Subject())
	}
	return nil
}

// RegisterMessageHandler installs the handler for the key, silently
// replacing any prior subscription so only the latest handler receives
// responses.
func (c *Client) RegisterMessageHandler(key channel.Key, handler channel.Handler) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil || !c.conn.IsConnected() {
		return errors.WrapTransient(errors.ErrNotConnected, "Client",
			"RegisterMessageHandler", "subscribe to "+key.Subject())
	}

	if prior, ok := c.subs[key]; ok {
		if err := prior.Unsubscribe(); err != nil {
			c.logger.Warn("failed to unsubscribe replaced handler",
				"subject", key.Subject(), "error", err)
		}
		delete(c.subs, key)
	}

	sub, err := c.conn.Subscribe(key.Subject(), func(msg *nats.Msg) {
		handler(msg.Data)
	})
	if err != nil {
		return errors.WrapTransient(errors.ErrSubscriptionFailed, "Client",
			"RegisterMessageHandler", "subscribe to "+key.Subject())
	}

	c.subs[key] = sub
	return nil
}

// DeregisterMessageHandler removes the handler for the key. Messages for
// deregistered keys are dropped by NATS with no observable effect.
// Deregistering an unknown key is a no-op.
func (c *Client) DeregisterMessageHandler(key channel.Key) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	sub, ok := c.subs[key]
	if !ok {
		return nil
	}
	delete(c.subs, key)

	if err := sub.Unsubscribe(); err != nil {
		return errors.WrapTransient(err, "Client", "DeregisterMessageHandler",
			"unsubscribe from "+key.Subject())
	}
	return nil
}

// Close drains the connection and releases all subscriptions
func (c *Client) Close(_ context.Context) error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, sub := range c.subs {
		if err := sub.Unsubscribe(); err != nil {
			c.logger.Warn("failed to unsubscribe during close",
				"subject", key.Subject(), "error", err)
		}
	}
	c.subs = make(map[channel.Key]*nats.Subscription)

	if c.conn != nil {
		if err := c.conn.Drain(); err != nil {
			c.conn.Close()
		}
		c.conn = nil
	}

	c.status.Store(StatusClosed)
	c.metrics.setConnected(false)
	return nil
}

var _ channel.Adapter = (*Client)(nil)
