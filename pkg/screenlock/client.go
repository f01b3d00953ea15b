package screenlock

import (
	"context"
	"errors"
	"fmt"
	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"
	"sync"
	"time"
)

// Options configures a Client. The zero value queries org.gnome.ScreenSaver on the session bus.
type Options struct {
	// Dial opens the bus connection. Defaults to a private session bus connection.
	Dial func() (Conn, error)

	// Service defaults to GNOMEScreenSaver.
	Service Service

	// Timeout is used when Active is called with a negative timeout. Zero or less means
	// DefaultTimeout.
	Timeout time.Duration

	// Logger defaults to a disabled logger.
	Logger *zerolog.Logger
}

// Client queries a screen saver service. The bus connection is opened by the first call that needs
// it and reused until Close. A failed connection attempt is retried by the next call.
//
// It is safe to call Client's methods concurrently.
type Client struct {
	dial    func() (Conn, error)
	service Service
	timeout time.Duration
	logger  zerolog.Logger

	muConn sync.Mutex
	conn   Conn
	lost   chan struct{}
	closed bool

	muSignals          sync.Mutex
	signals            chan *dbus.Signal
	closeSignalHandler chan struct{}
	activeSignals      map[chan<- bool]struct{}
	activeSignalActive bool
}

var _ Querier = (*Client)(nil)

func New(opts Options) *Client {
	c := &Client{
		dial:          opts.Dial,
		service:       opts.Service,
		timeout:       opts.Timeout,
		logger:        zerolog.Nop(),
		activeSignals: make(map[chan<- bool]struct{}),
	}

	if c.dial == nil {
		c.dial = dialSessionBus
	}
	if c.service == (Service{}) {
		c.service = GNOMEScreenSaver
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if opts.Logger != nil {
		c.logger = *opts.Logger
	}

	return c
}

func dialSessionBus() (Conn, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, err
	}

	return conn, nil
}

// connection returns the shared connection, dialing it when there is none yet.
func (c *Client) connection() (Conn, error) {
	c.muConn.Lock()
	defer c.muConn.Unlock()

	if c.closed {
		return nil, ErrClosed
	}
	if c.conn != nil {
		return c.conn, nil
	}

	conn, err := c.dial()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	c.logger.Debug().Str("destination", c.service.Destination).Msg("connected to session bus")
	c.conn = conn
	c.lost = make(chan struct{})
	c.startSignalHandler(conn)

	return conn, nil
}

// Active calls GetActive on the screen saver service and blocks until the reply arrives or the
// timeout elapses. A negative timeout selects the client's default, zero expires immediately.
func (c *Client) Active(ctx context.Context, timeout time.Duration) (bool, error) {
	conn, err := c.connection()
	if err != nil {
		return false, err
	}

	const member = "GetActive"
	if err := c.service.validate(member); err != nil {
		return false, err
	}

	if timeout < 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	call := conn.Object(c.service.Destination, c.service.Path).
		CallWithContext(ctx, c.service.method(member), 0)
	if call.Err != nil {
		return false, fmt.Errorf("%w %s: %w", ErrCall, c.service.method(member), call.Err)
	}

	active, err := decodeBool(call.Body)
	if err != nil {
		return false, err
	}

	c.logger.Debug().Bool("active", active).Msg("screen saver state")

	return active, nil
}

// Disconnected returns a channel that is closed when the current bus connection is lost.
// Channels registered with AddActiveSignal receive nothing after that, the next call dials a new
// connection. Returns nil, a channel that never closes, when the client is not connected.
func (c *Client) Disconnected() <-chan struct{} {
	c.muConn.Lock()
	defer c.muConn.Unlock()

	if c.conn == nil {
		return nil
	}

	return c.lost
}

// connectionLost forgets conn after the bus closed it.
func (c *Client) connectionLost(conn Conn) {
	c.muConn.Lock()
	defer c.muConn.Unlock()

	if c.conn != conn {
		return
	}

	c.logger.Warn().Str("destination", c.service.Destination).Msg("bus connection lost")

	c.muSignals.Lock()
	clear(c.activeSignals)
	c.activeSignalActive = false
	if c.closeSignalHandler != nil {
		close(c.closeSignalHandler)
		c.closeSignalHandler = nil
	}
	c.muSignals.Unlock()

	c.conn = nil
	close(c.lost)
}

// Close stops signal delivery and closes the bus connection. Do not use the Client after this.
func (c *Client) Close() error {
	c.muConn.Lock()
	defer c.muConn.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if c.conn == nil {
		return nil
	}

	var err error

	c.muSignals.Lock()
	clear(c.activeSignals)
	err = errors.Join(err, c.removeActiveChangedSignal(c.conn))
	c.stopSignalHandler(c.conn)
	c.muSignals.Unlock()

	if closeErr := c.conn.Close(); closeErr != nil {
		err = errors.Join(err, fmt.Errorf("error closing bus connection: %w", closeErr))
	}
	c.conn = nil

	return err
}
