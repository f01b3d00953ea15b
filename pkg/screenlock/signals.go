package screenlock

import (
	"errors"
	"fmt"
	"github.com/godbus/dbus/v5"
)

const activeChangedMember = "ActiveChanged"

// startSignalHandler routes the signals of conn to handleIncomingSignal until stopped or until
// conn is closed.
// Holding the muConn mutex is required.
func (c *Client) startSignalHandler(conn Conn) {
	c.signals = make(chan *dbus.Signal, 10)
	c.closeSignalHandler = make(chan struct{})
	conn.Signal(c.signals)

	signals := c.signals
	closeSignalHandler := c.closeSignalHandler
	go func() {
		for {
			select {
			case <-closeSignalHandler:
				return
			case v, ok := <-signals:
				if !ok {
					// The bus closed the connection.
					c.connectionLost(conn)
					return
				}
				c.handleIncomingSignal(v)
			}
		}
	}()
}

// stopSignalHandler stops routing signals.
// Holding the muSignals mutex is required.
func (c *Client) stopSignalHandler(conn Conn) {
	if c.closeSignalHandler == nil {
		return
	}

	conn.RemoveSignal(c.signals)
	close(c.closeSignalHandler)
	c.closeSignalHandler = nil
}

// AddActiveSignal registers a channel that will be notified when the screen saver becomes active
// (true) or inactive (false).
//
// Writing to this channel does not block.
// Use a buffered channel if you don't want to miss anything.
func (c *Client) AddActiveSignal(ch chan<- bool) error {
	if ch == nil {
		return errors.New("AddActiveSignal: channel cannot be nil")
	}

	conn, err := c.connection()
	if err != nil {
		return err
	}

	c.muSignals.Lock()
	defer c.muSignals.Unlock()

	if !c.activeSignalActive {
		if err := conn.AddMatchSignal(c.activeChangedMatch()...); err != nil {
			return fmt.Errorf("failed to register Dbus %s signal: %w", activeChangedMember, err)
		}

		c.activeSignalActive = true
	}

	c.activeSignals[ch] = struct{}{}

	return nil
}

// RemoveActiveSignal unregisters a channel previously registered with AddActiveSignal.
// RemoveActiveSignal can be safely called with an unregistered channel.
func (c *Client) RemoveActiveSignal(ch chan<- bool) error {
	if ch == nil {
		return errors.New("RemoveActiveSignal: channel cannot be nil")
	}

	c.muConn.Lock()
	conn := c.conn
	c.muConn.Unlock()
	if conn == nil {
		return nil
	}

	c.muSignals.Lock()
	defer c.muSignals.Unlock()

	delete(c.activeSignals, ch)

	if len(c.activeSignals) == 0 {
		return c.removeActiveChangedSignal(conn)
	}

	return nil
}

// removeActiveChangedSignal removes the ActiveChanged match rule if it was registered.
// Holding the muSignals mutex is required.
func (c *Client) removeActiveChangedSignal(conn Conn) error {
	if !c.activeSignalActive {
		return nil
	}

	if err := conn.RemoveMatchSignal(c.activeChangedMatch()...); err != nil {
		return fmt.Errorf("failed to remove Dbus %s signal: %w", activeChangedMember, err)
	}

	c.activeSignalActive = false

	return nil
}

func (c *Client) activeChangedMatch() []dbus.MatchOption {
	return []dbus.MatchOption{
		dbus.WithMatchObjectPath(c.service.Path),
		dbus.WithMatchInterface(c.service.Interface),
		dbus.WithMatchSender(c.service.Destination),
		dbus.WithMatchMember(activeChangedMember),
	}
}

func (c *Client) handleIncomingSignal(s *dbus.Signal) {
	if s == nil {
		// Seems to happen on close
		return
	}

	if s.Path != c.service.Path || s.Name != c.service.method(activeChangedMember) {
		return
	}

	active, err := decodeBool(s.Body)
	if err != nil {
		c.logger.Warn().Err(err).Str("signal", s.Name).Msg("ignoring malformed signal")
		return
	}

	c.muSignals.Lock()
	defer c.muSignals.Unlock()

	for ch := range c.activeSignals {
		select {
		case ch <- active:
		default:
		}
	}
}
