package screenlock

import (
	"context"
	"errors"
	"fmt"
	"github.com/godbus/dbus/v5"
	"sync"
	"time"
)

const (
	login1Dest             = "org.freedesktop.login1"
	login1Path             = "/org/freedesktop/login1"
	login1ManagerInterface = "org.freedesktop.login1.Manager"
	login1SessionInterface = "org.freedesktop.login1.Session"
	propertiesGet          = "org.freedesktop.DBus.Properties.Get"
)

// LogindQuerier reads the LockedHint property of a login session. The hint is maintained by
// screen lockers, it is only as accurate as the locker running in the session.
type LogindQuerier struct {
	sessionId string
	dial      func() (Conn, error)
	timeout   time.Duration

	mu            sync.Mutex
	conn          Conn
	sessionObject dbus.BusObject
}

var _ Querier = (*LogindQuerier)(nil)

// NewLogindQuerier creates a querier for the session with the given ID. The system bus is
// connected and the session looked up by the first call to Active. A failed attempt is retried by
// the next call.
//
// sessionId is the ID of the session. Usually set to the XDG_SESSION_ID env var.
func NewLogindQuerier(sessionId string) (*LogindQuerier, error) {
	return NewLogindQuerierWithDial(func() (Conn, error) {
		conn, err := dbus.ConnectSystemBus()
		if err != nil {
			return nil, err
		}

		return conn, nil
	}, sessionId)
}

// NewLogindQuerierWithDial is NewLogindQuerier with a custom way of connecting to the system bus.
func NewLogindQuerierWithDial(dial func() (Conn, error), sessionId string) (*LogindQuerier, error) {
	if sessionId == "" {
		return nil, errors.New("sessionId is empty")
	}

	return &LogindQuerier{
		sessionId: sessionId,
		dial:      dial,
		timeout:   DefaultTimeout,
	}, nil
}

// NewLogindQuerierWithConn looks up the session with the given ID using an existing system bus
// connection. Closing the querier closes conn.
func NewLogindQuerierWithConn(conn Conn, sessionId string) (*LogindQuerier, error) {
	if sessionId == "" {
		return nil, errors.New("sessionId is empty")
	}

	sessionObject, err := findSession(conn, sessionId)
	if err != nil {
		return nil, err
	}

	return &LogindQuerier{
		sessionId:     sessionId,
		timeout:       DefaultTimeout,
		conn:          conn,
		sessionObject: sessionObject,
	}, nil
}

// findSession returns the login1 object of the session with the given ID.
func findSession(conn Conn, sessionId string) (dbus.BusObject, error) {
	var sessions []interface{}
	err := conn.Object(login1Dest, login1Path).
		Call(login1ManagerInterface+".ListSessions", 0).
		Store(&sessions)
	if err != nil {
		return nil, fmt.Errorf("%w %s.ListSessions: %w", ErrCall, login1ManagerInterface, err)
	}

	for i, sessionInt := range sessions {
		session, ok := sessionInt.([]interface{})
		if !ok || len(session) < 5 {
			return nil, fmt.Errorf("%w: session %d is not a session struct: %+v", ErrInvalidResult, i, sessionInt)
		}

		currentSessionId, ok := session[0].(string)
		if !ok {
			return nil, fmt.Errorf("%w: session %d[0] is not a string: %+v", ErrInvalidResult, i, session[0])
		}

		if currentSessionId != sessionId {
			continue
		}

		sessionPath, ok := session[4].(dbus.ObjectPath)
		if !ok {
			return nil, fmt.Errorf("%w: session %d[4] is not an ObjectPath: %+v", ErrInvalidResult, i, session[4])
		}

		return conn.Object(login1Dest, sessionPath), nil
	}

	return nil, fmt.Errorf("failed to find session object for session %s", sessionId)
}

// session returns the session object, connecting and looking it up when needed.
func (q *LogindQuerier) session() (dbus.BusObject, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.sessionObject != nil {
		return q.sessionObject, nil
	}
	if q.dial == nil {
		return nil, ErrClosed
	}

	conn, err := q.dial()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to connect to system bus: %w", ErrConnect, err)
	}

	sessionObject, err := findSession(conn, q.sessionId)
	if err != nil {
		return nil, errors.Join(err, conn.Close())
	}

	q.conn = conn
	q.sessionObject = sessionObject

	return sessionObject, nil
}

// Active returns the LockedHint of the session. A negative timeout selects DefaultTimeout, zero
// expires immediately.
func (q *LogindQuerier) Active(ctx context.Context, timeout time.Duration) (bool, error) {
	sessionObject, err := q.session()
	if err != nil {
		return false, err
	}

	if timeout < 0 {
		timeout = q.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	call := sessionObject.CallWithContext(ctx, propertiesGet, 0, login1SessionInterface, "LockedHint")
	if call.Err != nil {
		return false, fmt.Errorf("%w %s: could not get locked hint: %w", ErrCall, propertiesGet, call.Err)
	}

	if len(call.Body) == 0 {
		return false, fmt.Errorf("%w: reply has no arguments", ErrInvalidResult)
	}

	variant, ok := call.Body[0].(dbus.Variant)
	if !ok {
		return false, fmt.Errorf("%w: first argument is %T, not a variant", ErrInvalidResult, call.Body[0])
	}

	lockedHint, ok := variant.Value().(bool)
	if !ok {
		return false, fmt.Errorf("%w: LockedHint property result is not a boolean", ErrInvalidResult)
	}

	return lockedHint, nil
}

// Close closes the system bus connection if one was opened.
func (q *LogindQuerier) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	conn := q.conn
	q.conn = nil
	q.sessionObject = nil
	q.dial = nil
	if conn == nil {
		return nil
	}

	return conn.Close()
}
