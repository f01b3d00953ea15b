package screenlock

import (
	"context"
	"errors"
	"fmt"
	"github.com/godbus/dbus/v5"
	"math"
	"time"
)

// DefaultTimeout is used when no timeout is given. It equals the default reply timeout of libdbus.
const DefaultTimeout = 25 * time.Second

// UseDefaultTimeout makes Active use the querier's default timeout.
const UseDefaultTimeout time.Duration = -1

var (
	ErrConnect       = errors.New("cannot open dbus")
	ErrBuildMessage  = errors.New("cannot build dbus message")
	ErrCall          = errors.New("cannot call dbus method")
	ErrInvalidResult = errors.New("invalid dbus result")
	ErrClosed        = errors.New("screenlock: client is closed")
)

// Querier reports the lock state of the screen.
type Querier interface {
	// Active returns true when the screen is locked. A negative timeout, such as
	// UseDefaultTimeout, selects the implementation's default timeout. A zero timeout expires
	// immediately.
	Active(ctx context.Context, timeout time.Duration) (bool, error)
}

// MillisTimeout converts a timeout in milliseconds to a duration for Active.
// Negative values map to UseDefaultTimeout, values too large for a time.Duration are capped.
func MillisTimeout(ms int64) time.Duration {
	if ms < 0 {
		return UseDefaultTimeout
	}
	if ms > math.MaxInt64/int64(time.Millisecond) {
		return time.Duration(math.MaxInt64)
	}

	return time.Duration(ms) * time.Millisecond
}

// Conn is the part of [dbus.Conn] used by this package.
type Conn interface {
	Object(dest string, path dbus.ObjectPath) dbus.BusObject
	Signal(ch chan<- *dbus.Signal)
	RemoveSignal(ch chan<- *dbus.Signal)
	AddMatchSignal(options ...dbus.MatchOption) error
	RemoveMatchSignal(options ...dbus.MatchOption) error
	Close() error
}

// Service identifies a screen saver service on the bus.
type Service struct {
	Destination string
	Path        dbus.ObjectPath
	Interface   string
}

var (
	GNOMEScreenSaver = Service{
		Destination: "org.gnome.ScreenSaver",
		Path:        "/org/gnome/ScreenSaver",
		Interface:   "org.gnome.ScreenSaver",
	}

	FreedesktopScreenSaver = Service{
		Destination: "org.freedesktop.ScreenSaver",
		Path:        "/org/freedesktop/ScreenSaver",
		Interface:   "org.freedesktop.ScreenSaver",
	}
)

func (s Service) method(member string) string {
	return s.Interface + "." + member
}

// validate checks the names that end up in the method call header.
func (s Service) validate(member string) error {
	switch {
	case !isValidBusName(s.Destination):
		return fmt.Errorf("%w: invalid destination %q", ErrBuildMessage, s.Destination)
	case !s.Path.IsValid():
		return fmt.Errorf("%w: invalid object path %q", ErrBuildMessage, s.Path)
	case !isValidInterfaceName(s.Interface):
		return fmt.Errorf("%w: invalid interface %q", ErrBuildMessage, s.Interface)
	case !isValidMemberName(member):
		return fmt.Errorf("%w: invalid member %q", ErrBuildMessage, member)
	}

	return nil
}

func decodeBool(body []interface{}) (bool, error) {
	if len(body) == 0 {
		return false, fmt.Errorf("%w: reply has no arguments", ErrInvalidResult)
	}

	value, ok := body[0].(bool)
	if !ok {
		return false, fmt.Errorf("%w: first argument is %T, not a boolean", ErrInvalidResult, body[0])
	}

	return value, nil
}
