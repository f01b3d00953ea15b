package screenlock

import (
	"context"
	"github.com/godbus/dbus/v5"
	"sync"
)

type callHandler func(ctx context.Context, dest string, path dbus.ObjectPath, method string, args ...interface{}) *dbus.Call

type fakeConn struct {
	mu      sync.Mutex
	handler callHandler
	signal  chan<- *dbus.Signal
	added   int
	removed int
	closed  bool
	calls   []string
}

func (f *fakeConn) Object(dest string, path dbus.ObjectPath) dbus.BusObject {
	return &fakeObject{conn: f, dest: dest, path: path}
}

func (f *fakeConn) Signal(ch chan<- *dbus.Signal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signal = ch
}

func (f *fakeConn) RemoveSignal(ch chan<- *dbus.Signal) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.signal == ch {
		f.signal = nil
	}
}

func (f *fakeConn) AddMatchSignal(...dbus.MatchOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.added++
	return nil
}

func (f *fakeConn) RemoveMatchSignal(...dbus.MatchOption) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed++
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// disconnect closes the signal channel the way godbus does when the bus goes away.
func (f *fakeConn) disconnect() {
	f.mu.Lock()
	defer f.mu.Unlock()
	close(f.signal)
	f.signal = nil
}

func (f *fakeConn) emit(s *dbus.Signal) {
	f.mu.Lock()
	ch := f.signal
	f.mu.Unlock()
	ch <- s
}

// fakeObject implements the methods of dbus.BusObject used by this package. Calling any other
// method panics on the nil embedded interface.
type fakeObject struct {
	dbus.BusObject
	conn *fakeConn
	dest string
	path dbus.ObjectPath
}

func (o *fakeObject) Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call {
	return o.CallWithContext(context.Background(), method, flags, args...)
}

func (o *fakeObject) CallWithContext(ctx context.Context, method string, _ dbus.Flags, args ...interface{}) *dbus.Call {
	o.conn.mu.Lock()
	o.conn.calls = append(o.conn.calls, o.dest+" "+string(o.path)+" "+method)
	handler := o.conn.handler
	o.conn.mu.Unlock()

	return handler(ctx, o.dest, o.path, method, args...)
}

func (o *fakeObject) Path() dbus.ObjectPath {
	return o.path
}

func (o *fakeObject) Destination() string {
	return o.dest
}

func reply(body ...interface{}) callHandler {
	return func(context.Context, string, dbus.ObjectPath, string, ...interface{}) *dbus.Call {
		return &dbus.Call{Body: body}
	}
}
