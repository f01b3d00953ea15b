// Package sleep blocks the calling goroutine's thread using nanosleep(2).
//
// Unlike [time.Sleep], an interrupted sleep is not resumed: the OS error is returned to the caller.
package sleep

import (
	"golang.org/x/sys/unix"
	"time"
)

// Sleep blocks for d. It returns the error of nanosleep(2) verbatim, e.g. EINTR when interrupted
// by a signal handler or EINVAL for a negative duration.
func Sleep(d time.Duration) error {
	ts := unix.NsecToTimespec(d.Nanoseconds())
	return unix.Nanosleep(&ts, nil)
}

// Millis blocks for ms milliseconds.
func Millis(ms int64) error {
	return Sleep(time.Duration(ms) * time.Millisecond)
}
