package random

import (
	"encoding/binary"
	"errors"
	"fmt"
	"golang.org/x/sys/unix"
	"syscall"
)

// MaxLength is the largest amount of bytes that can be requested in a single call.
const MaxLength = 0x100

const intSize = 8

// ErrInvalidSize is returned when the requested length is outside [0, MaxLength].
var ErrInvalidSize = errors.New("random: invalid size")

// FillFunc fills buf with random bytes and returns the amount of bytes written.
type FillFunc func(buf []byte) (int, error)

// Result holds the outcome of Random. When IsInt is set, Int holds the value and Bytes is nil.
type Result struct {
	Bytes []byte
	Int   int64
	IsInt bool
}

type Generator struct {
	fill FillFunc
}

// New returns a Generator backed by getrandom(2) without flags, blocking until the entropy pool
// has been initialized.
func New() *Generator {
	return NewWithFill(func(buf []byte) (int, error) {
		return unix.Getrandom(buf, 0)
	})
}

// NewWithFill returns a Generator that uses fill as its source of random bytes.
func NewWithFill(fill FillFunc) *Generator {
	return &Generator{fill: fill}
}

// Bytes returns up to n random bytes. n must be in [0, MaxLength]. The slice is shorter than n
// only when the kernel returned fewer bytes than requested.
func (g *Generator) Bytes(n int) ([]byte, error) {
	if n < 0 || n > MaxLength {
		return nil, fmt.Errorf("%w %d", ErrInvalidSize, n)
	}
	if n == 0 {
		return []byte{}, nil
	}

	buf := make([]byte, n)
	written, err := g.fill(buf)
	if err != nil {
		return nil, failed(err)
	}

	return buf[:written], nil
}

// Int returns a random int64 built from the native byte order of 8 random bytes.
func (g *Generator) Int() (int64, error) {
	var buf [intSize]byte
	written, err := g.fill(buf[:])
	if err != nil {
		return 0, failed(err)
	}
	if written != intSize {
		return 0, fmt.Errorf("random: failed, got %d of %d bytes", written, intSize)
	}

	return int64(binary.NativeEndian.Uint64(buf[:])), nil
}

// Random returns n random bytes, or a random integer when n is 0.
func (g *Generator) Random(n int) (Result, error) {
	if n < 0 || n > MaxLength {
		return Result{}, fmt.Errorf("%w %d", ErrInvalidSize, n)
	}

	if n == 0 {
		v, err := g.Int()
		if err != nil {
			return Result{}, err
		}
		return Result{Int: v, IsInt: true}, nil
	}

	b, err := g.Bytes(n)
	if err != nil {
		return Result{}, err
	}

	return Result{Bytes: b}, nil
}

var defaultGenerator = New()

// Bytes calls Generator.Bytes on a getrandom(2) backed generator.
func Bytes(n int) ([]byte, error) {
	return defaultGenerator.Bytes(n)
}

// Int calls Generator.Int on a getrandom(2) backed generator.
func Int() (int64, error) {
	return defaultGenerator.Int()
}

// Random calls Generator.Random on a getrandom(2) backed generator.
func Random(n int) (Result, error) {
	return defaultGenerator.Random(n)
}

func failed(err error) error {
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return fmt.Errorf("random: failed %d: %w", int(errno), err)
	}

	return fmt.Errorf("random: failed: %w", err)
}
