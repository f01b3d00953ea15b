package wallpaper

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"strings"
)

const gsettingsBinary = "gsettings"

var ErrSchemaNotFound = errors.New("schema not installed")

// Runner executes a command and returns its standard output.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// GSettings is a Store backed by the gsettings command-line tool.
type GSettings struct {
	run Runner
}

type gsettingsSchema struct {
	run    Runner
	schema string
}

// NewGSettings returns a Store that shells out to gsettings.
func NewGSettings() *GSettings {
	return NewGSettingsWithRunner(execRunner)
}

func NewGSettingsWithRunner(run Runner) *GSettings {
	return &GSettings{run: run}
}

// Open verifies that the schema is installed.
func (g *GSettings) Open(ctx context.Context, schema string) (Settings, error) {
	out, err := g.run(ctx, gsettingsBinary, "list-schemas")
	if err != nil {
		return nil, err
	}

	if !slices.Contains(lines(out), schema) {
		return nil, fmt.Errorf("%w: %s", ErrSchemaNotFound, schema)
	}

	return &gsettingsSchema{run: g.run, schema: schema}, nil
}

func (s *gsettingsSchema) ListKeys(ctx context.Context) ([]string, error) {
	out, err := s.run(ctx, gsettingsBinary, "list-keys", s.schema)
	if err != nil {
		return nil, err
	}

	return lines(out), nil
}

func (s *gsettingsSchema) SetString(ctx context.Context, key string, value string) error {
	_, err := s.run(ctx, gsettingsBinary, "set", s.schema, key, quoteGVariantString(value))
	return err
}

// Sync is a no-op, every gsettings invocation commits before exiting.
func (s *gsettingsSchema) Sync(context.Context) error {
	return nil
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
		}
		return nil, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}

	return out, nil
}

// quoteGVariantString serializes s in the GVariant text format so gsettings does not try to parse
// the value as another type.
func quoteGVariantString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('\'')
	return b.String()
}

func lines(out []byte) []string {
	var result []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			result = append(result, line)
		}
	}
	return result
}
