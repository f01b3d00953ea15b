package wallpaper

import (
	"context"
	"errors"
	"fmt"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
	"slices"
)

const (
	DefaultSchema  = "org.gnome.desktop.background"
	KeyPicture     = "picture-uri"
	KeyPictureDark = "picture-uri-dark"
)

var (
	ErrFileNotExist = errors.New("file not exist")
	ErrOpenSettings = errors.New("cannot open settings")
	ErrListSettings = errors.New("cannot list settings")
	ErrSetWallpaper = errors.New("cannot set wallpaper to")
)

type Options struct {
	// Schema defaults to DefaultSchema.
	Schema string

	// Keys that receive the wallpaper URI. Defaults to KeyPicture and KeyPictureDark.
	Keys []string

	// Logger defaults to a disabled logger.
	Logger *zerolog.Logger
}

type Setter struct {
	store  Store
	schema string
	keys   []string
	logger zerolog.Logger
	access func(path string) error
}

// NewSetter creates a Setter writing to store. A zero Options uses the GNOME background schema.
func NewSetter(store Store, opts Options) *Setter {
	s := &Setter{
		store:  store,
		schema: opts.Schema,
		keys:   opts.Keys,
		logger: zerolog.Nop(),
		access: func(path string) error {
			return unix.Access(path, unix.F_OK)
		},
	}

	if s.schema == "" {
		s.schema = DefaultSchema
	}
	if len(s.keys) == 0 {
		s.keys = []string{KeyPicture, KeyPictureDark}
	}
	if opts.Logger != nil {
		s.logger = *opts.Logger
	}

	return s
}

// Set writes "file://" + path into every wallpaper key the schema lists, in the order the schema
// lists them.
//
// path must exist, the store is not touched otherwise.
// Writing stops at the first key that cannot be written. Keys written before the failure keep
// their new value. Settings are synced regardless of the outcome.
func (s *Setter) Set(ctx context.Context, path string) error {
	if err := s.access(path); err != nil {
		return fmt.Errorf("%w '%s': %w", ErrFileNotExist, path, err)
	}

	uri := "file://" + path

	settings, err := s.store.Open(ctx, s.schema)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrOpenSettings, s.schema, err)
	}

	keys, err := settings.ListKeys(ctx)
	if err != nil {
		return fmt.Errorf("%w %s: %w", ErrListSettings, s.schema, err)
	}

	var setErr error
	for _, key := range keys {
		if !slices.Contains(s.keys, key) {
			continue
		}

		if err := settings.SetString(ctx, key, uri); err != nil {
			setErr = fmt.Errorf("%w '%s': %w", ErrSetWallpaper, uri, err)
			break
		}

		s.logger.Debug().Str("schema", s.schema).Str("key", key).Str("value", uri).Msg("wallpaper key written")
	}

	if err := settings.Sync(ctx); err != nil {
		setErr = errors.Join(setErr, fmt.Errorf("could not sync settings %s: %w", s.schema, err))
	}

	return setErr
}
