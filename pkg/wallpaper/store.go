package wallpaper

import "context"

// Store opens settings schemas of a desktop settings store.
type Store interface {
	Open(ctx context.Context, schema string) (Settings, error)
}

// Settings is a single opened schema.
type Settings interface {
	// ListKeys returns the names of all keys of the schema.
	ListKeys(ctx context.Context) ([]string, error)

	// SetString writes value into the string key.
	SetString(ctx context.Context, key string, value string) error

	// Sync blocks until pending writes have been committed.
	Sync(ctx context.Context) error
}
