// Package dir lists the entries of a single directory together with their type.
package dir

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// EntryType is the type tag of a directory entry.
type EntryType string

const (
	TypeDir   EntryType = "DIR"
	TypeFile  EntryType = "FILE"
	TypeLink  EntryType = "LINK"
	TypeOther EntryType = ""
)

// List returns the entries of the directory at path, keyed by name.
// The "." and ".." entries are not included.
//
// When the directory cannot be read, the returned error wraps the underlying errno and reads
// "<strerror>: '<path>'".
func List(path string) (map[string]EntryType, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			err = pathErr.Err
		}
		return nil, fmt.Errorf("%w: '%s'", err, path)
	}

	result := make(map[string]EntryType, len(entries))
	for _, entry := range entries {
		result[entry.Name()] = typeOf(entry.Type())
	}

	return result, nil
}

func typeOf(mode fs.FileMode) EntryType {
	switch {
	case mode.IsDir():
		return TypeDir
	case mode.IsRegular():
		return TypeFile
	case mode&fs.ModeSymlink != 0:
		return TypeLink
	default:
		return TypeOther
	}
}
