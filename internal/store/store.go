package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/nikbrunner/bmbridge/internal/model"
)

// ErrNotFound is returned by RemoveByID when no bookmark has the given id.
var ErrNotFound = errors.New("bookmark not found")

// Store is the native bookmark store as seen by the bridge. Implementations
// own their consistency guarantees; the bridge never assumes parallel access
// to a Store is safe and always issues one call at a time.
type Store interface {
	RemoveByID(ctx context.Context, id string) error
	SearchByURL(ctx context.Context, url string) ([]model.Match, error)
}

// DefaultSQLitePath returns the default database path: ~/.config/bmbridge/bookmarks.db
func DefaultSQLitePath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "bmbridge", "bookmarks.db"), nil
}

// Open opens the appropriate store backend. A non-empty chromeFile selects
// the Chrome-file backend, otherwise the SQLite database at dbPath is used
// (falling back to the default path when dbPath is empty).
func Open(dbPath, chromeFile string) (Store, error) {
	if chromeFile != "" {
		return NewChromeFileStore(chromeFile)
	}

	if dbPath == "" {
		var err error
		dbPath, err = DefaultSQLitePath()
		if err != nil {
			return nil, err
		}
	}
	return NewSQLiteStore(dbPath)
}
