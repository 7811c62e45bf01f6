package store

import (
	"context"
)

// ImportChromeFile seeds the SQLite store from a Chromium Bookmarks file.
// Returns the number of bookmarks imported.
func ImportChromeFile(ctx context.Context, dst *SQLiteStore, path string) (int, error) {
	src, err := NewChromeFileStore(path)
	if err != nil {
		return 0, err
	}

	data, err := src.load()
	if err != nil {
		return 0, err
	}

	imported := 0
	for _, root := range roots(data) {
		for _, m := range allBookmarks(root) {
			if err := dst.Add(ctx, m); err != nil {
				return imported, err
			}
			imported++
		}
	}
	return imported, nil
}
