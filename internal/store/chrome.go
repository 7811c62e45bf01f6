package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/nikbrunner/bmbridge/internal/model"
)

// ChromeFileStore implements Store directly on a Chromium "Bookmarks" JSON
// file. The file is parsed generically so unknown fields (guids, timestamps,
// sync metadata) survive a rewrite untouched. A timestamped backup of the
// file is written once, before the first mutating write.
type ChromeFileStore struct {
	path     string
	backedUp bool
}

// NewChromeFileStore opens the Bookmarks file at path.
func NewChromeFileStore(path string) (*ChromeFileStore, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("bookmarks file: %w", err)
	}
	return &ChromeFileStore{path: path}, nil
}

// Path returns the Bookmarks file path.
func (s *ChromeFileStore) Path() string {
	return s.path
}

// load decodes the whole file. Numbers are kept in their literal form so
// numeric bookmark ids compare cleanly against their string form.
func (s *ChromeFileStore) load() (map[string]any, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var data map[string]any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	return data, nil
}

func (s *ChromeFileStore) save(data map[string]any) error {
	out, err := json.MarshalIndent(data, "", "   ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, out, 0644)
}

// backupOnce copies the file next to itself with a timestamp suffix.
// Only the first mutation of this store's lifetime triggers it.
func (s *ChromeFileStore) backupOnce() error {
	if s.backedUp {
		return nil
	}

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	stamp := time.Now().Format("20060102_150405")
	name := filepath.Base(s.path) + "_" + stamp + ".bak"
	backupPath := filepath.Join(filepath.Dir(s.path), name)

	if err := os.WriteFile(backupPath, raw, 0644); err != nil {
		return err
	}

	s.backedUp = true
	return nil
}

// RemoveByID deletes the bookmark with the given id from any root folder.
// Returns ErrNotFound if the id matched nothing.
func (s *ChromeFileStore) RemoveByID(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := s.load()
	if err != nil {
		return err
	}

	removed := 0
	for _, root := range roots(data) {
		removed += deleteFromFolder(root, id)
	}

	if removed == 0 {
		return ErrNotFound
	}

	if err := s.backupOnce(); err != nil {
		return err
	}
	return s.save(data)
}

// SearchByURL walks every root and returns all bookmarks whose URL matches
// exactly. Zero matches is not an error.
func (s *ChromeFileStore) SearchByURL(ctx context.Context, url string) ([]model.Match, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := s.load()
	if err != nil {
		return nil, err
	}

	matches := []model.Match{}
	for _, root := range roots(data) {
		matches = append(matches, searchFolder(root, url)...)
	}
	return matches, nil
}

// roots returns the folder nodes under the file's "roots" object.
func roots(data map[string]any) []map[string]any {
	rootsObj, ok := data["roots"].(map[string]any)
	if !ok {
		return nil
	}

	var out []map[string]any
	for _, v := range rootsObj {
		if node, ok := v.(map[string]any); ok {
			out = append(out, node)
		}
	}
	return out
}

// deleteFromFolder removes bookmark nodes with the given id from the folder's children,
// recursing into subfolders. Returns the number of nodes removed.
func deleteFromFolder(folder map[string]any, id string) int {
	children, ok := folder["children"].([]any)
	if !ok {
		return 0
	}

	removed := 0
	kept := make([]any, 0, len(children))

	for _, c := range children {
		child, ok := c.(map[string]any)
		if !ok {
			kept = append(kept, c)
			continue
		}

		switch child["type"] {
		case "url":
			// The file may store ids as numbers or strings
			if nodeID(child) == id {
				removed++
				continue
			}
			kept = append(kept, c)
		case "folder":
			removed += deleteFromFolder(child, id)
			kept = append(kept, c)
		default:
			kept = append(kept, c)
		}
	}

	folder["children"] = kept
	return removed
}

// searchFolder collects url nodes matching url, recursing into subfolders.
func searchFolder(folder map[string]any, url string) []model.Match {
	children, ok := folder["children"].([]any)
	if !ok {
		return nil
	}

	var matches []model.Match
	for _, c := range children {
		child, ok := c.(map[string]any)
		if !ok {
			continue
		}

		switch child["type"] {
		case "url":
			if childURL, _ := child["url"].(string); childURL == url {
				title, _ := child["name"].(string)
				matches = append(matches, model.Match{
					ID:       nodeID(child),
					Title:    title,
					URL:      childURL,
					ParentID: nodeID(folder),
				})
			}
		case "folder":
			matches = append(matches, searchFolder(child, url)...)
		}
	}
	return matches
}

// allBookmarks collects every url node under the folder, recursively.
func allBookmarks(folder map[string]any) []model.Match {
	children, ok := folder["children"].([]any)
	if !ok {
		return nil
	}

	var out []model.Match
	for _, c := range children {
		child, ok := c.(map[string]any)
		if !ok {
			continue
		}

		switch child["type"] {
		case "url":
			title, _ := child["name"].(string)
			url, _ := child["url"].(string)
			out = append(out, model.Match{
				ID:       nodeID(child),
				Title:    title,
				URL:      url,
				ParentID: nodeID(folder),
			})
		case "folder":
			out = append(out, allBookmarks(child)...)
		}
	}
	return out
}

// nodeID returns the node's id in string form regardless of how the file
// encodes it.
func nodeID(node map[string]any) string {
	switch id := node["id"].(type) {
	case string:
		return id
	case json.Number:
		return id.String()
	default:
		return ""
	}
}
