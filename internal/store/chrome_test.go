package store_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/nikbrunner/bmbridge/internal/store"
)

// chromeFixture is a minimal Chromium Bookmarks file. The nested bookmark
// has a numeric id on purpose: the file format allows both.
const chromeFixture = `{
	"checksum": "abc123",
	"version": 1,
	"roots": {
		"bookmark_bar": {
			"id": "1",
			"type": "folder",
			"name": "Bookmarks bar",
			"children": [
				{"id": "10", "type": "url", "name": "Go", "url": "https://go.dev"},
				{
					"id": "11",
					"type": "folder",
					"name": "Work",
					"children": [
						{"id": 12, "type": "url", "name": "Go (work)", "url": "https://go.dev"},
						{"id": "13", "type": "url", "name": "Docs", "url": "https://example.com/docs"}
					]
				}
			]
		},
		"other": {
			"id": "2",
			"type": "folder",
			"name": "Other bookmarks",
			"children": []
		}
	}
}`

func newChromeStore(t *testing.T) (*store.ChromeFileStore, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "Bookmarks")
	if err := os.WriteFile(path, []byte(chromeFixture), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := store.NewChromeFileStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	return s, dir
}

func TestChromeFileStore_RemoveByID(t *testing.T) {
	s, _ := newChromeStore(t)
	ctx := context.Background()

	if err := s.RemoveByID(ctx, "10"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	matches, err := s.SearchByURL(ctx, "https://go.dev")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 remaining match, got %d", len(matches))
	}
	if matches[0].ID != "12" {
		t.Errorf("expected nested bookmark 12 to survive, got %q", matches[0].ID)
	}
}

func TestChromeFileStore_RemoveNumericID(t *testing.T) {
	s, _ := newChromeStore(t)

	// The file stores this id as a number; callers always pass strings
	if err := s.RemoveByID(context.Background(), "12"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if err := s.RemoveByID(context.Background(), "12"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound on re-delete, got %v", err)
	}
}

func TestChromeFileStore_RemoveUnknownID(t *testing.T) {
	s, dir := newChromeStore(t)

	err := s.RemoveByID(context.Background(), "999")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// A failed removal must not produce a backup
	backups, _ := filepath.Glob(filepath.Join(dir, "*.bak"))
	if len(backups) != 0 {
		t.Errorf("expected no backup, found %v", backups)
	}
}

func TestChromeFileStore_BackupOnFirstMutation(t *testing.T) {
	s, dir := newChromeStore(t)
	ctx := context.Background()

	if err := s.RemoveByID(ctx, "10"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := s.RemoveByID(ctx, "13"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	backups, err := filepath.Glob(filepath.Join(dir, "*.bak"))
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 1 {
		t.Fatalf("expected exactly 1 backup, found %d", len(backups))
	}

	// The backup holds the pre-mutation content
	raw, err := os.ReadFile(backups[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != chromeFixture {
		t.Error("backup should contain the original file content")
	}
}

func TestChromeFileStore_RewriteKeepsUnknownFields(t *testing.T) {
	s, _ := newChromeStore(t)

	if err := s.RemoveByID(context.Background(), "10"); err != nil {
		t.Fatalf("remove: %v", err)
	}

	raw, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatal(err)
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		t.Fatalf("rewritten file is not valid JSON: %v", err)
	}
	if data["checksum"] != "abc123" {
		t.Error("top-level fields should survive a rewrite")
	}
}

func TestChromeFileStore_SearchByURL(t *testing.T) {
	s, _ := newChromeStore(t)

	matches, err := s.SearchByURL(context.Background(), "https://go.dev")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 aliased matches, got %d", len(matches))
	}

	byID := map[string]string{}
	for _, m := range matches {
		byID[m.ID] = m.ParentID
	}
	if byID["10"] != "1" {
		t.Errorf("bookmark 10 should have parent 1, got %q", byID["10"])
	}
	if byID["12"] != "11" {
		t.Errorf("bookmark 12 should have parent 11, got %q", byID["12"])
	}
}

func TestChromeFileStore_SearchNoMatches(t *testing.T) {
	s, _ := newChromeStore(t)

	matches, err := s.SearchByURL(context.Background(), "https://nothing.example")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if matches == nil || len(matches) != 0 {
		t.Errorf("expected empty slice, got %v", matches)
	}
}

func TestImportChromeFile(t *testing.T) {
	_, dir := newChromeStore(t)

	dst, err := store.NewSQLiteStore(filepath.Join(dir, "bookmarks.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer dst.Close()

	ctx := context.Background()
	n, err := store.ImportChromeFile(ctx, dst, filepath.Join(dir, "Bookmarks"))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 imported bookmarks, got %d", n)
	}

	matches, err := dst.SearchByURL(ctx, "https://go.dev")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("expected 2 matches after import, got %d", len(matches))
	}
}
