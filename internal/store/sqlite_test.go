package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/nikbrunner/bmbridge/internal/model"
	"github.com/nikbrunner/bmbridge/internal/store"
)

func newSQLiteStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "bookmarks.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_RemoveByID(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	id := uuid.NewString()
	if err := s.Add(ctx, model.Match{ID: id, Title: "Test", URL: "https://example.com"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := s.RemoveByID(ctx, id); err != nil {
		t.Fatalf("remove: %v", err)
	}

	// Second removal must report not found
	err := s.RemoveByID(ctx, id)
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStore_RemoveUnknownID(t *testing.T) {
	s := newSQLiteStore(t)

	err := s.RemoveByID(context.Background(), "no-such-id")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLiteStore_SearchByURL(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()

	// Two aliased bookmarks pointing at the same URL from different folders
	url := "https://go.dev"
	for _, m := range []model.Match{
		{ID: "1", Title: "Go", URL: url, ParentID: "bar"},
		{ID: "2", Title: "Go (work)", URL: url, ParentID: "work"},
		{ID: "3", Title: "Other", URL: "https://example.com"},
	} {
		if err := s.Add(ctx, m); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	matches, err := s.SearchByURL(ctx, url)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].ParentID != "bar" || matches[1].ParentID != "work" {
		t.Errorf("unexpected matches: %+v", matches)
	}
}

func TestSQLiteStore_SearchNoMatches(t *testing.T) {
	s := newSQLiteStore(t)

	matches, err := s.SearchByURL(context.Background(), "https://nothing.example")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if matches == nil {
		t.Error("expected empty slice, got nil")
	}
	if len(matches) != 0 {
		t.Errorf("expected 0 matches, got %d", len(matches))
	}
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bookmarks.db")
	ctx := context.Background()

	s, err := store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.Add(ctx, model.Match{ID: "a", Title: "A", URL: "https://a.example"}); err != nil {
		t.Fatalf("add: %v", err)
	}
	s.Close()

	s2, err := store.NewSQLiteStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()

	matches, err := s2.SearchByURL(ctx, "https://a.example")
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match after reopen, got %d", len(matches))
	}
}
