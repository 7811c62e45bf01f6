package bridge

import (
	"context"

	"github.com/nikbrunner/bmbridge/internal/model"
	"github.com/nikbrunner/bmbridge/internal/store"
)

// ProgressFunc is called after each item of a batch has resolved.
// completed is the number of items finished so far, total is the batch size.
type ProgressFunc func(completed, total int)

// DeleteBookmarks removes the given ids from the store, strictly one at a
// time and in input order. A failing id is recorded in its own result entry
// and never aborts or skips the rest of the batch. The returned slice always
// has exactly one entry per input id, in input order.
//
// Items are deliberately not fanned out: the store's concurrent-access
// contract is undocumented, so a single in-flight call is the safe pattern.
func DeleteBookmarks(ctx context.Context, s store.Store, ids []model.BookmarkID, onProgress ProgressFunc) []DeleteResult {
	results := make([]DeleteResult, 0, len(ids))

	for i, rawID := range ids {
		id := rawID.String()

		if err := s.RemoveByID(ctx, id); err != nil {
			results = append(results, DeleteResult{ID: id, Success: false, Error: err.Error()})
		} else {
			results = append(results, DeleteResult{ID: id, Success: true})
		}

		if onProgress != nil {
			onProgress(i+1, len(ids))
		}
	}

	return results
}

// FindBookmarksByURL runs an exact-match query per URL, in input order, with
// the same isolation policy as DeleteBookmarks: a failing query is recorded
// in its entry and the batch continues. A URL matching nothing yields an
// empty (non-nil) bookmark list, not an error.
func FindBookmarksByURL(ctx context.Context, s store.Store, urls []string) []LookupResult {
	results := make([]LookupResult, 0, len(urls))

	for _, url := range urls {
		matches, err := s.SearchByURL(ctx, url)
		if err != nil {
			results = append(results, LookupResult{URL: url, Bookmarks: []model.Match{}, Error: err.Error()})
			continue
		}
		if matches == nil {
			matches = []model.Match{}
		}
		results = append(results, LookupResult{URL: url, Bookmarks: matches})
	}

	return results
}
