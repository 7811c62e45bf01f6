package bridge

import (
	"context"
	"fmt"

	"github.com/nikbrunner/bmbridge/internal/store"
)

// Router dispatches inbound requests by action tag and runs them against
// the native bookmark store. It holds no state between requests.
type Router struct {
	store store.Store
}

// NewRouter creates a Router backed by the given store.
func NewRouter(s store.Store) *Router {
	return &Router{store: s}
}

// Handle runs one request to completion and returns exactly one response.
// The transport layer must not close out the exchange before Handle returns;
// store calls happen inside it.
func (r *Router) Handle(ctx context.Context, req Request) Response {
	resp := r.dispatch(ctx, req)
	resp.RequestID = req.RequestID
	return resp
}

func (r *Router) dispatch(ctx context.Context, req Request) Response {
	switch req.Action {
	case ActionPing:
		return Response{Success: true, Message: "pong"}

	case ActionDeleteBookmarks:
		if req.BookmarkIDs == nil {
			return Response{Success: false, Error: "deleteBookmarks requires bookmarkIds"}
		}
		return Response{
			Success: true,
			Results: DeleteBookmarks(ctx, r.store, req.BookmarkIDs, nil),
		}

	case ActionFindByURL:
		if req.URLs == nil {
			return Response{Success: false, Error: "findBookmarksByUrl requires urls"}
		}
		return Response{
			Success: true,
			Results: FindBookmarksByURL(ctx, r.store, req.URLs),
		}

	default:
		return Response{Success: false, Error: fmt.Sprintf("unknown action %q", req.Action)}
	}
}
