package bridge

import (
	"github.com/nikbrunner/bmbridge/internal/model"
)

// Action tags the operation carried by a request. The set is closed; the
// router rejects anything else with an error response instead of dropping it.
type Action string

const (
	ActionPing            Action = "ping"
	ActionDeleteBookmarks Action = "deleteBookmarks"
	ActionFindByURL       Action = "findBookmarksByUrl"
)

// Request is the inbound envelope, identical on both transport kinds.
// RequestID is optional; when present it is echoed on the response so
// persistent-connection callers can correlate exchanges.
type Request struct {
	Action      Action             `json:"action"`
	RequestID   string             `json:"requestId,omitempty"`
	BookmarkIDs []model.BookmarkID `json:"bookmarkIds,omitempty"`
	URLs        []string           `json:"urls,omitempty"`
}

// Response is the outbound envelope. Success reflects the batch as a whole:
// individual item failures do not flip it, only a structural fault does.
// Results holds []DeleteResult or []LookupResult depending on the action.
type Response struct {
	Success   bool   `json:"success"`
	RequestID string `json:"requestId,omitempty"`
	Results   any    `json:"results,omitempty"`
	Error     string `json:"error,omitempty"`
	Message   string `json:"message,omitempty"`
}

// DeleteResult is one entry of a deleteBookmarks batch, in input order.
type DeleteResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// LookupResult is one entry of a findBookmarksByUrl batch, in input order.
// Bookmarks is never nil; a URL with no matches yields an empty list.
type LookupResult struct {
	URL       string        `json:"url"`
	Bookmarks []model.Match `json:"bookmarks"`
	Error     string        `json:"error,omitempty"`
}
