package model

// Match represents a single store entry as surfaced to callers.
// ParentID is the store's id of the containing folder ("" for a root).
type Match struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	ParentID string `json:"parentId"`
}
