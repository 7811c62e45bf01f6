package model

import (
	"encoding/json"
	"fmt"
)

// BookmarkID is an opaque store identifier. Callers may send it as a JSON
// string or number; it is always normalized to its string form because the
// store's key space is string-typed.
type BookmarkID string

// UnmarshalJSON accepts both "42" and 42 on the wire.
func (id *BookmarkID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*id = BookmarkID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*id = BookmarkID(n.String())
		return nil
	}

	return fmt.Errorf("bookmark id must be a string or number, got %s", data)
}

// String returns the normalized string form.
func (id BookmarkID) String() string {
	return string(id)
}
