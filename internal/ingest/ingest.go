// Package ingest turns operator-supplied identifier lists (typed, pasted or
// loaded from a file) into the normalized ids the delete loop consumes.
package ingest

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Identifier is one resolved input line. Raw keeps the original,
// pre-normalization form for the operator-facing result log.
type Identifier struct {
	Raw string
	ID  string
}

// Decode interprets file content. A structured JSON array is flattened into
// newline-delimited ids: scalar elements are taken verbatim (numbers in
// their literal form), object elements contribute the value of their "id"
// field. Anything that fails to parse as an array is treated as free text
// and returned unmodified; the fault is intentionally not surfaced.
func Decode(data []byte) string {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var elements []any
	if err := dec.Decode(&elements); err != nil {
		return string(data)
	}

	lines := make([]string, 0, len(elements))
	for _, el := range elements {
		if line := elementID(el); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}

// elementID extracts the identifier from one array element.
func elementID(el any) string {
	switch v := el.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	case map[string]any:
		if id, ok := v["id"]; ok {
			return elementID(id)
		}
		return ""
	default:
		return ""
	}
}

// Split breaks newline-delimited text into identifiers. Each line is
// trimmed; blank lines and lines whose first non-whitespace character is
// '#' are dropped.
func Split(text string) []Identifier {
	var ids []Identifier
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		ids = append(ids, Identifier{Raw: line, ID: trimmed})
	}
	return ids
}
