package converter

import (
	"errors"
	"strings"
)

// Textual surgery on an already-serialized entry array. A single compiled
// entry can be inserted, removed or replaced without recompiling the array,
// because SerializeEntry is deterministic: the serialized form of an entry is
// locatable as an exact substring.

// ErrEntryNotFound means the serialized entry does not occur in the array
var ErrEntryNotFound = errors.New("entry not found in serialized array")

var errNotEntryArray = errors.New("not a serialized entry array")

// AppendEntry inserts a serialized entry at the end of a serialized array
func AppendEntry(array, entry string) (string, error) {
	trimmed := strings.TrimSpace(array)
	if !strings.HasPrefix(trimmed, "[") || !strings.HasSuffix(trimmed, "]") {
		return "", errNotEntryArray
	}

	inner := strings.TrimSpace(trimmed[1 : len(trimmed)-1])
	if inner == "" {
		return "[" + entry + "]", nil
	}
	return trimmed[:len(trimmed)-1] + "," + entry + "]", nil
}

// RemoveEntry removes the first occurrence of a serialized entry from the
// array, fixing up the adjoining comma
func RemoveEntry(array, entry string) (string, error) {
	idx := strings.Index(array, entry)
	if idx == -1 {
		return "", ErrEntryNotFound
	}

	start, end := idx, idx+len(entry)
	switch {
	case start > 0 && array[start-1] == ',':
		start--
	case end < len(array) && array[end] == ',':
		end++
	}

	return array[:start] + array[end:], nil
}

// ReplaceEntry replaces the first occurrence of a serialized entry with
// another serialized entry
func ReplaceEntry(array, oldEntry, newEntry string) (string, error) {
	if !strings.Contains(array, oldEntry) {
		return "", ErrEntryNotFound
	}
	return strings.Replace(array, oldEntry, newEntry, 1), nil
}
