package domain

import (
	"encoding/json"
	"fmt"
)

// TagValues holds the values of every tag kind for one song.
// Each kind keeps its distinct values in first-seen order.
//
// TagValues is built once during ingestion and must not be modified
// after it has been published to readers.
type TagValues struct {
	values [TagCount][]string
}

// AddDedup appends value to the kind's values.
// Returns false if the kind is invalid, the value is empty or the value
// is already present (exact byte comparison).
func (t *TagValues) AddDedup(kind TagKind, value string) bool {
	if !kind.Valid() || value == "" {
		return false
	}
	for _, v := range t.values[kind] {
		if v == value {
			return false
		}
	}
	t.values[kind] = append(t.values[kind], value)
	return true
}

// HasAny returns true if the kind has at least one value
func (t *TagValues) HasAny(kind TagKind) bool {
	return t.Count(kind) > 0
}

// Count returns the number of values recorded for the kind
func (t *TagValues) Count(kind TagKind) int {
	if t == nil || !kind.Valid() {
		return 0
	}
	return len(t.values[kind])
}

// Value returns the n-th value of the kind
func (t *TagValues) Value(kind TagKind, n int) (string, bool) {
	if n < 0 || n >= t.Count(kind) {
		return "", false
	}
	return t.values[kind][n], true
}

// Values returns a copy of the kind's values in insertion order
func (t *TagValues) Values(kind TagKind) []string {
	n := t.Count(kind)
	if n == 0 {
		return nil
	}
	out := make([]string, n)
	copy(out, t.values[kind])
	return out
}

// MarshalJSON encodes the non-empty kinds as {"<TagName>": [values...]}
func (t TagValues) MarshalJSON() ([]byte, error) {
	m := make(map[string][]string)
	for i, vals := range t.values {
		if len(vals) > 0 {
			m[TagKind(i).String()] = vals
		}
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes the map form, replaying values through AddDedup.
// Unknown tag names are skipped.
func (t *TagValues) UnmarshalJSON(data []byte) error {
	var m map[string][]string
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("decoding tag values: %w", err)
	}
	*t = TagValues{}
	for name, vals := range m {
		kind := ParseTagKind(name)
		if kind == TagUnknown {
			continue
		}
		for _, v := range vals {
			t.AddDedup(kind, v)
		}
	}
	return nil
}
