package render

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/mmcdole/tagdeck/internal/domain"
)

const (
	placeholder      = `"-"`
	placeholderArray = `["-"]`
)

// AppendTagJSON appends kind as a JSON value to dst.
//
// Multi-valued kinds render as an array of strings, all other kinds as a
// single string with the values joined by ", ". An empty Title falls back
// to Name and then to the filename of uri. Other empty kinds render as the
// "-" placeholder (or ["-"] for multi-valued kinds), so every requested
// kind always has a value.
func AppendTagJSON(dst []byte, tags *domain.TagValues, kind domain.TagKind, uri string) []byte {
	multi := kind.IsMultiValue()
	if out, n := appendTagValues(dst, tags, kind, multi); n > 0 {
		return out
	}

	if kind == domain.TagTitle {
		if out, n := appendTagValues(dst, tags, domain.TagName, multi); n > 0 {
			return out
		}
		return appendJSONString(dst, Basename(uri))
	}

	if multi {
		return append(dst, placeholderArray...)
	}
	return append(dst, placeholder...)
}

// TagJSON returns the JSON value of kind, see AppendTagJSON
func TagJSON(tags *domain.TagValues, kind domain.TagKind, uri string) string {
	return string(AppendTagJSON(nil, tags, kind, uri))
}

// appendTagValues appends the values of kind without fallbacks.
// Nothing is appended when the kind has no values.
func appendTagValues(dst []byte, tags *domain.TagValues, kind domain.TagKind, multi bool) ([]byte, int) {
	if multi {
		return appendTagArray(dst, tags, kind)
	}

	joined, n := JoinTag(tags, kind)
	if n == 0 {
		return dst, 0
	}
	return appendJSONString(dst, joined), n
}

// appendTagArray renders the values of kind as a JSON array.
// A single MusicBrainz artist id holding ';' separated ids is split
// into one element per id.
func appendTagArray(dst []byte, tags *domain.TagValues, kind domain.TagKind) ([]byte, int) {
	values := tags.Values(kind)
	if kind.IsMusicBrainzArtist() && len(values) == 1 {
		values = splitIDs(values[0])
	}
	if len(values) == 0 {
		return dst, 0
	}

	buf := make([]byte, 0, 32)
	buf = append(buf, '[')
	for i, v := range values {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendJSONString(buf, v)
	}
	buf = append(buf, ']')
	return append(dst, buf...), len(values)
}

// splitIDs splits a ';' joined id list and trims whitespace around each id.
// Empty ids are kept, so " ; " yields two empty ids.
func splitIDs(value string) []string {
	parts := strings.Split(value, ";")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// appendJSONString appends s as a quoted JSON string without HTML escaping
func appendJSONString(dst []byte, s string) []byte {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		// strings always encode
		return append(dst, `""`...)
	}
	return append(dst, bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})...)
}
