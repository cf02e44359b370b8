// Package render turns song tags into the display strings and JSON
// fragments served to clients.
package render

import (
	"strings"

	"github.com/mmcdole/tagdeck/internal/domain"
)

// valueSeparator joins the values of a kind in display and single-value JSON form
const valueSeparator = ", "

// JoinTag joins all values of kind with ", " in insertion order.
// Returns the joined string and the number of values it contains.
func JoinTag(tags *domain.TagValues, kind domain.TagKind) (string, int) {
	n := tags.Count(kind)
	if n == 0 {
		return "", 0
	}
	return strings.Join(tags.Values(kind), valueSeparator), n
}

// DisplayTag renders kind as a display string.
//
// An empty Title falls back to Name and then to the filename of uri.
// Any other empty kind yields ("", 0).
func DisplayTag(tags *domain.TagValues, kind domain.TagKind, uri string) (string, int) {
	s, n := JoinTag(tags, kind)
	if n > 0 || kind != domain.TagTitle {
		return s, n
	}
	if s, n = JoinTag(tags, domain.TagName); n > 0 {
		return s, n
	}
	return Basename(uri), 1
}

// Basename returns the filename part of a catalog uri.
// Stream uris are kept whole, only the fragment is removed.
func Basename(uri string) string {
	if strings.Contains(uri, "://") {
		if i := strings.IndexByte(uri, '#'); i >= 0 {
			return uri[:i]
		}
		return uri
	}
	if i := strings.LastIndexByte(uri, '/'); i >= 0 {
		return uri[i+1:]
	}
	return uri
}
