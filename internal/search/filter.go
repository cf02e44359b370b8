// Package search implements the case-insensitive substring filter used for
// client side song search.
package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/mmcdole/tagdeck/internal/domain"
	"github.com/mmcdole/tagdeck/internal/render"
)

// FoldTerm normalizes a search term the way Matches folds tag values.
// Surrounding spaces are kept; they are part of the substring.
// Callers fold the term once per query, not once per song.
func FoldTerm(term string) string {
	return cases.Fold().String(term)
}

// Matches reports whether any enabled tag of the song contains term.
// term must already be folded with FoldTerm. An empty term matches every song.
func Matches(tags *domain.TagValues, term string, enabled domain.TagSet) bool {
	if term == "" {
		return true
	}
	folder := cases.Fold()
	for _, kind := range enabled.Kinds() {
		value, n := render.JoinTag(tags, kind)
		if n == 0 {
			continue
		}
		if strings.Contains(folder.String(value), term) {
			return true
		}
	}
	return false
}

// FilterSongs returns the songs matching term, preserving order.
// term is folded here. A blank term returns all songs.
func FilterSongs(songs []*domain.Song, term string, enabled domain.TagSet) []*domain.Song {
	if strings.TrimSpace(term) == "" {
		return songs
	}
	term = FoldTerm(term)
	matched := make([]*domain.Song, 0, len(songs))
	for _, song := range songs {
		if Matches(&song.Tags, term, enabled) {
			matched = append(matched, song)
		}
	}
	return matched
}
