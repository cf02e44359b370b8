package domain

import "strings"

// MaxTagSetLen bounds the number of entries in a TagSet
const MaxTagSetLen = 64

// TagSet is an ordered list of enabled tag kinds.
// It is built once and treated as immutable afterwards; reconfiguration
// builds a new TagSet instead of editing a shared one.
type TagSet struct {
	kinds []TagKind
}

// NewTagSet builds a TagSet from the given kinds, skipping invalid kinds,
// duplicates and anything past MaxTagSetLen.
func NewTagSet(kinds ...TagKind) TagSet {
	var s TagSet
	for _, k := range kinds {
		if s.Contains(k) {
			continue
		}
		s.Append(k)
	}
	return s
}

// AllTags returns a TagSet containing every known kind
func AllTags() TagSet {
	s := TagSet{kinds: make([]TagKind, 0, TagCount)}
	for i := 0; i < TagCount; i++ {
		s.kinds = append(s.kinds, TagKind(i))
	}
	return s
}

// Append adds kind to the end of the set.
// Returns false if the kind is invalid or the set is full.
// Duplicates are not rejected.
func (s *TagSet) Append(kind TagKind) bool {
	if !kind.Valid() || len(s.kinds) >= MaxTagSetLen {
		return false
	}
	s.kinds = append(s.kinds, kind)
	return true
}

// Contains reports whether kind is in the set
func (s TagSet) Contains(kind TagKind) bool {
	for _, k := range s.kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Len returns the number of entries
func (s TagSet) Len() int { return len(s.kinds) }

// Kinds returns a copy of the entries in order
func (s TagSet) Kinds() []TagKind {
	out := make([]TagKind, len(s.kinds))
	copy(out, s.kinds)
	return out
}

// Names returns the protocol names of the entries in order
func (s TagSet) Names() []string {
	names := make([]string, len(s.kinds))
	for i, k := range s.kinds {
		names[i] = k.String()
	}
	return names
}

// String joins the names with a single space
func (s TagSet) String() string {
	return strings.Join(s.Names(), " ")
}
