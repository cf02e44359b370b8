package domain

import "strings"

// TagKind identifies a metadata field reported by the media server.
// Values follow the server's protocol order.
type TagKind int

const (
	TagUnknown TagKind = -1

	TagArtist TagKind = iota - 1
	TagAlbum
	TagAlbumArtist
	TagTitle
	TagTrack
	TagName
	TagGenre
	TagDate
	TagComposer
	TagPerformer
	TagComment
	TagDisc
	TagMusicBrainzArtistID
	TagMusicBrainzAlbumID
	TagMusicBrainzAlbumArtistID
	TagMusicBrainzTrackID
	TagMusicBrainzReleaseTrackID
	TagOriginalDate
	TagArtistSort
	TagAlbumArtistSort
	TagAlbumSort
	TagLabel
	TagMusicBrainzWorkID
	TagGrouping
	TagWork
	TagConductor
	TagComposerSort
	TagEnsemble
	TagMovement
	TagMovementNumber
	TagLocation

	// TagCount is the number of known tag kinds
	TagCount int = iota - 1
)

// tagNames holds the protocol name of every kind, indexed by TagKind
var tagNames = [TagCount]string{
	TagArtist:                    "Artist",
	TagAlbum:                     "Album",
	TagAlbumArtist:               "AlbumArtist",
	TagTitle:                     "Title",
	TagTrack:                     "Track",
	TagName:                      "Name",
	TagGenre:                     "Genre",
	TagDate:                      "Date",
	TagComposer:                  "Composer",
	TagPerformer:                 "Performer",
	TagComment:                   "Comment",
	TagDisc:                      "Disc",
	TagMusicBrainzArtistID:       "MUSICBRAINZ_ARTISTID",
	TagMusicBrainzAlbumID:        "MUSICBRAINZ_ALBUMID",
	TagMusicBrainzAlbumArtistID:  "MUSICBRAINZ_ALBUMARTISTID",
	TagMusicBrainzTrackID:        "MUSICBRAINZ_TRACKID",
	TagMusicBrainzReleaseTrackID: "MUSICBRAINZ_RELEASETRACKID",
	TagOriginalDate:              "OriginalDate",
	TagArtistSort:                "ArtistSort",
	TagAlbumArtistSort:           "AlbumArtistSort",
	TagAlbumSort:                 "AlbumSort",
	TagLabel:                     "Label",
	TagMusicBrainzWorkID:         "MUSICBRAINZ_WORKID",
	TagGrouping:                  "Grouping",
	TagWork:                      "Work",
	TagConductor:                 "Conductor",
	TagComposerSort:              "ComposerSort",
	TagEnsemble:                  "Ensemble",
	TagMovement:                  "Movement",
	TagMovementNumber:            "MovementNumber",
	TagLocation:                  "Location",
}

// Valid reports whether k is inside the known enumeration
func (k TagKind) Valid() bool {
	return k >= 0 && int(k) < TagCount
}

// String returns the protocol name of the tag kind
func (k TagKind) String() string {
	if !k.Valid() {
		return "Unknown"
	}
	return tagNames[k]
}

// ParseTagKind resolves a tag name case-insensitively.
// Returns TagUnknown if the name does not match any kind.
func ParseTagKind(name string) TagKind {
	for i, n := range tagNames {
		if strings.EqualFold(n, name) {
			return TagKind(i)
		}
	}
	return TagUnknown
}

// TagNames returns the protocol names of all kinds in enumeration order
func TagNames() []string {
	names := make([]string, TagCount)
	copy(names, tagNames[:])
	return names
}

// IsMultiValue reports whether the kind conventionally carries more than one value.
// Multi-valued kinds are rendered as JSON arrays.
func (k TagKind) IsMultiValue() bool {
	switch k {
	case TagArtist,
		TagArtistSort,
		TagAlbumArtist,
		TagAlbumArtistSort,
		TagGenre,
		TagComposer,
		TagComposerSort,
		TagPerformer,
		TagConductor,
		TagEnsemble,
		TagMusicBrainzArtistID,
		TagMusicBrainzAlbumArtistID:
		return true
	default:
		return false
	}
}

// SortAlias returns the kind holding the sort form of k, or k itself
func (k TagKind) SortAlias() TagKind {
	switch k {
	case TagArtist:
		return TagArtistSort
	case TagAlbumArtist:
		return TagAlbumArtistSort
	case TagAlbum:
		return TagAlbumSort
	case TagComposer:
		return TagComposerSort
	default:
		return k
	}
}

// IsMusicBrainzArtist reports whether k is one of the MusicBrainz artist identifier kinds
func (k TagKind) IsMusicBrainzArtist() bool {
	return k == TagMusicBrainzArtistID || k == TagMusicBrainzAlbumArtistID
}
