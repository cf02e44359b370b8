package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTagKind_CaseInsensitive(t *testing.T) {
	assert.Equal(t, TagArtist, ParseTagKind("Artist"))
	assert.Equal(t, TagArtist, ParseTagKind("artist"))
	assert.Equal(t, TagAlbumArtist, ParseTagKind("ALBUMARTIST"))
	assert.Equal(t, TagMusicBrainzArtistID, ParseTagKind("musicbrainz_artistid"))
	assert.Equal(t, TagUnknown, ParseTagKind("Bogus"))
	assert.Equal(t, TagUnknown, ParseTagKind(""))
}

func TestTagKind_StringRoundTrip(t *testing.T) {
	require.Len(t, TagNames(), TagCount)
	for i := 0; i < TagCount; i++ {
		kind := TagKind(i)
		assert.NotEmpty(t, kind.String())
		assert.Equal(t, kind, ParseTagKind(kind.String()))
	}
	assert.Equal(t, "Unknown", TagUnknown.String())
	assert.Equal(t, "Unknown", TagKind(TagCount).String())
}

func TestTagKind_IsMultiValue(t *testing.T) {
	multi := []TagKind{
		TagArtist, TagArtistSort, TagAlbumArtist, TagAlbumArtistSort,
		TagGenre, TagComposer, TagComposerSort, TagPerformer,
		TagConductor, TagEnsemble, TagMusicBrainzArtistID, TagMusicBrainzAlbumArtistID,
	}
	for _, k := range multi {
		assert.True(t, k.IsMultiValue(), k.String())
	}

	single := []TagKind{TagTitle, TagAlbum, TagName, TagDate, TagTrack, TagAlbumSort, TagMusicBrainzAlbumID, TagUnknown}
	for _, k := range single {
		assert.False(t, k.IsMultiValue(), k.String())
	}
}

func TestTagKind_SortAlias(t *testing.T) {
	assert.Equal(t, TagArtistSort, TagArtist.SortAlias())
	assert.Equal(t, TagAlbumArtistSort, TagAlbumArtist.SortAlias())
	assert.Equal(t, TagAlbumSort, TagAlbum.SortAlias())
	assert.Equal(t, TagComposerSort, TagComposer.SortAlias())

	// identity everywhere else
	assert.Equal(t, TagGenre, TagGenre.SortAlias())
	assert.Equal(t, TagArtistSort, TagArtistSort.SortAlias())
	assert.Equal(t, TagUnknown, TagUnknown.SortAlias())
}
