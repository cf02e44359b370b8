package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/mmcdole/tagdeck/internal/domain"
)

func TestTagJSON_MultiValue(t *testing.T) {
	var tags domain.TagValues
	tags.AddDedup(domain.TagArtist, "Miles Davis")
	tags.AddDedup(domain.TagArtist, `John "Trane" Coltrane`)

	assert.Equal(t, `["Miles Davis","John \"Trane\" Coltrane"]`, TagJSON(&tags, domain.TagArtist, "x.flac"))
}

func TestTagJSON_SingleValueJoins(t *testing.T) {
	var tags domain.TagValues
	tags.AddDedup(domain.TagAlbum, "Kind of Blue")
	tags.AddDedup(domain.TagAlbum, "Legacy Edition")

	assert.Equal(t, `"Kind of Blue, Legacy Edition"`, TagJSON(&tags, domain.TagAlbum, "x.flac"))
}

func TestTagJSON_NoHTMLEscaping(t *testing.T) {
	var tags domain.TagValues
	tags.AddDedup(domain.TagTitle, "Rock & Roll <Live>")
	assert.Equal(t, `"Rock & Roll <Live>"`, TagJSON(&tags, domain.TagTitle, "x.flac"))
}

func TestTagJSON_Placeholders(t *testing.T) {
	var tags domain.TagValues
	assert.Equal(t, `["-"]`, TagJSON(&tags, domain.TagGenre, "x.flac"))
	assert.Equal(t, `"-"`, TagJSON(&tags, domain.TagAlbum, "x.flac"))
}

func TestTagJSON_TitleFallbackChain(t *testing.T) {
	var tags domain.TagValues
	assert.Equal(t, `"song.flac"`, TagJSON(&tags, domain.TagTitle, "/music/a/song.flac"))

	tags.AddDedup(domain.TagName, "Stream Name")
	assert.Equal(t, `"Stream Name"`, TagJSON(&tags, domain.TagTitle, "/music/a/song.flac"))
}

func TestTagJSON_MusicBrainzSplit(t *testing.T) {
	for _, kind := range []domain.TagKind{domain.TagMusicBrainzArtistID, domain.TagMusicBrainzAlbumArtistID} {
		t.Run(kind.String(), func(t *testing.T) {
			var packed domain.TagValues
			packed.AddDedup(kind, "abc;def")

			var separate domain.TagValues
			separate.AddDedup(kind, "abc")
			separate.AddDedup(kind, "def")

			assert.Equal(t, `["abc","def"]`, TagJSON(&packed, kind, "x"))
			assert.Equal(t, `["abc","def"]`, TagJSON(&separate, kind, "x"))
		})
	}
}

func TestTagJSON_MusicBrainzSplitTrimsAndKeepsEmpty(t *testing.T) {
	var tags domain.TagValues
	tags.AddDedup(domain.TagMusicBrainzArtistID, " abc ; def ;")
	assert.Equal(t, `["abc","def",""]`, TagJSON(&tags, domain.TagMusicBrainzArtistID, "x"))

	var onlySeparator domain.TagValues
	onlySeparator.AddDedup(domain.TagMusicBrainzArtistID, " ; ")
	assert.Equal(t, `["",""]`, TagJSON(&onlySeparator, domain.TagMusicBrainzArtistID, "x"))
}

func TestTagJSON_OtherMultiKindsAreNotSplit(t *testing.T) {
	var tags domain.TagValues
	tags.AddDedup(domain.TagArtist, "a;b")
	assert.Equal(t, `["a;b"]`, TagJSON(&tags, domain.TagArtist, "x"))
}

func TestAppendTagJSON_AppendsToExisting(t *testing.T) {
	var tags domain.TagValues
	out := AppendTagJSON([]byte(`"Genre":`), &tags, domain.TagGenre, "x")
	assert.Equal(t, `"Genre":["-"]`, string(out))
}

// TestProperty_EmptyKindsRenderPlaceholder checks every non-Title kind of an
// empty store renders exactly the documented placeholder.
func TestProperty_EmptyKindsRenderPlaceholder(t *testing.T) {
	var kinds []domain.TagKind
	for _, k := range domain.AllTags().Kinds() {
		if k != domain.TagTitle {
			kinds = append(kinds, k)
		}
	}

	rapid.Check(t, func(t *rapid.T) {
		kind := rapid.SampledFrom(kinds).Draw(t, "kind")
		var tags domain.TagValues
		// values on other kinds must not leak into the rendered kind
		other := rapid.SampledFrom(kinds).Draw(t, "other")
		if other != kind {
			tags.AddDedup(other, "value")
		}

		got := TagJSON(&tags, kind, "/music/a.flac")
		want := `"-"`
		if kind.IsMultiValue() {
			want = `["-"]`
		}
		if got != want {
			t.Fatalf("TagJSON(%s) = %s, want %s", kind, got, want)
		}
		if s, n := DisplayTag(&tags, kind, "/music/a.flac"); s != "" || n != 0 {
			t.Fatalf("DisplayTag(%s) = %q, %d", kind, s, n)
		}
	})
}

// TestProperty_TitleFallbackIsValidJSON checks an empty Title always renders
// a well formed JSON string.
func TestProperty_TitleFallbackIsValidJSON(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		uri := rapid.StringN(1, 64, -1).Draw(t, "uri")
		var tags domain.TagValues

		got := TagJSON(&tags, domain.TagTitle, uri)
		if !json.Valid([]byte(got)) {
			t.Fatalf("invalid JSON %s for uri %q", got, uri)
		}
		var s string
		if err := json.Unmarshal([]byte(got), &s); err != nil {
			t.Fatalf("not a JSON string: %s", got)
		}
	})
}

func TestTagJSON_ValidForEveryKind(t *testing.T) {
	var tags domain.TagValues
	tags.AddDedup(domain.TagArtist, "A\tB\n")
	tags.AddDedup(domain.TagComment, "\x01control")

	for _, kind := range domain.AllTags().Kinds() {
		got := TagJSON(&tags, kind, "dir/file.mp3")
		require.True(t, json.Valid([]byte(got)), "%s: %s", kind, got)
	}
}
