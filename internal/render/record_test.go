package render

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/tagdeck/internal/domain"
)

func TestSongJSON_TitleFallbackAndArtist(t *testing.T) {
	song := domain.NewSong("/music/a/song.flac")
	song.Tags.AddDedup(domain.TagArtist, "Miles Davis")

	cols := Columns{Tags: domain.NewTagSet(domain.TagTitle, domain.TagArtist), ServerTags: true}
	out := string(SongJSON(song, cols))

	assert.Contains(t, out, `"Title":"song.flac"`)
	assert.Contains(t, out, `"Artist":["Miles Davis"]`)
	assert.Equal(t,
		`{"Title":"song.flac","Artist":["Miles Davis"],"Duration":0,"LastModified":0,"uri":"/music/a/song.flac"}`,
		out)
}

func TestSongJSON_TrailingFields(t *testing.T) {
	song := domain.NewSong("jazz/so_what.flac")
	song.Tags.AddDedup(domain.TagTitle, "So What")
	song.Duration = 562
	song.LastModified = 1700000000

	out := SongJSON(song, Columns{Tags: domain.NewTagSet(domain.TagTitle, domain.TagGenre), ServerTags: true})
	require.True(t, json.Valid(out), string(out))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "So What", decoded["Title"])
	assert.Equal(t, []any{"-"}, decoded["Genre"])
	assert.EqualValues(t, 562, decoded["Duration"])
	assert.EqualValues(t, 1700000000, decoded["LastModified"])
	assert.Equal(t, "jazz/so_what.flac", decoded["uri"])
}

func TestSongJSON_ServerTagsDisabled(t *testing.T) {
	song := domain.NewSong("/music/a/song.flac")
	song.Tags.AddDedup(domain.TagArtist, "Miles Davis")

	cols := Columns{Tags: domain.NewTagSet(domain.TagArtist, domain.TagAlbum), ServerTags: false}
	assert.Equal(t,
		`{"Title":"song.flac","Duration":0,"LastModified":0,"uri":"/music/a/song.flac"}`,
		string(SongJSON(song, cols)))
}

func TestAbsentSongJSON(t *testing.T) {
	cols := Columns{Tags: domain.NewTagSet(domain.TagTitle, domain.TagArtist, domain.TagAlbum), ServerTags: true}
	out := AbsentSongJSON("/music/b/track.mp3", cols)

	assert.Equal(t,
		`{"Title":"track.mp3","Artist":["-"],"Album":"-","Duration":0,"LastModified":0,"uri":"/music/b/track.mp3"}`,
		string(out))
	assert.True(t, json.Valid(out))
}

func TestAbsentSongJSON_ServerTagsDisabled(t *testing.T) {
	out := AbsentSongJSON("/music/b/track.mp3", Columns{ServerTags: false})
	assert.Equal(t, `{"Title":"track.mp3","Duration":0,"LastModified":0,"uri":"/music/b/track.mp3"}`, string(out))
}

func TestAppendAudioFormat(t *testing.T) {
	out := AppendAudioFormat(nil, &domain.AudioFormat{SampleRate: 44100, Bits: 24, Channels: 2})
	assert.Equal(t, `"AudioFormat":{"sampleRate":44100,"bits":24,"channels":2}`, string(out))

	out = AppendAudioFormat(nil, nil)
	assert.Equal(t, `"AudioFormat":{"sampleRate":0,"bits":0,"channels":0}`, string(out))

	out = AppendAudioFormat(nil, &domain.AudioFormat{SampleRate: 48000})
	assert.Equal(t, `"AudioFormat":{"sampleRate":48000,"bits":0,"channels":0}`, string(out))
}

func TestSongDetailsJSON(t *testing.T) {
	song := domain.NewSong("a.flac")
	song.Format = &domain.AudioFormat{SampleRate: 96000, Bits: 24, Channels: 2}

	out := SongDetailsJSON(song, Columns{Tags: domain.NewTagSet(domain.TagTitle), ServerTags: true})
	require.True(t, json.Valid(out), string(out))

	var decoded struct {
		Title       string
		AudioFormat domain.AudioFormat
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "a.flac", decoded.Title)
	assert.Equal(t, domain.AudioFormat{SampleRate: 96000, Bits: 24, Channels: 2}, decoded.AudioFormat)
}
