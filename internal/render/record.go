package render

import (
	"strconv"

	"github.com/mmcdole/tagdeck/internal/domain"
)

// Columns selects the tags rendered for each song
type Columns struct {
	// Tags lists the kinds to render, in order
	Tags domain.TagSet

	// ServerTags is false when the server does not report tags at all;
	// only Title is rendered then.
	ServerTags bool
}

// AppendSongFields appends the JSON object members of a song to dst:
// one member per enabled tag, then Duration, LastModified and uri.
// The caller supplies the surrounding braces.
func AppendSongFields(dst []byte, song *domain.Song, cols Columns) []byte {
	if cols.ServerTags {
		for _, kind := range cols.Tags.Kinds() {
			dst = appendKey(dst, kind.String())
			dst = AppendTagJSON(dst, &song.Tags, kind, song.URI)
			dst = append(dst, ',')
		}
	} else {
		dst = appendKey(dst, domain.TagTitle.String())
		dst = AppendTagJSON(dst, &song.Tags, domain.TagTitle, song.URI)
		dst = append(dst, ',')
	}

	dst = appendKey(dst, "Duration")
	dst = strconv.AppendUint(dst, uint64(song.Duration), 10)
	dst = append(dst, ',')
	dst = appendKey(dst, "LastModified")
	dst = strconv.AppendInt(dst, song.LastModified, 10)
	dst = append(dst, ',')
	dst = appendKey(dst, "uri")
	return appendJSONString(dst, song.URI)
}

// AppendAbsentSongFields renders the same members as AppendSongFields for a
// song whose tags could not be loaded. Every tag is a placeholder except
// Title, which shows the filename.
func AppendAbsentSongFields(dst []byte, uri string, cols Columns) []byte {
	filename := Basename(uri)
	if cols.ServerTags {
		for _, kind := range cols.Tags.Kinds() {
			multi := kind.IsMultiValue()
			dst = appendKey(dst, kind.String())
			if multi {
				dst = append(dst, '[')
			}
			if kind == domain.TagTitle {
				dst = appendJSONString(dst, filename)
			} else {
				dst = append(dst, placeholder...)
			}
			if multi {
				dst = append(dst, ']')
			}
			dst = append(dst, ',')
		}
	} else {
		dst = appendKey(dst, domain.TagTitle.String())
		dst = appendJSONString(dst, filename)
		dst = append(dst, ',')
	}

	dst = append(dst, `"Duration":0,"LastModified":0,`...)
	dst = appendKey(dst, "uri")
	return appendJSONString(dst, uri)
}

// AppendAudioFormat appends the "AudioFormat" member. A nil format renders
// all components as 0.
func AppendAudioFormat(dst []byte, f *domain.AudioFormat) []byte {
	var format domain.AudioFormat
	if f != nil {
		format = *f
	}
	dst = append(dst, `"AudioFormat":{"sampleRate":`...)
	dst = strconv.AppendUint(dst, uint64(format.SampleRate), 10)
	dst = append(dst, `,"bits":`...)
	dst = strconv.AppendUint(dst, uint64(format.Bits), 10)
	dst = append(dst, `,"channels":`...)
	dst = strconv.AppendUint(dst, uint64(format.Channels), 10)
	return append(dst, '}')
}

// SongJSON renders a complete JSON object for song
func SongJSON(song *domain.Song, cols Columns) []byte {
	dst := append(make([]byte, 0, 256), '{')
	dst = AppendSongFields(dst, song, cols)
	return append(dst, '}')
}

// SongDetailsJSON renders a song object including its audio format
func SongDetailsJSON(song *domain.Song, cols Columns) []byte {
	dst := append(make([]byte, 0, 320), '{')
	dst = AppendSongFields(dst, song, cols)
	dst = append(dst, ',')
	dst = AppendAudioFormat(dst, song.Format)
	return append(dst, '}')
}

// AbsentSongJSON renders a complete JSON object for a song that could not be loaded
func AbsentSongJSON(uri string, cols Columns) []byte {
	dst := append(make([]byte, 0, 256), '{')
	dst = AppendAbsentSongFields(dst, uri, cols)
	return append(dst, '}')
}

func appendKey(dst []byte, key string) []byte {
	dst = appendJSONString(dst, key)
	return append(dst, ':')
}
