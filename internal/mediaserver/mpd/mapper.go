package mpd

import (
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/tagdeck/internal/domain"
)

// songBuilder accumulates the pairs of one song
type songBuilder struct {
	song        *domain.Song
	hasDuration bool
}

// ParseSongs decodes a song listing ("listallinfo", "playlistinfo", ...).
// Every "file" line starts a new song; the tag lines that follow are
// added to it without duplicates.
func ParseSongs(r io.Reader) ([]*domain.Song, error) {
	var songs []*domain.Song
	var cur *songBuilder

	flush := func() {
		if cur != nil {
			songs = append(songs, cur.song)
			cur = nil
		}
	}

	err := readPairs(r, func(p Pair) error {
		switch p.Key {
		case "file":
			flush()
			cur = &songBuilder{song: domain.NewSong(p.Value)}
			return nil
		case "directory", "playlist":
			flush()
			return nil
		}
		if cur != nil {
			cur.apply(p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	flush()
	return songs, nil
}

func (b *songBuilder) apply(p Pair) {
	switch p.Key {
	case "duration":
		if d, err := strconv.ParseFloat(p.Value, 64); err == nil && d >= 0 {
			b.song.Duration = uint(math.Floor(d))
			b.hasDuration = true
		}
	case "Time":
		// superseded by the more precise "duration"
		if b.hasDuration {
			return
		}
		if d, err := strconv.ParseUint(p.Value, 10, 32); err == nil {
			b.song.Duration = uint(d)
		}
	case "Last-Modified":
		if t, err := time.Parse(time.RFC3339, p.Value); err == nil {
			b.song.SetLastModified(t)
		}
	case "Format":
		b.song.Format = parseAudioFormat(p.Value)
	default:
		if kind := domain.ParseTagKind(p.Key); kind != domain.TagUnknown {
			b.song.Tags.AddDedup(kind, p.Value)
		}
	}
}

// parseAudioFormat decodes "samplerate:bits:channels".
// Components that are "*" or not numeric are left at 0.
func parseAudioFormat(value string) *domain.AudioFormat {
	parts := strings.Split(value, ":")
	if len(parts) != 3 {
		return nil
	}
	var f domain.AudioFormat
	if v, err := strconv.ParseUint(parts[0], 10, 32); err == nil {
		f.SampleRate = uint32(v)
	}
	if v, err := strconv.ParseUint(parts[1], 10, 8); err == nil {
		f.Bits = uint8(v)
	}
	if v, err := strconv.ParseUint(parts[2], 10, 8); err == nil {
		f.Channels = uint8(v)
	}
	return &f
}
