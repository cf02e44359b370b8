package domain

import "time"

// AudioFormat describes the decoded audio stream. Zero means unknown.
type AudioFormat struct {
	SampleRate uint32 `json:"sampleRate"`
	Bits       uint8  `json:"bits"`
	Channels   uint8  `json:"channels"`
}

// Song is a catalog item reported by the media server.
// The URI is its unique catalog key.
type Song struct {
	URI          string       `json:"uri"`
	Tags         TagValues    `json:"tags"`
	Duration     uint         `json:"duration"`     // Seconds
	LastModified int64        `json:"lastModified"` // Unix timestamp
	Format       *AudioFormat `json:"audioFormat,omitempty"`
}

// NewSong creates an empty song for uri
func NewSong(uri string) *Song {
	return &Song{URI: uri}
}

// SetLastModified sets the modification time reported by the server
func (s *Song) SetLastModified(t time.Time) {
	s.LastModified = t.Unix()
}

// DurationTime returns the duration as a time.Duration
func (s *Song) DurationTime() time.Duration {
	return time.Duration(s.Duration) * time.Second
}
