package domain

// SongStore handles the local song cache (BoltDB + memory).
type SongStore interface {
	// GetSong returns the cached song for uri
	GetSong(uri string) (*Song, bool)

	// GetSongs returns all cached songs
	GetSongs() ([]*Song, bool)

	// SaveSongs replaces the cached catalog with songs
	SaveSongs(songs []*Song, serverTS int64) error

	// IsValid checks if the stored timestamp >= serverTS
	IsValid(serverTS int64) bool

	// InvalidateAll wipes the entire cache
	InvalidateAll()

	Close() error
}
