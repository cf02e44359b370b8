package domain

import "errors"

// Sentinel errors for domain operations
var (
	// ErrSongNotFound indicates the requested song is not in the catalog
	ErrSongNotFound = errors.New("song not found")

	// ErrMalformedResponse indicates the media server sent something we could not decode
	ErrMalformedResponse = errors.New("malformed server response")

	// ErrStoreClosed indicates the song store was used after Close
	ErrStoreClosed = errors.New("song store is closed")
)
