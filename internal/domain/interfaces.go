package domain

// TagNegotiator tells the media server session which tags to report.
// Implementations own the connection; this package never does network I/O.
type TagNegotiator interface {
	// EnableTags restricts the server to the tags in set
	EnableTags(set TagSet) error

	// EnableAllTags lets the server report every tag it knows
	EnableAllTags() error

	// DisableAllTags stops the server from reporting tags
	DisableAllTags() error
}
