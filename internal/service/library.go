package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync/atomic"
	"time"

	"github.com/mmcdole/tagdeck/internal/domain"
	"github.com/mmcdole/tagdeck/internal/fileutil"
	"github.com/mmcdole/tagdeck/internal/render"
	"github.com/mmcdole/tagdeck/internal/search"
)

// catalog is an immutable snapshot of all songs
type catalog struct {
	byURI   map[string]*domain.Song
	ordered []*domain.Song // Sorted by uri
}

func newCatalog(songs []*domain.Song) *catalog {
	c := &catalog{
		byURI:   make(map[string]*domain.Song, len(songs)),
		ordered: make([]*domain.Song, 0, len(songs)),
	}
	for _, song := range songs {
		if _, dup := c.byURI[song.URI]; dup {
			continue
		}
		c.byURI[song.URI] = song
		c.ordered = append(c.ordered, song)
	}
	sort.Slice(c.ordered, func(i, j int) bool { return c.ordered[i].URI < c.ordered[j].URI })
	return c
}

// ListResult is the response for a song listing
type ListResult struct {
	Songs []json.RawMessage `json:"data"`
	Total int               `json:"totalEntities"`
	Count int               `json:"returnedEntities"`
	Term  string            `json:"searchstr"`
}

// LibraryService publishes ingested songs and renders them for clients.
// Songs are fully built before publication and never modified afterwards;
// re-ingestion publishes a new catalog.
type LibraryService struct {
	store  domain.SongStore
	tags   *TagService
	logger *slog.Logger

	catalog atomic.Pointer[catalog]
}

// NewLibraryService creates a new library service.
// A nil tags renders and searches with the default tag configuration.
func NewLibraryService(store domain.SongStore, tags *TagService, logger *slog.Logger) *LibraryService {
	if logger == nil {
		logger = slog.Default()
	}
	if tags == nil {
		tags = NewTagService(nil, logger)
	}
	s := &LibraryService{store: store, tags: tags, logger: logger}
	s.catalog.Store(newCatalog(nil))
	return s
}

// LoadCached publishes the songs from the store if it is at least as new
// as serverTS. Returns false if the cache was stale or empty.
func (s *LibraryService) LoadCached(serverTS int64) bool {
	if s.store == nil || !s.store.IsValid(serverTS) {
		return false
	}
	songs, ok := s.store.GetSongs()
	if !ok {
		return false
	}
	s.catalog.Store(newCatalog(songs))
	s.logger.Debug("cache fresh", "songs", len(songs))
	return true
}

// Ingest publishes songs as the new catalog and saves them to the store.
// Songs sharing a uri keep the first occurrence.
func (s *LibraryService) Ingest(songs []*domain.Song, serverTS int64) int {
	c := newCatalog(songs)
	s.catalog.Store(c)

	if s.store != nil {
		if err := s.store.SaveSongs(c.ordered, serverTS); err != nil {
			s.logger.Error("failed to save songs", "error", err)
		}
	}
	var total time.Duration
	for _, song := range c.ordered {
		total += song.DurationTime()
	}
	s.logger.Info("ingested songs",
		"count", len(c.ordered),
		"skipped", len(songs)-len(c.ordered),
		"duration", total.String())
	return len(c.ordered)
}

// Song returns the song for uri, falling back to the store for songs
// that are not in the published catalog
func (s *LibraryService) Song(uri string) (*domain.Song, error) {
	if song, ok := s.catalog.Load().byURI[uri]; ok {
		return song, nil
	}
	if s.store != nil {
		if song, ok := s.store.GetSong(uri); ok {
			return song, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", domain.ErrSongNotFound, uri)
}

// Songs returns all songs ordered by uri
func (s *LibraryService) Songs() []*domain.Song {
	ordered := s.catalog.Load().ordered
	out := make([]*domain.Song, len(ordered))
	copy(out, ordered)
	return out
}

// Search returns the songs whose search tags contain term
func (s *LibraryService) Search(term string) []*domain.Song {
	return search.FilterSongs(s.catalog.Load().ordered, term, s.tags.Current().Search)
}

// List renders the songs matching term using the column tags
func (s *LibraryService) List(term string) ListResult {
	cfg := s.tags.Current()
	all := s.catalog.Load().ordered
	matched := search.FilterSongs(all, term, cfg.Search)

	cols := cfg.RenderColumns()
	result := ListResult{
		Songs: make([]json.RawMessage, 0, len(matched)),
		Total: len(all),
		Count: len(matched),
		Term:  term,
	}
	for _, song := range matched {
		result.Songs = append(result.Songs, render.SongJSON(song, cols))
	}
	return result
}

// ListJSON renders the List result as a JSON object.
// Records keep the renderer's output, without HTML escaping.
func (s *LibraryService) ListJSON(term string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s.List(term)); err != nil {
		return nil, fmt.Errorf("failed to encode song list: %w", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}), nil
}

// SongJSON renders one song including its audio format. Unknown songs
// render as an absent record so clients always get every column.
func (s *LibraryService) SongJSON(uri string) []byte {
	cols := s.tags.Current().RenderColumns()
	song, err := s.Song(uri)
	if err != nil {
		s.logger.Debug("rendering absent song", "uri", uri)
		return render.AbsentSongJSON(uri, cols)
	}
	return render.SongDetailsJSON(song, cols)
}

// Export writes the catalog as a JSON array to path
func (s *LibraryService) Export(path string) error {
	data, err := json.MarshalIndent(s.catalog.Load().ordered, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	if err := fileutil.WriteFileAtomic(path, data, 0644); err != nil {
		return fmt.Errorf("failed to export catalog: %w", err)
	}
	s.logger.Info("exported catalog", "path", path)
	return nil
}
