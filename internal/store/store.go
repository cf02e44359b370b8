package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	bolt "go.etcd.io/bbolt"

	"github.com/mmcdole/tagdeck/internal/domain"
)

// Bucket names
var (
	bucketSongs = []byte("songs")
	bucketMeta  = []byte("meta")
)

const keyTimestamp = "ts"

// SongStore implements domain.SongStore using BoltDB.
type SongStore struct {
	db *bolt.DB
	mu sync.RWMutex // Serializes catalog replacement against reads

	// In-memory cache for hot-path reads (promoted on access)
	cache  *gocache.Cache
	closed bool
}

var _ domain.SongStore = (*SongStore)(nil)

// NewSongStore opens the song cache for serverURL below baseCacheDir.
// An empty baseCacheDir keeps everything in memory.
func NewSongStore(baseCacheDir, serverURL string) (*SongStore, error) {
	cache := gocache.New(gocache.NoExpiration, 0)
	if baseCacheDir == "" {
		// Memory-only mode (no persistence)
		return &SongStore{cache: cache}, nil
	}

	dir := baseCacheDir
	if serverURL != "" {
		dir = filepath.Join(baseCacheDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "tagdeck.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSongs, bucketMeta} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &SongStore{db: db, cache: cache}, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *SongStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.cache.Flush()
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func cacheKey(bucket []byte, key string) string {
	return string(bucket) + ":" + key
}

// === Generic helpers ===

func (s *SongStore) get(bucket []byte, key string, dest interface{}) bool {
	ck := cacheKey(bucket, key)

	// Check memory cache first
	if v, ok := s.cache.Get(ck); ok {
		if data, ok := v.([]byte); ok {
			return json.Unmarshal(data, dest) == nil
		}
	}

	if s.db == nil {
		return false
	}

	// Read from BoltDB
	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucket)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.cache.Set(ck, data, gocache.NoExpiration)

	return json.Unmarshal(data, dest) == nil
}

func (s *SongStore) set(bucket []byte, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.cache.Set(cacheKey(bucket, key), data, gocache.NoExpiration)

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

// clearCachePrefix drops every hot-layer entry whose key starts with prefix
func (s *SongStore) clearCachePrefix(prefix string) {
	for k := range s.cache.Items() {
		if strings.HasPrefix(k, prefix) {
			s.cache.Delete(k)
		}
	}
}

// === Songs ===

func (s *SongStore) GetSong(uri string) (*domain.Song, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var song domain.Song
	if !s.get(bucketSongs, uri, &song) {
		return nil, false
	}
	return &song, true
}

// GetSongs returns all cached songs ordered by uri
func (s *SongStore) GetSongs() ([]*domain.Song, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var ts int64
	if !s.get(bucketMeta, keyTimestamp, &ts) {
		return nil, false
	}

	if s.db == nil {
		return s.songsFromCache(), true
	}

	var songs []*domain.Song
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketSongs).ForEach(func(k, v []byte) error {
			var song domain.Song
			if err := json.Unmarshal(v, &song); err != nil {
				return fmt.Errorf("decoding song %q: %w", k, err)
			}
			songs = append(songs, &song)
			return nil
		})
	})
	if err != nil {
		return nil, false
	}
	return songs, true
}

func (s *SongStore) songsFromCache() []*domain.Song {
	prefix := cacheKey(bucketSongs, "")
	var songs []*domain.Song
	for k, item := range s.cache.Items() {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		data, ok := item.Object.([]byte)
		if !ok {
			continue
		}
		var song domain.Song
		if json.Unmarshal(data, &song) == nil {
			songs = append(songs, &song)
		}
	}
	sort.Slice(songs, func(i, j int) bool { return songs[i].URI < songs[j].URI })
	return songs
}

// SaveSongs replaces the whole cached catalog in one transaction
func (s *SongStore) SaveSongs(songs []*domain.Song, serverTS int64) error {
	encoded := make(map[string][]byte, len(songs))
	for _, song := range songs {
		data, err := json.Marshal(song)
		if err != nil {
			return fmt.Errorf("encoding song %q: %w", song.URI, err)
		}
		encoded[song.URI] = data
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return domain.ErrStoreClosed
	}
	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			if err := tx.DeleteBucket(bucketSongs); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return err
			}
			b, err := tx.CreateBucket(bucketSongs)
			if err != nil {
				return err
			}
			for uri, data := range encoded {
				if err := b.Put([]byte(uri), data); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to save songs: %w", err)
		}
	}

	s.clearCachePrefix(cacheKey(bucketSongs, ""))
	for uri, data := range encoded {
		s.cache.Set(cacheKey(bucketSongs, uri), data, gocache.NoExpiration)
	}

	// Save timestamp separately for freshness checks
	return s.set(bucketMeta, keyTimestamp, serverTS)
}

// === Validation ===

func (s *SongStore) IsValid(serverTS int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var storedTS int64
	if !s.get(bucketMeta, keyTimestamp, &storedTS) {
		return false
	}
	return storedTS >= serverTS
}

// === Invalidation ===

func (s *SongStore) InvalidateAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache.Flush()

	if s.db == nil {
		return
	}

	// Recreate all buckets empty
	s.db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketSongs, bucketMeta} {
			if err := tx.DeleteBucket(bucket); err != nil && !errors.Is(err, bolt.ErrBucketNotFound) {
				return err
			}
			if _, err := tx.CreateBucket(bucket); err != nil {
				return err
			}
		}
		return nil
	})
}
