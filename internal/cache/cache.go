// Package cache keeps fetched schedule resources and the detected location
// so repeated runs do not hit the network. Two backends exist: a directory
// of JSON files and a Redis instance.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/smokyabdulrahman/waktu-solat/internal/geo"
)

const (
	resourceCacheFile = "resource_%s.json" // keyed by hash
	geoCacheFile      = "geolocation.json"
	geoTTL            = 24 * time.Hour

	// DefaultTTL is how long a fetched resource stays fresh. The tables are
	// published once a year, so a day is conservative.
	DefaultTTL = 24 * time.Hour
)

// Cache is a byte store keyed by Key. A zero TTL disables expiry.
type Cache interface {
	// Get returns the cached bytes and true, or nil and false on a miss.
	// Unreadable or expired entries count as misses.
	Get(ctx context.Context, key string) ([]byte, bool)
	Put(ctx context.Context, key string, data []byte) error
}

// Key builds a deterministic hash from the source and resource name so that
// different sources get separate entries.
func Key(source, name string) string {
	h := sha256.Sum256([]byte(source + "|" + name))
	return fmt.Sprintf("%x", h[:8])
}

// ResourceEntry is the on-disk form of a cached resource.
type ResourceEntry struct {
	Key      string    `json:"key"`
	CachedAt time.Time `json:"cached_at"`
	Data     []byte    `json:"data"`
}

// GeoCacheEntry stores a cached geolocation result with a timestamp.
type GeoCacheEntry struct {
	Location geo.Location `json:"location"`
	CachedAt time.Time    `json:"cached_at"`
}

// FileCache stores entries as JSON files in a directory.
type FileCache struct {
	dir string
	ttl time.Duration
	now func() time.Time
}

// New creates a FileCache rooted at dir with the given TTL.
// If dir is empty, it defaults to ~/.cache/waktu-solat/.
func New(dir string, ttl time.Duration) (*FileCache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".cache", "waktu-solat")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory %s: %w", dir, err)
	}

	return &FileCache{dir: dir, ttl: ttl, now: time.Now}, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string {
	return c.dir
}

func (c *FileCache) path(key string) string {
	return filepath.Join(c.dir, fmt.Sprintf(resourceCacheFile, key))
}

// Get implements Cache.
func (c *FileCache) Get(_ context.Context, key string) ([]byte, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}

	var entry ResourceEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	// Never serve another key's bytes on a hash collision.
	if entry.Key != key {
		return nil, false
	}
	if c.ttl > 0 && c.now().Sub(entry.CachedAt) > c.ttl {
		return nil, false
	}

	return entry.Data, true
}

// Put implements Cache.
func (c *FileCache) Put(_ context.Context, key string, data []byte) error {
	entry := ResourceEntry{
		Key:      key,
		CachedAt: c.now(),
		Data:     data,
	}

	raw, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal cache entry: %w", err)
	}

	if err := os.WriteFile(c.path(key), raw, 0o644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}

// LoadGeo attempts to read a cached geolocation result.
// Returns nil if the cache is missing or older than 24 hours.
func (c *FileCache) LoadGeo() *geo.Location {
	path := filepath.Join(c.dir, geoCacheFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var entry GeoCacheEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil
	}

	if c.now().Sub(entry.CachedAt) > geoTTL {
		return nil
	}

	return &entry.Location
}

// SaveGeo writes a geolocation result to the cache.
func (c *FileCache) SaveGeo(loc *geo.Location) error {
	path := filepath.Join(c.dir, geoCacheFile)

	entry := GeoCacheEntry{
		Location: *loc,
		CachedAt: c.now(),
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal geo cache: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write geo cache: %w", err)
	}

	return nil
}

// Nop is a Cache that never stores anything. It backs --no-cache.
type Nop struct{}

func (Nop) Get(context.Context, string) ([]byte, bool) { return nil, false }

func (Nop) Put(context.Context, string, []byte) error { return nil }
