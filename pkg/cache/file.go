package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileCache stores processed visualizations and rendered previews on disk,
// one JSON file per entry. It backs the CLI, where repeated runs over the
// same scene input are common and a network cache would be overkill.
type FileCache struct {
	dir string
}

// NewFileCache creates a file cache rooted at dir, creating it if needed.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// fileEntry is the on-disk envelope around a cached payload.
type fileEntry struct {
	Payload   []byte    `json:"payload"`
	StoredAt  time.Time `json:"stored_at"`
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// Get retrieves a value. Unreadable or expired entries are removed and
// reported as misses rather than errors; a corrupt cache never blocks
// processing.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var entry fileEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		_ = os.Remove(path)
		return nil, false, nil
	}
	if !entry.ExpiresAt.IsZero() && time.Now().After(entry.ExpiresAt) {
		_ = os.Remove(path)
		return nil, false, nil
	}

	return entry.Payload, true, nil
}

// Set stores a value. A zero TTL stores it without expiry.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	entry := fileEntry{
		Payload:  data,
		StoredAt: time.Now(),
	}
	if ttl > 0 {
		entry.ExpiresAt = entry.StoredAt.Add(ttl)
	}

	encoded, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, encoded, 0644)
}

// Delete removes a value. Deleting a missing key is not an error.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	err := os.Remove(c.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close is a no-op; the file cache holds no open handles between calls.
func (c *FileCache) Close() error {
	return nil
}

// path maps a cache key to a file. Keys carry a kind prefix ("viz:...",
// "preview:..."), which becomes a subdirectory so the entry kinds stay
// inspectable on disk; the remainder is hashed into the filename.
func (c *FileCache) path(key string) string {
	kind := "entries"
	rest := key
	if i := strings.IndexByte(key, ':'); i > 0 {
		kind, rest = key[:i], key[i+1:]
	}
	return filepath.Join(c.dir, kind, Hash([]byte(rest))+".json")
}

var _ Cache = (*FileCache)(nil)
