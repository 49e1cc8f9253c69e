// Package cache stores catalog snapshots as JSON files with a time-to-live.
package cache

import (
	"encoding/json"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Cache is a file-backed JSON cache. A nil *Cache is valid and never hits.
type Cache struct {
	dir string
	now func() time.Time
}

// New returns a cache rooted at dir.
func New(dir string) *Cache {
	return &Cache{dir: dir, now: time.Now}
}

// NewDefault returns a cache rooted at the OS user cache dir.
func NewDefault() *Cache {
	return New(defaultDir())
}

// Dir returns the directory entries are stored in.
func (c *Cache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

// Get decodes the entry for key into dest. It reports false for missing,
// expired and undecodable entries.
func (c *Cache) Get(key string, ttl time.Duration, dest any) (bool, error) {
	if c == nil || c.dir == "" || ttl <= 0 {
		return false, nil
	}

	path := c.pathForKey(key)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	if c.now().After(info.ModTime().Add(ttl)) {
		slog.Debug("cache: entry expired", "key", key, "age", c.now().Sub(info.ModTime()))
		_ = os.Remove(path)
		return false, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		slog.Debug("cache: discarding undecodable entry", "key", key, "error", err)
		return false, nil
	}

	return true, nil
}

// Set stores data under key. The file is replaced atomically.
func (c *Cache) Set(key string, data any) error {
	if c == nil || c.dir == "" {
		return nil
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.dir, sanitizeKey(key)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, c.pathForKey(key))
}

// Invalidate removes a single entry.
func (c *Cache) Invalidate(key string) error {
	if c == nil || c.dir == "" {
		return nil
	}

	err := os.Remove(c.pathForKey(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Clear removes every entry in the cache directory.
func (c *Cache) Clear() error {
	if c == nil || c.dir == "" {
		return nil
	}

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(c.dir, entry.Name())); err != nil {
			return err
		}
	}

	return nil
}

// Fetch returns the cached value for key, or calls load and caches its
// result. A failed cache write is logged and does not fail the call.
func Fetch[T any](c *Cache, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var cached T
	if hit, err := c.Get(key, ttl, &cached); err == nil && hit {
		slog.Debug("cache: hit", "key", key)
		return cached, nil
	} else if err != nil {
		slog.Debug("cache: read failed", "key", key, "error", err)
	}

	value, err := load()
	if err != nil {
		var zero T
		return zero, err
	}

	if err := c.Set(key, value); err != nil {
		slog.Warn("cache: write failed", "key", key, "error", err)
	}
	return value, nil
}

func (c *Cache) pathForKey(key string) string {
	return filepath.Join(c.dir, sanitizeKey(key)+".json")
}

func defaultDir() string {
	base, err := os.UserCacheDir()
	if err != nil || base == "" {
		base = os.TempDir()
	}
	return filepath.Join(base, "tspec")
}

func sanitizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "cache"
	}

	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, key)
}
