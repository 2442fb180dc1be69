package driver

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"buckfmt/internal/project"
)

// Current schema version - increment when cleanEntry format or the sort order changes
const cacheSchemaVersion uint16 = 1

// Cache помнит содержимое, которое уже в каноническом виде для набора keywords.
// Попадание в кеш позволяет не парсить файл повторно.
// Thread-safe for concurrent access.
type Cache struct {
	mu  sync.RWMutex
	dir string
}

// cleanEntry is the on-disk record stored under the content key.
type cleanEntry struct {
	Schema   uint16
	Path     string // последний путь, для отладки
	Keywords []string
	Marked   int64 // unix seconds
}

// OpenCache initializes the cache at $XDG_CACHE_HOME/<app> (or ~/.cache/<app>).
func OpenCache(app string) (*Cache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return OpenCacheAt(filepath.Join(base, app))
}

// OpenCacheAt initializes the cache in dir.
func OpenCacheAt(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir}, nil
}

// CacheKey combines the raw file bytes with the keyword set.
func CacheKey(raw []byte, keywords []string) project.Digest {
	return project.Combine(project.Sum(raw), project.KeywordsDigest(keywords))
}

func (c *Cache) pathFor(key project.Digest) string {
	return filepath.Join(c.dir, "clean", hex.EncodeToString(key[:])+".mp")
}

// IsClean reports whether key was marked clean by a run with the same schema.
// Unreadable entries count as misses.
func (c *Cache) IsClean(key project.Digest) bool {
	if c == nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		return false
	}
	defer f.Close()

	var e cleanEntry
	if err := msgpack.NewDecoder(f).Decode(&e); err != nil {
		return false
	}
	return e.Schema == cacheSchemaVersion
}

// MarkClean records key as canonical.
func (c *Cache) MarkClean(key project.Digest, path string, keywords []string) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	entry := cleanEntry{
		Schema:   cacheSchemaVersion,
		Path:     path,
		Keywords: keywords,
		Marked:   time.Now().Unix(),
	}
	if err = msgpack.NewEncoder(f).Encode(&entry); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// Атомарная замена
	return os.Rename(f.Name(), p)
}

// DropAll invalidates the cache.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименуем каталог и удалим
	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
