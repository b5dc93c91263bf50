// pkg/store/cache.go
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"

	"github.com/David-Botos/data-quality/pkg/model"
)

// Current schema version - increment when the cached report format changes
const cacheSchemaVersion uint16 = 1

// cacheEntry is the on-disk envelope of a cached report
type cacheEntry struct {
	Schema uint16
	Key    string
	Report *model.Report
}

// Cache keeps profiling reports in memory and, when a directory is set, on disk.
// Safe for concurrent use.
type Cache struct {
	mu     sync.RWMutex // Guards the disk layer
	memory *lru.Cache[string, *model.Report]
	dir    string
	logger *zap.Logger
}

// NewCache creates a cache holding up to size reports in memory.
// An empty dir disables the disk layer.
func NewCache(dir string, size int, logger *zap.Logger) (*Cache, error) {
	if size <= 0 {
		return nil, errors.New("cache size must be positive")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	memory, err := lru.New[string, *model.Report](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}

	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	return &Cache{
		memory: memory,
		dir:    dir,
		logger: logger,
	}, nil
}

// Key combines a dataset fingerprint with the options that shaped the report
func Key(fingerprint string, maxRows int) string {
	return fmt.Sprintf("%s:rows=%d", fingerprint, maxRows)
}

func (c *Cache) pathFor(key string) string {
	sum := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, "reports", hex.EncodeToString(sum[:])+".mp")
}

// Get returns a cached report. Disk hits are promoted into memory.
func (c *Cache) Get(key string) (*model.Report, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	if report, ok := c.memory.Get(key); ok {
		return report, true, nil
	}
	if c.dir == "" {
		return nil, false, nil
	}

	report, ok, err := c.readDisk(key)
	if err != nil || !ok {
		return nil, false, err
	}
	c.memory.Add(key, report)
	c.logger.Debug("Report cache disk hit", zap.String("key", key))
	return report, true, nil
}

func (c *Cache) readDisk(key string) (*model.Report, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to open cache entry: %w", err)
	}
	defer f.Close()

	var entry cacheEntry
	if err := msgpack.NewDecoder(f).Decode(&entry); err != nil {
		return nil, false, fmt.Errorf("failed to decode cache entry: %w", err)
	}
	// Stale format or hash collision is a miss
	if entry.Schema != cacheSchemaVersion || entry.Key != key || entry.Report == nil {
		return nil, false, nil
	}
	return entry.Report, true, nil
}

// Put stores a report in memory and on disk
func (c *Cache) Put(key string, report *model.Report) error {
	if c == nil || report == nil {
		return nil
	}
	c.memory.Add(key, report)
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	tmp := f.Name()

	entry := cacheEntry{Schema: cacheSchemaVersion, Key: key, Report: report}
	if err := msgpack.NewEncoder(f).Encode(&entry); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("failed to encode cache entry: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to write cache entry: %w", err)
	}

	// Atomic replace
	if err := os.Rename(tmp, p); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to store cache entry: %w", err)
	}
	return nil
}

// Len returns the number of reports held in memory
func (c *Cache) Len() int {
	return c.memory.Len()
}

// Purge drops every cached report, in memory and on disk
func (c *Cache) Purge() error {
	c.memory.Purge()
	if c.dir == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := os.RemoveAll(filepath.Join(c.dir, "reports")); err != nil {
		return fmt.Errorf("failed to purge cache directory: %w", err)
	}
	return nil
}
