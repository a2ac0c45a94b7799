package sourceparse

import (
	"bytes"
	"encoding/gob"
	"os"
	"sync"

	"github.com/c360studio/deadcode/internal/utils"
)

// cacheEntry is one file's cached parse result, keyed by content hash and
// mtime so either a content edit or a touch (mtime-only change from e.g. a
// checkout) invalidates it, per §4.2's "incremental caching keyed by
// (content_hash, mtime)".
type cacheEntry struct {
	ContentHash string
	ModTime     int64
	Parsed      ParsedFile
}

// Cache is an incremental parse cache persisted as a single gob file. It is
// safe for concurrent use by the parser pool's workers.
type Cache struct {
	mu      sync.RWMutex
	path    string
	entries map[string]cacheEntry
	dirty   bool
}

// NewCache loads a cache from path if it exists, or starts empty. A missing
// or corrupt cache file is treated as an empty cache rather than an error:
// the analyzer always has a correct, if slower, fallback (a full reparse).
func NewCache(path string) *Cache {
	c := &Cache{path: path, entries: make(map[string]cacheEntry)}
	if path == "" {
		return c
	}
	f, err := os.Open(path)
	if err != nil {
		return c
	}
	defer f.Close()

	var loaded map[string]cacheEntry
	if err := gob.NewDecoder(f).Decode(&loaded); err == nil {
		c.entries = loaded
	}
	return c
}

// Lookup returns the cached ParsedFile for path if its content hash and
// mtime both still match.
func (c *Cache) Lookup(path string, content []byte, modTime int64) (*ParsedFile, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[path]
	if !ok || entry.ModTime != modTime {
		return nil, false
	}
	if entry.ContentHash != utils.SHA256Checksum(content) {
		return nil, false
	}
	pf := entry.Parsed
	return &pf, true
}

// Store records a fresh parse result for path.
func (c *Cache) Store(path string, content []byte, modTime int64, pf *ParsedFile) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[path] = cacheEntry{
		ContentHash: utils.SHA256Checksum(content),
		ModTime:     modTime,
		Parsed:      *pf,
	}
	c.dirty = true
}

// Evict drops any entry no longer present in liveFiles, so deleted source
// files don't linger in the cache forever.
func (c *Cache) Evict(liveFiles map[string]bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for path := range c.entries {
		if !liveFiles[path] {
			delete(c.entries, path)
			c.dirty = true
		}
	}
}

// Flush writes the cache back to disk if any entry was stored or pruned
// since load; an unchanged cache, first run or not, is not written.
func (c *Cache) Flush() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.path == "" || !c.dirty {
		return nil
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(c.entries); err != nil {
		return err
	}
	return os.WriteFile(c.path, buf.Bytes(), 0o644)
}

// Clear removes every cached entry and deletes the backing file, used by
// --clear-cache.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
	c.dirty = false
	if c.path == "" {
		return nil
	}
	if err := os.Remove(c.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
