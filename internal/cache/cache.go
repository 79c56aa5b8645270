package cache

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/rohmanhakim/song-finder/internal/metadata"
	"github.com/rohmanhakim/song-finder/internal/song"
	"github.com/rohmanhakim/song-finder/pkg/hashutil"
)

/*
Responsibilities
- Map request keys to previously computed outcomes
- Persist the store as a single JSON file
- Enforce a maximum entry count with oldest-first eviction

Durability Characteristics
- Loaded eagerly at construction
- Flushed after every Put and Clear
- Load and flush failures degrade to warnings; the in-memory state
  stays authoritative for the remainder of the process lifetime
*/

// ResultCache is the only mutable resource shared across concurrent
// identifications, so every operation takes the lock.
type ResultCache struct {
	mu           sync.Mutex
	entries      store
	seq          uint64
	capacity     int
	path         string
	metadataSink metadata.MetadataSink
}

// KeyFor derives the request key for a raw source URL. The URL is
// hashed verbatim: trivially different spellings of the same video
// (trailing slash, tracking parameters, mobile domain) intentionally
// map to different keys.
func KeyFor(rawURL string) string {
	key, err := hashutil.HashString(rawURL, hashutil.HashAlgoBLAKE3)
	if err != nil {
		// blake3 is always registered; reaching this is a programming
		// error in hashutil, not an input condition.
		panic(err)
	}
	return key
}

// New constructs a ResultCache backed by the JSON file at path and
// loads it eagerly. A missing file yields an empty cache; a corrupt
// file yields an empty cache plus a recorded warning. Construction
// never fails.
func New(path string, capacity int, metadataSink metadata.MetadataSink) *ResultCache {
	c := &ResultCache{
		entries:      make(store),
		capacity:     capacity,
		path:         path,
		metadataSink: metadataSink,
	}
	if loadErr := c.load(); loadErr != nil {
		c.recordError("ResultCache.load", loadErr)
	}
	return c
}

// Get is a pure lookup with no side effects on cache state.
func (c *ResultCache) Get(key string) (Entry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	return entry, exists
}

// Put inserts or overwrites the entry for key with a fresh insertion
// sequence, evicts oldest entries beyond capacity, and flushes the
// store. By caller contract only Success outcomes are passed here; the
// cache itself does not enforce that.
func (c *ResultCache) Put(key string, outcome song.Outcome) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.entries[key] = Entry{
		Outcome:    outcome,
		InsertedAt: c.seq,
	}
	c.metadataSink.RecordCacheEvent(metadata.CacheEventStore, key, len(c.entries))

	c.evictLocked()

	if flushErr := c.flushLocked(); flushErr != nil {
		c.recordError("ResultCache.Put", flushErr)
	}
}

// Clear empties all entries and flushes the now-empty store.
func (c *ResultCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(store)
	c.metadataSink.RecordCacheEvent(metadata.CacheEventCleared, "", 0)

	if flushErr := c.flushLocked(); flushErr != nil {
		c.recordError("ResultCache.Clear", flushErr)
	}
}

func (c *ResultCache) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// evictLocked removes entries in ascending insertion order until the
// count is back at capacity. Caller must hold c.mu.
func (c *ResultCache) evictLocked() {
	if c.capacity <= 0 {
		return
	}
	for len(c.entries) > c.capacity {
		oldestKey := ""
		oldestSeq := uint64(0)
		for key, entry := range c.entries {
			if oldestKey == "" || entry.InsertedAt < oldestSeq {
				oldestKey = key
				oldestSeq = entry.InsertedAt
			}
		}
		delete(c.entries, oldestKey)
		c.metadataSink.RecordCacheEvent(metadata.CacheEventEvict, oldestKey, len(c.entries))
	}
}

func (c *ResultCache) load() *CacheError {
	content, err := os.ReadFile(c.path)
	if err != nil {
		if os.IsNotExist(err) {
			// First run: nothing persisted yet.
			return nil
		}
		return &CacheError{
			Message: err.Error(),
			Cause:   ErrCauseLoadFailure,
			Path:    c.path,
		}
	}

	loaded := make(store)
	if err := json.Unmarshal(content, &loaded); err != nil {
		// Corrupt content is discarded, not repaired.
		return &CacheError{
			Message: err.Error(),
			Cause:   ErrCauseParseFailure,
			Path:    c.path,
		}
	}

	c.entries = loaded
	for _, entry := range loaded {
		if entry.InsertedAt > c.seq {
			c.seq = entry.InsertedAt
		}
	}
	return nil
}

// flushLocked serializes the whole store to disk. Caller must hold c.mu.
func (c *ResultCache) flushLocked() *CacheError {
	content, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return &CacheError{
			Message: err.Error(),
			Cause:   ErrCauseFlushFailure,
			Path:    c.path,
		}
	}
	if err := os.WriteFile(c.path, content, 0644); err != nil {
		return &CacheError{
			Message: err.Error(),
			Cause:   ErrCauseFlushFailure,
			Path:    c.path,
		}
	}
	c.metadataSink.RecordArtifact(metadata.ArtifactCache, c.path, nil)
	return nil
}

func (c *ResultCache) recordError(action string, err *CacheError) {
	c.metadataSink.RecordError(
		time.Now(),
		"cache",
		action,
		mapCacheErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrPath, err.Path),
		},
	)
}
