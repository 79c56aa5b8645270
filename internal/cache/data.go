package cache

import (
	"github.com/rohmanhakim/song-finder/internal/song"
)

// Persistence

// Entry is one cached identification result. Entries are never mutated
// after insertion; they leave the cache only through capacity eviction
// or an explicit clear.
type Entry struct {
	Outcome song.Outcome `json:"outcome"`
	// InsertedAt is a monotonically increasing sequence number assigned
	// at insertion. Eviction order follows insertion order, not wall
	// clock time.
	InsertedAt uint64 `json:"insertedAt"`
}

// store is the on-disk shape: a single JSON document mapping request
// key to entry.
type store map[string]Entry
