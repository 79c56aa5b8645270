package cache

import (
	"fmt"

	"github.com/rohmanhakim/song-finder/internal/metadata"
	"github.com/rohmanhakim/song-finder/pkg/failure"
)

type CacheErrorCause string

const (
	ErrCauseLoadFailure  CacheErrorCause = "load failed"
	ErrCauseParseFailure CacheErrorCause = "store corrupted"
	ErrCauseFlushFailure CacheErrorCause = "flush failed"
)

// CacheError is always advisory: the in-memory cache remains
// authoritative and callers continue processing.
type CacheError struct {
	Message string
	Cause   CacheErrorCause
	Path    string
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache error: %s: %s", e.Cause, e.Message)
}

func (e *CacheError) Kind() failure.Kind {
	return failure.KindCacheIO
}

// mapCacheErrorToMetadataCause maps cache-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapCacheErrorToMetadataCause(err *CacheError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseLoadFailure, ErrCauseParseFailure, ErrCauseFlushFailure:
		return metadata.CauseStorageFailure
	default:
		return metadata.CauseUnknown
	}
}
