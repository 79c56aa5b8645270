package fetcher

import (
	"fmt"

	"github.com/rohmanhakim/song-finder/internal/metadata"
	"github.com/rohmanhakim/song-finder/pkg/failure"
)

type FetchErrorCause string

const (
	ErrCauseDownloadFailed  FetchErrorCause = "download failed"
	ErrCauseArtifactMissing FetchErrorCause = "artifact not found"
)

type FetchError struct {
	Message string
	Cause   FetchErrorCause
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch error: %s: %s", e.Cause, e.Message)
}

func (e *FetchError) Kind() failure.Kind {
	return failure.KindFetch
}

// mapFetchErrorToMetadataCause maps fetcher-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapFetchErrorToMetadataCause(err *FetchError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseDownloadFailed:
		return metadata.CauseNetworkFailure
	case ErrCauseArtifactMissing:
		return metadata.CauseToolFailure
	default:
		return metadata.CauseUnknown
	}
}
