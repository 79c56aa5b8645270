package extractor

import (
	"fmt"

	"github.com/rohmanhakim/song-finder/internal/metadata"
	"github.com/rohmanhakim/song-finder/pkg/failure"
)

type ExtractErrorCause string

const (
	ErrCauseToolMissing     ExtractErrorCause = "tool missing"
	ErrCauseTranscodeFailed ExtractErrorCause = "transcode failed"
)

// ExtractError covers both sub-cases under one failure kind; the tool
// missing cause carries its own actionable message.
type ExtractError struct {
	Message string
	Cause   ExtractErrorCause
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extraction error: %s: %s", e.Cause, e.Message)
}

func (e *ExtractError) Kind() failure.Kind {
	return failure.KindExtraction
}

// mapExtractErrorToMetadataCause maps extractor-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapExtractErrorToMetadataCause(err *ExtractError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseToolMissing, ErrCauseTranscodeFailed:
		return metadata.CauseToolFailure
	default:
		return metadata.CauseUnknown
	}
}
