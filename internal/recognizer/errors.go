package recognizer

import (
	"fmt"

	"github.com/rohmanhakim/song-finder/internal/metadata"
	"github.com/rohmanhakim/song-finder/pkg/failure"
)

type RecognizeErrorCause string

const (
	ErrCauseClipUnreadable  RecognizeErrorCause = "clip unreadable"
	ErrCauseRequestFailed   RecognizeErrorCause = "request failed"
	ErrCauseServiceError    RecognizeErrorCause = "service error"
	ErrCauseMalformedAnswer RecognizeErrorCause = "malformed answer"
)

type RecognizeError struct {
	Message string
	Cause   RecognizeErrorCause
}

func (e *RecognizeError) Error() string {
	return fmt.Sprintf("recognition error: %s: %s", e.Cause, e.Message)
}

func (e *RecognizeError) Kind() failure.Kind {
	return failure.KindRecognition
}

// mapRecognizeErrorToMetadataCause maps recognizer-local error
// semantics to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapRecognizeErrorToMetadataCause(err *RecognizeError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseRequestFailed, ErrCauseServiceError:
		return metadata.CauseNetworkFailure
	case ErrCauseClipUnreadable:
		return metadata.CauseToolFailure
	default:
		return metadata.CauseUnknown
	}
}
