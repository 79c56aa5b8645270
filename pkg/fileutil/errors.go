package fileutil

import (
	"fmt"
)

type FileErrorCause string

const (
	ErrCausePathError FileErrorCause = "path error"
	ErrCauseNoMatch   FileErrorCause = "no matching file"
)

// FileError deliberately does not implement failure.ClassifiedError:
// file-level failures have no single pipeline kind, so each caller
// wraps them into its own stage error.
type FileError struct {
	Message string
	Cause   FileErrorCause
	Path    string
}

func (e *FileError) Error() string {
	return fmt.Sprintf("file error: %s: %s", e.Cause, e.Message)
}
