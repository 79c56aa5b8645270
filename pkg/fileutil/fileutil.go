package fileutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GetFileExtension extracts the file extension from a path, or empty string if none
func GetFileExtension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	// Remove the leading dot
	return strings.TrimPrefix(ext, ".")
}

// EnsureDir check if a given directory plus the following path exist, then create one if not
func EnsureDir(dir string, path ...string) *FileError {
	targetPath := []string{dir}
	targetPath = append(targetPath, path...)

	target := filepath.Join(targetPath...)
	if err := os.MkdirAll(target, 0755); err != nil {
		return &FileError{
			Message: fmt.Sprintf("%v", err),
			Cause:   ErrCausePathError,
			Path:    target,
		}
	}
	return nil
}

// FileExists reports whether path names an existing regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// FindFirstMatch returns the lexically first path matching the glob
// pattern, or a FileError when nothing matches. Used to resolve
// artifacts whose final extension is not known up front.
func FindFirstMatch(pattern string) (string, *FileError) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", &FileError{
			Message: fmt.Sprintf("%v", err),
			Cause:   ErrCausePathError,
			Path:    pattern,
		}
	}
	if len(matches) == 0 {
		return "", &FileError{
			Message: fmt.Sprintf("no file matches %s", pattern),
			Cause:   ErrCauseNoMatch,
			Path:    pattern,
		}
	}
	return matches[0], nil
}
