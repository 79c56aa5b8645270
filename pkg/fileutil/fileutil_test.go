package fileutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rohmanhakim/song-finder/pkg/fileutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFileExtension(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected string
	}{
		{
			name:     "file with extension",
			path:     "clip.mp3",
			expected: "mp3",
		},
		{
			name:     "file with multiple dots",
			path:     "video.fragment.mp4",
			expected: "mp4",
		},
		{
			name:     "file without extension",
			path:     "README",
			expected: "",
		},
		{
			name:     "path with directories",
			path:     "/tmp/workspace/video.webm",
			expected: "webm",
		},
		{
			name:     "empty string",
			path:     "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, fileutil.GetFileExtension(tt.path))
		})
	}
}

func TestEnsureDir(t *testing.T) {
	base := t.TempDir()

	err := fileutil.EnsureDir(base, "nested", "deeper")
	require.Nil(t, err)

	info, statErr := os.Stat(filepath.Join(base, "nested", "deeper"))
	require.NoError(t, statErr)
	assert.True(t, info.IsDir())
}

func TestEnsureDir_ExistingDir(t *testing.T) {
	base := t.TempDir()

	require.Nil(t, fileutil.EnsureDir(base))
	require.Nil(t, fileutil.EnsureDir(base))
}

func TestFileExists(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "clip.mp3")
	require.NoError(t, os.WriteFile(path, []byte("audio"), 0644))

	assert.True(t, fileutil.FileExists(path))
	assert.False(t, fileutil.FileExists(filepath.Join(base, "missing.mp3")))
	assert.False(t, fileutil.FileExists(base), "directories are not regular files")
}

func TestFindFirstMatch(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "video.webm")
	require.NoError(t, os.WriteFile(path, []byte("media"), 0644))

	found, err := fileutil.FindFirstMatch(filepath.Join(base, "video.*"))
	require.Nil(t, err)
	assert.Equal(t, path, found)
}

func TestFindFirstMatch_NoMatch(t *testing.T) {
	base := t.TempDir()

	_, err := fileutil.FindFirstMatch(filepath.Join(base, "video.*"))
	require.NotNil(t, err)
	assert.Equal(t, fileutil.ErrCauseNoMatch, err.Cause)
}
