package pipeline

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/rohmanhakim/song-finder/pkg/fileutil"
)

// clipFileName is the fixed name of the extracted audio clip inside a
// workspace.
const clipFileName = "clip.mp3"

// workspace is the exclusively-owned temporary directory of one
// identification run. It holds the fetched media file and the
// extracted clip and is removed on every exit path.
type workspace struct {
	dir   string
	runID string
}

func newWorkspace() (workspace, *fileutil.FileError) {
	runID := uuid.NewString()
	dir, err := os.MkdirTemp("", "song-finder-"+runID[:8]+"-")
	if err != nil {
		return workspace{}, &fileutil.FileError{
			Message: err.Error(),
			Cause:   fileutil.ErrCausePathError,
			Path:    dir,
		}
	}
	return workspace{
		dir:   dir,
		runID: runID,
	}, nil
}

func (w workspace) clipPath() string {
	return filepath.Join(w.dir, clipFileName)
}

// release removes the workspace and everything in it, including
// partially-downloaded files. Removal errors are ignored: the
// directory lives under the system temp root and the run is already
// over.
func (w workspace) release() {
	if w.dir == "" {
		return
	}
	_ = os.RemoveAll(w.dir)
}
