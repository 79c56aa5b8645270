package fetcher

import (
	"context"
	"path/filepath"

	"github.com/rohmanhakim/song-finder/pkg/failure"
	"github.com/rohmanhakim/song-finder/pkg/fileutil"
)

// MediaFetcher retrieves source media into a local file. The output
// template may leave the final extension to the downloader, which is
// why callers resolve the produced file with LocateDownload afterward.
type MediaFetcher interface {
	Fetch(
		ctx context.Context,
		sourceURL string,
		outputTemplate string,
	) failure.ClassifiedError
}

// downloadBaseName is the fixed stem of the fetched media file inside
// a workspace. The extension is chosen by the downloader.
const downloadBaseName = "video"

// OutputTemplate returns the downloader output template rooted in dir.
func OutputTemplate(dir string) string {
	return filepath.Join(dir, downloadBaseName+".%(ext)s")
}

// LocateDownload resolves the media file a fetcher actually produced
// in dir. A missing artifact is reported as a fetch failure: from the
// caller's perspective the fetch did not succeed.
func LocateDownload(dir string) (string, failure.ClassifiedError) {
	path, err := fileutil.FindFirstMatch(filepath.Join(dir, downloadBaseName+".*"))
	if err != nil {
		return "", &FetchError{
			Message: "downloaded media file not found",
			Cause:   ErrCauseArtifactMissing,
		}
	}
	return path, nil
}
