package fetcher

import (
	"context"
	"fmt"
	"time"

	"github.com/lrstanley/go-ytdlp"

	"github.com/rohmanhakim/song-finder/internal/metadata"
	"github.com/rohmanhakim/song-finder/pkg/failure"
)

/*
Responsibilities

- Download the source video with yt-dlp
- Cap the downloaded quality (only the audio track matters downstream)
- Classify downloader failures

The fetcher never inspects media content; it only places a file at the
requested template and reports success or failure.
*/

type YtdlpFetcher struct {
	metadataSink metadata.MetadataSink
	maxHeight    int
}

func NewYtdlpFetcher(
	metadataSink metadata.MetadataSink,
	maxHeight int,
) YtdlpFetcher {
	return YtdlpFetcher{
		metadataSink: metadataSink,
		maxHeight:    maxHeight,
	}
}

func (f *YtdlpFetcher) Fetch(
	ctx context.Context,
	sourceURL string,
	outputTemplate string,
) failure.ClassifiedError {
	callerMethod := "YtdlpFetcher.Fetch"

	dl := ytdlp.New().
		Format(fmt.Sprintf("best[height<=%d]", f.maxHeight)).
		Output(outputTemplate).
		NoPlaylist().
		NoWarnings().
		Quiet()

	if _, err := dl.Run(ctx, sourceURL); err != nil {
		fetchErr := &FetchError{
			Message: err.Error(),
			Cause:   ErrCauseDownloadFailed,
		}
		f.metadataSink.RecordError(
			time.Now(),
			"fetcher",
			callerMethod,
			mapFetchErrorToMetadataCause(fetchErr),
			fetchErr.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, sourceURL),
				metadata.NewAttr(metadata.AttrPath, outputTemplate),
			},
		)
		return fetchErr
	}

	f.metadataSink.RecordArtifact(
		metadata.ArtifactMedia,
		outputTemplate,
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, sourceURL),
		},
	)
	return nil
}
