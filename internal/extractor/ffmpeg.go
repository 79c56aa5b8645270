package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"time"

	"github.com/rohmanhakim/song-finder/internal/metadata"
	"github.com/rohmanhakim/song-finder/pkg/failure"
)

/*
Responsibilities

- Cut the leading clip of a media file with ffmpeg
- Normalize the clip encoding (mp3, fixed bitrate, fixed sample rate)
- Classify tool failures

Extraction Semantics

- Only the first clipDuration seconds are kept
- Video streams are stripped
- The destination is overwritten if it exists
*/

const ffmpegBinary = "ffmpeg"

type FFmpegExtractor struct {
	metadataSink metadata.MetadataSink
	bitrate      string
	sampleRate   int
}

func NewFFmpegExtractor(
	metadataSink metadata.MetadataSink,
	bitrate string,
	sampleRate int,
) FFmpegExtractor {
	return FFmpegExtractor{
		metadataSink: metadataSink,
		bitrate:      bitrate,
		sampleRate:   sampleRate,
	}
}

func (e *FFmpegExtractor) Extract(
	ctx context.Context,
	sourceMediaPath string,
	destAudioPath string,
	clipDuration time.Duration,
) failure.ClassifiedError {
	callerMethod := "FFmpegExtractor.Extract"

	args := e.buildArgs(sourceMediaPath, destAudioPath, clipDuration)
	cmd := exec.CommandContext(ctx, ffmpegBinary, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		extractErr := e.classifyRunError(err, stderr.String())
		e.metadataSink.RecordError(
			time.Now(),
			"extractor",
			callerMethod,
			mapExtractErrorToMetadataCause(extractErr),
			extractErr.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrPath, sourceMediaPath),
			},
		)
		return extractErr
	}

	e.metadataSink.RecordArtifact(
		metadata.ArtifactClip,
		destAudioPath,
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrPath, sourceMediaPath),
		},
	)
	return nil
}

// buildArgs assembles the ffmpeg invocation: leading clip only, no
// video, mp3 at the configured bitrate and sample rate, overwrite.
func (e *FFmpegExtractor) buildArgs(
	sourceMediaPath string,
	destAudioPath string,
	clipDuration time.Duration,
) []string {
	return []string{
		"-i", sourceMediaPath,
		"-t", strconv.Itoa(int(clipDuration.Seconds())),
		"-vn",
		"-acodec", "libmp3lame",
		"-ab", e.bitrate,
		"-ar", strconv.Itoa(e.sampleRate),
		"-y",
		destAudioPath,
	}
}

func (e *FFmpegExtractor) classifyRunError(err error, stderr string) *ExtractError {
	if errors.Is(err, exec.ErrNotFound) {
		return &ExtractError{
			Message: "ffmpeg not found. Please install FFmpeg.",
			Cause:   ErrCauseToolMissing,
		}
	}
	message := err.Error()
	if stderr != "" {
		message = fmt.Sprintf("%s: %s", err, stderr)
	}
	return &ExtractError{
		Message: message,
		Cause:   ErrCauseTranscodeFailed,
	}
}
