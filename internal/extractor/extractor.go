package extractor

import (
	"context"
	"time"

	"github.com/rohmanhakim/song-finder/pkg/failure"
)

// AudioExtractor produces a fixed-duration, fixed-encoding audio clip
// from a local media file.
type AudioExtractor interface {
	Extract(
		ctx context.Context,
		sourceMediaPath string,
		destAudioPath string,
		clipDuration time.Duration,
	) failure.ClassifiedError
}
