package recognizer

import (
	"context"

	"github.com/rohmanhakim/song-finder/pkg/failure"
)

// Recognizer submits an audio clip to a fingerprint-matching catalog.
// A failed call and a successful call that found nothing are distinct
// outcomes: the first returns an error, the second a Recognition with
// Matched false.
type Recognizer interface {
	Recognize(
		ctx context.Context,
		audioClipPath string,
	) (Recognition, failure.ClassifiedError)
}
