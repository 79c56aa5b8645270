package recognizer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/rohmanhakim/song-finder/internal/metadata"
	"github.com/rohmanhakim/song-finder/pkg/failure"
)

/*
Responsibilities

- Submit the clip to a Shazam-compatible detection endpoint
- Distinguish transport failures from an empty catalog answer
- Hand the raw match record downstream untouched

Recognition Semantics

- The clip is sent base64-encoded in the request body
- A response without a "track" object is a no-match, not an error
- The payload is never validated here; absence of fields is the
  normalizer's concern
*/

type ShazamRecognizer struct {
	metadataSink metadata.MetadataSink
	httpClient   *http.Client
	endpoint     string
	apiKey       string
}

func NewShazamRecognizer(
	metadataSink metadata.MetadataSink,
	endpoint string,
	apiKey string,
	timeout time.Duration,
) ShazamRecognizer {
	return ShazamRecognizer{
		metadataSink: metadataSink,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		endpoint: endpoint,
		apiKey:   apiKey,
	}
}

func (r *ShazamRecognizer) Recognize(
	ctx context.Context,
	audioClipPath string,
) (Recognition, failure.ClassifiedError) {
	callerMethod := "ShazamRecognizer.Recognize"

	recognition, err := r.recognize(ctx, audioClipPath)
	if err != nil {
		r.metadataSink.RecordError(
			time.Now(),
			"recognizer",
			callerMethod,
			mapRecognizeErrorToMetadataCause(err),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrPath, audioClipPath),
			},
		)
		return Recognition{}, err
	}
	return recognition, nil
}

func (r *ShazamRecognizer) recognize(
	ctx context.Context,
	audioClipPath string,
) (Recognition, *RecognizeError) {
	clip, err := os.ReadFile(audioClipPath)
	if err != nil {
		return Recognition{}, &RecognizeError{
			Message: err.Error(),
			Cause:   ErrCauseClipUnreadable,
		}
	}

	body := base64.StdEncoding.EncodeToString(clip)
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		r.endpoint,
		bytes.NewBufferString(body),
	)
	if err != nil {
		return Recognition{}, &RecognizeError{
			Message: err.Error(),
			Cause:   ErrCauseRequestFailed,
		}
	}
	req.Header.Set("Content-Type", "text/plain")
	if r.apiKey != "" {
		req.Header.Set("x-api-key", r.apiKey)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return Recognition{}, &RecognizeError{
			Message: err.Error(),
			Cause:   ErrCauseRequestFailed,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Recognition{}, &RecognizeError{
			Message: fmt.Sprintf("detection endpoint answered %d", resp.StatusCode),
			Cause:   ErrCauseServiceError,
		}
	}

	answer, err := io.ReadAll(resp.Body)
	if err != nil {
		return Recognition{}, &RecognizeError{
			Message: err.Error(),
			Cause:   ErrCauseMalformedAnswer,
		}
	}

	payload := Document{}
	if err := json.Unmarshal(answer, &payload); err != nil {
		return Recognition{}, &RecognizeError{
			Message: err.Error(),
			Cause:   ErrCauseMalformedAnswer,
		}
	}

	track, ok := payload["track"].(map[string]any)
	if !ok {
		// The catalog answered but holds no match for this clip.
		return Recognition{matched: false}, nil
	}

	return Recognition{
		matched: true,
		track:   track,
	}, nil
}
