package pipeline_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rohmanhakim/song-finder/internal/cache"
	"github.com/rohmanhakim/song-finder/internal/config"
	"github.com/rohmanhakim/song-finder/internal/extractor"
	"github.com/rohmanhakim/song-finder/internal/fetcher"
	"github.com/rohmanhakim/song-finder/internal/metadata"
	"github.com/rohmanhakim/song-finder/internal/pipeline"
	"github.com/rohmanhakim/song-finder/internal/recognizer"
	"github.com/rohmanhakim/song-finder/pkg/failure"
	"github.com/stretchr/testify/require"
)

// Spy capability implementations. Each records its invocations and can
// be primed with a failure; on success it produces the artifact its
// real counterpart would, so the following stage has a file to work on.

type spyFetcher struct {
	mu           sync.Mutex
	calls        int
	urls         []string
	workspaces   []string
	err          failure.ClassifiedError
	skipArtifact bool
}

func (f *spyFetcher) Fetch(
	ctx context.Context,
	sourceURL string,
	outputTemplate string,
) failure.ClassifiedError {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	f.urls = append(f.urls, sourceURL)
	dir := filepath.Dir(outputTemplate)
	f.workspaces = append(f.workspaces, dir)

	if ctxErr := ctx.Err(); ctxErr != nil {
		return &fetcher.FetchError{
			Message: ctxErr.Error(),
			Cause:   fetcher.ErrCauseDownloadFailed,
		}
	}
	if f.err != nil {
		return f.err
	}
	if !f.skipArtifact {
		if err := os.WriteFile(filepath.Join(dir, "video.mp4"), []byte("media bytes"), 0644); err != nil {
			return &fetcher.FetchError{
				Message: err.Error(),
				Cause:   fetcher.ErrCauseDownloadFailed,
			}
		}
	}
	return nil
}

type spyExtractor struct {
	mu         sync.Mutex
	calls      int
	sources    []string
	dests      []string
	clipLength time.Duration
	err        failure.ClassifiedError
}

func (e *spyExtractor) Extract(
	ctx context.Context,
	sourceMediaPath string,
	destAudioPath string,
	clipDuration time.Duration,
) failure.ClassifiedError {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.calls++
	e.sources = append(e.sources, sourceMediaPath)
	e.dests = append(e.dests, destAudioPath)
	e.clipLength = clipDuration

	if e.err != nil {
		return e.err
	}
	if err := os.WriteFile(destAudioPath, []byte("clip bytes"), 0644); err != nil {
		return &extractor.ExtractError{
			Message: err.Error(),
			Cause:   extractor.ErrCauseTranscodeFailed,
		}
	}
	return nil
}

type spyRecognizer struct {
	mu          sync.Mutex
	calls       int
	clipPaths   []string
	recognition recognizer.Recognition
	err         failure.ClassifiedError
}

func (r *spyRecognizer) Recognize(
	ctx context.Context,
	audioClipPath string,
) (recognizer.Recognition, failure.ClassifiedError) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls++
	r.clipPaths = append(r.clipPaths, audioClipPath)

	if r.err != nil {
		return recognizer.Recognition{}, r.err
	}
	return r.recognition, nil
}

type spySink struct {
	mu          sync.Mutex
	errorCount  int
	stages      []string
	cacheEvents []metadata.CacheEvent
}

func (s *spySink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	errorString string,
	attrs []metadata.Attribute,
) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errorCount++
}

func (s *spySink) RecordStage(runID string, stage string, duration time.Duration, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stages = append(s.stages, stage)
}

func (s *spySink) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
}

func (s *spySink) RecordCacheEvent(event metadata.CacheEvent, keyHash string, size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cacheEvents = append(s.cacheEvents, event)
}

type fixture struct {
	pipe        pipeline.Pipeline
	fetchSpy    *spyFetcher
	extractSpy  *spyExtractor
	recognize   *spyRecognizer
	sink        *spySink
	resultCache *cache.ResultCache
}

func matchedTrack() recognizer.Document {
	return recognizer.Document{
		"title":    "Blinding Lights",
		"subtitle": "The Weeknd",
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg, err := config.WithDefault().
		WithCachePath(filepath.Join(t.TempDir(), "cache.json")).
		Build()
	require.NoError(t, err)

	sink := &spySink{}
	resultCache := cache.New(cfg.CachePath(), cfg.CacheCapacity(), sink)

	fetchSpy := &spyFetcher{}
	extractSpy := &spyExtractor{}
	recognize := &spyRecognizer{
		recognition: recognizer.NewRecognitionForTest(true, matchedTrack()),
	}

	return &fixture{
		pipe:        pipeline.New(cfg, resultCache, fetchSpy, extractSpy, recognize, sink),
		fetchSpy:    fetchSpy,
		extractSpy:  extractSpy,
		recognize:   recognize,
		sink:        sink,
		resultCache: resultCache,
	}
}
