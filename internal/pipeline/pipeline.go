package pipeline

import (
	"context"
	"time"

	"github.com/rohmanhakim/song-finder/internal/cache"
	"github.com/rohmanhakim/song-finder/internal/config"
	"github.com/rohmanhakim/song-finder/internal/extractor"
	"github.com/rohmanhakim/song-finder/internal/fetcher"
	"github.com/rohmanhakim/song-finder/internal/metadata"
	"github.com/rohmanhakim/song-finder/internal/normalize"
	"github.com/rohmanhakim/song-finder/internal/recognizer"
	"github.com/rohmanhakim/song-finder/internal/song"
	"github.com/rohmanhakim/song-finder/pkg/failure"
	"github.com/rohmanhakim/song-finder/pkg/urlutil"
)

/*
Responsibilities
- Sequence validation, fetch, extraction, recognition and
  normalization for one source URL
- Consult the result cache before any external work and store only
  successful outcomes back into it
- Own the per-run workspace and remove it on every exit path

Sequencing Characteristics
- Stages run strictly in order; the first failing stage ends the run
- Every stage is attempted exactly once, failures surface immediately
  with the failing stage's error kind
- A run that finds no match is a complete, non-cached outcome, not an
  error inside the pipeline
*/

const (
	stageFetch     = "fetch"
	stageExtract   = "extract"
	stageRecognize = "recognize"
)

type Pipeline struct {
	cfg            config.Config
	resultCache    *cache.ResultCache
	mediaFetcher   fetcher.MediaFetcher
	audioExtractor extractor.AudioExtractor
	songRecognizer recognizer.Recognizer
	metadataSink   metadata.MetadataSink
}

func New(
	cfg config.Config,
	resultCache *cache.ResultCache,
	mediaFetcher fetcher.MediaFetcher,
	audioExtractor extractor.AudioExtractor,
	songRecognizer recognizer.Recognizer,
	metadataSink metadata.MetadataSink,
) Pipeline {
	return Pipeline{
		cfg:            cfg,
		resultCache:    resultCache,
		mediaFetcher:   mediaFetcher,
		audioExtractor: audioExtractor,
		songRecognizer: songRecognizer,
		metadataSink:   metadataSink,
	}
}

// Identify resolves a raw source URL into an outcome. It never returns
// an error: every failure mode is folded into a failure outcome whose
// kind names the stage that broke.
func (p *Pipeline) Identify(ctx context.Context, rawURL string) song.Outcome {
	if !urlutil.MatchesAny(rawURL, p.cfg.AcceptedURLPatterns()) {
		p.metadataSink.RecordError(
			time.Now(),
			"pipeline",
			"Pipeline.Identify",
			metadata.CauseInvalidInput,
			"source URL does not match any accepted pattern",
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, rawURL),
			},
		)
		return song.NewFailure(
			failure.KindInvalidInput,
			"not a supported video URL",
		)
	}

	key := cache.KeyFor(rawURL)
	if entry, found := p.resultCache.Get(key); found {
		p.metadataSink.RecordCacheEvent(metadata.CacheEventHit, key, p.resultCache.Size())
		return entry.Outcome
	}
	p.metadataSink.RecordCacheEvent(metadata.CacheEventMiss, key, p.resultCache.Size())

	outcome := p.identifyUncached(ctx, rawURL)
	if outcome.Success {
		// Failure outcomes are transient by assumption and must stay
		// re-attemptable, so only successes are stored.
		p.resultCache.Put(key, outcome)
	}
	return outcome
}

// identifyUncached runs the fetch, extract and recognize stages inside
// a fresh workspace. The deferred release covers every return below,
// including panics out of stage implementations.
func (p *Pipeline) identifyUncached(ctx context.Context, rawURL string) song.Outcome {
	ws, wsErr := newWorkspace()
	if wsErr != nil {
		p.metadataSink.RecordError(
			time.Now(),
			"pipeline",
			"Pipeline.Identify",
			metadata.CauseStorageFailure,
			wsErr.Error(),
			nil,
		)
		return song.NewFailure(
			failure.KindFetch,
			"workspace unavailable: "+wsErr.Error(),
		)
	}
	defer ws.release()

	mediaPath, fetchFailure := p.runFetch(ctx, ws, rawURL)
	if fetchFailure != nil {
		return song.NewFailure(fetchFailure.Kind(), fetchFailure.Error())
	}
	p.metadataSink.RecordArtifact(metadata.ArtifactMedia, mediaPath, []metadata.Attribute{
		metadata.NewAttr(metadata.AttrRunID, ws.runID),
	})

	if extractFailure := p.runExtract(ctx, ws, mediaPath); extractFailure != nil {
		return song.NewFailure(extractFailure.Kind(), extractFailure.Error())
	}
	p.metadataSink.RecordArtifact(metadata.ArtifactClip, ws.clipPath(), []metadata.Attribute{
		metadata.NewAttr(metadata.AttrRunID, ws.runID),
	})

	recognition, recognizeFailure := p.runRecognize(ctx, ws)
	if recognizeFailure != nil {
		return song.NewFailure(recognizeFailure.Kind(), recognizeFailure.Error())
	}
	if !recognition.Matched() {
		return song.NewFailure(
			failure.KindNoMatch,
			"no song recognized; the clip matched nothing in the catalog",
		)
	}

	return song.NewSuccess(normalize.Song(recognition.Track()))
}

func (p *Pipeline) runFetch(
	ctx context.Context,
	ws workspace,
	rawURL string,
) (string, failure.ClassifiedError) {
	started := time.Now()
	err := p.mediaFetcher.Fetch(ctx, rawURL, fetcher.OutputTemplate(ws.dir))
	if err == nil {
		// The downloader picks the extension, so the produced file is
		// resolved after the fact. Fetch succeeding without an artifact
		// still counts as a fetch failure.
		var mediaPath string
		mediaPath, err = fetcher.LocateDownload(ws.dir)
		p.metadataSink.RecordStage(ws.runID, stageFetch, time.Since(started), err == nil)
		return mediaPath, err
	}
	p.metadataSink.RecordStage(ws.runID, stageFetch, time.Since(started), false)
	return "", err
}

func (p *Pipeline) runExtract(
	ctx context.Context,
	ws workspace,
	mediaPath string,
) failure.ClassifiedError {
	started := time.Now()
	err := p.audioExtractor.Extract(ctx, mediaPath, ws.clipPath(), p.cfg.ClipDuration())
	p.metadataSink.RecordStage(ws.runID, stageExtract, time.Since(started), err == nil)
	return err
}

func (p *Pipeline) runRecognize(
	ctx context.Context,
	ws workspace,
) (recognizer.Recognition, failure.ClassifiedError) {
	started := time.Now()
	recognition, err := p.songRecognizer.Recognize(ctx, ws.clipPath())
	p.metadataSink.RecordStage(ws.runID, stageRecognize, time.Since(started), err == nil)
	return recognition, err
}

// CacheSize reports the number of stored outcomes.
func (p *Pipeline) CacheSize() int {
	return p.resultCache.Size()
}

// ClearCache drops every stored outcome.
func (p *Pipeline) ClearCache() {
	p.resultCache.Clear()
}
