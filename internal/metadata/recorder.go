package metadata

import (
	"strings"
	"time"

	"github.com/rohmanhakim/song-finder/pkg/logger"
)

/*
Metadata Collected
- Stage timings and outcomes
- Stage errors with canonical causes
- Produced artifacts (media file, audio clip, cache store)
- Cache hits, misses, stores, evictions

Determinism guarantees:
- Metadata does not affect control flow
- Recorded events never change an identification's outcome

Metadata is write-only.
No component may read metadata to influence pipeline decisions.
*/

// MetadataSink is the write-only observation boundary every stage
// records into. Implementations must be safe for concurrent use, since
// identifications for different URLs may run in parallel.
type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		errorString string,
		attrs []Attribute,
	)
	RecordStage(
		runID string,
		stage string,
		duration time.Duration,
		ok bool,
	)
	RecordArtifact(kind ArtifactKind, path string, attrs []Attribute)
	RecordCacheEvent(event CacheEvent, keyHash string, size int)
}

/*
Recorder captures structured pipeline events and writes them through
the console logger.
It must not:
- perform I/O decisions
- affect control flow
Events are recorded synchronously in the order they are received from
a single identification; no global ordering across concurrent
identifications is guaranteed.
*/
type Recorder struct {
	log *logger.Logger
}

func NewRecorder(log *logger.Logger) Recorder {
	if log == nil {
		log = logger.GetLogger()
	}
	return Recorder{
		log: log,
	}
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
	r.log.Warnf("%s: %s: %s: %s%s",
		packageName, action, cause, errorString, formatAttrs(attrs))
}

func (r *Recorder) RecordStage(
	runID string,
	stage string,
	duration time.Duration,
	ok bool,
) {
	status := "ok"
	if !ok {
		status = "failed"
	}
	r.log.Debugf("stage %s %s in %s run_id=%s", stage, status, duration, runID)
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	r.log.Debugf("artifact %s at %s%s", kind, path, formatAttrs(attrs))
}

func (r *Recorder) RecordCacheEvent(event CacheEvent, keyHash string, size int) {
	r.log.Debugf("cache %s key=%s size=%d", event, shortHash(keyHash), size)
}

func formatAttrs(attrs []Attribute) string {
	if len(attrs) == 0 {
		return ""
	}
	var b strings.Builder
	for _, attr := range attrs {
		b.WriteString(" ")
		b.WriteString(string(attr.Key()))
		b.WriteString("=")
		b.WriteString(attr.Value())
	}
	return b.String()
}

func shortHash(h string) string {
	if len(h) <= 12 {
		return h
	}
	return h[:12]
}
