package failure

// pipeline control flow

// Kind classifies a stage failure for the caller. The presentation
// layer maps each kind to a remediation hint, so every stage error
// must resolve to exactly one kind.
type Kind string

const (
	KindInvalidInput Kind = "invalid_input"
	KindFetch        Kind = "fetch_error"
	KindExtraction   Kind = "extraction_error"
	KindRecognition  Kind = "recognition_error"
	KindNoMatch      Kind = "no_match"
	// KindCacheIO is advisory only. Cache load/save failures degrade
	// persistence but never abort an in-flight identification.
	KindCacheIO Kind = "cache_io_error"
)

type ClassifiedError interface {
	error
	Kind() Kind
}
