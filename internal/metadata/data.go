package metadata

// ErrorCause is the canonical, package-neutral cause table used for
// recorded errors. Stage packages map their local error semantics onto
// this table; the mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
type ErrorCause string

const (
	CauseInvalidInput   ErrorCause = "invalid input"
	CauseNetworkFailure ErrorCause = "network failure"
	CauseToolFailure    ErrorCause = "external tool failure"
	CauseNoMatch        ErrorCause = "no match"
	CauseStorageFailure ErrorCause = "storage failure"
	CauseUnknown        ErrorCause = "unknown"
)

type ArtifactKind string

const (
	ArtifactMedia ArtifactKind = "media"
	ArtifactClip  ArtifactKind = "audio-clip"
	ArtifactCache ArtifactKind = "cache-store"
)

// CacheEvent labels cache lifecycle observations.
type CacheEvent string

const (
	CacheEventHit     CacheEvent = "hit"
	CacheEventMiss    CacheEvent = "miss"
	CacheEventStore   CacheEvent = "store"
	CacheEventEvict   CacheEvent = "evict"
	CacheEventCleared CacheEvent = "cleared"
)

type AttrKey string

const (
	AttrURL     AttrKey = "url"
	AttrRunID   AttrKey = "run_id"
	AttrPath    AttrKey = "path"
	AttrKeyHash AttrKey = "key_hash"
	AttrStage   AttrKey = "stage"
)

type Attribute struct {
	key   AttrKey
	value string
}

func NewAttr(key AttrKey, value string) Attribute {
	return Attribute{
		key:   key,
		value: value,
	}
}

func (a Attribute) Key() AttrKey {
	return a.key
}

func (a Attribute) Value() string {
	return a.value
}
