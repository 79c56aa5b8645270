package recognizer

// Recognition service boundary

// Document is the raw, loosely-typed payload a recognition service
// returns for a match. It is treated as opaque here; the normalize
// package performs defensive field-by-field extraction.
type Document = map[string]any

type Recognition struct {
	matched bool
	track   Document
}

func (r Recognition) Matched() bool {
	return r.matched
}

// Track returns the raw match record. Nil when Matched is false.
func (r Recognition) Track() Document {
	return r.track
}

// NewRecognitionForTest creates a Recognition for testing purposes.
// This allows test packages to construct Recognition values without
// accessing unexported fields directly.
func NewRecognitionForTest(matched bool, track Document) Recognition {
	return Recognition{
		matched: matched,
		track:   track,
	}
}
