package song

import (
	"github.com/rohmanhakim/song-finder/pkg/failure"
)

// Sentinel values used when the recognition payload omits the primary
// fields. Callers render these directly, so they are never empty.
const (
	UnknownTitle  = "Unknown Title"
	UnknownArtist = "Unknown Artist"
)

// Metadata is the normalized song record produced from a raw
// recognition payload. Title and Artist always carry a value (the
// Unknown sentinels at worst); everything else is optional and empty
// when the payload did not provide it.
type Metadata struct {
	Title         string `json:"title"`
	Artist        string `json:"artist"`
	Album         string `json:"album,omitempty"`
	ReleaseDate   string `json:"releaseDate,omitempty"`
	Label         string `json:"label,omitempty"`
	Genre         string `json:"genre,omitempty"`
	CoverArtURL   string `json:"coverArtUrl,omitempty"`
	ShazamURL     string `json:"shazamUrl,omitempty"`
	SpotifyURL    string `json:"spotifyUrl,omitempty"`
	AppleMusicURL string `json:"appleMusicUrl,omitempty"`
}

// Outcome is the tagged result of one identification. Exactly one of
// Song (on success) or Kind/Message (on failure) is meaningful.
type Outcome struct {
	Success bool         `json:"success"`
	Song    *Metadata    `json:"song,omitempty"`
	Kind    failure.Kind `json:"errorKind,omitempty"`
	Message string       `json:"error,omitempty"`
}

func NewSuccess(meta Metadata) Outcome {
	return Outcome{
		Success: true,
		Song:    &meta,
	}
}

func NewFailure(kind failure.Kind, message string) Outcome {
	return Outcome{
		Success: false,
		Kind:    kind,
		Message: message,
	}
}
