package normalize

import (
	"strings"

	"github.com/rohmanhakim/song-finder/internal/recognizer"
	"github.com/rohmanhakim/song-finder/internal/song"
)

/*
Responsibilities
- Shape the raw match record into the stable song metadata form
- Default title and artist to the Unknown sentinels
- Rewrite opaque Spotify URIs into browsable web URLs

Output Characteristics
- Pure function of the input document
- Every extraction step is independently optional: absence of any
  nested field leaves the output field empty, it never raises
*/

const spotifyTrackURLPrefix = "https://open.spotify.com/track/"

// Song normalizes a raw recognition match record. Malformed or partial
// documents degrade to a record with fewer fields populated.
func Song(track recognizer.Document) song.Metadata {
	meta := song.Metadata{
		Title:  song.UnknownTitle,
		Artist: song.UnknownArtist,
	}
	if track == nil {
		return meta
	}

	if title := stringValue(track, "title"); title != "" {
		meta.Title = title
	}
	// The recognition service reports the artist in "subtitle".
	if artist := stringValue(track, "subtitle"); artist != "" {
		meta.Artist = artist
	}

	meta.CoverArtURL = extractCoverArt(track)
	meta.ShazamURL = stringValue(mapValue(track, "share"), "href")
	meta.SpotifyURL, meta.AppleMusicURL = extractStreamingLinks(track)
	meta.Album, meta.ReleaseDate, meta.Label = extractSongSections(track)
	meta.Genre = stringValue(mapValue(track, "genres"), "primary")

	return meta
}

// extractCoverArt prefers the cover art variant and falls back to the
// background image.
func extractCoverArt(track recognizer.Document) string {
	images := mapValue(track, "images")
	if cover := stringValue(images, "coverart"); cover != "" {
		return cover
	}
	return stringValue(images, "background")
}

// extractStreamingLinks scans the hub's typed action records and
// classifies each by a case-insensitive provider hint. A Spotify link
// in the opaque spotify:track:<id> form is rewritten into a browsable
// web URL; any other form passes through unchanged.
func extractStreamingLinks(track recognizer.Document) (spotifyURL string, appleMusicURL string) {
	hub := mapValue(track, "hub")
	for _, raw := range sliceValue(hub, "actions") {
		action, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		if stringValue(action, "type") != "uri" {
			continue
		}
		uri := stringValue(action, "uri")
		if uri == "" {
			continue
		}
		lowered := strings.ToLower(uri)
		switch {
		case strings.Contains(lowered, "spotify"):
			if spotifyURL == "" {
				spotifyURL = rewriteSpotifyURI(uri)
			}
		case strings.Contains(lowered, "apple"):
			if appleMusicURL == "" {
				appleMusicURL = uri
			}
		}
	}
	return spotifyURL, appleMusicURL
}

func rewriteSpotifyURI(uri string) string {
	if !strings.HasPrefix(uri, "spotify:") {
		return uri
	}
	segments := strings.Split(uri, ":")
	return spotifyTrackURLPrefix + segments[len(segments)-1]
}

// extractSongSections scans the loosely-typed metadata sections for
// the SONG section's key/value pairs, matching keys case-insensitively.
func extractSongSections(track recognizer.Document) (album string, releaseDate string, label string) {
	for _, rawSection := range sliceValue(track, "sections") {
		section, ok := rawSection.(map[string]any)
		if !ok {
			continue
		}
		if stringValue(section, "type") != "SONG" {
			continue
		}
		for _, rawPair := range sliceValue(section, "metadata") {
			pair, ok := rawPair.(map[string]any)
			if !ok {
				continue
			}
			key := strings.ToLower(stringValue(pair, "title"))
			text := stringValue(pair, "text")
			if text == "" {
				continue
			}
			switch key {
			case "album":
				album = text
			case "released":
				releaseDate = text
			case "label":
				label = text
			}
		}
	}
	return album, releaseDate, label
}

// Defensive accessors: each returns the zero value when the key is
// absent or holds a different type.

func stringValue(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func mapValue(m map[string]any, key string) map[string]any {
	if m == nil {
		return nil
	}
	inner, _ := m[key].(map[string]any)
	return inner
}

func sliceValue(m map[string]any, key string) []any {
	if m == nil {
		return nil
	}
	s, _ := m[key].([]any)
	return s
}
