package cmd

import "github.com/rohmanhakim/song-finder/pkg/failure"

// hintFor maps a failure kind to a short remediation line shown after
// the failure message. An empty string suppresses the hint.
func hintFor(kind failure.Kind) string {
	switch kind {
	case failure.KindInvalidInput:
		return "Provide a URL like https://youtube.com/shorts/<id> or https://youtu.be/<id>."
	case failure.KindFetch:
		return "Check that the video is reachable and that yt-dlp is installed and up to date."
	case failure.KindExtraction:
		return "Check that FFmpeg is installed and on the PATH."
	case failure.KindRecognition:
		return "Check your network connection and the recognition service API key."
	case failure.KindNoMatch:
		return "Try a video segment where the music is louder or less covered by speech."
	case failure.KindCacheIO:
		return "Check that the cache file path is writable."
	default:
		return ""
	}
}
