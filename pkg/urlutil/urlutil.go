package urlutil

import "strings"

// MatchesAny reports whether the raw URL contains any of the accepted
// source patterns. Matching is a case-insensitive substring check, the
// same loose shape test the recognition flow has always used: the
// fetcher is the authority on whether the video actually resolves.
//
// Properties:
//   - Pure: no state, no memory
//   - Deterministic: same input always produces same output
//
// The raw URL is matched verbatim; no canonicalization is applied, so
// trailing slashes or tracking parameters are preserved downstream.
func MatchesAny(rawURL string, patterns []string) bool {
	lowered := lowerASCII(rawURL)
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if strings.Contains(lowered, pattern) {
			return true
		}
	}
	return false
}

// lowerASCII converts ASCII characters to lowercase without allocating.
// This is faster than strings.ToLower for ASCII-only strings.
func lowerASCII(s string) string {
	var needsLower bool
	for i := 0; i < len(s); i++ {
		if s[i] >= 'A' && s[i] <= 'Z' {
			needsLower = true
			break
		}
	}
	if !needsLower {
		return s
	}
	b := make([]byte, len(s))
	copy(b, s)
	for i := 0; i < len(b); i++ {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}
