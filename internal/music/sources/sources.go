package sources

import "strings"

const (
	SourceYouTube = "youtube"
	SourceRadio   = "radio"
)

// IsURL reports whether input looks like an http(s) link rather than a title.
func IsURL(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
