package youtube

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var (
	youtubeRegex = regexp.MustCompile(`^(?:https?:\/\/)?(?:www\.|music\.|m\.)?(youtube\.com|youtu\.be)\/\S+`)
	videoIDRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]{11}$`)
)

// IsYouTubeURL reports whether input points at YouTube.
func IsYouTubeURL(input string) bool {
	return youtubeRegex.MatchString(strings.TrimSpace(input))
}

func isYouTubeVideoURL(s string) bool {
	return ExtractVideoID(s) != ""
}

// ExtractVideoID returns the 11 character video id of a watch or short link.
func ExtractVideoID(raw string) string {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return ""
	}

	var id string
	switch strings.ToLower(u.Hostname()) {
	case "youtu.be":
		id = strings.Trim(u.Path, "/")
	case "www.youtube.com", "youtube.com", "music.youtube.com", "m.youtube.com":
		switch {
		case u.Path == "/watch":
			id = u.Query().Get("v")
		case strings.HasPrefix(u.Path, "/shorts/"):
			id = strings.Trim(strings.TrimPrefix(u.Path, "/shorts/"), "/")
		}
	}

	if !videoIDRegex.MatchString(id) {
		return ""
	}
	return id
}

// CleanVideoURL drops playlist, timestamp and tracking parameters.
func CleanVideoURL(raw string) string {
	id := ExtractVideoID(raw)
	if id == "" {
		return raw
	}
	return WatchURL(id)
}

// WatchURL builds the canonical watch link of a video.
func WatchURL(id string) string {
	return fmt.Sprintf("https://www.youtube.com/watch?v=%s", id)
}
