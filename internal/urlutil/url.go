package urlutil

import (
	"net/url"
	"strings"
)

func BuildVideoURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// IsPlaylistURL reports whether a URL looks like a playlist. The check is a
// substring heuristic, so a single video shared from inside a playlist
// (carrying a list= parameter) is treated as a playlist too.
func IsPlaylistURL(rawURL string) bool {
	return strings.Contains(rawURL, "playlist") || strings.Contains(rawURL, "list=")
}

// IsHTTPURL reports whether s is an absolute http(s) URL.
func IsHTTPURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
