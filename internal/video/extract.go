package video

import (
	"regexp"
	"strings"

	"nexus/internal/links"
)

// idPattern matches the link shapes YouTube hands out: long-form watch URLs
// (v= anywhere in the query), youtu.be short links, /embed/, /v/, /e/ and
// channel-style paths. The capture group is the 11-character video id.
var idPattern = regexp.MustCompile(
	`(?:https?://)?(?:www\.)?(?:youtube\.com/(?:[^/\n\s]+/\S+/|(?:v|e(?:mbed)?)/|\S*?[?&]v=)|youtu\.be/)([a-zA-Z0-9_-]{11})`,
)

// ExtractID returns the first video id embedded in text, if any.
func ExtractID(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	m := idPattern.FindStringSubmatch(text)
	if len(m) < 2 {
		return "", false
	}
	return m[1], true
}

// WatchURL returns the canonical watch page for a video id.
func WatchURL(id string) string {
	return "https://www.youtube.com/watch?v=" + id
}

// SearchURL returns the YouTube results page for query.
func SearchURL(query string) string {
	return "https://www.youtube.com/results?search_query=" + links.Component(query)
}
