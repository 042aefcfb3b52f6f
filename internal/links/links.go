// Package links builds the outbound action URLs.
package links

import (
	"net/url"
	"strings"
)

// keep undoes QueryEscape for the marks a browser's encodeURIComponent
// leaves alone.
var keep = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// Component percent-encodes s for use inside a URL. Letters, digits and
// - _ . ! ~ * ' ( ) pass through; space becomes %20; everything else is
// encoded as UTF-8 bytes.
func Component(s string) string {
	return keep.Replace(url.QueryEscape(s))
}

// GoogleSearch returns a Google results page for query.
func GoogleSearch(query string) string {
	return "https://www.google.com/search?q=" + Component(query)
}

// GoogleMaps returns a Maps search for query.
func GoogleMaps(query string) string {
	return "https://www.google.com/maps/search/?api=1&query=" + Component(query)
}

// SpotifySearch returns the Spotify app's search URI.
func SpotifySearch(query string) string {
	return "spotify:search:" + Component(query)
}

// Tel returns a tel: URL with all whitespace removed from number.
func Tel(number string) string {
	return "tel:" + strings.Join(strings.Fields(number), "")
}
