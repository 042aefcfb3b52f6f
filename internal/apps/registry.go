package apps

import (
	"sort"
	"strings"
)

// schemes maps normalized application names to the URL scheme that opens
// the native app. Keys must already be lowercase and trimmed.
var schemes = map[string]string{
	// Social & Communication
	"instagram": "instagram://",
	"facebook":  "fb://",
	"twitter":   "twitter://",
	"x":         "twitter://",
	"whatsapp":  "whatsapp://",
	"snapchat":  "snapchat://",
	"tiktok":    "tiktok://",
	"linkedin":  "linkedin://",
	"pinterest": "pinterest://",
	"slack":     "slack://",
	"discord":   "discord://",
	"telegram":  "tg://",
	"zoom":      "zoomus://",
	"reddit":    "reddit://",

	// Music, Video & Entertainment
	"spotify":     "spotify:",
	"youtube":     "youtube://",
	"netflix":     "nflx://",
	"soundcloud":  "soundcloud://",
	"pandora":     "pandora://",
	"apple music": "music://",

	// Navigation & Travel
	"maps":        "googlemaps://",
	"google maps": "googlemaps://",
	"waze":        "waze://",
	"uber":        "uber://",
	"lyft":        "lyft://",
	"airbnb":      "airbnb://",

	// Google Suite
	"gmail":           "googlegmail://",
	"google drive":    "googledrive://",
	"drive":           "googledrive://",
	"google photos":   "googlephotos://",
	"photos":          "googlephotos://",
	"google calendar": "googlecalendar://",
	"calendar":        "googlecalendar://",
	"google docs":     "googledocs://",
	"docs":            "googledocs://",
	"google sheets":   "googlesheets://",
	"sheets":          "googlesheets://",
	"google slides":   "googleslides://",
	"slides":          "googleslides://",

	// Shopping & Food
	"amazon":    "amazon://",
	"ebay":      "ebay://",
	"etsy":      "etsy://",
	"walmart":   "walmart://",
	"doordash":  "doordash://",
	"grubhub":   "grubhub://",
	"uber eats": "ubereats://",

	// Productivity & Finance
	"evernote":        "evernote://",
	"trello":          "trello://",
	"asana":           "asana://",
	"outlook":         "ms-outlook://",
	"microsoft teams": "msteams://",
	"teams":           "msteams://",
	"dropbox":         "dbx-dropbox://",
	"paypal":          "paypal://",
	"venmo":           "venmo://",
	"cash app":        "cashapp://",

	// Other
	"duolingo": "duolingo://",
}

// Normalize converts a user-facing app name into a registry key.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Lookup returns the URL scheme registered for an already normalized name.
// The match is exact: callers are expected to run Normalize first.
func Lookup(name string) (string, bool) {
	scheme, ok := schemes[name]
	return scheme, ok
}

// Names returns all registered app names in sorted order.
func Names() []string {
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
