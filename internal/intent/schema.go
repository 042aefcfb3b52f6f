package intent

import "google.golang.org/genai"

// JSON keys of the classifier answer.
const (
	keyMusic    = "music"
	keyYouTube  = "youtube"
	keyCall     = "call"
	keyWebsite  = "website"
	keyMap      = "map"
	keyOpenApp  = "openApp"
	keySearch   = "webSearch"
	keyGeneral  = "generalResponse"
	sentinelNil = "null"
)

func stringField(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

func branch(fields map[string]*genai.Schema, order ...string) *genai.Schema {
	nullable := true
	return &genai.Schema{
		Type:             genai.TypeObject,
		Nullable:         &nullable,
		Properties:       fields,
		PropertyOrdering: order,
	}
}

// Schema returns the response schema: one nullable entry per branch.
func Schema() *genai.Schema {
	nullable := true
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			keyMusic: branch(map[string]*genai.Schema{
				"platform": stringField("The music platform, e.g., Spotify, Apple Music."),
				"query":    stringField("The song and/or artist to search for"),
			}, "platform", "query"),
			keyYouTube: branch(map[string]*genai.Schema{
				"query": stringField("The video to search for on YouTube"),
			}),
			keyCall: branch(map[string]*genai.Schema{
				"number": stringField("The phone number to call"),
			}),
			keyWebsite: branch(map[string]*genai.Schema{
				"url": stringField("The full URL of the website to open, ensuring it starts with http:// or https://"),
			}),
			keyMap: branch(map[string]*genai.Schema{
				"query": stringField("The location or directions to search on Google Maps"),
			}),
			keyOpenApp: branch(map[string]*genai.Schema{
				"appName": stringField("The name of the application to open, e.g., 'Instagram', 'Calculator', 'WhatsApp'."),
			}),
			keySearch: branch(map[string]*genai.Schema{
				"query": stringField("The user's original query for a web search"),
			}),
			keyGeneral: {
				Type:        genai.TypeString,
				Nullable:    &nullable,
				Description: "A direct answer for general conversation, a question that doesn't need a web search, or if the intent is unclear.",
			},
		},
		PropertyOrdering: []string{keyMusic, keyYouTube, keyCall, keyWebsite, keyMap, keyOpenApp, keySearch, keyGeneral},
	}
}
