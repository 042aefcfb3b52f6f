package response

// Action is a labeled URL offered to the user as a next step.
type Action struct {
	Label string `json:"label"`
	URL   string `json:"url"`
}

// Source is a citation returned by a grounded search.
type Source struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// Response is the result of one assistant turn. It is the only value the
// presentation layer consumes and is never mutated after it is returned.
type Response struct {
	Text           string   `json:"text"`
	Actions        []Action `json:"actions,omitempty"`
	Sources        []Source `json:"sources,omitempty"`
	VideoReference string   `json:"videoReference,omitempty"`
}

// Text builds a plain response with no actions.
func Text(text string) Response {
	return Response{Text: text}
}

// WithAction builds a response carrying a single action.
func WithAction(text, label, url string) Response {
	return Response{
		Text:    text,
		Actions: []Action{{Label: label, URL: url}},
	}
}

// HasVideo reports whether the response embeds a video.
func (r Response) HasVideo() bool {
	return r.VideoReference != ""
}

// PrimaryAction returns the action a caller may invoke automatically.
// Video-bearing responses have no primary action: the embedded player is
// the result and the watch link stays a manual fallback.
func (r Response) PrimaryAction() (Action, bool) {
	if len(r.Actions) == 0 || r.HasVideo() {
		return Action{}, false
	}
	return r.Actions[0], true
}
