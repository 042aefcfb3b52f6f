// Package intent classifies a prompt into exactly one user goal.
package intent

// Kind names an intent branch.
type Kind string

const (
	KindMusic        Kind = "music"
	KindYouTube      Kind = "youtube"
	KindCall         Kind = "call"
	KindWebsite      Kind = "website"
	KindMap          Kind = "map"
	KindOpenApp      Kind = "openApp"
	KindWebSearch    Kind = "webSearch"
	KindGeneral      Kind = "generalResponse"
	KindUnrecognized Kind = "unrecognized"
)

// Intent is one of the variants below.
type Intent interface {
	Kind() Kind
}

type Music struct {
	Platform string
	Query    string
}

type YouTube struct {
	Query string
}

type Call struct {
	Number string
}

type Website struct {
	URL string
}

type Map struct {
	Query string
}

type OpenApp struct {
	AppName string
}

type WebSearch struct {
	Query string
}

// General carries the classifier's own answer. Text may be empty.
type General struct {
	Text string
}

// Unrecognized is selected when no branch is usable.
type Unrecognized struct{}

func (Music) Kind() Kind        { return KindMusic }
func (YouTube) Kind() Kind      { return KindYouTube }
func (Call) Kind() Kind         { return KindCall }
func (Website) Kind() Kind      { return KindWebsite }
func (Map) Kind() Kind          { return KindMap }
func (OpenApp) Kind() Kind      { return KindOpenApp }
func (WebSearch) Kind() Kind    { return KindWebSearch }
func (General) Kind() Kind      { return KindGeneral }
func (Unrecognized) Kind() Kind { return KindUnrecognized }

// Classification is the parsed classifier answer. A nil branch was absent
// (missing, JSON null, or the "null" sentinel). Present branches have their
// string fields trimmed, with sentinel values replaced by "".
//
// The model is told to fill one branch, but nothing enforces it; more than
// one may be present and the resolver's priority order decides.
type Classification struct {
	Music     *Music
	YouTube   *YouTube
	Call      *Call
	Website   *Website
	Map       *Map
	OpenApp   *OpenApp
	WebSearch *WebSearch
	General   *General
}

// Present lists the kinds of the non-nil branches, in schema order.
func (c *Classification) Present() []Kind {
	if c == nil {
		return nil
	}
	var kinds []Kind
	add := func(ok bool, k Kind) {
		if ok {
			kinds = append(kinds, k)
		}
	}
	add(c.Music != nil, KindMusic)
	add(c.YouTube != nil, KindYouTube)
	add(c.Call != nil, KindCall)
	add(c.Website != nil, KindWebsite)
	add(c.Map != nil, KindMap)
	add(c.OpenApp != nil, KindOpenApp)
	add(c.WebSearch != nil, KindWebSearch)
	add(c.General != nil, KindGeneral)
	return kinds
}
