package resolver

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"nexus/internal/apps"
	"nexus/internal/intent"
	"nexus/internal/links"
	"nexus/internal/logging"
	"nexus/internal/response"
	"nexus/internal/video"
)

// User-visible fixed texts.
const (
	TextVideoNotFound  = `I couldn't find a specific video to play, but here are the search results for "%s".`
	TextVideoTrouble   = "I had trouble finding a specific video, but you can see the search results here."
	TextSearchFallback = "Here are some search results for your query."
	TextGeneralEmpty   = "I couldn't answer that directly, so here are some Google search results for you."
	TextRephrase       = "Sorry, I didn't understand that. Could you please rephrase?"
	TextUnsure         = "I wasn't sure how to handle that. Here are the Google search results for you."
)

func music(m intent.Music) response.Response {
	if strings.Contains(strings.ToLower(m.Platform), "spotify") {
		return response.WithAction(
			fmt.Sprintf(`Playing "%s" on Spotify.`, m.Query),
			"Play on Spotify",
			links.SpotifySearch(m.Query),
		)
	}
	return response.WithAction(
		fmt.Sprintf(`Playing "%s" on %s.`, m.Query, m.Platform),
		"Play on "+m.Platform,
		links.GoogleSearch(fmt.Sprintf("play %s on %s", m.Query, m.Platform)),
	)
}

func (r *Resolver) youtube(ctx context.Context, y intent.YouTube) (response.Response, bool) {
	searchURL := video.SearchURL(y.Query)

	if r.opts.Videos == nil {
		return response.WithAction(TextVideoTrouble, "Search on YouTube", searchURL), true
	}

	ctx, cancel := withTimeout(ctx, r.opts.VideoTimeout)
	defer cancel()

	answer, err := r.opts.Videos.FindVideo(ctx, y.Query)
	if err != nil {
		logging.Warn("video lookup failed", "query", y.Query, "error", err)
		return response.WithAction(TextVideoTrouble, "Search on YouTube", searchURL), true
	}

	id, ok := video.ExtractID(answer)
	if !ok {
		logging.Warn("no video id in lookup answer, falling back to search", "answer", answer)
		return response.WithAction(fmt.Sprintf(TextVideoNotFound, y.Query), "Search on YouTube", searchURL), true
	}

	resp := response.WithAction(
		fmt.Sprintf(`Here is the video for "%s".`, y.Query),
		"Watch on YouTube Website",
		video.WatchURL(id),
	)
	resp.VideoReference = id
	return resp, false
}

func call(c intent.Call) response.Response {
	return response.WithAction("Calling "+c.Number+".", "Call "+c.Number, links.Tel(c.Number))
}

func openApp(o intent.OpenApp) (response.Response, bool) {
	if scheme, ok := apps.Lookup(apps.Normalize(o.AppName)); ok {
		return response.WithAction("Opening "+o.AppName+"...", "Open "+o.AppName, scheme), false
	}
	return response.WithAction(
		fmt.Sprintf(`I can't open "%s" directly, but this link might help you find it.`, o.AppName),
		"Find "+o.AppName,
		links.GoogleSearch(fmt.Sprintf("open %s app", o.AppName)),
	), true
}

func website(w intent.Website) response.Response {
	target := w.URL
	if !strings.HasPrefix(target, "http") {
		target = "https://" + target
	}

	host := "the website"
	if u, err := url.Parse(target); err == nil && u.Hostname() != "" {
		host = strings.ToLower(u.Hostname())
	} else {
		logging.Debug("could not parse URL for label", "url", target)
	}

	return response.WithAction("Opening "+host+".", "Open "+host, target)
}

func mapSearch(m intent.Map) response.Response {
	return response.WithAction(
		fmt.Sprintf(`Finding "%s" on Google Maps.`, m.Query),
		"Open in Google Maps",
		links.GoogleMaps(m.Query),
	)
}

func (r *Resolver) webSearch(ctx context.Context, w intent.WebSearch) (response.Response, bool) {
	action := googleAction(w.Query)

	if r.opts.Searcher == nil {
		return response.Response{Text: TextSearchFallback, Actions: []response.Action{action}}, true
	}

	ctx, cancel := withTimeout(ctx, r.opts.SearchTimeout)
	defer cancel()

	result, err := r.opts.Searcher.Search(ctx, w.Query)
	if err != nil {
		logging.Warn("grounded search failed", "query", w.Query, "error", err)
		return response.Response{Text: TextSearchFallback, Actions: []response.Action{action}}, true
	}

	resp := response.Response{
		Text:    strings.TrimSpace(result.Text),
		Actions: []response.Action{action},
	}
	degraded := false
	if resp.Text == "" {
		resp.Text = TextSearchFallback
		degraded = true
	}
	if len(result.Sources) > 0 {
		resp.Sources = append([]response.Source(nil), result.Sources...)
	}
	return resp, degraded
}

func general(prompt string, g intent.General) (response.Response, bool) {
	query := strings.TrimSpace(prompt)
	switch {
	case g.Text == "" && query == "":
		return fallback(prompt), true
	case g.Text == "":
		return response.Response{Text: TextGeneralEmpty, Actions: []response.Action{googleAction(query)}}, true
	case query == "":
		// No prompt to search for, so no empty search link.
		return response.Text(g.Text), false
	}
	return response.Response{Text: g.Text, Actions: []response.Action{googleAction(query)}}, false
}

func fallback(prompt string) response.Response {
	query := strings.TrimSpace(prompt)
	if query == "" {
		return response.Text(TextRephrase)
	}
	return response.Response{Text: TextUnsure, Actions: []response.Action{googleAction(query)}}
}

func googleAction(query string) response.Action {
	return response.Action{
		Label: fmt.Sprintf(`Search Google for "%s"`, query),
		URL:   links.GoogleSearch(query),
	}
}
