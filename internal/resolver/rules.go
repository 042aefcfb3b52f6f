package resolver

import (
	"context"

	"nexus/internal/intent"
	"nexus/internal/response"
)

// rule is one branch: match extracts a usable intent, handle answers it.
// handle reports true when it fell back to a degraded answer.
type rule struct {
	kind   intent.Kind
	match  func(c *intent.Classification) (intent.Intent, bool)
	handle func(r *Resolver, ctx context.Context, prompt string, in intent.Intent) (response.Response, bool)
}

// rules is evaluated top to bottom; the first match wins and later
// branches are ignored even when populated. youtube outranks music and
// openApp outranks website, as the classifier is instructed.
var rules = []rule{
	{
		kind: intent.KindYouTube,
		match: func(c *intent.Classification) (intent.Intent, bool) {
			if c.YouTube == nil || c.YouTube.Query == "" {
				return nil, false
			}
			return *c.YouTube, true
		},
		handle: func(r *Resolver, ctx context.Context, _ string, in intent.Intent) (response.Response, bool) {
			return r.youtube(ctx, in.(intent.YouTube))
		},
	},
	{
		kind: intent.KindMusic,
		match: func(c *intent.Classification) (intent.Intent, bool) {
			if c.Music == nil || c.Music.Platform == "" || c.Music.Query == "" {
				return nil, false
			}
			return *c.Music, true
		},
		handle: func(_ *Resolver, _ context.Context, _ string, in intent.Intent) (response.Response, bool) {
			return music(in.(intent.Music)), false
		},
	},
	{
		kind: intent.KindCall,
		match: func(c *intent.Classification) (intent.Intent, bool) {
			if c.Call == nil || c.Call.Number == "" {
				return nil, false
			}
			return *c.Call, true
		},
		handle: func(_ *Resolver, _ context.Context, _ string, in intent.Intent) (response.Response, bool) {
			return call(in.(intent.Call)), false
		},
	},
	{
		kind: intent.KindOpenApp,
		match: func(c *intent.Classification) (intent.Intent, bool) {
			if c.OpenApp == nil || c.OpenApp.AppName == "" {
				return nil, false
			}
			return *c.OpenApp, true
		},
		handle: func(_ *Resolver, _ context.Context, _ string, in intent.Intent) (response.Response, bool) {
			return openApp(in.(intent.OpenApp))
		},
	},
	{
		kind: intent.KindWebsite,
		match: func(c *intent.Classification) (intent.Intent, bool) {
			if c.Website == nil || c.Website.URL == "" {
				return nil, false
			}
			return *c.Website, true
		},
		handle: func(_ *Resolver, _ context.Context, _ string, in intent.Intent) (response.Response, bool) {
			return website(in.(intent.Website)), false
		},
	},
	{
		kind: intent.KindMap,
		match: func(c *intent.Classification) (intent.Intent, bool) {
			if c.Map == nil || c.Map.Query == "" {
				return nil, false
			}
			return *c.Map, true
		},
		handle: func(_ *Resolver, _ context.Context, _ string, in intent.Intent) (response.Response, bool) {
			return mapSearch(in.(intent.Map)), false
		},
	},
	{
		kind: intent.KindWebSearch,
		match: func(c *intent.Classification) (intent.Intent, bool) {
			if c.WebSearch == nil || c.WebSearch.Query == "" {
				return nil, false
			}
			return *c.WebSearch, true
		},
		handle: func(r *Resolver, ctx context.Context, _ string, in intent.Intent) (response.Response, bool) {
			return r.webSearch(ctx, in.(intent.WebSearch))
		},
	},
	{
		kind: intent.KindGeneral,
		match: func(c *intent.Classification) (intent.Intent, bool) {
			if c.General == nil {
				return nil, false
			}
			return *c.General, true
		},
		handle: func(_ *Resolver, _ context.Context, prompt string, in intent.Intent) (response.Response, bool) {
			return general(prompt, in.(intent.General))
		},
	},
}
