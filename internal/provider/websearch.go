package provider

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// searchEngine is one web search target. Prefix is the launcher alias
// ("gh cobra"), Template the URL with a %s placeholder for the query.
type searchEngine struct {
	Name     string
	Prefix   string
	Template string
}

var searchEngines = []searchEngine{
	{"Google", "g", "https://www.google.com/search?q=%s"},
	{"GitHub", "gh", "https://github.com/search?q=%s"},
	{"YouTube", "yt", "https://www.youtube.com/results?search_query=%s"},
	{"DuckDuckGo", "ddg", "https://duckduckgo.com/?q=%s"},
	{"Wikipedia", "wiki", "https://en.wikipedia.org/wiki/Special:Search?search=%s"},
	{"Stack Overflow", "so", "https://stackoverflow.com/search?q=%s"},
	{"Reddit", "reddit", "https://www.reddit.com/search/?q=%s"},
	{"Amazon", "amazon", "https://www.amazon.com/s?k=%s"},
	{"npm", "npm", "https://www.npmjs.com/search?q=%s"},
	{"PyPI", "pypi", "https://pypi.org/search/?q=%s"},
	{"crates.io", "crates", "https://crates.io/search?q=%s"},
}

// websearchProvider opens a browser search. The router hands it the
// prefix that selected the mode so the right engine is picked; with no
// query it lists the available engines instead.
type websearchProvider struct{}

func NewWebSearch(Deps) (Provider, error) {
	return &websearchProvider{}, nil
}

func (*websearchProvider) Mode() Mode { return ModeWebSearch }

func (*websearchProvider) Prefixes() []string {
	out := make([]string, 0, len(searchEngines))
	for _, engine := range searchEngines {
		out = append(out, engine.Prefix)
	}
	return out
}

func (*websearchProvider) Synthetic() bool { return true }

// List expects the query as "<prefix> <terms>"; the router keeps the
// matched prefix in front of the residual for this mode.
func (p *websearchProvider) List(_ context.Context, query string) ([]Result, error) {
	trimmed := strings.TrimSpace(query)
	prefix, terms := splitFirstWord(trimmed)

	engine, ok := engineForPrefix(strings.ToLower(prefix))
	if !ok {
		// No recognized engine prefix; treat the whole query as
		// Google search terms.
		engine, _ = engineForPrefix("g")
		terms = trimmed
	}

	if strings.TrimSpace(terms) == "" {
		out := []Result{}
		for _, e := range searchEngines {
			out = append(out, Result{
				Title:    "Search " + e.Name,
				Subtitle: fmt.Sprintf("Type \"%s <query>\"", e.Prefix),
				Icon:     "web-browser",
				Score:    1,
				Action:   Action{Kind: ActionNone},
			})
		}
		return out, nil
	}

	target := fmt.Sprintf(engine.Template, url.QueryEscape(terms))
	return []Result{{
		Title:    fmt.Sprintf("Search %s for \"%s\"", engine.Name, terms),
		Subtitle: target,
		Icon:     "web-browser",
		Score:    1,
		Action:   Action{Kind: ActionOpenURL, URL: target},
	}}, nil
}

func engineForPrefix(prefix string) (searchEngine, bool) {
	for _, engine := range searchEngines {
		if engine.Prefix == prefix {
			return engine, true
		}
	}
	return searchEngine{}, false
}

func splitFirstWord(text string) (first, rest string) {
	if idx := strings.IndexByte(text, ' '); idx >= 0 {
		return text[:idx], strings.TrimSpace(text[idx:])
	}
	return text, ""
}
