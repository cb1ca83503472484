package router

import (
	"sort"
	"testing"

	"github.com/bkwi/beacon/internal/provider"
)

func testTable() []provider.PrefixBinding {
	bindings := []provider.PrefixBinding{
		{Prefix: "w", Mode: provider.ModeWindows},
		{Prefix: "window", Mode: provider.ModeWindows},
		{Prefix: "windows", Mode: provider.ModeWindows},
		{Prefix: "ps", Mode: provider.ModeProcesses},
		{Prefix: "proc", Mode: provider.ModeProcesses},
		{Prefix: "process", Mode: provider.ModeProcesses},
		{Prefix: "wifi", Mode: provider.ModeNetwork},
		{Prefix: "network", Mode: provider.ModeNetwork},
		{Prefix: "bt", Mode: provider.ModeBluetooth},
		{Prefix: "bluetooth", Mode: provider.ModeBluetooth},
		{Prefix: "cb", Mode: provider.ModeClipboard},
		{Prefix: "clip", Mode: provider.ModeClipboard},
		{Prefix: "clipboard", Mode: provider.ModeClipboard},
		{Prefix: "note", Mode: provider.ModeNotes},
		{Prefix: "notes", Mode: provider.ModeNotes},
		{Prefix: "todo", Mode: provider.ModeTodos},
		{Prefix: "todos", Mode: provider.ModeTodos},
		{Prefix: "task", Mode: provider.ModeTodos},
		{Prefix: "tasks", Mode: provider.ModeTodos},
		{Prefix: "ssh", Mode: provider.ModeSSH},
		{Prefix: "docker", Mode: provider.ModeDocker},
		{Prefix: "e", Mode: provider.ModeEmoji},
		{Prefix: "emoji", Mode: provider.ModeEmoji},
		{Prefix: "f", Mode: provider.ModeFiles},
		{Prefix: "find", Mode: provider.ModeFiles},
		{Prefix: "r", Mode: provider.ModeRecent},
		{Prefix: "g", Mode: provider.ModeWebSearch},
		{Prefix: "gh", Mode: provider.ModeWebSearch},
		{Prefix: "yt", Mode: provider.ModeWebSearch},
		{Prefix: "?", Mode: provider.ModeAI},
		{Prefix: "ask", Mode: provider.ModeAI},
	}
	sort.SliceStable(bindings, func(i, j int) bool {
		return len(bindings[i].Prefix) > len(bindings[j].Prefix)
	})
	return bindings
}

func TestResolvePrefixes(t *testing.T) {
	r := New(testTable())

	cases := []struct {
		query    string
		mode     provider.Mode
		residual string
	}{
		{"w firefox", provider.ModeWindows, "firefox"},
		{"windows firefox", provider.ModeWindows, "firefox"},
		{"ps chrome", provider.ModeProcesses, "chrome"},
		{"todo buy milk", provider.ModeTodos, "buy milk"},
		{"todos", provider.ModeTodos, ""},
		{"ssh prod", provider.ModeSSH, "prod"},
		{"gh cobra cli", provider.ModeWebSearch, "cobra cli"},
		{"? what is flock", provider.ModeAI, "what is flock"},
		{"e smile", provider.ModeEmoji, "smile"},
	}
	for _, tc := range cases {
		got := r.Resolve(tc.query)
		if got.Mode != tc.mode {
			t.Fatalf("Resolve(%q) mode = %s, want %s", tc.query, got.Mode, tc.mode)
		}
		if got.Residual != tc.residual {
			t.Fatalf("Resolve(%q) residual = %q, want %q", tc.query, got.Residual, tc.residual)
		}
	}
}

func TestResolvePrefixIsCaseInsensitive(t *testing.T) {
	r := New(testTable())
	got := r.Resolve("W firefox")
	if got.Mode != provider.ModeWindows || got.Residual != "firefox" {
		t.Fatalf("unexpected match: %+v", got)
	}
}

func TestResolveDetectsCalculator(t *testing.T) {
	r := New(testTable())
	for _, query := range []string{"2+2", "10 - 5", "3 * (4 + 1)", "2^8", "17 % 5"} {
		got := r.Resolve(query)
		if got.Mode != provider.ModeCalculator {
			t.Fatalf("Resolve(%q) mode = %s, want calculator", query, got.Mode)
		}
		if got.Residual != query {
			t.Fatalf("Resolve(%q) residual = %q, want full query", query, got.Residual)
		}
	}
}

func TestResolveDetectsConverter(t *testing.T) {
	r := New(testTable())
	for _, query := range []string{"5 km in miles", "100 f to c", "2.5kg to lb", "90 min in h"} {
		got := r.Resolve(query)
		if got.Mode != provider.ModeConverter {
			t.Fatalf("Resolve(%q) mode = %s, want converter", query, got.Mode)
		}
	}
}

func TestResolveFallsBackToApps(t *testing.T) {
	r := New(testTable())
	for _, query := range []string{"firefox", "visual studio", "g++", "weather today"} {
		got := r.Resolve(query)
		if got.Mode != provider.ModeApps {
			t.Fatalf("Resolve(%q) mode = %s, want apps", query, got.Mode)
		}
	}
}

func TestResolveEmptyQueryIsApps(t *testing.T) {
	r := New(testTable())
	got := r.Resolve("   ")
	if got.Mode != provider.ModeApps || got.Residual != "" {
		t.Fatalf("unexpected match for blank query: %+v", got)
	}
}

func TestLongerPrefixWins(t *testing.T) {
	r := New(testTable())
	got := r.Resolve("todos clean desk")
	if got.Mode != provider.ModeTodos || got.Residual != "clean desk" {
		t.Fatalf("unexpected match: %+v", got)
	}
}

func TestPrefixOnlyMatchesWholeFirstToken(t *testing.T) {
	r := New(testTable())
	got := r.Resolve("wireshark")
	if got.Mode != provider.ModeApps {
		t.Fatalf("expected wireshark to route to apps, got %s", got.Mode)
	}
}
