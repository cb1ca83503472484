package provider

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fsnotify/fsnotify"

	"github.com/bkwi/beacon/internal/appdirs"
	"github.com/bkwi/beacon/internal/history"
)

// clipboardProvider surfaces the history the clipboard daemon
// maintains. The daemon replaces the file atomically, so the watcher
// listens on the directory and reloads whenever the file reappears.
type clipboardProvider struct {
	store *history.Store
	path  string
}

func NewClipboard(deps Deps) (Provider, error) {
	path, err := appdirs.DataFilePath(history.FileName)
	if err != nil {
		return nil, err
	}
	store, err := history.Open(path, deps.Config.ClipboardHistorySize)
	if err != nil {
		return nil, err
	}
	p := &clipboardProvider{store: store, path: path}
	p.watch()
	return p, nil
}

func newClipboardAt(store *history.Store, path string) *clipboardProvider {
	return &clipboardProvider{store: store, path: path}
}

// watch reloads the store when the daemon swaps the history file in.
// If the watcher cannot be created the provider still works, it just
// serves the state loaded at startup plus its own mutations.
func (p *clipboardProvider) watch() {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return
	}
	if err := watcher.Add(filepath.Dir(p.path)); err != nil {
		_ = watcher.Close()
		return
	}
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != p.path {
					continue
				}
				if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
					_ = p.store.Reload()
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
}

func (*clipboardProvider) Mode() Mode         { return ModeClipboard }
func (*clipboardProvider) Prefixes() []string { return []string{"cb", "clip", "clipboard"} }

func (p *clipboardProvider) List(_ context.Context, query string) ([]Result, error) {
	trimmed := strings.TrimSpace(query)
	lowered := strings.ToLower(trimmed)

	entries := p.store.List()

	// "pin x", "unpin x" and "delete x" turn the listing into per-entry
	// mutations instead of copy actions.
	if cmd, filter, ok := clipboardCommand(lowered, trimmed); ok {
		verbs := map[string]string{"pin": "Pin", "unpin": "Unpin", "remove": "Remove"}
		out := []Result{}
		for _, entry := range entries {
			if cmd == "pin" && entry.Pinned {
				continue
			}
			if cmd == "unpin" && !entry.Pinned {
				continue
			}
			if filter != "" && !strings.Contains(strings.ToLower(entry.Content), filter) {
				continue
			}
			out = append(out, Result{
				Title:    verbs[cmd] + ": " + entryTitle(entry),
				Subtitle: "Copied " + humanizeCopiedAt(entry.CreatedAt),
				Icon:     "edit-delete",
				Score:    1,
				Action:   Action{Kind: ActionInvoke, InvokeMode: ModeClipboard, InvokeID: cmd, InvokeArg: entry.ContentHash},
			})
		}
		return out, nil
	}

	out := []Result{}
	for _, entry := range entries {
		if lowered != "" && !strings.Contains(strings.ToLower(entry.Content), lowered) {
			continue
		}
		out = append(out, Result{
			Title:    entryTitle(entry),
			Subtitle: "Copied " + humanizeCopiedAt(entry.CreatedAt),
			Icon:     "edit-paste",
			Action:   Action{Kind: ActionCopy, Text: entry.Content},
		})
	}

	if lowered == "" && len(entries) > 0 {
		out = append(out, Result{
			Title:    "Clear clipboard history",
			Subtitle: "Pinned entries are kept",
			Icon:     "edit-delete",
			Action:   Action{Kind: ActionInvoke, InvokeMode: ModeClipboard, InvokeID: "clear"},
		})
	}
	return out, nil
}

func (p *clipboardProvider) Invoke(id, arg string) error {
	switch id {
	case "pin":
		return p.store.SetPinned(arg, true)
	case "unpin":
		return p.store.SetPinned(arg, false)
	case "remove":
		return p.store.Remove(arg)
	case "clear":
		return p.store.Clear()
	default:
		return fmt.Errorf("unknown clipboard operation: %s", id)
	}
}

// clipboardCommand splits a pin/unpin/delete residual into the store
// operation and the entry filter.
func clipboardCommand(lowered, trimmed string) (cmd, filter string, ok bool) {
	if filter, ok := deletionText(lowered, trimmed); ok {
		return "remove", filter, true
	}
	// unpin first; pin is its prefix.
	for _, candidate := range []string{"unpin", "pin"} {
		if lowered == candidate {
			return candidate, "", true
		}
		if strings.HasPrefix(lowered, candidate+" ") {
			return candidate, strings.TrimSpace(lowered[len(candidate)+1:]), true
		}
	}
	return "", "", false
}

func entryTitle(entry history.Entry) string {
	title := firstLine(entry.Content)
	if runes := []rune(title); len(runes) > 80 {
		title = string(runes[:80]) + "…"
	}
	if entry.Pinned {
		title = "📌 " + title
	}
	return title
}

func humanizeCopiedAt(createdAt string) string {
	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return "recently"
	}
	return humanize.Time(ts)
}
