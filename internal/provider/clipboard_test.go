package provider

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bkwi/beacon/internal/history"
)

func newTestClipboard(t *testing.T) *clipboardProvider {
	t.Helper()
	path := filepath.Join(t.TempDir(), history.FileName)
	store, err := history.Open(path, 10)
	if err != nil {
		t.Fatalf("could not open history: %v", err)
	}
	return newClipboardAt(store, path)
}

func TestClipboardListMostRecentFirst(t *testing.T) {
	p := newTestClipboard(t)
	for _, content := range []string{"first", "second"} {
		if err := p.store.Append(content); err != nil {
			t.Fatalf("append failed: %v", err)
		}
	}

	results, _ := p.List(context.Background(), "")
	if len(results) != 3 {
		t.Fatalf("expected 2 entries plus clear action, got %d", len(results))
	}
	if results[0].Title != "second" {
		t.Fatalf("expected most recent first, got %q", results[0].Title)
	}
	if results[2].Action.InvokeID != "clear" {
		t.Fatalf("expected trailing clear action, got %+v", results[2].Action)
	}
}

func TestClipboardPinnedMarkerAndFilter(t *testing.T) {
	p := newTestClipboard(t)
	if err := p.store.Append("keep this one"); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := p.store.Append("other"); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := p.Invoke("pin", history.Hash("keep this one")); err != nil {
		t.Fatalf("pin failed: %v", err)
	}

	results, _ := p.List(context.Background(), "keep")
	if len(results) != 1 {
		t.Fatalf("expected 1 filtered result, got %d", len(results))
	}
	if !strings.HasPrefix(results[0].Title, "📌 ") {
		t.Fatalf("pinned entry missing marker: %q", results[0].Title)
	}
	if results[0].Action.Text != "keep this one" {
		t.Fatalf("copy action should carry full content, got %q", results[0].Action.Text)
	}
}

func TestClipboardLongTitlesTruncated(t *testing.T) {
	p := newTestClipboard(t)
	long := strings.Repeat("é", 200)
	if err := p.store.Append(long); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	results, _ := p.List(context.Background(), "")
	title := results[0].Title
	if runes := []rune(title); len(runes) != 81 {
		t.Fatalf("expected 80 runes plus ellipsis, got %d", len(runes))
	}
	if !strings.HasSuffix(title, "…") {
		t.Fatalf("expected ellipsis, got %q", title)
	}
}

func TestClipboardPinCommandRows(t *testing.T) {
	p := newTestClipboard(t)
	_ = p.store.Append("server logs")
	_ = p.store.Append("other text")

	results, _ := p.List(context.Background(), "pin logs")
	if len(results) != 1 {
		t.Fatalf("expected 1 pin row, got %d", len(results))
	}
	action := results[0].Action
	if action.Kind != ActionInvoke || action.InvokeID != "pin" {
		t.Fatalf("unexpected pin action: %+v", action)
	}

	if err := p.Invoke(action.InvokeID, action.InvokeArg); err != nil {
		t.Fatalf("pin failed: %v", err)
	}
	entries := p.store.List()
	for _, entry := range entries {
		if entry.Content == "server logs" && !entry.Pinned {
			t.Fatal("entry was not pinned")
		}
	}

	// Once pinned, the entry moves from "pin" rows to "unpin" rows.
	pinRows, _ := p.List(context.Background(), "pin logs")
	if len(pinRows) != 0 {
		t.Fatalf("pinned entry still offered for pinning: %+v", pinRows)
	}
	unpinRows, _ := p.List(context.Background(), "unpin")
	if len(unpinRows) != 1 || unpinRows[0].Action.InvokeID != "unpin" {
		t.Fatalf("expected 1 unpin row, got %+v", unpinRows)
	}
}

func TestClipboardDeleteCommandRows(t *testing.T) {
	p := newTestClipboard(t)
	_ = p.store.Append("scratch")

	results, _ := p.List(context.Background(), "delete scratch")
	if len(results) != 1 {
		t.Fatalf("expected 1 remove row, got %d", len(results))
	}
	action := results[0].Action
	if action.Kind != ActionInvoke || action.InvokeID != "remove" {
		t.Fatalf("unexpected remove action: %+v", action)
	}

	if err := p.Invoke(action.InvokeID, action.InvokeArg); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if p.store.Len() != 0 {
		t.Fatalf("entry was not removed, %d left", p.store.Len())
	}
}

func TestClipboardClearKeepsPinned(t *testing.T) {
	p := newTestClipboard(t)
	_ = p.store.Append("pinned")
	_ = p.store.Append("transient")
	if err := p.Invoke("pin", history.Hash("pinned")); err != nil {
		t.Fatalf("pin failed: %v", err)
	}

	if err := p.Invoke("clear", ""); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	entries := p.store.List()
	if len(entries) != 1 || entries[0].Content != "pinned" {
		t.Fatalf("clear should keep pinned entries, got %+v", entries)
	}
}
