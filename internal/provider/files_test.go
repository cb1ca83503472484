package provider

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeFileTree(t *testing.T, root string, paths ...string) {
	t.Helper()
	for _, rel := range paths {
		full := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("could not create dirs: %v", err)
		}
		if err := os.WriteFile(full, []byte("x"), 0o644); err != nil {
			t.Fatalf("could not write file: %v", err)
		}
	}
}

func TestFilesMatchesByName(t *testing.T) {
	root := t.TempDir()
	writeFileTree(t, root,
		"report-2026.pdf",
		"nested/invoice.pdf",
		"notes.txt",
	)

	p := &filesProvider{roots: []string{root}}
	results, err := p.List(context.Background(), "pdf")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(results))
	}
	for _, result := range results {
		if result.Action.Kind != ActionOpenPath {
			t.Fatalf("expected open-path action, got %s", result.Action.Kind)
		}
	}
}

func TestFilesShortQueryReturnsNothing(t *testing.T) {
	root := t.TempDir()
	writeFileTree(t, root, "a.txt")

	p := &filesProvider{roots: []string{root}}
	results, _ := p.List(context.Background(), "a")
	if len(results) != 0 {
		t.Fatalf("single-character query should be ignored, got %d results", len(results))
	}
}

func TestFilesSkipsHiddenAndDeepDirs(t *testing.T) {
	root := t.TempDir()
	writeFileTree(t, root,
		".cache/match.txt",
		"a/b/c/d/e/match.txt",
		"a/match.txt",
	)

	p := &filesProvider{roots: []string{root}}
	results, _ := p.List(context.Background(), "match")
	if len(results) != 1 {
		t.Fatalf("expected only the shallow visible match, got %d", len(results))
	}
}

func TestFilesMissingRootIsEmpty(t *testing.T) {
	p := &filesProvider{roots: []string{filepath.Join(t.TempDir(), "missing")}}
	results, err := p.List(context.Background(), "anything")
	if err != nil {
		t.Fatalf("missing root should not error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}
