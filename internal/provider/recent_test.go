package provider

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func touchFile(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatalf("write file failed: %v", err)
	}
	return path
}

func TestRecentTouchBumpsToFront(t *testing.T) {
	dir := t.TempDir()
	a := touchFile(t, dir, "a.txt")
	b := touchFile(t, dir, "b.txt")

	p, err := newRecentAt(filepath.Join(t.TempDir(), recentFileName), 10)
	if err != nil {
		t.Fatalf("newRecentAt failed: %v", err)
	}

	for _, path := range []string{a, b, a} {
		if err := p.Invoke("touch", path); err != nil {
			t.Fatalf("Invoke touch failed: %v", err)
		}
	}

	results, err := p.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 recent files, got %d", len(results))
	}
	if results[0].Action.Path != a || results[1].Action.Path != b {
		t.Fatalf("unexpected order: %+v", results)
	}
}

func TestRecentCapacityIsEnforced(t *testing.T) {
	dir := t.TempDir()
	p, err := newRecentAt(filepath.Join(t.TempDir(), recentFileName), 2)
	if err != nil {
		t.Fatalf("newRecentAt failed: %v", err)
	}

	for _, name := range []string{"a", "b", "c"} {
		if err := p.Invoke("touch", touchFile(t, dir, name)); err != nil {
			t.Fatalf("Invoke touch failed: %v", err)
		}
	}

	results, err := p.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected capacity of 2, got %d", len(results))
	}
	if filepath.Base(results[0].Action.Path) != "c" {
		t.Fatalf("expected most recent first, got %+v", results[0])
	}
}

func TestRecentSkipsMissingFiles(t *testing.T) {
	dir := t.TempDir()
	gone := touchFile(t, dir, "gone.txt")
	kept := touchFile(t, dir, "kept.txt")

	p, err := newRecentAt(filepath.Join(t.TempDir(), recentFileName), 10)
	if err != nil {
		t.Fatalf("newRecentAt failed: %v", err)
	}
	if err := p.Invoke("touch", gone); err != nil {
		t.Fatalf("Invoke touch failed: %v", err)
	}
	if err := p.Invoke("touch", kept); err != nil {
		t.Fatalf("Invoke touch failed: %v", err)
	}

	if err := os.Remove(gone); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	results, err := p.List(context.Background(), "")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 1 || results[0].Action.Path != kept {
		t.Fatalf("expected only existing file, got %+v", results)
	}
}

func TestRecentFilterByName(t *testing.T) {
	dir := t.TempDir()
	report := touchFile(t, dir, "report.pdf")
	touchFile(t, dir, "music.mp3")

	p, err := newRecentAt(filepath.Join(t.TempDir(), recentFileName), 10)
	if err != nil {
		t.Fatalf("newRecentAt failed: %v", err)
	}
	if err := p.Invoke("touch", report); err != nil {
		t.Fatalf("Invoke touch failed: %v", err)
	}
	if err := p.Invoke("touch", filepath.Join(dir, "music.mp3")); err != nil {
		t.Fatalf("Invoke touch failed: %v", err)
	}

	results, err := p.List(context.Background(), "report")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(results) != 1 || results[0].Title != "report.pdf" {
		t.Fatalf("unexpected filtered results: %+v", results)
	}
}
