package provider

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestScriptsListsOnlyExecutables(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "backup.sh"), []byte("#!/bin/sh\n"), 0o755); err != nil {
		t.Fatalf("could not write script: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("plain"), 0o644); err != nil {
		t.Fatalf("could not write file: %v", err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub"), 0o755); err != nil {
		t.Fatalf("could not create dir: %v", err)
	}

	p := &scriptsProvider{dir: dir}
	results, err := p.List(context.Background(), "")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected only the executable, got %d results", len(results))
	}
	if results[0].Title != "backup" {
		t.Fatalf("extension should be trimmed from title: %q", results[0].Title)
	}
	if results[0].Action.Kind != ActionRunScript {
		t.Fatalf("expected run-script action, got %s", results[0].Action.Kind)
	}
}

func TestScriptsQueryFilter(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"backup.sh", "deploy.sh"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"), 0o755); err != nil {
			t.Fatalf("could not write script: %v", err)
		}
	}

	p := &scriptsProvider{dir: dir}
	results, _ := p.List(context.Background(), "dep")
	if len(results) != 1 || results[0].Title != "deploy" {
		t.Fatalf("unexpected filter result: %+v", results)
	}
}

func TestScriptsMissingDirIsEmpty(t *testing.T) {
	p := &scriptsProvider{dir: filepath.Join(t.TempDir(), "missing")}
	results, err := p.List(context.Background(), "")
	if err != nil {
		t.Fatalf("missing dir should not error: %v", err)
	}
	if len(results) != 0 {
		t.Fatalf("expected no results, got %d", len(results))
	}
}
