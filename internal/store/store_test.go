package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type doc struct {
	Names []string `json:"names"`
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "doc.json")

	want := doc{Names: []string{"alpha", "beta"}}
	if err := SaveJSON(path, want); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}

	var got doc
	ok, err := LoadJSON(path, &got)
	if err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected ok=true for existing file")
	}
	if len(got.Names) != 2 || got.Names[0] != "alpha" || got.Names[1] != "beta" {
		t.Fatalf("unexpected round-trip result: %+v", got)
	}
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	var got doc
	ok, err := LoadJSON(filepath.Join(t.TempDir(), "absent.json"), &got)
	if err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false for missing file")
	}
}

func TestLoadCorruptFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write fixture failed: %v", err)
	}

	var got doc
	ok, err := LoadJSON(path, &got)
	if err != nil {
		t.Fatalf("LoadJSON failed: %v", err)
	}
	if ok {
		t.Fatalf("expected ok=false for corrupt file")
	}
	if len(got.Names) != 0 {
		t.Fatalf("expected untouched output, got %+v", got)
	}
}

func TestSaveLeavesNoTempFilesBehind(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	if err := SaveJSON(path, doc{Names: []string{"x"}}); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir failed: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".beacon-") {
			t.Fatalf("temp file left behind: %s", entry.Name())
		}
	}
}

func TestSaveUsesPrivateFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := SaveJSON(path, doc{}); err != nil {
		t.Fatalf("SaveJSON failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if perms := info.Mode().Perm(); perms&0o077 != 0 {
		t.Fatalf("expected private permissions, got %o", perms)
	}
}
