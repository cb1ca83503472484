// Package store holds the JSON persistence helpers shared by every
// data file the launcher and the clipboard daemon keep in the config
// dir. Writes go through a temp file and rename so a concurrent reader
// always sees either the old document or the new one, never a partial
// write.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// LoadJSON reads path into out. A missing file is not an error: out is
// left untouched and ok is false. A corrupt file is treated the same
// way so a damaged store degrades to empty instead of blocking startup.
func LoadJSON(path string, out any) (ok bool, err error) {
	bytes, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not read %s: %w", filepath.Base(path), err)
	}
	if err := json.Unmarshal(bytes, out); err != nil {
		return false, nil
	}
	return true, nil
}

// SaveJSON atomically replaces path with the JSON encoding of v.
func SaveJSON(path string, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode %s: %w", filepath.Base(path), err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("could not create data dir: %w", err)
	}

	tempFile, err := os.CreateTemp(dir, ".beacon-*.json")
	if err != nil {
		return fmt.Errorf("could not create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	cleanup := func() {
		_ = os.Remove(tempPath)
	}

	if _, err := tempFile.Write(payload); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not write temp file: %w", err)
	}
	if err := tempFile.Chmod(0o600); err != nil {
		_ = tempFile.Close()
		cleanup()
		return fmt.Errorf("could not secure temp file permissions: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		cleanup()
		return fmt.Errorf("could not close temp file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		cleanup()
		return fmt.Errorf("could not atomically replace %s: %w", filepath.Base(path), err)
	}
	if err := os.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("could not secure %s permissions: %w", filepath.Base(path), err)
	}
	return nil
}
