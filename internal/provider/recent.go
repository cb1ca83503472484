package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/bkwi/beacon/internal/appdirs"
	"github.com/bkwi/beacon/internal/store"
)

const recentFileName = "recent_files.json"

type RecentFile struct {
	Path     string `json:"path"`
	OpenedAt string `json:"opened_at"`
}

type recentDocument struct {
	Files []RecentFile `json:"files"`
}

// recentProvider tracks files opened through the launcher, most recent
// first. Entries whose path no longer exists are filtered at listing
// time and dropped on the next persist.
type recentProvider struct {
	mu       sync.Mutex
	path     string
	capacity int
	files    []RecentFile
}

func NewRecent(deps Deps) (Provider, error) {
	path, err := appdirs.DataFilePath(recentFileName)
	if err != nil {
		return nil, err
	}
	return newRecentAt(path, deps.Config.MaxRecentFiles)
}

func newRecentAt(path string, capacity int) (*recentProvider, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("recent files capacity must be positive, got %d", capacity)
	}
	p := &recentProvider{path: path, capacity: capacity}
	var doc recentDocument
	if _, err := store.LoadJSON(path, &doc); err != nil {
		return nil, err
	}
	p.files = doc.Files
	if len(p.files) > capacity {
		p.files = p.files[:capacity]
	}
	return p, nil
}

func (*recentProvider) Mode() Mode         { return ModeRecent }
func (*recentProvider) Prefixes() []string { return []string{"r", "recent"} }

func (p *recentProvider) List(_ context.Context, query string) ([]Result, error) {
	lowered := strings.ToLower(strings.TrimSpace(query))

	p.mu.Lock()
	files := make([]RecentFile, len(p.files))
	copy(files, p.files)
	p.mu.Unlock()

	out := []Result{}
	for _, file := range files {
		name := filepath.Base(file.Path)
		if lowered != "" && !strings.Contains(strings.ToLower(name), lowered) &&
			!strings.Contains(strings.ToLower(file.Path), lowered) {
			continue
		}
		if _, err := os.Stat(file.Path); err != nil {
			continue
		}
		out = append(out, Result{
			Title:    name,
			Subtitle: fmt.Sprintf("%s, opened %s", filepath.Dir(file.Path), humanizeOpenedAt(file.OpenedAt)),
			Icon:     "document-open-recent",
			Action:   Action{Kind: ActionOpenPath, Path: file.Path},
		})
	}
	return out, nil
}

// Invoke("touch", path) is called by the action executor whenever a
// file is opened, bumping it to the front of the list.
func (p *recentProvider) Invoke(id, arg string) error {
	switch id {
	case "touch":
		return p.touch(arg)
	case "clear":
		p.mu.Lock()
		defer p.mu.Unlock()
		p.files = nil
		return store.SaveJSON(p.path, recentDocument{})
	default:
		return fmt.Errorf("unknown recent-files operation: %s", id)
	}
}

func (p *recentProvider) touch(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("file path is required")
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	for i, file := range p.files {
		if file.Path == path {
			p.files = append(p.files[:i], p.files[i+1:]...)
			break
		}
	}
	p.files = append([]RecentFile{{
		Path:     path,
		OpenedAt: time.Now().UTC().Format(time.RFC3339),
	}}, p.files...)

	kept := make([]RecentFile, 0, len(p.files))
	for _, file := range p.files {
		if _, err := os.Stat(file.Path); err != nil {
			continue
		}
		kept = append(kept, file)
	}
	p.files = kept
	if len(p.files) > p.capacity {
		p.files = p.files[:p.capacity]
	}
	return store.SaveJSON(p.path, recentDocument{Files: p.files})
}

func humanizeOpenedAt(openedAt string) string {
	ts, err := time.Parse(time.RFC3339, openedAt)
	if err != nil {
		return "recently"
	}
	return humanize.Time(ts)
}
