package provider

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
)

const (
	filesMaxDepth   = 4
	filesMaxResults = 50
	filesMinQuery   = 2
)

// filesProvider walks the usual user directories looking for file
// names that contain the query. The walk is bounded in depth and
// result count and bails out as soon as ctx is cancelled.
type filesProvider struct {
	roots []string
}

func NewFiles(Deps) (Provider, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	roots := []string{}
	for _, name := range []string{"Documents", "Downloads", "Pictures", "Videos", "Music", "Desktop"} {
		roots = append(roots, filepath.Join(home, name))
	}
	return &filesProvider{roots: roots}, nil
}

func (*filesProvider) Mode() Mode         { return ModeFiles }
func (*filesProvider) Prefixes() []string { return []string{"f", "find", "file", "files"} }

func (p *filesProvider) List(ctx context.Context, query string) ([]Result, error) {
	lowered := strings.ToLower(strings.TrimSpace(query))
	if len(lowered) < filesMinQuery {
		return nil, nil
	}

	out := []Result{}
	for _, root := range p.roots {
		if len(out) >= filesMaxResults {
			break
		}
		_ = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			if ctx.Err() != nil {
				return filepath.SkipAll
			}
			if entry.IsDir() {
				if strings.HasPrefix(entry.Name(), ".") && path != root {
					return filepath.SkipDir
				}
				if depth(root, path) >= filesMaxDepth {
					return filepath.SkipDir
				}
				return nil
			}
			if len(out) >= filesMaxResults {
				return filepath.SkipAll
			}
			if !strings.Contains(strings.ToLower(entry.Name()), lowered) {
				return nil
			}
			subtitle := filepath.Dir(path)
			if info, err := entry.Info(); err == nil {
				subtitle = subtitle + ", " + humanize.Bytes(uint64(info.Size()))
			}
			out = append(out, Result{
				Title:    entry.Name(),
				Subtitle: subtitle,
				Icon:     "text-x-generic",
				Action:   Action{Kind: ActionOpenPath, Path: path},
			})
			return nil
		})
	}
	return out, nil
}

func depth(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
