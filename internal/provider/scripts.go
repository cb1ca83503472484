package provider

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/bkwi/beacon/internal/appdirs"
	"github.com/bkwi/beacon/internal/fuzzy"
)

// scriptsProvider lists executable files dropped into the scripts
// directory under the config dir. Selecting one runs it detached.
type scriptsProvider struct {
	dir string
}

func NewScripts(Deps) (Provider, error) {
	dir, err := appdirs.EnsureScriptsDir()
	if err != nil {
		return nil, err
	}
	return &scriptsProvider{dir: dir}, nil
}

func (*scriptsProvider) Mode() Mode         { return ModeScripts }
func (*scriptsProvider) Prefixes() []string { return []string{"sh", "script", "scripts"} }

func (p *scriptsProvider) List(_ context.Context, query string) ([]Result, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, nil
	}

	lowered := strings.ToLower(strings.TrimSpace(query))
	out := []Result{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.Mode().Perm()&0o111 == 0 {
			continue
		}
		name := entry.Name()
		if lowered != "" && !fuzzy.Matches(lowered, name) {
			continue
		}
		path := filepath.Join(p.dir, name)
		out = append(out, Result{
			Title:    strings.TrimSuffix(name, filepath.Ext(name)),
			Subtitle: "Run " + path,
			Icon:     "text-x-script",
			Action:   Action{Kind: ActionRunScript, Path: path},
		})
	}
	return out, nil
}
