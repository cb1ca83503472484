package provider

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bkwi/beacon/internal/fuzzy"
)

// DesktopApp is one launchable entry parsed from a .desktop file.
type DesktopApp struct {
	Name     string
	Comment  string
	Exec     string
	Icon     string
	Terminal bool
	Keywords []string
}

const appsCacheTTL = 30 * time.Second

// appsProvider indexes freedesktop .desktop files from the usual data
// dirs plus flatpak and snap exports. The index is cached briefly so
// keystroke-by-keystroke queries do not rescan the filesystem.
type appsProvider struct {
	dirs []string

	mu       sync.Mutex
	apps     []DesktopApp
	loadedAt time.Time
}

func NewApps(Deps) (Provider, error) {
	return &appsProvider{dirs: applicationDirs()}, nil
}

func (*appsProvider) Mode() Mode         { return ModeApps }
func (*appsProvider) Prefixes() []string { return nil }

func (p *appsProvider) List(_ context.Context, query string) ([]Result, error) {
	apps := p.index()
	lowered := strings.ToLower(strings.TrimSpace(query))

	out := []Result{}
	for _, app := range apps {
		nameHit := lowered == "" || fuzzy.Matches(lowered, app.Name)
		if !nameHit && !matchesKeyword(app.Keywords, lowered) {
			continue
		}
		subtitle := app.Comment
		if subtitle == "" {
			subtitle = "Application"
		}
		// Keyword-only hits score themselves; the keyword is invisible
		// to the engine's title rescoring.
		score := 0.0
		if !nameHit {
			score = 0.3
		}
		out = append(out, Result{
			Title:    app.Name,
			Subtitle: subtitle,
			Icon:     app.Icon,
			Score:    score,
			Action:   Action{Kind: ActionLaunch, Exec: app.Exec, Terminal: app.Terminal},
		})
	}
	return out, nil
}

func (p *appsProvider) index() []DesktopApp {
	p.mu.Lock()
	defer p.mu.Unlock()

	if time.Since(p.loadedAt) < appsCacheTTL && p.apps != nil {
		return p.apps
	}

	seen := map[string]struct{}{}
	apps := []DesktopApp{}
	for _, dir := range p.dirs {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".desktop") {
				continue
			}
			app, ok := parseDesktopFile(filepath.Join(dir, entry.Name()))
			if !ok {
				continue
			}
			key := strings.ToLower(app.Name)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			apps = append(apps, app)
		}
	}

	p.apps = apps
	p.loadedAt = time.Now()
	return p.apps
}

func applicationDirs() []string {
	dirs := []string{}
	if dataHome := os.Getenv("XDG_DATA_HOME"); dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, "applications"))
	} else if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "applications"))
	}

	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, dir := range strings.Split(dataDirs, ":") {
		if dir == "" {
			continue
		}
		dirs = append(dirs, filepath.Join(dir, "applications"))
	}

	// Flatpak and snap keep their own export trees.
	dirs = append(dirs, "/var/lib/flatpak/exports/share/applications")
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".local", "share", "flatpak", "exports", "share", "applications"))
	}
	dirs = append(dirs, "/var/lib/snapd/desktop/applications")
	return dirs
}

// parseDesktopFile reads the [Desktop Entry] group of a .desktop file.
// Entries that are hidden, not applications, or missing Name/Exec are
// skipped.
func parseDesktopFile(path string) (DesktopApp, bool) {
	file, err := os.Open(path)
	if err != nil {
		return DesktopApp{}, false
	}
	defer file.Close()

	app := DesktopApp{}
	entryType := ""
	inEntry := false

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "[") {
			inEntry = line == "[Desktop Entry]"
			continue
		}
		if !inEntry {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "Type":
			entryType = value
		case "Name":
			if app.Name == "" {
				app.Name = value
			}
		case "Comment":
			if app.Comment == "" {
				app.Comment = value
			}
		case "Exec":
			app.Exec = stripFieldCodes(value)
		case "Icon":
			app.Icon = value
		case "Terminal":
			app.Terminal = strings.EqualFold(value, "true")
		case "NoDisplay", "Hidden":
			if strings.EqualFold(value, "true") {
				return DesktopApp{}, false
			}
		case "Keywords":
			for _, keyword := range strings.Split(value, ";") {
				keyword = strings.TrimSpace(keyword)
				if keyword != "" {
					app.Keywords = append(app.Keywords, keyword)
				}
			}
		}
	}

	if entryType != "" && entryType != "Application" {
		return DesktopApp{}, false
	}
	if app.Name == "" || app.Exec == "" {
		return DesktopApp{}, false
	}
	return app, true
}

// stripFieldCodes drops the %f/%u style placeholders a desktop entry
// uses for file arguments; the launcher always starts apps bare.
func stripFieldCodes(exec string) string {
	fields := strings.Fields(exec)
	kept := make([]string, 0, len(fields))
	for _, field := range fields {
		if len(field) == 2 && field[0] == '%' {
			continue
		}
		kept = append(kept, field)
	}
	return strings.Join(kept, " ")
}

func matchesKeyword(keywords []string, lowered string) bool {
	for _, keyword := range keywords {
		if strings.Contains(strings.ToLower(keyword), lowered) {
			return true
		}
	}
	return false
}
