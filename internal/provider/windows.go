package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/bkwi/beacon/internal/fuzzy"
)

// commandRunner abstracts the external tools the system providers
// shell out to, so parsing can be tested without the tools installed.
type commandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// openWindow is one entry from the window manager's client list.
type openWindow struct {
	ID      string
	Desktop string
	Host    string
	Title   string
}

// windowsProvider lists clients through hyprctl on Hyprland and
// through wmctrl everywhere else.
type windowsProvider struct {
	run  commandRunner
	hypr bool
}

func NewWindows(Deps) (Provider, error) {
	return &windowsProvider{run: execRunner, hypr: onHyprland()}, nil
}

func onHyprland() bool {
	return os.Getenv("HYPRLAND_INSTANCE_SIGNATURE") != ""
}

func (*windowsProvider) Mode() Mode         { return ModeWindows }
func (*windowsProvider) Prefixes() []string { return []string{"w", "window", "windows"} }

func (p *windowsProvider) List(ctx context.Context, query string) ([]Result, error) {
	windows, err := p.clients(ctx)
	if err != nil {
		return nil, err
	}

	lowered := strings.ToLower(strings.TrimSpace(query))
	out := []Result{}
	for _, window := range windows {
		if lowered != "" && !fuzzy.Matches(lowered, window.Title) {
			continue
		}
		out = append(out, Result{
			Title:    window.Title,
			Subtitle: "Focus window",
			Icon:     "preferences-system-windows",
			Action:   Action{Kind: ActionFocusWindow, WindowID: window.ID},
		})
	}
	return out, nil
}

func (p *windowsProvider) clients(ctx context.Context) ([]openWindow, error) {
	if p.hypr {
		output, err := p.run(ctx, "hyprctl", "clients", "-j")
		if err != nil {
			return nil, fmt.Errorf("could not list windows: %w", err)
		}
		return parseHyprlandClients(output)
	}
	output, err := p.run(ctx, "wmctrl", "-l")
	if err != nil {
		return nil, fmt.Errorf("could not list windows: %w", err)
	}
	return parseWindowList(string(output)), nil
}

// parseHyprlandClients reads hyprctl clients -j. Unmapped clients and
// special workspaces (negative ids) are skipped.
func parseHyprlandClients(output []byte) ([]openWindow, error) {
	var clients []struct {
		Address   string `json:"address"`
		Title     string `json:"title"`
		Class     string `json:"class"`
		Mapped    bool   `json:"mapped"`
		Workspace struct {
			ID int `json:"id"`
		} `json:"workspace"`
	}
	if err := json.Unmarshal(output, &clients); err != nil {
		return nil, fmt.Errorf("could not parse window list: %w", err)
	}

	windows := []openWindow{}
	for _, c := range clients {
		if !c.Mapped || c.Workspace.ID < 0 || c.Title == "" {
			continue
		}
		windows = append(windows, openWindow{
			ID:      c.Address,
			Desktop: fmt.Sprintf("%d", c.Workspace.ID),
			Host:    c.Class,
			Title:   c.Title,
		})
	}
	return windows, nil
}

// parseWindowList reads wmctrl -l output: id, desktop, host, then the
// window title with embedded spaces.
func parseWindowList(output string) []openWindow {
	windows := []openWindow{}
	for _, line := range strings.Split(output, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		// Desktop -1 marks docks and panels.
		if fields[1] == "-1" {
			continue
		}
		windows = append(windows, openWindow{
			ID:      fields[0],
			Desktop: fields[1],
			Host:    fields[2],
			Title:   strings.Join(fields[3:], " "),
		})
	}
	return windows
}
