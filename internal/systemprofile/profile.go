// Package systemprofile records which external tools the providers can
// call on this machine. The scan result is cached in the config dir so
// startup does not pay for a PATH scan on every launch.
package systemprofile

import (
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/bkwi/beacon/internal/appdirs"
	"github.com/bkwi/beacon/internal/store"
)

const (
	profileFileName = "system_profile.json"
	schemaVersion   = 1
	refreshAfter    = 24 * time.Hour
)

// providerTools maps each external command to the launcher feature
// that needs it.
var providerTools = map[string]string{
	"wmctrl":              "window switching",
	"nmcli":               "wifi control",
	"bluetoothctl":        "bluetooth control",
	"pactl":               "audio control",
	"docker":              "container control",
	"bw":                  "password manager",
	"ssh":                 "ssh connections",
	"xdg-open":            "opening files and URLs",
	"x-terminal-emulator": "terminal programs",
}

type Profile struct {
	Version    int      `json:"version"`
	CapturedAt string   `json:"captured_at"`
	OS         string   `json:"os"`
	Arch       string   `json:"arch"`
	Desktop    string   `json:"desktop,omitempty"`
	Session    string   `json:"session,omitempty"`
	Tools      []string `json:"tools,omitempty"`
}

// Ensure returns the cached profile, re-probing when the cache is
// missing or older than a day.
func Ensure() (Profile, error) {
	path, err := appdirs.DataFilePath(profileFileName)
	if err != nil {
		return Profile{}, err
	}

	var cached Profile
	ok, err := store.LoadJSON(path, &cached)
	if err == nil && ok && !cached.stale() {
		return cached, nil
	}

	captured := Capture()
	if err := store.SaveJSON(path, captured); err != nil {
		return captured, err
	}
	return captured, nil
}

func Capture() Profile {
	return Profile{
		Version:    schemaVersion,
		CapturedAt: time.Now().UTC().Format(time.RFC3339),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		Desktop:    strings.TrimSpace(os.Getenv("XDG_CURRENT_DESKTOP")),
		Session:    detectSession(),
		Tools:      detectTools(),
	}
}

// MissingTools lists the scanned commands that were not found, with the
// feature each one unlocks.
func (p Profile) MissingTools() []string {
	have := map[string]struct{}{}
	for _, tool := range p.Tools {
		have[tool] = struct{}{}
	}
	missing := []string{}
	for tool, feature := range providerTools {
		if _, ok := have[tool]; !ok {
			missing = append(missing, tool+" ("+feature+")")
		}
	}
	sort.Strings(missing)
	return missing
}

func (p Profile) stale() bool {
	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(p.CapturedAt))
	if err != nil {
		return true
	}
	if p.Version != schemaVersion {
		return true
	}
	age := time.Since(ts)
	return age < 0 || age > refreshAfter
}

func detectSession() string {
	if strings.TrimSpace(os.Getenv("WAYLAND_DISPLAY")) != "" {
		return "wayland"
	}
	if strings.TrimSpace(os.Getenv("DISPLAY")) != "" {
		return "x11"
	}
	return ""
}

func detectTools() []string {
	found := []string{}
	for tool := range providerTools {
		if _, err := exec.LookPath(tool); err == nil {
			found = append(found, tool)
		}
	}
	sort.Strings(found)
	return found
}
