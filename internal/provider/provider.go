package provider

import (
	"context"
	"fmt"
	"sort"

	"github.com/bkwi/beacon/internal/config"
)

// Mode identifies one search domain. Every query resolves to exactly
// one mode before any provider runs.
type Mode string

const (
	ModeApps       Mode = "apps"
	ModeWindows    Mode = "windows"
	ModeProcesses  Mode = "processes"
	ModeNetwork    Mode = "network"
	ModeBluetooth  Mode = "bluetooth"
	ModeAudio      Mode = "audio"
	ModeClipboard  Mode = "clipboard"
	ModeNotes      Mode = "notes"
	ModeTodos      Mode = "todos"
	ModeSnippets   Mode = "snippets"
	ModeSSH        Mode = "ssh"
	ModeDocker     Mode = "docker"
	ModeEmoji      Mode = "emoji"
	ModeFiles      Mode = "files"
	ModeRecent     Mode = "recent"
	ModeTimer      Mode = "timer"
	ModePassman    Mode = "passman"
	ModeAI         Mode = "ai"
	ModeWebSearch  Mode = "websearch"
	ModeCalculator Mode = "calculator"
	ModeConverter  Mode = "converter"
	ModeScripts    Mode = "scripts"
)

type ActionKind string

const (
	ActionNone             ActionKind = "none"
	ActionLaunch           ActionKind = "launch"
	ActionRunScript        ActionKind = "run-script"
	ActionFocusWindow      ActionKind = "focus-window"
	ActionKillProcess      ActionKind = "kill-process"
	ActionConnectNetwork   ActionKind = "connect-network"
	ActionConnectBluetooth ActionKind = "connect-bluetooth"
	ActionSetAudioSink     ActionKind = "set-audio-sink"
	ActionCopy             ActionKind = "copy"
	ActionOpenPath         ActionKind = "open-path"
	ActionOpenURL          ActionKind = "open-url"
	ActionSSHConnect       ActionKind = "ssh-connect"
	ActionDockerToggle     ActionKind = "docker-toggle"
	ActionInvoke           ActionKind = "invoke"
)

// Action describes what executing a result does. Kind decides which
// fields are meaningful; the rest stay zero.
type Action struct {
	Kind ActionKind

	Exec     string // launch: raw command line from the desktop entry
	Terminal bool   // launch: run inside a terminal emulator

	Path string // open-path, run-script
	URL  string // open-url
	Text string // copy

	WindowID string // focus-window
	PID      int    // kill-process

	Device string // connect-network SSID, connect-bluetooth MAC, set-audio-sink name

	Host string // ssh-connect user@host
	Port int    // ssh-connect

	ContainerID string // docker-toggle
	Running     bool   // docker-toggle: current state

	InvokeMode Mode   // invoke: owning provider
	InvokeID   string // invoke: provider-defined operation id
	InvokeArg  string // invoke: free-form argument
}

type Result struct {
	Title    string
	Subtitle string
	Icon     string
	Score    float64
	Action   Action
}

// Provider serves one mode. List must honor ctx cancellation; slow
// backends are cut off by the engine's per-provider deadline.
type Provider interface {
	Mode() Mode
	Prefixes() []string
	List(ctx context.Context, query string) ([]Result, error)
}

// Invoker is implemented by stateful providers whose results carry
// ActionInvoke (note creation, todo toggles, timer controls).
type Invoker interface {
	Invoke(id, arg string) error
}

// Synthetic is implemented by providers whose results are computed
// from the query alone (calculator, converter). The engine skips
// fuzzy rescoring for them.
type Synthetic interface {
	Synthetic() bool
}

// Deps carries everything a provider factory may need.
type Deps struct {
	Config config.Config
}

type Factory func(deps Deps) (Provider, error)

type Issue struct {
	Mode Mode
	Err  error
}

// Registry holds the built providers in declaration order. A factory
// failure is recorded as an issue and the mode simply has no provider;
// the rest of the registry is unaffected.
type Registry struct {
	providers []Provider
	byMode    map[Mode]Provider
	issues    []Issue
}

type Registration struct {
	Mode    Mode
	Factory Factory
}

func NewRegistry(deps Deps, registrations []Registration) *Registry {
	r := &Registry{byMode: map[Mode]Provider{}}
	for _, reg := range registrations {
		p, err := reg.Factory(deps)
		if err != nil {
			r.issues = append(r.issues, Issue{Mode: reg.Mode, Err: fmt.Errorf("provider %s unavailable: %w", reg.Mode, err)})
			continue
		}
		r.providers = append(r.providers, p)
		r.byMode[p.Mode()] = p
	}
	return r
}

func (r *Registry) Providers() []Provider {
	return r.providers
}

func (r *Registry) ForMode(mode Mode) (Provider, bool) {
	p, ok := r.byMode[mode]
	return p, ok
}

func (r *Registry) Issues() []Issue {
	return r.issues
}

// Invoke routes a provider-owned operation to the provider that
// declared it.
func (r *Registry) Invoke(mode Mode, id, arg string) error {
	p, ok := r.byMode[mode]
	if !ok {
		return fmt.Errorf("no provider for mode %s", mode)
	}
	invoker, ok := p.(Invoker)
	if !ok {
		return fmt.Errorf("provider %s does not support invocations", mode)
	}
	return invoker.Invoke(id, arg)
}

type PrefixBinding struct {
	Prefix string
	Mode   Mode
}

// PrefixTable flattens the registered providers' prefixes, longest
// first so "todos" wins over "todo" during resolution.
func (r *Registry) PrefixTable() []PrefixBinding {
	out := []PrefixBinding{}
	for _, p := range r.providers {
		for _, prefix := range p.Prefixes() {
			out = append(out, PrefixBinding{Prefix: prefix, Mode: p.Mode()})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i].Prefix) > len(out[j].Prefix)
	})
	return out
}
