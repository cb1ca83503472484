package provider

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bkwi/beacon/internal/appdirs"
	"github.com/bkwi/beacon/internal/store"
)

const timersFileName = "timers.json"

// timerProvider keeps countdown timers and one stopwatch. Each
// mutation is persisted, so a timer started from one short-lived
// launcher invocation is still ticking in the next one; remaining
// time is recomputed from the stored deadline at listing time.
type timerProvider struct {
	mu     sync.Mutex
	path   string
	timers []countdown
	sw     stopwatchState

	now func() time.Time
}

type countdown struct {
	ID      string        `json:"id"`
	Label   string        `json:"label"`
	EndsAt  time.Time     `json:"ends_at"`
	Paused  bool          `json:"paused,omitempty"`
	Remains time.Duration `json:"remains_ns,omitempty"`
}

type stopwatchState struct {
	Running   bool          `json:"running,omitempty"`
	StartedAt time.Time     `json:"started_at,omitempty"`
	Elapsed   time.Duration `json:"elapsed_ns,omitempty"`
}

type timerDocument struct {
	Timers    []countdown    `json:"timers"`
	Stopwatch stopwatchState `json:"stopwatch"`
}

func NewTimer(Deps) (Provider, error) {
	path, err := appdirs.DataFilePath(timersFileName)
	if err != nil {
		return nil, err
	}
	return newTimerAt(path)
}

func newTimerAt(path string) (*timerProvider, error) {
	p := &timerProvider{path: path, now: time.Now}
	var doc timerDocument
	if _, err := store.LoadJSON(path, &doc); err != nil {
		return nil, err
	}
	p.timers = doc.Timers
	p.sw = doc.Stopwatch
	return p, nil
}

func (*timerProvider) Mode() Mode         { return ModeTimer }
func (*timerProvider) Prefixes() []string { return []string{"timer", "stopwatch"} }

func (p *timerProvider) List(_ context.Context, query string) ([]Result, error) {
	trimmed := strings.TrimSpace(query)

	if trimmed != "" {
		if d, ok := parseTimerDuration(trimmed); ok {
			return []Result{{
				Title:    fmt.Sprintf("Start %s timer", formatDuration(d)),
				Subtitle: "Countdown timer",
				Icon:     "alarm-clock",
				Score:    1,
				Action:   Action{Kind: ActionInvoke, InvokeMode: ModeTimer, InvokeID: "start", InvokeArg: trimmed},
			}}, nil
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	out := []Result{}
	for _, timer := range p.timers {
		remaining := timer.Remains
		state := "paused"
		if !timer.Paused {
			remaining = timer.EndsAt.Sub(now)
			state = "running"
			if remaining <= 0 {
				remaining = 0
				state = "done"
			}
		}
		out = append(out, Result{
			Title:    fmt.Sprintf("Timer %s: %s left", timer.Label, formatDuration(remaining)),
			Subtitle: fmt.Sprintf("%s, select to cancel", state),
			Icon:     "alarm-clock",
			Score:    1,
			Action:   Action{Kind: ActionInvoke, InvokeMode: ModeTimer, InvokeID: "cancel", InvokeArg: timer.ID},
		})
	}

	if p.sw.Running {
		elapsed := p.sw.Elapsed + now.Sub(p.sw.StartedAt)
		out = append(out, Result{
			Title:    fmt.Sprintf("Stopwatch: %s", formatDuration(elapsed)),
			Subtitle: "Select to pause",
			Icon:     "chronometer",
			Score:    1,
			Action:   Action{Kind: ActionInvoke, InvokeMode: ModeTimer, InvokeID: "sw-pause"},
		})
	} else if p.sw.Elapsed > 0 {
		out = append(out, Result{
			Title:    fmt.Sprintf("Stopwatch paused at %s", formatDuration(p.sw.Elapsed)),
			Subtitle: "Select to resume",
			Icon:     "chronometer",
			Score:    1,
			Action:   Action{Kind: ActionInvoke, InvokeMode: ModeTimer, InvokeID: "sw-start"},
		})
		out = append(out, Result{
			Title:    "Reset stopwatch",
			Subtitle: "Back to zero",
			Icon:     "chronometer",
			Score:    1,
			Action:   Action{Kind: ActionInvoke, InvokeMode: ModeTimer, InvokeID: "sw-reset"},
		})
	} else {
		out = append(out, Result{
			Title:    "Start stopwatch",
			Subtitle: "Counts up until paused",
			Icon:     "chronometer",
			Score:    1,
			Action:   Action{Kind: ActionInvoke, InvokeMode: ModeTimer, InvokeID: "sw-start"},
		})
	}
	return out, nil
}

func (p *timerProvider) Invoke(id, arg string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	switch id {
	case "start":
		d, ok := parseTimerDuration(arg)
		if !ok {
			return fmt.Errorf("could not parse timer duration %q", arg)
		}
		p.timers = append(p.timers, countdown{
			ID:     uuid.NewString(),
			Label:  formatDuration(d),
			EndsAt: p.now().Add(d),
		})
	case "cancel":
		idx := -1
		for i, timer := range p.timers {
			if timer.ID == arg {
				idx = i
				break
			}
		}
		if idx < 0 {
			return fmt.Errorf("no timer with id %s", arg)
		}
		p.timers = append(p.timers[:idx], p.timers[idx+1:]...)
	case "sw-start":
		if !p.sw.Running {
			p.sw.Running = true
			p.sw.StartedAt = p.now()
		}
	case "sw-pause":
		if p.sw.Running {
			p.sw.Elapsed += p.now().Sub(p.sw.StartedAt)
			p.sw.Running = false
		}
	case "sw-reset":
		p.sw = stopwatchState{}
	default:
		return fmt.Errorf("unknown timer operation: %s", id)
	}
	return store.SaveJSON(p.path, timerDocument{Timers: p.timers, Stopwatch: p.sw})
}

// parseTimerDuration accepts Go duration syntax plus a bare number,
// which reads as minutes.
func parseTimerDuration(text string) (time.Duration, bool) {
	text = strings.TrimSpace(strings.ToLower(text))
	if text == "" {
		return 0, false
	}
	if n, err := strconv.Atoi(text); err == nil && n > 0 {
		return time.Duration(n) * time.Minute, true
	}
	d, err := time.ParseDuration(text)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}

func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	switch {
	case h > 0:
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	case m > 0:
		return fmt.Sprintf("%dm%02ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
