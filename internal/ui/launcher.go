package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bkwi/beacon/internal/engine"
	"github.com/bkwi/beacon/internal/provider"
	"github.com/bkwi/beacon/internal/theme"
)

const visibleRows = 12

// Launch runs the launcher with the configured backend, falling back
// to the next candidate when a backend cannot start. It returns the
// selected result, or ok=false when the user dismissed the launcher.
func Launch(backend string, eng *engine.Engine, styles theme.Styles, issues []provider.Issue) (provider.Result, bool, error) {
	var firstErr error
	for _, candidate := range backendCandidates(backend) {
		var (
			result provider.Result
			ok     bool
			err    error
		)
		switch candidate {
		case BackendBubbleTea:
			result, ok, err = launchBubbleTea(eng, styles, issues)
		case BackendTView:
			result, ok, err = launchTView(eng, issues)
		default:
			continue
		}
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return result, ok, nil
	}
	return provider.Result{}, false, firstErr
}

// roundMsg carries one finished query round back into the model.
type roundMsg engine.Response

type launcherModel struct {
	input   textinput.Model
	engine  *engine.Engine
	styles  theme.Styles
	status  string
	results []provider.Result
	cursor  int
	chosen  *provider.Result
}

func newLauncherModel(eng *engine.Engine, styles theme.Styles, issues []provider.Issue) launcherModel {
	input := textinput.New()
	input.Placeholder = "Search apps, or try: calc, wifi, todo, gh ..."
	input.Prompt = "> "
	input.Focus()

	status := ""
	if len(issues) > 0 {
		status = fmt.Sprintf("%d provider(s) unavailable", len(issues))
	}
	return launcherModel{input: input, engine: eng, styles: styles, status: status}
}

func (m launcherModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.queryCmd(""))
}

// queryCmd claims the round's sequence number immediately, not inside
// the returned command. Commands may start in any order; claiming at
// dispatch time keeps sequence order aligned with keystroke order.
func (m launcherModel) queryCmd(query string) tea.Cmd {
	eng := m.engine
	seq := eng.NextSeq()
	return func() tea.Msg {
		return roundMsg(eng.Query(context.Background(), seq, query))
	}
}

func (m launcherModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case roundMsg:
		// A newer round exists for the text currently typed; this one
		// describes an input the user has already abandoned.
		if msg.Seq != m.engine.Latest() {
			return m, nil
		}
		m.results = msg.Results
		if m.cursor >= len(m.results) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			if m.cursor < len(m.results) {
				selected := m.results[m.cursor]
				m.chosen = &selected
			}
			return m, tea.Quit
		case "up", "ctrl+p":
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case "down", "ctrl+n":
			if m.cursor < len(m.results)-1 {
				m.cursor++
			}
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		return m, tea.Batch(cmd, m.queryCmd(m.input.Value()))
	}
	return m, cmd
}

func (m launcherModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Prompt.Render("beacon"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	start, end := window(m.cursor, len(m.results), visibleRows)
	for i := start; i < end; i++ {
		result := m.results[i]
		title := result.Title
		subtitle := result.Subtitle
		if i == m.cursor {
			b.WriteString(m.styles.SelectedTitle.Render("› " + title))
			if subtitle != "" {
				b.WriteString("\n")
				b.WriteString(m.styles.SelectedSubtitle.Render("    " + subtitle))
			}
		} else {
			b.WriteString(m.styles.Title.Render("  " + title))
			if subtitle != "" {
				b.WriteString("\n")
				b.WriteString(m.styles.Subtitle.Render("    " + subtitle))
			}
		}
		b.WriteString("\n")
	}

	if len(m.results) == 0 && strings.TrimSpace(m.input.Value()) != "" {
		b.WriteString(m.styles.Subtitle.Render("  no results"))
		b.WriteString("\n")
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Status.Render(m.status))
	}
	return b.String()
}

// window clamps the list to the rows around the cursor.
func window(cursor, total, size int) (start, end int) {
	if total <= size {
		return 0, total
	}
	start = cursor - size/2
	if start < 0 {
		start = 0
	}
	end = start + size
	if end > total {
		end = total
		start = end - size
	}
	return start, end
}

func launchBubbleTea(eng *engine.Engine, styles theme.Styles, issues []provider.Issue) (provider.Result, bool, error) {
	model := newLauncherModel(eng, styles, issues)
	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return provider.Result{}, false, err
	}
	out, ok := final.(launcherModel)
	if !ok || out.chosen == nil {
		return provider.Result{}, false, nil
	}
	return *out.chosen, true, nil
}
