// Package theme maps an optional theme.toml in the config dir onto the
// styles the launcher renders with. A missing or broken file means the
// defaults; theming never blocks startup.
package theme

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	toml "github.com/pelletier/go-toml/v2"
)

// Theme holds the user-tunable colors as lipgloss color strings, either
// ANSI indexes ("205") or hex values ("#7aa2f7").
type Theme struct {
	Accent    string `toml:"accent"`
	Text      string `toml:"text"`
	Dim       string `toml:"dim"`
	Selection string `toml:"selection"`
	Error     string `toml:"error"`
}

func Default() Theme {
	return Theme{
		Accent:    "205",
		Text:      "252",
		Dim:       "243",
		Selection: "236",
		Error:     "203",
	}
}

// Load reads path and fills gaps with defaults. Any read or parse
// failure falls back to the default theme.
func Load(path string) Theme {
	t := Default()
	payload, err := os.ReadFile(path)
	if err != nil {
		return t
	}
	var parsed Theme
	if err := toml.Unmarshal(payload, &parsed); err != nil {
		return t
	}
	t.merge(parsed)
	return t
}

func (t *Theme) merge(in Theme) {
	if in.Accent != "" {
		t.Accent = in.Accent
	}
	if in.Text != "" {
		t.Text = in.Text
	}
	if in.Dim != "" {
		t.Dim = in.Dim
	}
	if in.Selection != "" {
		t.Selection = in.Selection
	}
	if in.Error != "" {
		t.Error = in.Error
	}
}

// Styles is the rendered form of a theme, ready for the UI to use.
type Styles struct {
	Prompt           lipgloss.Style
	Title            lipgloss.Style
	Subtitle         lipgloss.Style
	SelectedTitle    lipgloss.Style
	SelectedSubtitle lipgloss.Style
	Status           lipgloss.Style
	Error            lipgloss.Style
}

func (t Theme) Styles() Styles {
	accent := lipgloss.Color(t.Accent)
	text := lipgloss.Color(t.Text)
	dim := lipgloss.Color(t.Dim)
	selection := lipgloss.Color(t.Selection)

	return Styles{
		Prompt:           lipgloss.NewStyle().Foreground(accent).Bold(true),
		Title:            lipgloss.NewStyle().Foreground(text),
		Subtitle:         lipgloss.NewStyle().Foreground(dim),
		SelectedTitle:    lipgloss.NewStyle().Foreground(accent).Background(selection).Bold(true),
		SelectedSubtitle: lipgloss.NewStyle().Foreground(dim).Background(selection),
		Status:           lipgloss.NewStyle().Foreground(dim).Italic(true),
		Error:            lipgloss.NewStyle().Foreground(lipgloss.Color(t.Error)),
	}
}
