package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/bkwi/beacon/internal/config"
)

// RunSetup walks the user through the config file. Aborting the form
// leaves the file untouched.
func RunSetup(cfg config.Config, path string) error {
	gemini := cfg.GeminiAPIKey
	bwServer := cfg.BitwardenServer
	bwEmail := cfg.BitwardenEmail
	historySize := strconv.Itoa(cfg.ClipboardHistorySize)
	backend := NormalizeBackend(cfg.UI.Backend)
	save := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Gemini API key").
				Description("Used by the ask/ai prefix. Leave empty to disable.").
				EchoMode(huh.EchoModePassword).
				Value(&gemini),
			huh.NewInput().
				Title("Bitwarden server").
				Description("Self-hosted server URL, empty for bitwarden.com.").
				Value(&bwServer),
			huh.NewInput().
				Title("Bitwarden email").
				Value(&bwEmail),
			huh.NewInput().
				Title("Clipboard history size").
				Validate(validatePositiveInt).
				Value(&historySize),
			huh.NewSelect[string]().
				Title("UI backend").
				Options(
					huh.NewOption("auto", BackendAuto),
					huh.NewOption("bubbletea", BackendBubbleTea),
					huh.NewOption("tview", BackendTView),
				).
				Value(&backend),
			huh.NewConfirm().
				Title("Save configuration?").
				Value(&save),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		return fmt.Errorf("setup form failed: %w", err)
	}
	if !save {
		return nil
	}

	cfg.GeminiAPIKey = strings.TrimSpace(gemini)
	cfg.BitwardenServer = strings.TrimSpace(bwServer)
	cfg.BitwardenEmail = strings.TrimSpace(bwEmail)
	if size, err := strconv.Atoi(strings.TrimSpace(historySize)); err == nil && size > 0 {
		cfg.ClipboardHistorySize = size
	}
	cfg.UI.Backend = backend

	if err := config.Save(path, cfg); err != nil {
		return fmt.Errorf("could not save configuration: %w", err)
	}
	return nil
}

func validatePositiveInt(value string) error {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n <= 0 {
		return fmt.Errorf("enter a positive number")
	}
	return nil
}
