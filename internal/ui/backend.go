// Package ui renders the launcher and executes selected actions. Two
// interchangeable backends are supported; the config picks one and the
// rest serve as fallbacks.
package ui

import "strings"

const (
	BackendAuto      = "auto"
	BackendBubbleTea = "bubbletea"
	BackendTView     = "tview"
)

func NormalizeBackend(backend string) string {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendBubbleTea:
		return BackendBubbleTea
	case BackendTView:
		return BackendTView
	default:
		return BackendAuto
	}
}

func backendCandidates(backend string) []string {
	switch NormalizeBackend(backend) {
	case BackendBubbleTea:
		return []string{BackendBubbleTea, BackendTView}
	case BackendTView:
		return []string{BackendTView, BackendBubbleTea}
	default:
		return []string{BackendBubbleTea, BackendTView}
	}
}
