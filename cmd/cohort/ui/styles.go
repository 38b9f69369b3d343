// Package ui implements the interactive dashboard: load a roster, adjust the
// group count, and browse both allocations without leaving the terminal.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorPrimary = lipgloss.Color("#5A56E0")
	colorAccent  = lipgloss.Color("#8BC34A")
	colorMuted   = lipgloss.Color("240")
	colorError   = lipgloss.Color("#e53935")
	colorWarning = lipgloss.Color("#FFC107")
)

// Styles holds the styled components of the dashboard.
type Styles struct {
	Header    lipgloss.Style
	Footer    lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Muted     lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Prompt    lipgloss.Style
}

// NewStyles creates the default dashboard styles.
func NewStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			Padding(0, 1),
		Footer: lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1),
		Tab: lipgloss.NewStyle().
			Foreground(colorMuted).
			Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent).
			Underline(true).
			Padding(0, 1),
		Muted:   lipgloss.NewStyle().Foreground(colorMuted),
		Error:   lipgloss.NewStyle().Foreground(colorError),
		Warning: lipgloss.NewStyle().Foreground(colorWarning),
		Prompt:  lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
	}
}
