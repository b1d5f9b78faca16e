// Package style defines lipgloss styles for the TUI.
package style

import "github.com/charmbracelet/lipgloss"

// UI styles using lipgloss.
// These are package-level for convenience; lipgloss styles are value types
// and safe for concurrent use.
//
// Variable names intentionally omit "Style" suffix since they're accessed
// via the style package (e.g., style.Title reads better than style.TitleStyle).
var (
	// Title is used for the screen title and the dial indicator.
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205"))

	// Subtitle is used for secondary text such as the status line.
	Subtitle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	// Help is used for keyboard shortcut hints.
	Help = lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	// Key is used for highlighting keyboard keys.
	Key = lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	// Arc is the filled part of a dial, from zero to the current value.
	Arc = lipgloss.NewStyle().
		Foreground(lipgloss.Color("63"))

	// Readout is the numeric value under a dial.
	Readout = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("63"))

	// Label is used for knob labels.
	Label = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("255"))

	// Active is the label of the knob being dragged.
	Active = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("214"))

	// Muted is used for the unfilled dial track.
	Muted = lipgloss.NewStyle().
		Foreground(lipgloss.Color("245"))
)
