package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the driver.
type Styles struct {
	App      lipgloss.Style
	Title    lipgloss.Style
	Warning  lipgloss.Style
	LogOK    lipgloss.Style
	LogFail  lipgloss.Style
	Status   lipgloss.Style
	Help     lipgloss.Style
	HintKey  lipgloss.Style
	HintDesc lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	danger := lipgloss.AdaptiveColor{Light: "#8A4A4A", Dark: "#AF6A6A"}  // desaturated red

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(danger),

		LogOK: lipgloss.NewStyle().
			Foreground(primary),

		LogFail: lipgloss.NewStyle().
			Foreground(danger),

		Status: lipgloss.NewStyle().
			Foreground(subtle),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(1, 0),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),
	}
}
