package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/bmbridge/internal/tui/layout"
)

// renderView renders the current screen.
func (a App) renderView() string {
	switch a.mode {
	case ModeConfirm:
		return a.renderConfirmModal()
	case ModeLoadFile:
		return a.renderLoadFileModal()
	default:
		return a.renderMain()
	}
}

// renderMain renders the editing and running screens.
func (a App) renderMain() string {
	var b strings.Builder

	b.WriteString(a.styles.Title.Render("Delete Browser Bookmarks"))
	b.WriteString("\n\n")

	b.WriteString(a.input.View())
	b.WriteString("\n")

	if a.total > 0 {
		b.WriteString("\n")
		b.WriteString(a.bar.ViewAs(float64(a.completed) / float64(a.total)))
		b.WriteString(fmt.Sprintf(" %d%%", a.Percent()))
		b.WriteString("\n")
	}

	if len(a.results) > 0 {
		b.WriteString("\n")
		b.WriteString(a.renderLog())
	}

	if a.status != "" {
		b.WriteString("\n")
		b.WriteString(a.styles.Status.Render(a.status))
		b.WriteString("\n")
	}

	b.WriteString(a.renderHelpBar())

	content := a.styles.App.Render(b.String())
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderLog renders the visible tail of the append-only result log.
func (a App) renderLog() string {
	maxVisible := layout.CalculateLogHeight(a.height, a.layoutConfig.Log)
	start, end := layout.TailWindow(maxVisible, len(a.results))

	var b strings.Builder
	for _, line := range a.results[start:end] {
		text := line.Raw
		if line.OK {
			text, _ = layout.TruncateText("[ok]   "+text, a.width-6, a.layoutConfig.Text)
			b.WriteString(a.styles.LogOK.Render(text))
		} else {
			text, _ = layout.TruncateText("[fail] "+text+": "+line.Err, a.width-6, a.layoutConfig.Text)
			b.WriteString(a.styles.LogFail.Render(text))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderConfirmModal renders the confirmation gate.
func (a App) renderConfirmModal() string {
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(modalWidth)

	var content strings.Builder
	content.WriteString(a.styles.Title.Render(fmt.Sprintf("Delete %d bookmarks?", len(a.items))))
	content.WriteString("\n\n")
	content.WriteString(a.styles.Warning.Render("This cannot be undone and will sync to the browser account."))
	content.WriteString("\n\n")
	content.WriteString(a.renderHints([]hint{
		{key: "Enter", desc: "confirm"},
		{key: "Esc", desc: "cancel"},
	}))

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(content.String()),
	)
}

// renderLoadFileModal renders the file path prompt.
func (a App) renderLoadFileModal() string {
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}
	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal.DefaultWidthPercent, a.layoutConfig.Modal)
	modalStyle := lipgloss.NewStyle().
		Border(lipgloss.ThickBorder()).
		BorderForeground(accent).
		Padding(1, 2).
		Width(modalWidth)

	var content strings.Builder
	content.WriteString(a.styles.Title.Render("Load Identifier File"))
	content.WriteString("\n\n")
	content.WriteString("Path:\n")
	content.WriteString(a.pathInput.View())
	content.WriteString("\n\n")
	content.WriteString(a.renderHints([]hint{
		{key: "Enter", desc: "load"},
		{key: "Esc", desc: "cancel"},
	}))

	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Center,
		lipgloss.Center,
		modalStyle.Render(content.String()),
	)
}

// hint is one key/description pair for the help bar.
type hint struct {
	key  string
	desc string
}

// renderHints renders hints inline, separated by dots.
func (a App) renderHints(hints []hint) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, a.styles.HintKey.Render(h.key)+" "+a.styles.HintDesc.Render(h.desc))
	}
	return strings.Join(parts, "  ·  ")
}

// renderHelpBar renders the bottom help bar for the main screen.
func (a App) renderHelpBar() string {
	if a.mode == ModeRunning {
		return a.styles.Help.Render("deleting, controls disabled until the run ends")
	}
	return a.styles.Help.Render(a.renderHints([]hint{
		{key: "ctrl+o", desc: "load"},
		{key: "ctrl+v", desc: "paste"},
		{key: "ctrl+x", desc: "clear"},
		{key: "ctrl+d", desc: "delete"},
		{key: "ctrl+c", desc: "quit"},
	}))
}
