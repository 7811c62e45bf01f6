package layout

// CalculateModalWidth computes responsive modal width based on percentage of terminal width.
// Uses widthPercent of terminal width, clamped between MinWidth and MaxWidth.
func CalculateModalWidth(terminalWidth, widthPercent int, cfg ModalConfig) int {
	width := terminalWidth * widthPercent / 100

	// Apply min/max constraints
	if width < cfg.MinWidth {
		width = cfg.MinWidth
	}
	if width > cfg.MaxWidth {
		width = cfg.MaxWidth
	}

	// Don't exceed terminal width
	if width > terminalWidth-4 {
		width = terminalWidth - 4
	}
	if width < 1 {
		return 1
	}

	return width
}

// CalculateLogHeight computes how many result log lines fit the terminal.
func CalculateLogHeight(terminalHeight int, cfg LogConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinVisible {
		return cfg.MinVisible
	}
	return height
}

// TailWindow computes the start and end indices for the visible tail of an
// append-only log. Returns (start, end) where lines[start:end] should be
// displayed; the most recent line is always visible.
func TailWindow(maxVisible, totalLines int) (start, end int) {
	if totalLines <= maxVisible {
		return 0, totalLines
	}
	return totalLines - maxVisible, totalLines
}
