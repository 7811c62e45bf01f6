package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Modal ModalConfig
	Log   LogConfig
	Input InputConfig
	Text  TextConfig
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// DefaultWidthPercent is the modal width as percentage of terminal width.
	DefaultWidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int
}

// LogConfig holds result log configuration.
type LogConfig struct {
	// HeightReduction is subtracted from terminal height for the log window.
	// Accounts for: title (2) + input (8) + progress (2) + help bar (2)
	HeightReduction int

	// MinVisible is the minimum number of log lines shown.
	MinVisible int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	// PathCharLimit caps the file path input.
	PathCharLimit int

	// InputHeight is the identifier textarea height in lines.
	InputHeight int

	// StandardWidth is the file path input display width.
	StandardWidth int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Modal: ModalConfig{
			DefaultWidthPercent: 40,
			MinWidth:            50,
			MaxWidth:            80,
		},
		Log: LogConfig{
			HeightReduction: 14,
			MinVisible:      3,
		},
		Input: InputConfig{
			PathCharLimit: 500,
			InputHeight:   6,
			StandardWidth: 40,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
