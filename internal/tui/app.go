package tui

import (
	"context"
	"fmt"
	"math"
	"os"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/bmbridge/internal/ingest"
	"github.com/nikbrunner/bmbridge/internal/store"
	"github.com/nikbrunner/bmbridge/internal/tui/layout"
)

// Mode identifies what the driver is currently showing.
type Mode int

const (
	ModeInput    Mode = iota // editing the identifier list
	ModeLoadFile             // file path prompt
	ModeConfirm              // confirmation gate before a run
	ModeRunning              // delete loop in flight, controls disabled
)

// ResultLine is one entry of the append-only result log. Raw carries the
// original, pre-normalization identifier line.
type ResultLine struct {
	Raw string
	OK  bool
	Err string
}

// itemDoneMsg reports that one item's store call has resolved.
type itemDoneMsg struct {
	raw string
	err error
}

// App is the bubbletea model for the manual delete driver. It talks to the
// store directly, independent of the router.
type App struct {
	store        store.Store
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	mode      Mode
	input     textarea.Model  // identifier list
	pathInput textinput.Model // file path prompt
	bar       progress.Model

	items     []ingest.Identifier // resolved items for the current run
	results   []ResultLine        // append-only result log
	completed int
	failures  int
	total     int
	status    string

	// Injectable collaborators, defaulted in NewApp
	readClipboard func() (string, error)
	readFile      func(string) ([]byte, error)

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Store        store.Store
	Keys         *KeyMap              // optional, uses default if nil
	Styles       *Styles              // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig // optional, uses default if nil
	InitialText  string               // pre-loaded identifier list

	ReadClipboard func() (string, error)       // optional, defaults to the system clipboard
	ReadFile      func(string) ([]byte, error) // optional, defaults to os.ReadFile
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	cfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		cfg = *params.LayoutConfig
	}

	readClipboard := params.ReadClipboard
	if readClipboard == nil {
		readClipboard = clipboard.ReadAll
	}

	readFile := params.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}

	input := textarea.New()
	input.Placeholder = "one bookmark id per line, # starts a comment"
	input.SetHeight(cfg.Input.InputHeight)
	input.Focus()
	if params.InitialText != "" {
		input.SetValue(params.InitialText)
	}

	pathInput := textinput.New()
	pathInput.Placeholder = "/path/to/ids.txt"
	pathInput.CharLimit = cfg.Input.PathCharLimit
	pathInput.Width = cfg.Input.StandardWidth

	return App{
		store:         params.Store,
		keys:          keys,
		styles:        styles,
		layoutConfig:  cfg,
		mode:          ModeInput,
		input:         input,
		pathInput:     pathInput,
		bar:           progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		readClipboard: readClipboard,
		readFile:      readFile,
		width:         80,
		height:        24,
	}
}

// Mode returns the current mode.
func (a App) Mode() Mode {
	return a.mode
}

// ControlsDisabled reports whether the interactive controls (load, paste,
// clear, delete, the input) are disabled. True exactly while a run is in
// flight.
func (a App) ControlsDisabled() bool {
	return a.mode == ModeRunning
}

// Percent returns the displayed progress: round(completed/total*100).
func (a App) Percent() int {
	if a.total == 0 {
		return 0
	}
	return int(math.Round(float64(a.completed) / float64(a.total) * 100))
}

// Results returns the append-only result log.
func (a App) Results() []ResultLine {
	return a.results
}

// InputValue returns the current identifier input text.
func (a App) InputValue() string {
	return a.input.Value()
}

// Status returns the current status line.
func (a App) Status() string {
	return a.status
}

// WithDimensions returns a copy with fixed dimensions, for tests.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.SetWidth(msg.Width - 6)
		a.bar.Width = msg.Width - 12
		return a, nil

	case itemDoneMsg:
		return a.handleItemDone(msg)

	case tea.KeyMsg:
		switch a.mode {
		case ModeRunning:
			// No cancellation: every control, including quit, is inert
			// until the loop ends.
			return a, nil
		case ModeConfirm:
			return a.updateConfirm(msg)
		case ModeLoadFile:
			return a.updateLoadFile(msg)
		default:
			return a.updateInput(msg)
		}
	}

	return a, nil
}

// updateInput handles keys in the main editing mode.
func (a App) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Load):
		a.mode = ModeLoadFile
		a.pathInput.Reset()
		a.pathInput.Focus()
		a.input.Blur()
		return a, textinput.Blink

	case key.Matches(msg, a.keys.Paste):
		text, err := a.readClipboard()
		if err != nil {
			a.status = "clipboard: " + err.Error()
			return a, nil
		}
		a.input.InsertString(text)
		return a, nil

	case key.Matches(msg, a.keys.Clear):
		a.input.Reset()
		a.status = ""
		return a, nil

	case key.Matches(msg, a.keys.Delete):
		items := ingest.Split(a.input.Value())
		if len(items) == 0 {
			a.status = "no identifiers to delete"
			return a, nil
		}
		a.items = items
		a.mode = ModeConfirm
		a.input.Blur()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// updateConfirm handles the confirmation gate.
func (a App) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Confirm):
		a.mode = ModeRunning
		a.results = nil
		a.completed = 0
		a.failures = 0
		a.total = len(a.items)
		a.status = ""
		return a, a.deleteNext()

	case key.Matches(msg, a.keys.Cancel):
		a.mode = ModeInput
		a.items = nil
		a.input.Focus()
		a.status = "cancelled, nothing deleted"
		return a, textarea.Blink

	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	}
	return a, nil
}

// updateLoadFile handles the file path prompt.
func (a App) updateLoadFile(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Confirm) && msg.String() == "enter":
		path := a.pathInput.Value()
		a.mode = ModeInput
		a.input.Focus()
		data, err := a.readFile(path)
		if err != nil {
			a.status = "load: " + err.Error()
			return a, textarea.Blink
		}
		a.input.SetValue(ingest.Decode(data))
		a.status = fmt.Sprintf("loaded %s", path)
		return a, textarea.Blink

	case msg.String() == "esc":
		a.mode = ModeInput
		a.input.Focus()
		return a, textarea.Blink

	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.pathInput, cmd = a.pathInput.Update(msg)
	return a, cmd
}

// deleteNext returns the command that deletes the next pending item. Items
// run strictly one at a time: the next command is only issued once the
// previous item's store call has resolved.
func (a App) deleteNext() tea.Cmd {
	item := a.items[a.completed]
	s := a.store
	return func() tea.Msg {
		err := s.RemoveByID(context.Background(), item.ID)
		return itemDoneMsg{raw: item.Raw, err: err}
	}
}

// handleItemDone records one resolved item and either chains the next one
// or ends the run.
func (a App) handleItemDone(msg itemDoneMsg) (tea.Model, tea.Cmd) {
	line := ResultLine{Raw: msg.raw, OK: msg.err == nil}
	if msg.err != nil {
		line.Err = msg.err.Error()
		a.failures++
	}
	a.results = append(a.results, line)
	a.completed++

	if a.completed < a.total {
		return a, a.deleteNext()
	}

	// Run ended: controls come back unconditionally.
	a.mode = ModeInput
	a.items = nil
	a.input.Focus()

	if a.failures == 0 {
		a.input.Reset()
		a.status = fmt.Sprintf("deleted %d bookmarks", a.total)
	} else {
		// Input stays untouched so the operator can prune succeeded
		// entries and resubmit.
		a.status = fmt.Sprintf("%d of %d deletes failed, input kept", a.failures, a.total)
	}
	return a, textarea.Blink
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
