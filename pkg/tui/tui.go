package tui

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Backend is what the TUI drives.
type Backend interface {
	GetUsername() string
	GetAddress() string
	Disconnect(force bool) error

	// Snapshot returns the open screen for rendering.
	Snapshot() Snapshot
	// Scroll handles one wheel step over a view slot.
	Scroll(viewIndex int, scrollUp, shift, ctrl bool) bool
	SetCreative(on bool)
	// SelectHotbar selects hotbar slot 0-8.
	SelectHotbar(slot int) error
	CloseContainer() error
	ReloadConfig() error
}

// maxLogLines bounds the log buffer.
const maxLogLines = 1000

// gridTop is the terminal line the slot grid starts on.
const gridTop = 1

// TUI represents the terminal user interface for interactive mode
type TUI struct {
	backend      Backend
	viewport     viewport.Model
	textInput    textinput.Model
	logs         []string
	logMutex     sync.Mutex
	ready        bool
	inputEnabled bool
	width        int
	height       int

	snapshot Snapshot
	rows     []gridRow
}

// New creates a new TUI instance
func New(backend Backend) *TUI {
	ti := textinput.New()
	ti.Placeholder = "Waiting for player to spawn..."
	ti.Blur() // start unfocused
	ti.CharLimit = 256
	ti.Width = 50

	t := &TUI{
		backend:   backend,
		textInput: ti,
		logs:      []string{},
	}
	t.refresh()
	return t
}

// Init initializes the TUI
func (t *TUI) Init() tea.Cmd {
	return textinput.Blink
}

func (t *TUI) refresh() {
	t.snapshot = t.backend.Snapshot()
	t.rows = gridRows(len(t.snapshot.Cells), t.snapshot.Sections)
}

func (t *TUI) logHeight() int {
	return max(1, t.height-3-len(t.rows))
}

// Update handles TUI updates
func (t *TUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			t.backend.Disconnect(true)
			return t, tea.Quit

		case tea.KeyEnter:
			if !t.inputEnabled {
				return t, nil
			}
			input := strings.TrimSpace(t.textInput.Value())
			t.textInput.SetValue("")
			if input == "" {
				return t, nil
			}
			t.AddLog("> " + input)
			cmd, err := t.run(input)
			if err != nil {
				t.AddLog(fmt.Sprintf("error: %v", err))
			}
			t.syncLogs()
			return t, cmd
		}

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			break
		}
		if msg.Button != tea.MouseButtonWheelUp && msg.Button != tea.MouseButtonWheelDown {
			break
		}
		if idx := hitTest(t.rows, msg.X, msg.Y-gridTop); idx >= 0 {
			t.backend.Scroll(idx, msg.Button == tea.MouseButtonWheelUp, msg.Shift, msg.Ctrl)
			t.refresh()
			return t, nil
		}

	case tea.WindowSizeMsg:
		t.width = msg.Width
		t.height = msg.Height
		if !t.ready {
			t.viewport = viewport.New(msg.Width, t.logHeight())
			t.viewport.SetContent(t.renderLogs())
			t.ready = true
		} else {
			t.viewport.Width = msg.Width
			t.viewport.Height = t.logHeight()
		}
		t.textInput.Width = msg.Width - 2

	case LogMsg:
		t.AddLog(string(msg))
		t.syncLogs()
		return t, nil

	case RefreshMsg:
		t.refresh()
		if t.ready {
			t.viewport.Height = t.logHeight()
		}
		return t, nil

	case EnableInputMsg:
		t.inputEnabled = true
		t.textInput.Placeholder = "creative on|off, select 1-9, close, reload, quit"
		t.textInput.Focus()
		return t, nil
	}

	// update viewport
	if t.ready {
		t.viewport, cmd = t.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}

	// update text input (only if enabled)
	if t.inputEnabled {
		t.textInput, cmd = t.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return t, tea.Batch(cmds...)
}

// run executes one command line. Commands that reach the client return
// a tea.Cmd so the event loop never waits on the client.
func (t *TUI) run(line string) (tea.Cmd, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "creative":
		if len(fields) != 2 || (fields[1] != "on" && fields[1] != "off") {
			return nil, errors.New("usage: creative on|off")
		}
		on := fields[1] == "on"
		return t.background(func() error {
			t.backend.SetCreative(on)
			return nil
		}, RefreshMsg{}), nil
	case "select":
		var slot int
		if len(fields) != 2 {
			return nil, errors.New("usage: select 1-9")
		}
		if _, err := fmt.Sscanf(fields[1], "%d", &slot); err != nil || slot < 1 || slot > 9 {
			return nil, errors.New("usage: select 1-9")
		}
		return t.background(func() error { return t.backend.SelectHotbar(slot - 1) }, RefreshMsg{}), nil
	case "close":
		return t.background(t.backend.CloseContainer, RefreshMsg{}), nil
	case "reload":
		return t.background(t.backend.ReloadConfig, LogMsg("config reloaded")), nil
	case "quit":
		t.backend.Disconnect(true)
		return tea.Quit, nil
	}
	return nil, fmt.Errorf("unknown command %q", fields[0])
}

// background runs fn off the event loop. It yields ok, or the error
// as a log line.
func (t *TUI) background(fn func() error, ok tea.Msg) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			return LogMsg(fmt.Sprintf("error: %v", err))
		}
		return ok
	}
}

// View renders the TUI
func (t *TUI) View() string {
	if !t.ready {
		return "Initializing..."
	}

	title := titleStyle.Render(fmt.Sprintf("%s@%s - %s %s",
		t.backend.GetUsername(), t.backend.GetAddress(), t.snapshot.Kind, t.snapshot.Title))
	if c := t.snapshot.Cursor; c.Item != "" {
		title += helpStyle.Render(fmt.Sprintf("  cursor: %s x%d", c.Item, c.Count))
	}

	var helpText string
	if t.inputEnabled {
		helpText = helpStyle.Render("Wheel: move items • Shift/Ctrl: stacks/all • Enter: run • Ctrl+C/Esc: quit")
	} else {
		helpText = helpStyle.Render("Waiting for player to spawn... • Ctrl+C/Esc: quit")
	}

	return strings.Join([]string{
		title,
		renderGrid(t.snapshot, t.rows),
		t.viewport.View(),
		inputStyle.Render("> " + t.textInput.View()),
		helpText,
	}, "\n")
}

// AddLog adds a log message to the TUI
func (t *TUI) AddLog(msg string) {
	t.logMutex.Lock()
	defer t.logMutex.Unlock()
	t.logs = append(t.logs, msg)

	// trim logs
	if len(t.logs) > maxLogLines {
		t.logs = t.logs[len(t.logs)-maxLogLines:]
	}
}

func (t *TUI) syncLogs() {
	if !t.ready {
		return
	}
	// do not scroll if not at bottom, to prevent flickering
	wasAtBottom := t.viewport.AtBottom()
	t.viewport.SetContent(t.renderLogs())
	if wasAtBottom {
		t.viewport.GotoBottom()
	}
}

func (t *TUI) renderLogs() string {
	t.logMutex.Lock()
	defer t.logMutex.Unlock()
	return strings.Join(t.logs, "\n")
}

// LogMsg is a message type for logging
type LogMsg string

// EnableInputMsg is a message type to enable input
type EnableInputMsg struct{}

// RefreshMsg asks the TUI to re-read the open screen.
type RefreshMsg struct{}

// Writer is an io.Writer that sends output to the TUI. Writes never
// block: messages are queued and delivered in order by one goroutine.
type Writer struct {
	send func(tea.Msg)

	mu      sync.Mutex
	pending []tea.Msg
	notify  chan struct{}
	done    chan struct{}
	once    sync.Once
}

// NewWriter creates a new TUI Writer
func NewWriter(program *tea.Program) *Writer {
	return newWriter(program.Send)
}

func newWriter(send func(tea.Msg)) *Writer {
	w := &Writer{
		send:   send,
		notify: make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	go w.loop()
	return w
}

func (w *Writer) post(msg tea.Msg) {
	w.mu.Lock()
	w.pending = append(w.pending, msg)
	w.mu.Unlock()

	select {
	case w.notify <- struct{}{}:
	default:
	}
}

func (w *Writer) next() (tea.Msg, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(w.pending) == 0 {
		return nil, false
	}
	msg := w.pending[0]
	w.pending[0] = nil
	w.pending = w.pending[1:]
	return msg, true
}

func (w *Writer) loop() {
	for {
		select {
		case <-w.done:
			return
		case <-w.notify:
		}
		for {
			msg, ok := w.next()
			if !ok {
				break
			}
			w.send(msg)
		}
	}
}

// Write implements io.Writer
func (w *Writer) Write(p []byte) (n int, err error) {
	msg := strings.TrimSuffix(string(p), "\n")
	if msg != "" {
		w.post(LogMsg(msg))
	}
	return len(p), nil
}

// EnableInput enables the command line
func (w *Writer) EnableInput() { w.post(EnableInputMsg{}) }

// Refresh asks the TUI to redraw the slot grid
func (w *Writer) Refresh() { w.post(RefreshMsg{}) }

// Close stops delivery. Pending messages are dropped.
func (w *Writer) Close() {
	w.once.Do(func() { close(w.done) })
}

// Start creates a new TUI program with mouse capture, returning the
// program and a writer for logging and redraws
func Start(backend Backend) (*tea.Program, *Writer) {
	t := New(backend)
	p := tea.NewProgram(t, tea.WithAltScreen(), tea.WithMouseCellMotion())
	return p, NewWriter(p)
}
