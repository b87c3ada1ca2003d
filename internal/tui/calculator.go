// Package tui is the terminal front end: a bubbletea program that draws the
// keypad and forwards key presses to keypad.Keypad.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/codefionn/rechenschnell/internal/calc"
	"github.com/codefionn/rechenschnell/internal/keypad"
	"github.com/codefionn/rechenschnell/internal/logger"
	"github.com/muesli/reflow/wordwrap"
	"golang.design/x/clipboard"
)

const (
	defaultWidth    = 40
	historyLines    = 5
	maxStatusLength = 40
)

// buttonRows mirrors the on-screen keypad
var buttonRows = [][]string{
	{"7", "8", "9", "/"},
	{"4", "5", "6", "*"},
	{"1", "2", "3", "-"},
	{"0", "(", ")", "+"},
	{"%", "^", "=", "c"},
}

// Options configures the TUI
type Options struct {
	LockOnError bool
	HistorySize int
	ShowTree    bool
}

// ClipboardCopyMsg reports the result of a clipboard write
type ClipboardCopyMsg struct {
	Content string
	Success bool
	Error   string
}

// Model is the bubbletea model of the calculator
type Model struct {
	pad      *keypad.Keypad
	keys     keyMap
	help     help.Model
	showTree bool

	width   int
	pressed string
	tree    string
	status  string
}

// New creates the calculator model
func New(opts Options) *Model {
	return &Model{
		pad: keypad.New(keypad.Options{
			LockOnError: opts.LockOnError,
			HistorySize: opts.HistorySize,
		}),
		keys:     defaultKeyMap(),
		help:     help.New(),
		showTree: opts.ShowTree,
		width:    defaultWidth,
	}
}

// Run starts the program on the alternate screen and blocks until quit
func Run(opts Options) error {
	program := tea.NewProgram(New(opts), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("tui error: %w", err)
	}
	return nil
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case ClipboardCopyMsg:
		if msg.Success {
			m.status = fmt.Sprintf("Copied %q", msg.Content)
		} else {
			m.status = msg.Error
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Copy):
		return m, copyToClipboard(m.pad.Display())
	}

	k, ok := keypad.ParseKey(msg.String())
	if !ok {
		return m, nil
	}
	m.press(k)
	return m, nil
}

func (m *Model) press(k keypad.Key) {
	m.pressed = buttonLabel(k)
	input := m.pad.Input()

	switch m.pad.Press(k) {
	case keypad.OutcomeEvaluated:
		m.tree = ""
		if m.showTree {
			m.tree = treeOf(input)
		}
	case keypad.OutcomeLocked:
		m.status = "Input locked, press c to clear"
	case keypad.OutcomeCleared:
		m.tree = ""
	}
}

// buttonLabel returns the on-screen button a key corresponds to
func buttonLabel(k keypad.Key) string {
	switch k.Kind {
	case keypad.KeyEvaluate:
		return "="
	case keypad.KeyClear:
		return "c"
	case keypad.KeyChar:
		return string(k.Char)
	default:
		return ""
	}
}

func treeOf(input string) string {
	tree, err := calc.Compile(input)
	if err != nil {
		return ""
	}
	return tree.String()
}

// View implements tea.Model
func (m *Model) View() string {
	sb := acquireViewBuilder()

	sb.WriteString(titleStyle.Render("rechenschnell"))
	sb.WriteString("\n\n")
	sb.WriteString(m.renderDisplay())
	sb.WriteString("\n")
	sb.WriteString(m.renderGrid())
	sb.WriteString("\n")
	sb.WriteString(m.renderStatus())
	if history := m.renderHistory(); history != "" {
		sb.WriteString("\n")
		sb.WriteString(history)
	}
	sb.WriteString("\n")
	sb.WriteString(m.help.View(m.keys))
	sb.WriteString("\n")

	return finishView(sb)
}

func (m *Model) displayWidth() int {
	// four buttons of width 5 plus borders
	gridWidth := 4 * 7
	if m.width > 0 && m.width-4 < gridWidth {
		return max(m.width-4, 10)
	}
	return gridWidth - 2
}

func (m *Model) renderDisplay() string {
	width := m.displayWidth()

	if m.pad.Err() != nil {
		text := wordwrap.String(m.pad.Display(), width-2)
		return displayErrorStyle.Width(width).Render(text)
	}

	text := m.pad.Display()
	if text == "" {
		text = "0"
	}
	return displayStyle.Width(width).Render(text)
}

func (m *Model) renderGrid() string {
	rows := make([]string, len(buttonRows))
	for i, row := range buttonRows {
		cells := make([]string, len(row))
		for j, label := range row {
			cells[j] = m.buttonStyleFor(label).Render(label)
		}
		rows[i] = lipgloss.JoinHorizontal(lipgloss.Top, cells...)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *Model) buttonStyleFor(label string) lipgloss.Style {
	if label == m.pressed {
		return pressedButtonStyle
	}
	if _, isOp := calc.LookupOperator([]rune(label)[0]); isOp || label == "=" || label == "c" {
		return operatorButtonStyle
	}
	return buttonStyle
}

func (m *Model) renderStatus() string {
	switch {
	case m.pad.Locked():
		return lockedStyle.Render("LOCKED")
	case m.status != "":
		return statusStyle.Render(truncate(m.status, maxStatusLength))
	case m.tree != "":
		return statusStyle.Render(m.tree)
	default:
		return ""
	}
}

func (m *Model) renderHistory() string {
	entries := m.pad.History()
	if len(entries) == 0 {
		return ""
	}
	if len(entries) > historyLines {
		entries = entries[len(entries)-historyLines:]
	}

	lines := make([]string, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		result := strconv.FormatInt(e.Result, 10)
		if e.Err != nil {
			result = keypad.FormatError(e.Err)
		}
		lines = append(lines, truncate(fmt.Sprintf("%s = %s", e.Input, result), m.displayWidth()))
	}
	return historyStyle.Render(strings.Join(lines, "\n"))
}

// copyToClipboard copies content to the system clipboard
func copyToClipboard(content string) tea.Cmd {
	return func() tea.Msg {
		if content == "" {
			return ClipboardCopyMsg{Success: false, Error: "Nothing to copy"}
		}
		if err := clipboard.Init(); err != nil {
			logger.Warn("clipboard unavailable: %v", err)
			return ClipboardCopyMsg{
				Success: false,
				Error:   fmt.Sprintf("Failed to initialize clipboard: %v", err),
			}
		}

		clipboard.Write(clipboard.FmtText, []byte(content))
		return ClipboardCopyMsg{Content: truncate(content, 20), Success: true}
	}
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
