package console

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"rzdio/internal/bridge"
	"rzdio/internal/channel"
	"rzdio/pkg/logging"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

const (
	maxHistory     = 200
	maxLogLines    = 3
	defaultWidth   = 80
	statusDuration = 3 * time.Second
)

// For mocking in tests
var writeClipboard = clipboard.WriteAll

// HistoryEntry is one call sent from the console and its rendered result
type HistoryEntry struct {
	Input  string
	Kind   bridge.ResultKind
	Output string
	At     time.Time
}

type logEntryMsg logging.LogEntry

type logStreamClosedMsg struct{}

type clearStatusMsg struct{}

// Model is the Bubble Tea model of the console
type Model struct {
	ctx          context.Context
	registration *channel.Registration
	keys         KeyMap
	input        textinput.Model
	logChannel   <-chan logging.LogEntry

	History []HistoryEntry
	Logs    []string
	Status  string

	width  int
	height int
}

// NewModel creates a console model for reg. logChannel may be nil.
func NewModel(ctx context.Context, reg *channel.Registration, logChannel <-chan logging.LogEntry) Model {
	ti := textinput.New()
	ti.Placeholder = "getPlatformVersion"
	ti.Prompt = "> "
	ti.Focus()

	return Model{
		ctx:          ctx,
		registration: reg,
		keys:         DefaultKeyMap(),
		input:        ti,
		logChannel:   logChannel,
		width:        defaultWidth,
	}
}

// NewProgram creates the Bubble Tea program for the console
func NewProgram(ctx context.Context, reg *channel.Registration, logChannel <-chan logging.LogEntry) *tea.Program {
	return tea.NewProgram(NewModel(ctx, reg, logChannel), tea.WithAltScreen(), tea.WithContext(ctx))
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, listenForLogEntries(m.logChannel))
}

func listenForLogEntries(ch <-chan logging.LogEntry) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		entry, ok := <-ch
		if !ok {
			return logStreamClosedMsg{}
		}
		return logEntryMsg(entry)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - len(m.input.Prompt) - 1
		return m, nil

	case logEntryMsg:
		m.Logs = append(m.Logs, logging.LogEntry(msg).String())
		if len(m.Logs) > maxLogLines {
			m.Logs = m.Logs[len(m.Logs)-maxLogLines:]
		}
		return m, listenForLogEntries(m.logChannel)

	case logStreamClosedMsg:
		return m, nil

	case clearStatusMsg:
		m.Status = ""
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Copy):
			return m.copyLast()
		case key.Matches(msg, m.keys.Clear):
			m.History = nil
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	line := m.input.Value()
	method, args, err := parseInput(line)
	if err == errEmptyInput {
		return m, nil
	}
	if err != nil {
		return m.setStatus(err.Error())
	}

	res := m.registration.Invoke(m.ctx, bridge.NewCall(method, args))
	m.History = append(m.History, HistoryEntry{
		Input:  strings.TrimSpace(line),
		Kind:   res.Kind(),
		Output: renderResult(res),
		At:     time.Now(),
	})
	if len(m.History) > maxHistory {
		m.History = m.History[len(m.History)-maxHistory:]
	}
	m.input.Reset()
	return m, nil
}

func (m Model) copyLast() (tea.Model, tea.Cmd) {
	if len(m.History) == 0 {
		return m.setStatus("Nothing to copy")
	}
	if err := writeClipboard(m.History[len(m.History)-1].Output); err != nil {
		logging.Error("Console", err, "Failed to copy result")
		return m.setStatus("Copy failed")
	}
	return m.setStatus("Result copied to clipboard")
}

func (m Model) setStatus(s string) (tea.Model, tea.Cmd) {
	m.Status = s
	return m, tea.Tick(statusDuration, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

// renderResult formats a result for display and copying
func renderResult(res bridge.Result) string {
	switch res.Kind() {
	case bridge.ResultSuccess:
		if s, ok := res.Value().(string); ok {
			return s
		}
		data, err := json.Marshal(res.Value())
		if err != nil {
			return fmt.Sprintf("%v", res.Value())
		}
		return string(data)
	case bridge.ResultNotImplemented:
		return "not implemented"
	case bridge.ResultFailure:
		f := res.Failure()
		return fmt.Sprintf("error [%s]: %s", f.Code, f.Message)
	default:
		return "no result"
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("rzdio console · " + m.registration.Name()))
	b.WriteString("\n")
	b.WriteString(capabilityStyle.Render(truncate("capabilities: "+strings.Join(m.registration.Dispatcher().Names(), ", "), m.width)))
	b.WriteString("\n\n")

	for _, e := range m.visibleHistory() {
		b.WriteString(inputLineStyle.Render(truncate("> "+e.Input, m.width)))
		b.WriteString("\n")
		b.WriteString(resultStyle(e.Kind).Render(truncate("  "+e.Output, m.width)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if m.Status != "" {
		b.WriteString(statusStyle.Render(m.Status))
		b.WriteString("\n")
	}

	for _, line := range m.Logs {
		b.WriteString(logStyle.Render(truncate(line, m.width)))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render(helpLine(m.keys)))
	return b.String()
}

// visibleHistory returns the most recent entries that fit the window
func (m Model) visibleHistory() []HistoryEntry {
	if m.height <= 0 {
		return m.History
	}
	// header, capabilities, blank, blank, input, status, logs, help
	reserved := 7 + maxLogLines
	fit := (m.height - reserved) / 2
	if fit < 1 {
		fit = 1
	}
	if len(m.History) <= fit {
		return m.History
	}
	return m.History[len(m.History)-fit:]
}

func resultStyle(kind bridge.ResultKind) lipgloss.Style {
	switch kind {
	case bridge.ResultSuccess:
		return successStyle
	case bridge.ResultNotImplemented:
		return notImplementedStyle
	default:
		return failureStyle
	}
}

func helpLine(k KeyMap) string {
	parts := make([]string, 0, len(k.ShortHelp()))
	for _, b := range k.ShortHelp() {
		parts = append(parts, b.Help().Key+" "+b.Help().Desc)
	}
	return strings.Join(parts, " • ")
}

// truncate shortens s to the display width, accounting for wide runes
func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
