// Package tui renders the live progress view of an analysis run.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ersonp/bioid/internal/domain/entities"
)

// Layout limits.
const (
	DefaultLogLines = 12
	maxBarWidth     = 60
)

// KeyMap defines the keybindings of the progress view.
type KeyMap struct {
	// Stop asks the running phase to finish the current entity and end.
	Stop key.Binding
	// Quit closes the view once the work is done.
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Stop: key.NewBinding(
			key.WithKeys("s", "ctrl+c"),
			key.WithHelp("s", "stop"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	phaseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F38BA8"))
	logStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#45475A")).
			Padding(0, 1)
)

// Model is the bubbletea model of the progress view.
type Model struct {
	title    string
	keys     KeyMap
	bar      progress.Model
	onStop   func() bool
	logLines int

	logs     []entities.LogEntry
	done     int
	total    int
	phase    entities.AnalysisPhase
	stopping bool
	finished bool
	err      error
}

// New creates a progress view. onStop is called once when the user asks to
// stop and reports whether a phase was running.
func New(title string, onStop func() bool) Model {
	return Model{
		title:    title,
		keys:     DefaultKeyMap(),
		bar:      progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		onStop:   onStop,
		logLines: DefaultLogLines,
		phase:    entities.PhaseIdle,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-4, 10), maxBarWidth)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case LogMsg:
		m.logs = append(m.logs, msg.Entry)
		if len(m.logs) > m.logLines {
			m.logs = m.logs[len(m.logs)-m.logLines:]
		}
	case ProgressMsg:
		m.done, m.total = msg.Done, msg.Total
	case PhaseMsg:
		m.phase = msg.Phase
	case DoneMsg:
		m.finished = true
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.finished && (key.Matches(msg, m.keys.Quit) || key.Matches(msg, m.keys.Stop)):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Stop):
		if !m.stopping && m.onStop != nil {
			m.stopping = m.onStop()
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("  ")
	b.WriteString(phaseStyle.Render(string(m.phase)))
	b.WriteString("\n\n")

	b.WriteString(m.bar.ViewAs(m.Percent()))
	fmt.Fprintf(&b, "  %d/%d\n\n", m.done, m.total)

	lines := make([]string, 0, len(m.logs))
	for _, e := range m.logs {
		lines = append(lines, e.String())
	}
	if len(lines) == 0 {
		lines = append(lines, mutedStyle.Render("Waiting for the first entity..."))
	}
	b.WriteString(logStyle.Render(strings.Join(lines, "\n")))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Error: " + m.err.Error()))
	case m.stopping && !m.finished:
		b.WriteString(mutedStyle.Render("Stopping after the current entity..."))
	default:
		h := m.keys.Stop.Help()
		b.WriteString(mutedStyle.Render(h.Key + ": " + h.Desc))
	}
	b.WriteString("\n")

	return b.String()
}

// Percent returns the completed fraction of the current phase.
func (m Model) Percent() float64 {
	if m.total <= 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

// Finished reports whether the work behind the view has returned.
func (m Model) Finished() bool {
	return m.finished
}

// Err returns the error the work returned.
func (m Model) Err() error {
	return m.err
}
