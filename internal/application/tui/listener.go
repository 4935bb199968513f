package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ersonp/bioid/internal/domain/entities"
	"github.com/ersonp/bioid/internal/domain/services"
)

var _ services.AnalysisListener = (*Listener)(nil)

// Listener forwards controller notifications to a running program.
// Notifications sent before a program is attached are dropped.
type Listener struct {
	mu      sync.Mutex
	program *tea.Program
}

// NewListener creates a detached listener.
func NewListener() *Listener {
	return &Listener{}
}

// OnLog implements services.AnalysisListener.
func (l *Listener) OnLog(entry entities.LogEntry) {
	l.send(LogMsg{Entry: entry})
}

// OnProgress implements services.AnalysisListener.
func (l *Listener) OnProgress(done, total int) {
	l.send(ProgressMsg{Done: done, Total: total})
}

// OnPhase implements services.AnalysisListener.
func (l *Listener) OnPhase(phase entities.AnalysisPhase) {
	l.send(PhaseMsg{Phase: phase})
}

func (l *Listener) attach(p *tea.Program) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.program = p
}

func (l *Listener) send(msg tea.Msg) {
	l.mu.Lock()
	p := l.program
	l.mu.Unlock()
	if p != nil {
		p.Send(msg)
	}
}
