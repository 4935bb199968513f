package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows m while work runs in the background, with l attached to the
// program. It returns when both the view has closed and work has returned,
// so work can finish saving state after the user quits.
func Run(ctx context.Context, m Model, l *Listener, work func() error, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(m, opts...)
	l.attach(p)
	defer l.attach(nil)

	workDone := make(chan error, 1)
	go func() {
		err := work()
		workDone <- err
		p.Send(DoneMsg{Err: err})
	}()

	_, runErr := p.Run()
	workErr := <-workDone

	if runErr != nil && !errors.Is(runErr, tea.ErrProgramKilled) && !errors.Is(runErr, tea.ErrInterrupted) {
		return fmt.Errorf("running progress view: %w", runErr)
	}
	return workErr
}
