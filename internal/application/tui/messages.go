package tui

import "github.com/ersonp/bioid/internal/domain/entities"

// LogMsg carries one new session log line.
type LogMsg struct {
	Entry entities.LogEntry
}

// ProgressMsg is sent after each processed entity.
type ProgressMsg struct {
	Done  int
	Total int
}

// PhaseMsg is sent when the analysis phase changes.
type PhaseMsg struct {
	Phase entities.AnalysisPhase
}

// DoneMsg is sent once the work behind the view has returned.
type DoneMsg struct {
	Err error
}
