package entities

import (
	"fmt"
	"time"
)

// WelcomeMessage is the first log line of a fresh session.
const WelcomeMessage = "Welcome! Load an entity list to begin."

// LogEntry is one timestamped line of the session log.
type LogEntry struct {
	Time    time.Time `json:"time"`
	Message string    `json:"message"`
}

// String renders the entry as "[HH:MM:SS] message" in local time.
func (e LogEntry) String() string {
	return fmt.Sprintf("[%s] %s", e.Time.Local().Format("15:04:05"), e.Message)
}

// SessionState is everything a user can see about a session.
type SessionState struct {
	RunID           string         `json:"runId,omitempty"`
	EntityList      []string       `json:"entityList"`
	Options         SearchOptions  `json:"options"`
	Results         []EntityResult `json:"results"`
	Logs            []LogEntry     `json:"logs"`
	AnalysisPhase   AnalysisPhase  `json:"analysisPhase"`
	APIProvider     Provider       `json:"apiProvider"`
	TextAreaContent string         `json:"textAreaContent"`
	FileName        string         `json:"fileName"`
	Progress        int            `json:"progress"`
	Total           int            `json:"totalForProgress"`
}

// NewSessionState returns the state of a fresh session.
func NewSessionState(provider Provider, now time.Time) *SessionState {
	return &SessionState{
		EntityList:    []string{},
		Options:       DefaultSearchOptions(),
		Results:       []EntityResult{},
		Logs:          []LogEntry{{Time: now.UTC(), Message: WelcomeMessage}},
		AnalysisPhase: PhaseIdle,
		APIProvider:   provider,
	}
}

// Clone deep-copies the state.
func (s *SessionState) Clone() *SessionState {
	c := *s
	c.EntityList = append([]string(nil), s.EntityList...)
	c.Results = CloneResults(s.Results)
	c.Logs = append([]LogEntry(nil), s.Logs...)
	return &c
}

// Validate checks the fields a snapshot must carry to be usable.
func (s *SessionState) Validate() error {
	if !s.AnalysisPhase.IsValid() {
		return fmt.Errorf("invalid analysis phase %q", s.AnalysisPhase)
	}
	if !s.APIProvider.IsValid() {
		return fmt.Errorf("invalid provider %q", s.APIProvider)
	}
	return nil
}

// FailedCount returns how many results carry validation issues.
func (s *SessionState) FailedCount() int {
	n := 0
	for i := range s.Results {
		if s.Results[i].Failed() {
			n++
		}
	}
	return n
}
