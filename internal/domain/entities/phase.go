package entities

// AnalysisPhase is the position of a session in the analysis workflow.
type AnalysisPhase string

// Analysis phases in workflow order.
const (
	PhaseIdle              AnalysisPhase = "idle"
	PhaseInitial           AnalysisPhase = "initial"
	PhaseDeepSearchPending AnalysisPhase = "deep_search_pending"
	PhaseDeepSearching     AnalysisPhase = "deep_searching"
	PhaseComplete          AnalysisPhase = "complete"
)

var phaseTransitions = map[AnalysisPhase][]AnalysisPhase{
	PhaseIdle:              {PhaseInitial},
	PhaseInitial:           {PhaseDeepSearchPending, PhaseComplete},
	PhaseDeepSearchPending: {PhaseDeepSearching},
	PhaseDeepSearching:     {PhaseComplete},
}

// IsValid reports whether p is a known phase.
func (p AnalysisPhase) IsValid() bool {
	switch p {
	case PhaseIdle, PhaseInitial, PhaseDeepSearchPending, PhaseDeepSearching, PhaseComplete:
		return true
	}
	return false
}

// IsProcessing reports whether a batch is running in this phase.
func (p AnalysisPhase) IsProcessing() bool {
	return p == PhaseInitial || p == PhaseDeepSearching
}

// CanTransition reports whether moving from p to next is allowed.
func (p AnalysisPhase) CanTransition(next AnalysisPhase) bool {
	for _, allowed := range phaseTransitions[p] {
		if allowed == next {
			return true
		}
	}
	return false
}
