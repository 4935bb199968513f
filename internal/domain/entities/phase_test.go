package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

func TestAnalysisPhase_CanTransition(t *testing.T) {
	tests := []struct {
		from     AnalysisPhase
		to       AnalysisPhase
		expected bool
	}{
		{PhaseIdle, PhaseInitial, true},
		{PhaseIdle, PhaseDeepSearching, false},
		{PhaseIdle, PhaseComplete, false},
		{PhaseInitial, PhaseDeepSearchPending, true},
		{PhaseInitial, PhaseComplete, true},
		{PhaseInitial, PhaseIdle, false},
		{PhaseDeepSearchPending, PhaseDeepSearching, true},
		{PhaseDeepSearchPending, PhaseComplete, false},
		{PhaseDeepSearching, PhaseComplete, true},
		{PhaseDeepSearching, PhaseDeepSearchPending, false},
		{PhaseComplete, PhaseInitial, false},
		{PhaseComplete, PhaseDeepSearching, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.from.CanTransition(tt.to))
		})
	}
}

func TestAnalysisPhase_IsProcessing(t *testing.T) {
	assert.True(t, PhaseInitial.IsProcessing())
	assert.True(t, PhaseDeepSearching.IsProcessing())
	assert.False(t, PhaseIdle.IsProcessing())
	assert.False(t, PhaseDeepSearchPending.IsProcessing())
	assert.False(t, PhaseComplete.IsProcessing())
}

func TestParseProvider(t *testing.T) {
	tests := []struct {
		input    string
		expected Provider
		wantErr  bool
	}{
		{input: "gemini", expected: ProviderGemini},
		{input: "Google Gemini", expected: ProviderGemini},
		{input: "OPENAI", expected: ProviderOpenAI},
		{input: "mistral", expected: ProviderMistral},
		{input: "Mistral AI", expected: ProviderMistral},
		{input: " together ", expected: ProviderTogether},
		{input: "acme", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := ParseProvider(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown provider")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}
}

func TestProvider_HasEnvDefault(t *testing.T) {
	for _, p := range Providers {
		assert.Equal(t, p == ProviderGemini, p.HasEnvDefault(), string(p))
		assert.NotEmpty(t, p.Slug(), string(p))
	}
}

func TestParseOptions(t *testing.T) {
	h, err := ParseTypeHint("protein")
	require.NoError(t, err)
	assert.Equal(t, TypeHintProtein, h)

	_, err = ParseTypeHint("lipid")
	assert.Error(t, err)

	o, err := ParseOntology("go")
	require.NoError(t, err)
	assert.Equal(t, OntologyGO, o)

	o, err = ParseOntology("chebi")
	require.NoError(t, err)
	assert.Equal(t, OntologyChEBI, o)

	_, err = ParseOntology("snomed")
	assert.Error(t, err)
}
