package entities

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEntityResult(t *testing.T) {
	res := &Resolution{
		CorrectedName:      "aspirin",
		EntityType:         "Chemical",
		ResolvedName:       "Acetylsalicylic acid",
		Pathways:           []string{"Arachidonic acid metabolism"},
		BiologicalFunction: []string{"COX inhibitor"},
		OntologyTerm:       "aspirin",
		OntologyID:         "CHEBI:15365",
		Identifiers:        map[string]string{IdentifierPubChemCID: "2244"},
	}

	t.Run("corrected name equal to input is dropped", func(t *testing.T) {
		r := NewEntityResult("aspirin", res, 1.25)
		assert.Equal(t, "aspirin", r.InputEntity)
		assert.Empty(t, r.CorrectedName)
		assert.Equal(t, "Acetylsalicylic acid", r.ResolvedName)
		assert.Equal(t, []string{"COX inhibitor"}, r.Function)
		assert.Equal(t, 1.25, r.ProcessingTime)
		assert.False(t, r.Failed())
	})

	t.Run("corrected name kept when it differs", func(t *testing.T) {
		r := NewEntityResult("asprin", res, 0)
		assert.Equal(t, "aspirin", r.CorrectedName)
	})
}

func TestFailedResult(t *testing.T) {
	r := FailedResult("???invalid", errors.New("connection refused"))

	assert.Equal(t, "???invalid", r.InputEntity)
	assert.Empty(t, r.ResolvedName)
	assert.Empty(t, r.EntityType)
	assert.True(t, r.Failed())
	assert.Equal(t, "Failed to process: connection refused", r.Issues())
}

func TestEntityResult_Failed(t *testing.T) {
	tests := []struct {
		name     string
		issues   []string
		expected bool
	}{
		{name: "nil issues", issues: nil, expected: false},
		{name: "empty list", issues: []string{}, expected: false},
		{name: "blank strings only", issues: []string{"", "  "}, expected: false},
		{name: "one issue", issues: []string{"ambiguous name"}, expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := EntityResult{InputEntity: "x", ValidationIssues: tt.issues}
			assert.Equal(t, tt.expected, r.Failed())
		})
	}
}

func TestEntityResult_Issues(t *testing.T) {
	r := EntityResult{ValidationIssues: []string{"ambiguous", "multiple matches"}}
	assert.Equal(t, "ambiguous; multiple matches", r.Issues())
}

func TestEntityResult_PrimaryIdentifier(t *testing.T) {
	tests := []struct {
		name        string
		identifiers map[string]string
		expected    string
	}{
		{name: "uniprot preferred", identifiers: map[string]string{"UniProt": "P04637", "PubChem CID": "2244"}, expected: "P04637"},
		{name: "pubchem fallback", identifiers: map[string]string{"PubChem CID": "2244"}, expected: "2244"},
		{name: "empty uniprot falls back", identifiers: map[string]string{"UniProt": "", "PubChem CID": "2244"}, expected: "2244"},
		{name: "none", identifiers: map[string]string{"ChEMBL": "CHEMBL25"}, expected: ""},
		{name: "nil map", identifiers: nil, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := EntityResult{Identifiers: tt.identifiers}
			assert.Equal(t, tt.expected, r.PrimaryIdentifier())
		})
	}
}

func TestCloneResults_DoesNotAlias(t *testing.T) {
	orig := []EntityResult{{
		InputEntity:      "TP53",
		ValidationIssues: []string{"issue"},
		Identifiers:      map[string]string{"UniProt": "P04637"},
	}}

	clone := CloneResults(orig)
	clone[0].ValidationIssues[0] = "changed"
	clone[0].Identifiers["UniProt"] = "changed"

	assert.Equal(t, "issue", orig[0].ValidationIssues[0])
	assert.Equal(t, "P04637", orig[0].Identifiers["UniProt"])
	assert.Nil(t, CloneResults(nil))
}

func TestFailedEntities(t *testing.T) {
	results := []EntityResult{
		{InputEntity: "a"},
		{InputEntity: "b", ValidationIssues: []string{"x"}},
		{InputEntity: "c"},
		{InputEntity: "d", ValidationIssues: []string{"y"}},
	}

	assert.Equal(t, []string{"b", "d"}, FailedEntities(results))
	assert.Nil(t, FailedEntities(nil))
}

func TestIndexOf(t *testing.T) {
	results := []EntityResult{{InputEntity: "a"}, {InputEntity: "b"}, {InputEntity: "b"}}

	assert.Equal(t, 1, IndexOf(results, "b"), "first match wins")
	assert.Equal(t, -1, IndexOf(results, "z"))
}

func TestSessionState_Validate(t *testing.T) {
	s := NewSessionState(ProviderGemini, fixedTime)
	require.NoError(t, s.Validate())

	s.AnalysisPhase = "running"
	assert.Error(t, s.Validate())

	s.AnalysisPhase = PhaseIdle
	s.APIProvider = "Acme AI"
	assert.Error(t, s.Validate())
}

func TestSessionState_Clone(t *testing.T) {
	s := NewSessionState(ProviderOpenAI, fixedTime)
	s.EntityList = []string{"a"}
	s.Results = []EntityResult{{InputEntity: "a", ValidationIssues: []string{"x"}}}

	c := s.Clone()
	c.EntityList[0] = "b"
	c.Results[0].InputEntity = "b"
	c.Logs[0].Message = "changed"

	assert.Equal(t, "a", s.EntityList[0])
	assert.Equal(t, "a", s.Results[0].InputEntity)
	assert.Equal(t, WelcomeMessage, s.Logs[0].Message)
	assert.Equal(t, 1, s.FailedCount())
}
