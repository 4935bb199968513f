package handlers

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/bioid/internal/domain/entities"
	"github.com/ersonp/bioid/internal/infrastructure/exporter"
)

// seededSession runs one analysis so the store holds a session.
func seededSession(t *testing.T) (*fixture, *SessionHandler) {
	t.Helper()

	f := newFixture()
	f.resolver.Resolutions["TP53"] = &entities.Resolution{
		ResolvedName: "Cellular tumor antigen p53",
		EntityType:   "Protein",
		Identifiers:  map[string]string{entities.IdentifierUniProt: "P04637"},
	}
	f.resolver.Resolutions["xyz"] = &entities.Resolution{ValidationIssues: []string{"unknown entity"}}

	_, err := f.handler(nil).Run(t.Context(), RunOptions{
		Input:    writeList(t, "TP53\nxyz\n"),
		Provider: entities.ProviderGemini,
		Options:  entities.DefaultSearchOptions(),
	})
	require.NoError(t, err)

	return f, NewSessionHandler(f.sessions)
}

func TestSessionHandler_Show(t *testing.T) {
	_, h := seededSession(t)

	state, err := h.Show(t.Context())
	require.NoError(t, err)
	assert.Equal(t, entities.PhaseDeepSearchPending, state.AnalysisPhase)
	assert.Equal(t, 1, state.FailedCount())
}

func TestSessionHandler_Show_Empty(t *testing.T) {
	h := NewSessionHandler(newFixture().sessions)

	_, err := h.Show(t.Context())
	require.ErrorIs(t, err, ErrNoSession)
}

func TestSessionHandler_Clear(t *testing.T) {
	f, h := seededSession(t)

	require.NoError(t, h.Clear(t.Context()))
	assert.Empty(t, f.store.Slots)
}

func TestSessionHandler_Results_FromSession(t *testing.T) {
	_, h := seededSession(t)

	rows, err := h.Results(t.Context(), "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Cellular tumor antigen p53", rows[0].ResolvedName)
	assert.Equal(t, "P04637", rows[0].KeyID)
	assert.Equal(t, "unknown entity", rows[1].ValidationIssues)
}

func TestSessionHandler_Results_FromCSV(t *testing.T) {
	_, h := seededSession(t)

	var buf bytes.Buffer
	_, err := h.Export(t.Context(), &buf, exporter.FormatCSV)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "results.csv")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	rows, err := h.Results(t.Context(), path)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "TP53", rows[0].InputEntity)
	assert.Equal(t, "Protein", rows[0].EntityType)
}

func TestSessionHandler_Results_Unsupported(t *testing.T) {
	_, h := seededSession(t)

	_, err := h.Results(t.Context(), "results.xlsx")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported results file")
}

func TestSessionHandler_Export(t *testing.T) {
	_, h := seededSession(t)

	tests := []struct {
		format   string
		contains string
	}{
		{format: exporter.FormatCSV, contains: "Input Entity"},
		{format: exporter.FormatJSON, contains: `"input_entity": "TP53"`},
		{format: exporter.FormatMarkdown, contains: "# Entity Resolution Results"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			n, err := h.Export(t.Context(), &buf, tt.format)
			require.NoError(t, err)
			assert.Equal(t, 2, n)
			assert.Contains(t, buf.String(), tt.contains)
		})
	}

	_, err := h.Export(t.Context(), &bytes.Buffer{}, "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestTypeDistribution(t *testing.T) {
	rows := []entities.ResultRow{
		{EntityType: "Protein"},
		{EntityType: ""},
		{EntityType: "Chemical"},
		{EntityType: "Protein"},
		{EntityType: "Gene"},
	}

	assert.Equal(t, []TypeCount{
		{Type: "Protein", Count: 2},
		{Type: "Chemical", Count: 1},
		{Type: "Gene", Count: 1},
		{Type: UnknownType, Count: 1},
	}, TypeDistribution(rows))

	assert.Empty(t, TypeDistribution(nil))
}
