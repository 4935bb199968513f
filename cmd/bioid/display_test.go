package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/bioid/internal/application/handlers"
	"github.com/ersonp/bioid/internal/domain/entities"
	"github.com/ersonp/bioid/internal/domain/services"
)

func TestRenderDistribution(t *testing.T) {
	dist := []handlers.TypeCount{
		{Type: "Protein", Count: 4},
		{Type: "Chemical", Count: 2},
		{Type: handlers.UnknownType, Count: 1},
	}

	out := renderDistribution(dist, 8)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)

	assert.True(t, strings.HasPrefix(lines[0], "Protein   "))
	assert.Equal(t, 8, strings.Count(lines[0], "█"))
	assert.Equal(t, 4, strings.Count(lines[1], "█"))
	assert.Equal(t, 2, strings.Count(lines[2], "█"))
	assert.True(t, strings.HasSuffix(lines[2], " 1"))

	assert.Empty(t, renderDistribution(nil, 8))
}

func TestRenderDistribution_MinimumBar(t *testing.T) {
	out := renderDistribution([]handlers.TypeCount{{Type: "Gene", Count: 100}, {Type: "Protein", Count: 1}}, 10)
	lines := strings.Split(out, "\n")
	assert.Equal(t, 1, strings.Count(lines[1], "█"))
}

func TestRenderResultTable(t *testing.T) {
	out := renderResultTable(entities.ResultRows(exportSample))

	for _, h := range resultHeaders {
		assert.Contains(t, out, h)
	}
	assert.Contains(t, out, "P04637")
	assert.Contains(t, out, "unknown entity")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "αβγδεζη...", truncate("αβγδεζηθικλμ", 10))
}

func TestDisplayLogs(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	logs := []entities.LogEntry{
		{Time: now, Message: "one"},
		{Time: now, Message: "two"},
		{Time: now, Message: "three"},
	}

	var buf bytes.Buffer
	displayLogs(&buf, logs, 2)
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "] two"))

	buf.Reset()
	displayLogs(&buf, logs, 0)
	assert.Len(t, strings.Split(strings.TrimSpace(buf.String()), "\n"), 3)
}

func TestDisplaySession(t *testing.T) {
	s := entities.NewSessionState(entities.ProviderOpenAI, time.Now())
	s.EntityList = []string{"TP53", "xyz"}
	s.FileName = "genes.txt"
	s.Results = exportSample
	s.Progress, s.Total = 2, 2
	s.AnalysisPhase = entities.PhaseDeepSearchPending

	var buf bytes.Buffer
	displaySession(&buf, s, time.Time{})
	out := buf.String()

	assert.Contains(t, out, "Phase:     deep_search_pending")
	assert.Contains(t, out, "Entities:  2 (genes.txt)")
	assert.Contains(t, out, "Results:   2 (1 with issues)")
	assert.NotContains(t, out, "Saved:")
}

func TestPrintRunResult(t *testing.T) {
	s := entities.NewSessionState(entities.ProviderGemini, time.Now())
	s.Results = exportSample
	s.AnalysisPhase = entities.PhaseDeepSearchPending

	var buf bytes.Buffer
	printRunResult(&buf, &handlers.RunResult{
		Initial: &services.PhaseReport{ExportPath: "results-initial-2026-03-01-09-30-00.csv"},
		Saved:   true,
		State:   s,
	})
	out := buf.String()
	assert.Contains(t, out, "Exported: results-initial-2026-03-01-09-30-00.csv")
	assert.Contains(t, out, "Run 'bioid deep' to deep search 1 failed entities.")

	buf.Reset()
	printRunResult(&buf, &handlers.RunResult{State: s})
	assert.Contains(t, buf.String(), "Warning: the session could not be saved.")

	buf.Reset()
	printRunResult(&buf, nil)
	assert.Empty(t, buf.String())
}

func TestRunFlags_SearchOptions(t *testing.T) {
	opts, err := runFlags{entityType: "protein", ontology: "go", background: "human liver"}.searchOptions()
	require.NoError(t, err)
	assert.Equal(t, entities.SearchOptions{
		EntityType:     entities.TypeHintProtein,
		BackgroundInfo: "human liver",
		Ontology:       entities.OntologyGO,
	}, opts)

	_, err = runFlags{entityType: "lipid", ontology: "None"}.searchOptions()
	assert.Error(t, err)
}
