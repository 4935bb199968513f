package handlers

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/ersonp/bioid/internal/domain/entities"
	"github.com/ersonp/bioid/internal/domain/services"
	"github.com/ersonp/bioid/internal/infrastructure/exporter"
	"github.com/ersonp/bioid/internal/infrastructure/parsers"
)

// UnknownType labels results without an entity type in the distribution.
const UnknownType = "Unknown"

// SessionHandler reads the saved session for reporting commands.
type SessionHandler struct {
	sessions *services.SessionService
}

// NewSessionHandler creates a new session handler.
func NewSessionHandler(sessions *services.SessionService) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// Show returns the saved session.
func (h *SessionHandler) Show(ctx context.Context) (*entities.SessionState, error) {
	state, err := h.sessions.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading session: %w", err)
	}
	if state == nil {
		return nil, ErrNoSession
	}
	return state, nil
}

// Clear deletes the saved session.
func (h *SessionHandler) Clear(ctx context.Context) error {
	return h.sessions.Clear(ctx)
}

// Results returns display rows from an exported file, or from the saved
// session when path is empty.
func (h *SessionHandler) Results(ctx context.Context, path string) ([]entities.ResultRow, error) {
	if path == "" {
		state, err := h.Show(ctx)
		if err != nil {
			return nil, err
		}
		return entities.ResultRows(state.Results), nil
	}

	parser := parsers.ForFile(path)
	if parser == nil {
		return nil, fmt.Errorf("unsupported results file %q (expected .csv or .json)", filepath.Base(path))
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	rows, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return rows, nil
}

// Export writes the saved session results to w in format and returns how
// many results were written.
func (h *SessionHandler) Export(ctx context.Context, w io.Writer, format string) (int, error) {
	if !exporter.IsValidFormat(format) {
		return 0, fmt.Errorf("invalid format %q, valid formats: %v", format, exporter.Formats)
	}

	state, err := h.Show(ctx)
	if err != nil {
		return 0, err
	}
	if len(state.Results) == 0 {
		return 0, fmt.Errorf("no results found to export")
	}

	if err := exporter.Write(w, format, state.Results); err != nil {
		return 0, fmt.Errorf("formatting output: %w", err)
	}
	return len(state.Results), nil
}

// TypeCount is one bar of the entity-type distribution.
type TypeCount struct {
	Type  string
	Count int
}

// TypeDistribution counts rows per entity type, most frequent first.
func TypeDistribution(rows []entities.ResultRow) []TypeCount {
	counts := make(map[string]int)
	for _, r := range rows {
		t := r.EntityType
		if t == "" {
			t = UnknownType
		}
		counts[t]++
	}

	dist := make([]TypeCount, 0, len(counts))
	for t, n := range counts {
		dist = append(dist, TypeCount{Type: t, Count: n})
	}
	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Count != dist[j].Count {
			return dist[i].Count > dist[j].Count
		}
		return dist[i].Type < dist[j].Type
	})
	return dist
}
