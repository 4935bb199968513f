package mocks

import (
	"context"

	"github.com/ersonp/bioid/internal/domain/entities"
)

// ExportCall records one Export invocation.
type ExportCall struct {
	Filename string
	Results  []entities.EntityResult
}

// Exporter is a mock implementation of ports.ResultExporter.
type Exporter struct {
	Err   error
	Calls []ExportCall
}

// Export records the call and returns the configured error.
func (m *Exporter) Export(_ context.Context, results []entities.EntityResult, filename string) (string, error) {
	m.Calls = append(m.Calls, ExportCall{Filename: filename, Results: entities.CloneResults(results)})
	if m.Err != nil {
		return "", m.Err
	}
	return filename, nil
}
