package parsers

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/ersonp/bioid/internal/domain/entities"
)

// CSVParser parses results exported as CSV.
type CSVParser struct{}

// Parse reads CSV from the reader and returns one row per record.
// The header must name every export column; column order is not enforced.
func (p *CSVParser) Parse(r io.Reader) ([]entities.ResultRow, error) {
	reader := csv.NewReader(r)

	colIndex, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, colIndex)
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) (map[string]int, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int, len(header))
	for i, col := range header {
		colIndex[col] = i
	}

	for _, col := range entities.ResultColumns {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	return colIndex, nil
}

// readRecords reads all data rows.
func (p *CSVParser) readRecords(reader *csv.Reader, colIndex map[string]int) ([]entities.ResultRow, error) {
	rows := []entities.ResultRow{}
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		rows = append(rows, entities.ResultRow{
			InputEntity:      getColumn(record, colIndex, "Input Entity"),
			ResolvedName:     getColumn(record, colIndex, "Resolved Name"),
			EntityType:       getColumn(record, colIndex, "Entity Type"),
			OntologyTerm:     getColumn(record, colIndex, "Ontology Term"),
			KeyID:            getColumn(record, colIndex, "Key ID"),
			ProcessingTime:   getColumn(record, colIndex, "Processing Time (s)"),
			ValidationIssues: getColumn(record, colIndex, "Validation Issues"),
		})
	}

	return rows, nil
}

// getColumn safely retrieves a column value from a record.
func getColumn(record []string, colIndex map[string]int, col string) string {
	if idx, ok := colIndex[col]; ok && idx < len(record) {
		return record[idx]
	}
	return ""
}
