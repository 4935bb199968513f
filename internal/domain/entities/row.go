package entities

import "strconv"

// ResultColumns are the fixed, ordered column names of a tabular export.
var ResultColumns = []string{
	"Input Entity",
	"Resolved Name",
	"Entity Type",
	"Ontology Term",
	"Key ID",
	"Processing Time (s)",
	"Validation Issues",
}

// ResultRow is the flat, display-ready form of an EntityResult.
type ResultRow struct {
	InputEntity      string
	ResolvedName     string
	EntityType       string
	OntologyTerm     string
	KeyID            string
	ProcessingTime   string
	ValidationIssues string
}

// NewResultRow flattens r into export columns.
func NewResultRow(r *EntityResult) ResultRow {
	return ResultRow{
		InputEntity:      r.InputEntity,
		ResolvedName:     r.ResolvedName,
		EntityType:       r.EntityType,
		OntologyTerm:     r.OntologyTerm,
		KeyID:            r.PrimaryIdentifier(),
		ProcessingTime:   strconv.FormatFloat(r.ProcessingTime, 'f', 2, 64),
		ValidationIssues: r.Issues(),
	}
}

// ResultRows flattens a result collection.
func ResultRows(results []EntityResult) []ResultRow {
	rows := make([]ResultRow, 0, len(results))
	for i := range results {
		rows = append(rows, NewResultRow(&results[i]))
	}
	return rows
}

// Values returns the row in ResultColumns order.
func (r ResultRow) Values() []string {
	return []string{
		r.InputEntity,
		r.ResolvedName,
		r.EntityType,
		r.OntologyTerm,
		r.KeyID,
		r.ProcessingTime,
		r.ValidationIssues,
	}
}
