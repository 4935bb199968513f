// Package entities contains core domain data structures.
package entities

import "strings"

// ListSeparator joins multi-valued fields for display and export.
const ListSeparator = "; "

// Identifier keys used to pick the primary external identifier.
const (
	IdentifierUniProt    = "UniProt"
	IdentifierPubChemCID = "PubChem CID"
)

// FailurePrefix starts the validation issue of a result whose request failed.
const FailurePrefix = "Failed to process: "

// Resolution is the normalized answer of a provider for one entity.
type Resolution struct {
	CorrectedName      string            `json:"corrected_name"`
	EntityType         string            `json:"entity_type"`
	ResolvedName       string            `json:"resolved_name"`
	ValidationIssues   []string          `json:"validation_issues"`
	Pathways           []string          `json:"pathways"`
	BiologicalFunction []string          `json:"biological_function"`
	CellularComponent  []string          `json:"cellular_component"`
	OntologyID         string            `json:"ontology_id"`
	OntologyTerm       string            `json:"ontology_term"`
	Identifiers        map[string]string `json:"identifiers"`
	Links              map[string]string `json:"links"`
}

// EntityResult is the record kept for one processed input name.
type EntityResult struct {
	InputEntity       string            `json:"input_entity"`
	CorrectedName     string            `json:"corrected_name,omitempty"`
	ResolvedName      string            `json:"resolved_name,omitempty"`
	EntityType        string            `json:"entity_type,omitempty"`
	ValidationIssues  []string          `json:"validation_issues,omitempty"`
	Pathways          []string          `json:"pathways,omitempty"`
	Function          []string          `json:"function,omitempty"`
	CellularComponent []string          `json:"cellular_component,omitempty"`
	OntologyID        string            `json:"ontology_id,omitempty"`
	OntologyTerm      string            `json:"ontology_term,omitempty"`
	Identifiers       map[string]string `json:"identifiers,omitempty"`
	Links             map[string]string `json:"links,omitempty"`
	ProcessingTime    float64           `json:"processing_time_s"`
}

// NewEntityResult builds the result for input from a provider resolution.
// The corrected name is only kept when it differs from the input.
func NewEntityResult(input string, res *Resolution, seconds float64) EntityResult {
	r := EntityResult{
		InputEntity:       input,
		ResolvedName:      res.ResolvedName,
		EntityType:        res.EntityType,
		ValidationIssues:  res.ValidationIssues,
		Pathways:          res.Pathways,
		Function:          res.BiologicalFunction,
		CellularComponent: res.CellularComponent,
		OntologyID:        res.OntologyID,
		OntologyTerm:      res.OntologyTerm,
		Identifiers:       res.Identifiers,
		Links:             res.Links,
		ProcessingTime:    seconds,
	}
	if res.CorrectedName != input {
		r.CorrectedName = res.CorrectedName
	}
	return r
}

// FailedResult is the synthetic result recorded when a request fails.
func FailedResult(input string, err error) EntityResult {
	return EntityResult{
		InputEntity:      input,
		ValidationIssues: []string{FailurePrefix + err.Error()},
	}
}

// Failed reports whether the result carries validation issues.
func (r *EntityResult) Failed() bool {
	for _, issue := range r.ValidationIssues {
		if strings.TrimSpace(issue) != "" {
			return true
		}
	}
	return false
}

// Issues returns the validation issues joined for display.
func (r *EntityResult) Issues() string {
	return strings.Join(r.ValidationIssues, ListSeparator)
}

// PrimaryIdentifier returns the UniProt accession, or the PubChem CID when
// there is none.
func (r *EntityResult) PrimaryIdentifier() string {
	if id := r.Identifiers[IdentifierUniProt]; id != "" {
		return id
	}
	return r.Identifiers[IdentifierPubChemCID]
}

// Clone returns a deep copy so published snapshots never alias live data.
func (r EntityResult) Clone() EntityResult {
	r.ValidationIssues = cloneStrings(r.ValidationIssues)
	r.Pathways = cloneStrings(r.Pathways)
	r.Function = cloneStrings(r.Function)
	r.CellularComponent = cloneStrings(r.CellularComponent)
	r.Identifiers = cloneMap(r.Identifiers)
	r.Links = cloneMap(r.Links)
	return r
}

// CloneResults deep-copies a result collection.
func CloneResults(results []EntityResult) []EntityResult {
	if results == nil {
		return nil
	}
	out := make([]EntityResult, len(results))
	for i := range results {
		out[i] = results[i].Clone()
	}
	return out
}

// FailedEntities returns the input names of failed results in collection order.
func FailedEntities(results []EntityResult) []string {
	var names []string
	for i := range results {
		if results[i].Failed() {
			names = append(names, results[i].InputEntity)
		}
	}
	return names
}

// IndexOf returns the position of the first result for input, or -1.
func IndexOf(results []EntityResult, input string) int {
	for i := range results {
		if results[i].InputEntity == input {
			return i
		}
	}
	return -1
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

func cloneMap(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
