package entities

import (
	"fmt"
	"strings"
)

// TypeHint tells the provider what kind of entity to expect.
type TypeHint string

// Supported type hints.
const (
	TypeHintAuto     TypeHint = "Auto"
	TypeHintChemical TypeHint = "Chemical"
	TypeHintProtein  TypeHint = "Protein"
	TypeHintGene     TypeHint = "Gene"
)

// TypeHints lists the supported type hints.
var TypeHints = []TypeHint{TypeHintAuto, TypeHintChemical, TypeHintProtein, TypeHintGene}

// Ontology is a controlled vocabulary used to annotate resolved entities.
type Ontology string

// Supported ontologies.
const (
	OntologyNone  Ontology = "None"
	OntologyGO    Ontology = "Gene Ontology"
	OntologyChEBI Ontology = "ChEBI"
	OntologyMeSH  Ontology = "MeSH"
)

// Ontologies lists the supported ontologies.
var Ontologies = []Ontology{OntologyNone, OntologyGO, OntologyChEBI, OntologyMeSH}

// SearchOptions are the per-session settings sent with every request.
type SearchOptions struct {
	EntityType     TypeHint `json:"entityType"`
	BackgroundInfo string   `json:"backgroundInfo"`
	Ontology       Ontology `json:"ontology"`
}

// DefaultSearchOptions returns the options of a fresh session.
func DefaultSearchOptions() SearchOptions {
	return SearchOptions{
		EntityType: TypeHintAuto,
		Ontology:   OntologyNone,
	}
}

// ParseTypeHint matches s against the supported hints, ignoring case.
func ParseTypeHint(s string) (TypeHint, error) {
	for _, h := range TypeHints {
		if strings.EqualFold(strings.TrimSpace(s), string(h)) {
			return h, nil
		}
	}
	return "", fmt.Errorf("invalid entity type %q (valid: %v)", s, TypeHints)
}

// ParseOntology matches s against the supported ontologies, ignoring case.
// "go" is accepted as a short form of Gene Ontology.
func ParseOntology(s string) (Ontology, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "go") {
		return OntologyGO, nil
	}
	for _, o := range Ontologies {
		if strings.EqualFold(s, string(o)) {
			return o, nil
		}
	}
	return "", fmt.Errorf("invalid ontology %q (valid: %v)", s, Ontologies)
}
