// Package prompt builds resolution prompts and normalizes provider answers.
package prompt

import (
	"fmt"
	"strings"

	"github.com/ersonp/bioid/internal/domain/entities"
	"github.com/ersonp/bioid/internal/domain/ports"
)

// Output budgets for a single answer.
const (
	MaxTokens     = 2048
	DeepMaxTokens = 4096
)

// Temperature keeps answers close to deterministic.
const Temperature = 0.1

const systemPrompt = `You are an expert biocurator. You resolve names of biological and chemical entities
(small molecules, drugs, proteins, genes) to their canonical form and annotate them.

Return ONLY a valid JSON object, no other text, with exactly these fields:
- corrected_name: the input with spelling mistakes fixed (same as input if it was correct)
- entity_type: one of "Chemical", "Protein", "Gene" or another short category
- resolved_name: the canonical name; empty string if the entity cannot be identified
- validation_issues: array of strings describing problems (ambiguity, unknown entity);
  empty array when the entity was resolved with confidence
- pathways: array of pathway names the entity takes part in
- biological_function: array of short function descriptions
- cellular_component: array of cellular locations
- ontology_id: identifier in the requested ontology, empty string if none requested or found
- ontology_term: term name in the requested ontology, empty string if none
- identifiers: object of database name to identifier, using the keys "UniProt",
  "PubChem CID", "ChEBI", "Ensembl", "HGNC" where they apply
- links: object of database name to URL

Never invent identifiers. Leave a field empty rather than guessing.`

const deepInstructions = `
This entity could not be resolved by a standard lookup. Search exhaustively:
consider synonyms, common misspellings, trade and brand names, systematic (IUPAC)
names, abbreviations, gene symbols and their aliases, and deprecated names.
Report in validation_issues only what remains unresolved after this search.`

// System returns the system prompt for a request.
func System(deep bool) string {
	if deep {
		return systemPrompt + "\n" + deepInstructions
	}
	return systemPrompt
}

// User returns the user prompt describing the entity and search options.
func User(req ports.ResolveRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Entity: %s\n", strings.TrimSpace(req.EntityName))

	if hint := req.Options.EntityType; hint != "" && hint != entities.TypeHintAuto {
		fmt.Fprintf(&b, "Expected entity type: %s\n", hint)
	}
	if bg := strings.TrimSpace(req.Options.BackgroundInfo); bg != "" {
		fmt.Fprintf(&b, "Background context: %s\n", bg)
	}
	if o := req.Options.Ontology; o != "" && o != entities.OntologyNone {
		fmt.Fprintf(&b, "Ontology: map the entity to %s and fill ontology_id and ontology_term.\n", o)
	}
	if req.DeepSearch {
		b.WriteString("Mode: deep search\n")
	}

	return b.String()
}

// MaxOutputTokens returns the answer budget for a request.
func MaxOutputTokens(deep bool) int {
	if deep {
		return DeepMaxTokens
	}
	return MaxTokens
}

// Validate rejects requests that must not reach a provider.
func Validate(req ports.ResolveRequest) error {
	if strings.TrimSpace(req.EntityName) == "" {
		return entities.ErrEmptyEntityName
	}
	return nil
}
