package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/bioid/internal/domain/entities"
	"github.com/ersonp/bioid/internal/domain/ports"
)

func TestCleanJSONResponse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain JSON",
			input:    `{"resolved_name": "Aspirin"}`,
			expected: `{"resolved_name": "Aspirin"}`,
		},
		{
			name:     "JSON with json code block",
			input:    "```json\n{\"resolved_name\": \"Aspirin\"}\n```",
			expected: `{"resolved_name": "Aspirin"}`,
		},
		{
			name:     "JSON with plain code block",
			input:    "```\n{\"resolved_name\": \"Aspirin\"}\n```",
			expected: `{"resolved_name": "Aspirin"}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n{}\n  ",
			expected: `{}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONResponse(tt.input))
		})
	}
}

func TestParse_FullAnswer(t *testing.T) {
	content := "```json\n" + `{
		"corrected_name": "aspirin",
		"entity_type": "Chemical",
		"resolved_name": "Acetylsalicylic acid",
		"validation_issues": [],
		"pathways": ["Arachidonic acid metabolism"],
		"biological_function": ["COX inhibitor", "  "],
		"cellular_component": "Cytoplasm",
		"ontology_id": "CHEBI:15365",
		"ontology_term": "acetylsalicylic acid",
		"identifiers": {"PubChem CID": 2244, "ChEBI": "CHEBI:15365", "UniProt": null},
		"links": {"PubChem": "https://pubchem.ncbi.nlm.nih.gov/compound/2244"}
	}` + "\n```"

	res, err := Parse(content)
	require.NoError(t, err)

	assert.Equal(t, "aspirin", res.CorrectedName)
	assert.Equal(t, "Chemical", res.EntityType)
	assert.Equal(t, "Acetylsalicylic acid", res.ResolvedName)
	assert.Nil(t, res.ValidationIssues)
	assert.Equal(t, []string{"Arachidonic acid metabolism"}, res.Pathways)
	assert.Equal(t, []string{"COX inhibitor"}, res.BiologicalFunction)
	assert.Equal(t, []string{"Cytoplasm"}, res.CellularComponent, "single string becomes a list")
	assert.Equal(t, "CHEBI:15365", res.OntologyID)
	assert.Equal(t, map[string]string{"PubChem CID": "2244", "ChEBI": "CHEBI:15365"}, res.Identifiers)
	assert.Equal(t, "https://pubchem.ncbi.nlm.nih.gov/compound/2244", res.Links["PubChem"])
}

func TestParse_Lenient(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, res *entities.Resolution)
	}{
		{
			name:  "object wrapped in prose",
			input: `Here is the result: {"resolved_name": "TP53", "validation_issues": "ambiguous"} Hope this helps.`,
			check: func(t *testing.T, res *entities.Resolution) {
				assert.Equal(t, "TP53", res.ResolvedName)
				assert.Equal(t, []string{"ambiguous"}, res.ValidationIssues)
			},
		},
		{
			name:  "missing fields",
			input: `{"resolved_name": "Glucose"}`,
			check: func(t *testing.T, res *entities.Resolution) {
				assert.Equal(t, "Glucose", res.ResolvedName)
				assert.Empty(t, res.EntityType)
				assert.Nil(t, res.Identifiers)
			},
		},
		{
			name:  "null values",
			input: `{"resolved_name": null, "validation_issues": ["not found"], "identifiers": {}}`,
			check: func(t *testing.T, res *entities.Resolution) {
				assert.Empty(t, res.ResolvedName)
				assert.Equal(t, []string{"not found"}, res.ValidationIssues)
				assert.Nil(t, res.Identifiers)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse(tt.input)
			require.NoError(t, err)
			tt.check(t, res)
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		errText string
	}{
		{name: "empty", input: "  ", errText: "empty answer"},
		{name: "not json", input: "I cannot help with that.", errText: "invalid JSON"},
		{name: "array", input: `[{"resolved_name": "x"}]`, errText: "expected an object"},
		{name: "truncated", input: `{"resolved_name": "x", "pathways": [`, errText: "invalid JSON"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestUser(t *testing.T) {
	t.Run("defaults add nothing", func(t *testing.T) {
		p := User(ports.ResolveRequest{EntityName: " aspirin ", Options: entities.DefaultSearchOptions()})
		assert.Equal(t, "Entity: aspirin\n", p)
	})

	t.Run("all options", func(t *testing.T) {
		p := User(ports.ResolveRequest{
			EntityName: "TP53",
			Options: entities.SearchOptions{
				EntityType:     entities.TypeHintGene,
				BackgroundInfo: "human cancer cell lines",
				Ontology:       entities.OntologyGO,
			},
			DeepSearch: true,
		})
		assert.Contains(t, p, "Expected entity type: Gene")
		assert.Contains(t, p, "Background context: human cancer cell lines")
		assert.Contains(t, p, "Gene Ontology")
		assert.Contains(t, p, "Mode: deep search")
	})
}

func TestSystem(t *testing.T) {
	assert.NotContains(t, System(false), "exhaustively")
	assert.Contains(t, System(true), "synonyms")
	assert.Contains(t, System(true), "trade and brand names")
	assert.Equal(t, DeepMaxTokens, MaxOutputTokens(true))
	assert.Equal(t, MaxTokens, MaxOutputTokens(false))
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(ports.ResolveRequest{EntityName: "aspirin"}))
	assert.ErrorIs(t, Validate(ports.ResolveRequest{EntityName: "  \t"}), entities.ErrEmptyEntityName)
}
