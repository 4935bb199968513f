package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/ersonp/bioid/internal/domain/entities"
)

// maxSnippet bounds how much of a bad answer is quoted in an error.
const maxSnippet = 200

// ErrEmptyAnswer is returned when a provider answers with no text.
var ErrEmptyAnswer = errors.New("empty answer from provider")

// Parse normalizes a provider answer into a Resolution. List fields accept an
// array or a single string; map values of any JSON type are stringified.
func Parse(content string) (*entities.Resolution, error) {
	content = CleanJSONResponse(content)
	if content == "" {
		return nil, ErrEmptyAnswer
	}

	if !gjson.Valid(content) {
		content = extractObject(content)
	}
	if !gjson.Valid(content) {
		return nil, fmt.Errorf("parsing resolution JSON: invalid JSON (response: %s)", snippet(content))
	}

	root := gjson.Parse(content)
	if !root.IsObject() {
		return nil, fmt.Errorf("parsing resolution JSON: expected an object (response: %s)", snippet(content))
	}

	return &entities.Resolution{
		CorrectedName:      strings.TrimSpace(root.Get("corrected_name").String()),
		EntityType:         strings.TrimSpace(root.Get("entity_type").String()),
		ResolvedName:       strings.TrimSpace(root.Get("resolved_name").String()),
		ValidationIssues:   stringList(root.Get("validation_issues")),
		Pathways:           stringList(root.Get("pathways")),
		BiologicalFunction: stringList(root.Get("biological_function")),
		CellularComponent:  stringList(root.Get("cellular_component")),
		OntologyID:         strings.TrimSpace(root.Get("ontology_id").String()),
		OntologyTerm:       strings.TrimSpace(root.Get("ontology_term").String()),
		Identifiers:        stringMap(root.Get("identifiers")),
		Links:              stringMap(root.Get("links")),
	}, nil
}

// CleanJSONResponse removes markdown code blocks if present.
func CleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}

	return strings.TrimSpace(content)
}

// extractObject returns the outermost {...} span, for answers that wrap the
// object in prose.
func extractObject(content string) string {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end <= start {
		return content
	}
	return content[start : end+1]
}

func stringList(r gjson.Result) []string {
	switch {
	case r.IsArray():
		var out []string
		for _, item := range r.Array() {
			if s := strings.TrimSpace(item.String()); s != "" {
				out = append(out, s)
			}
		}
		return out
	case r.Type == gjson.String:
		if s := strings.TrimSpace(r.String()); s != "" {
			return []string{s}
		}
	}
	return nil
}

func stringMap(r gjson.Result) map[string]string {
	if !r.IsObject() {
		return nil
	}

	out := make(map[string]string)
	r.ForEach(func(key, value gjson.Result) bool {
		if v := strings.TrimSpace(value.String()); v != "" {
			out[key.String()] = v
		}
		return true
	})
	if len(out) == 0 {
		return nil
	}
	return out
}

func snippet(s string) string {
	if len(s) > maxSnippet {
		return s[:maxSnippet] + "..."
	}
	return s
}
