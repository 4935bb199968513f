package parsers

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ersonp/bioid/internal/domain/entities"
)

// JSONParser parses results exported as a JSON array.
type JSONParser struct{}

// Parse decodes full results and flattens them into rows.
func (p *JSONParser) Parse(r io.Reader) ([]entities.ResultRow, error) {
	var results []entities.EntityResult

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&results); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	for i := range results {
		if results[i].InputEntity == "" {
			return nil, fmt.Errorf("result %d: missing input_entity", i+1)
		}
	}

	return entities.ResultRows(results), nil
}
