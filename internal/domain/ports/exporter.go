package ports

import (
	"context"

	"github.com/ersonp/bioid/internal/domain/entities"
)

// ResultExporter writes a result collection to a named tabular file.
type ResultExporter interface {
	Export(ctx context.Context, results []entities.EntityResult, filename string) (string, error)
}
