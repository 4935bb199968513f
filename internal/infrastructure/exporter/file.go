package exporter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ersonp/bioid/internal/domain/entities"
)

// FileExporter writes CSV exports into a directory.
type FileExporter struct {
	dir string
}

// NewFileExporter creates an exporter writing into dir.
func NewFileExporter(dir string) *FileExporter {
	return &FileExporter{dir: dir}
}

// Export writes results as CSV to filename inside the export directory and
// returns the written path.
func (e *FileExporter) Export(ctx context.Context, results []entities.EntityResult, filename string) (path string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	path = filepath.Join(e.dir, filepath.Base(filename))
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return "", fmt.Errorf("creating file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing file: %w", cerr)
		}
	}()

	if err := WriteCSV(f, results); err != nil {
		return "", fmt.Errorf("writing CSV: %w", err)
	}

	return path, nil
}
