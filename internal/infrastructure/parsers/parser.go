// Package parsers reads entity lists and previously exported results.
package parsers

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/ersonp/bioid/internal/domain/entities"
)

// ResultParser reads exported results back into display rows.
type ResultParser interface {
	Parse(r io.Reader) ([]entities.ResultRow, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) ResultParser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) ResultParser {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	return ForFormat(ext)
}
