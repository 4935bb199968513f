// Package exporter writes entity results as CSV, JSON or markdown.
package exporter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ersonp/bioid/internal/domain/entities"
)

// Supported export formats.
const (
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Formats lists the supported export formats.
var Formats = []string{FormatCSV, FormatJSON, FormatMarkdown}

// IsValidFormat reports whether format is supported.
func IsValidFormat(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// Write formats results to w.
func Write(w io.Writer, format string, results []entities.EntityResult) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, results)
	case FormatJSON:
		return WriteJSON(w, results)
	case FormatMarkdown:
		return WriteMarkdown(w, results)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteCSV writes the fixed export columns, one row per result.
func WriteCSV(w io.Writer, results []entities.EntityResult) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(entities.ResultColumns); err != nil {
		return err
	}

	for _, row := range entities.ResultRows(results) {
		if err := writer.Write(row.Values()); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteJSON writes the full results as an indented JSON array.
func WriteJSON(w io.Writer, results []entities.EntityResult) error {
	if results == nil {
		results = []entities.EntityResult{}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(results)
}

// WriteMarkdown writes a summary table of the results.
func WriteMarkdown(w io.Writer, results []entities.EntityResult) error {
	failed := len(entities.FailedEntities(results))
	if _, err := fmt.Fprintf(w, "# Entity Resolution Results\n\nTotal: %d entities, %d with issues\n\n",
		len(results), failed); err != nil {
		return err
	}

	header := "| " + strings.Join(entities.ResultColumns, " | ") + " |\n"
	if _, err := fmt.Fprint(w, header); err != nil {
		return err
	}
	if _, err := fmt.Fprint(w, strings.Repeat("|---", len(entities.ResultColumns))+"|\n"); err != nil {
		return err
	}

	for _, row := range entities.ResultRows(results) {
		values := row.Values()
		for i := range values {
			values[i] = escapeMarkdown(values[i])
		}
		if _, err := fmt.Fprintf(w, "| %s |\n", strings.Join(values, " | ")); err != nil {
			return err
		}
	}

	return nil
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	s = strings.ReplaceAll(s, "\n", " ")
	return s
}
