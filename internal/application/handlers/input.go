// Package handlers contains application use case handlers.
package handlers

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/ersonp/bioid/internal/domain/services"
	"github.com/ersonp/bioid/internal/infrastructure/parsers"
)

// StdinPath is the input argument that reads the entity list from stdin.
const StdinPath = "-"

// LoadInput reads an entity list into the controller. A file replaces the
// list and clears the pasted text; stdin is kept as pasted text.
// It returns the number of entities now loaded.
func LoadInput(c *services.AnalysisController, path string, stdin io.Reader) (int, error) {
	if path == StdinPath {
		if stdin == nil {
			stdin = os.Stdin
		}
		content, names, err := parsers.ReadEntityList(stdin)
		if err != nil {
			return 0, err
		}
		if err := c.SetText(content); err != nil {
			return 0, err
		}
		return len(names), nil
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return 0, fmt.Errorf("resolving path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return 0, fmt.Errorf("accessing file: %w", err)
	}
	if info.IsDir() {
		return 0, fmt.Errorf("path is a directory, not a file: %s", absPath)
	}

	file, err := os.Open(absPath)
	if err != nil {
		return 0, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	content, names, err := parsers.ReadEntityList(file)
	if err != nil {
		return 0, err
	}
	if err := c.LoadFile(filepath.Base(absPath), content); err != nil {
		return 0, err
	}
	return len(names), nil
}
