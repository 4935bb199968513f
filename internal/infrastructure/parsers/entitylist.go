package parsers

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// SplitEntityList returns one entity per non-blank line of text, trimmed.
func SplitEntityList(text string) []string {
	lines := strings.Split(text, "\n")
	names := make([]string, 0, len(lines))
	for _, line := range lines {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ReadEntityList reads r and returns its raw content with the parsed list.
func ReadEntityList(r io.Reader) (string, []string, error) {
	var b strings.Builder
	scanner := bufio.NewScanner(r)
	// Allow up to 1MB lines
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		b.WriteString(scanner.Text())
		b.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", nil, fmt.Errorf("reading entity list: %w", err)
	}

	content := b.String()
	return content, SplitEntityList(content), nil
}
