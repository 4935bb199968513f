package main

// Display limits for CLI commands.
const (
	DefaultLogTail = 20
	ChartBarWidth  = 40
	MaxCellWidth   = 40
)

// resultHeaders are the column titles of the results table.
var resultHeaders = []string{"Input", "Resolved", "Type", "Ontology Term", "Key ID", "Time (s)", "Issues"}
