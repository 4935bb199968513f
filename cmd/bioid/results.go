package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/ersonp/bioid/internal/application/handlers"
	"github.com/ersonp/bioid/internal/domain/entities"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	borderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#45475A"))
	barStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4"))
)

func newResultsCmd() *cobra.Command {
	var csvPath string

	cmd := &cobra.Command{
		Use:   "results",
		Short: "Show the results table and entity-type distribution",
		Long:  "Shows the results of the saved session, or of a previously exported CSV or JSON file.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				rows, err := d.SessionHandler.Results(ctx, csvPath)
				if err != nil {
					return err
				}
				if len(rows) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No results found.")
					return nil
				}
				displayResults(cmd.OutOrStdout(), rows)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&csvPath, "csv", "", "Read results from an exported file instead of the session")

	return cmd
}

func displayResults(w io.Writer, rows []entities.ResultRow) {
	fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("Results (%d)", len(rows))))
	fmt.Fprintln(w, renderResultTable(rows))
	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render("Entity Type Distribution"))
	fmt.Fprintln(w, renderDistribution(handlers.TypeDistribution(rows), ChartBarWidth))
}

func renderResultTable(rows []entities.ResultRow) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers(resultHeaders...)

	for _, r := range rows {
		t.Row(
			truncate(r.InputEntity, MaxCellWidth),
			truncate(r.ResolvedName, MaxCellWidth),
			r.EntityType,
			truncate(r.OntologyTerm, MaxCellWidth),
			r.KeyID,
			r.ProcessingTime,
			truncate(r.ValidationIssues, MaxCellWidth),
		)
	}

	return t.String()
}

// renderDistribution draws one horizontal bar per entity type, scaled so the
// most frequent type spans width cells.
func renderDistribution(dist []handlers.TypeCount, width int) string {
	if len(dist) == 0 {
		return ""
	}

	labelWidth := 0
	for _, tc := range dist {
		labelWidth = max(labelWidth, lipgloss.Width(tc.Type))
	}
	top := dist[0].Count

	lines := make([]string, 0, len(dist))
	for _, tc := range dist {
		n := max(tc.Count*width/top, 1)
		label := tc.Type + strings.Repeat(" ", labelWidth-lipgloss.Width(tc.Type))
		lines = append(lines, fmt.Sprintf("%s  %s %d", label, barStyle.Render(strings.Repeat("█", n)), tc.Count))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
