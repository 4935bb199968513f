package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ersonp/bioid/internal/domain/entities"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or clear the saved session",
	}

	cmd.AddCommand(
		newSessionShowCmd(),
		newSessionLogsCmd(),
		newSessionClearCmd(),
	)

	return cmd
}

func newSessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show a summary of the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				state, err := d.SessionHandler.Show(ctx)
				if err != nil {
					return err
				}
				savedAt, err := d.SessionSavedAt(ctx)
				if err != nil {
					return err
				}
				displaySession(cmd.OutOrStdout(), state, savedAt)
				return nil
			})
		},
	}
}

func newSessionLogsCmd() *cobra.Command {
	var tail int

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the session log",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				state, err := d.SessionHandler.Show(ctx)
				if err != nil {
					return err
				}
				displayLogs(cmd.OutOrStdout(), state.Logs, tail)
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&tail, "tail", "n", DefaultLogTail, "Number of most recent lines to print (0 for all)")

	return cmd
}

func newSessionClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return withDeps(ctx, func(d *Deps) error {
				if err := d.SessionHandler.Clear(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Saved session cleared.")
				return nil
			})
		},
	}
}

func displaySession(w io.Writer, s *entities.SessionState, savedAt time.Time) {
	fmt.Fprintf(w, "Phase:     %s\n", s.AnalysisPhase)
	fmt.Fprintf(w, "Provider:  %s\n", s.APIProvider)
	if s.RunID != "" {
		fmt.Fprintf(w, "Run:       %s\n", s.RunID)
	}
	if !savedAt.IsZero() {
		fmt.Fprintf(w, "Saved:     %s\n", savedAt.Local().Format(time.DateTime))
	}

	source := "pasted text"
	if s.FileName != "" {
		source = s.FileName
	}
	fmt.Fprintf(w, "Entities:  %d (%s)\n", len(s.EntityList), source)
	fmt.Fprintf(w, "Options:   type=%s ontology=%s\n", s.Options.EntityType, s.Options.Ontology)
	if s.Options.BackgroundInfo != "" {
		fmt.Fprintf(w, "Context:   %s\n", s.Options.BackgroundInfo)
	}
	fmt.Fprintf(w, "Progress:  %d/%d\n", s.Progress, s.Total)
	fmt.Fprintf(w, "Results:   %d (%d with issues)\n", len(s.Results), s.FailedCount())
}

func displayLogs(w io.Writer, logs []entities.LogEntry, tail int) {
	if tail > 0 && len(logs) > tail {
		logs = logs[len(logs)-tail:]
	}
	for _, e := range logs {
		fmt.Fprintln(w, e.String())
	}
}
