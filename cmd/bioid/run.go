package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ersonp/bioid/internal/application/handlers"
	"github.com/ersonp/bioid/internal/application/tui"
	"github.com/ersonp/bioid/internal/domain/entities"
	"github.com/ersonp/bioid/internal/domain/services"
)

type runFlags struct {
	provider   string
	apiKey     string
	entityType string
	ontology   string
	background string
	deep       bool
	useTUI     bool
}

func newRunCmd() *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run <file|->",
		Short: "Resolve a list of entity names",
		Long: `Resolves every entity name in the file, one per line, with the selected provider.
Use "-" to read the list from stdin. Results are exported as CSV and the
session is saved, so failed entities can be retried with 'bioid deep'.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.provider, "provider", "p", "", "Provider name or slug (default: llm.provider from config)")
	cmd.Flags().StringVarP(&flags.apiKey, "api-key", "k", "", "API key for the provider (default: from config or environment)")
	cmd.Flags().StringVarP(&flags.entityType, "type", "t", string(entities.TypeHintAuto), "Entity type hint (Auto, Chemical, Protein, Gene)")
	cmd.Flags().StringVarP(&flags.ontology, "ontology", "o", string(entities.OntologyNone), "Ontology (None, GO, ChEBI, MeSH)")
	cmd.Flags().StringVarP(&flags.background, "background", "b", "", "Background information sent with every request")
	cmd.Flags().BoolVar(&flags.deep, "deep", false, "Continue into deep search when entities fail")
	cmd.Flags().BoolVar(&flags.useTUI, "tui", false, "Show a live progress view")

	return cmd
}

func runRun(cmd *cobra.Command, input string, flags runFlags) error {
	ctx := cmd.Context()

	opts, err := flags.searchOptions()
	if err != nil {
		return err
	}

	return withDeps(ctx, func(d *Deps) error {
		provider, err := d.DefaultProvider()
		if flags.provider != "" {
			provider, err = entities.ParseProvider(flags.provider)
		}
		if err != nil {
			return err
		}

		runOpts := handlers.RunOptions{
			Input:    input,
			Stdin:    cmd.InOrStdin(),
			Provider: provider,
			APIKey:   flags.apiKey,
			Options:  opts,
			AutoDeep: flags.deep,
		}

		title := fmt.Sprintf("BioID - %s", provider)
		result, err := runAnalysis(ctx, d, provider, title, flags.useTUI, func(h *handlers.AnalysisHandler) (*handlers.RunResult, error) {
			return h.Run(ctx, runOpts)
		})
		if services.IsRefusal(err) {
			return fmt.Errorf("analysis not started: %w", err)
		}
		if err != nil {
			return err
		}

		printRunResult(cmd.OutOrStdout(), result)
		return nil
	})
}

func (f runFlags) searchOptions() (entities.SearchOptions, error) {
	hint, err := entities.ParseTypeHint(f.entityType)
	if err != nil {
		return entities.SearchOptions{}, err
	}
	ontology, err := entities.ParseOntology(f.ontology)
	if err != nil {
		return entities.SearchOptions{}, err
	}
	return entities.SearchOptions{
		EntityType:     hint,
		BackgroundInfo: f.background,
		Ontology:       ontology,
	}, nil
}

func newDeepCmd() *cobra.Command {
	var (
		apiKey string
		useTUI bool
	)

	cmd := &cobra.Command{
		Use:   "deep",
		Short: "Deep search the failed entities of the saved session",
		Long:  "Re-runs every failed entity of the saved session with an exhaustive search and exports the final CSV.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDeep(cmd, apiKey, useTUI)
		},
	}

	cmd.Flags().StringVarP(&apiKey, "api-key", "k", "", "API key for the session provider (default: from config or environment)")
	cmd.Flags().BoolVar(&useTUI, "tui", false, "Show a live progress view")

	return cmd
}

func runDeep(cmd *cobra.Command, apiKey string, useTUI bool) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		state, err := d.SessionHandler.Show(ctx)
		if err != nil {
			return err
		}

		title := fmt.Sprintf("BioID deep search - %s", state.APIProvider)
		result, err := runAnalysis(ctx, d, state.APIProvider, title, useTUI, func(h *handlers.AnalysisHandler) (*handlers.RunResult, error) {
			return h.Deep(ctx, apiKey)
		})
		if services.IsRefusal(err) {
			return fmt.Errorf("analysis not started: %w", err)
		}
		if err != nil {
			return err
		}

		printRunResult(cmd.OutOrStdout(), result)
		return nil
	})
}

// runAnalysis runs work either behind the progress view or with the session
// log printed as it grows. Cancelling ctx stops the running phase.
func runAnalysis(
	ctx context.Context,
	d *Deps,
	provider entities.Provider,
	title string,
	useTUI bool,
	work func(*handlers.AnalysisHandler) (*handlers.RunResult, error),
) (*handlers.RunResult, error) {
	if !useTUI {
		h := d.NewAnalysisHandler(provider, &printListener{w: os.Stdout})
		stop := context.AfterFunc(ctx, func() { h.Stop() })
		defer stop()
		return work(h)
	}

	listener := tui.NewListener()
	h := d.NewAnalysisHandler(provider, listener)

	var result *handlers.RunResult
	err := tui.Run(ctx, tui.New(title, h.Stop), listener, func() error {
		var err error
		result, err = work(h)
		return err
	})
	return result, err
}

// printListener writes each session log line as it is appended.
type printListener struct {
	w io.Writer
}

var _ services.AnalysisListener = (*printListener)(nil)

func (l *printListener) OnLog(entry entities.LogEntry) {
	fmt.Fprintln(l.w, entry.String())
}

func (l *printListener) OnProgress(int, int) {}

func (l *printListener) OnPhase(entities.AnalysisPhase) {}

func printRunResult(w io.Writer, result *handlers.RunResult) {
	if result == nil || result.State == nil {
		return
	}

	fmt.Fprintln(w)
	for _, r := range []*services.PhaseReport{result.Initial, result.Deep} {
		if r == nil {
			continue
		}
		if r.ExportPath != "" {
			fmt.Fprintf(w, "Exported: %s\n", r.ExportPath)
		}
	}

	state := result.State
	fmt.Fprintf(w, "Phase: %s\n", state.AnalysisPhase)
	fmt.Fprintf(w, "Results: %d (%d with issues)\n", len(state.Results), state.FailedCount())

	switch {
	case !result.Saved:
		fmt.Fprintln(w, "Warning: the session could not be saved.")
	case state.AnalysisPhase == entities.PhaseDeepSearchPending:
		fmt.Fprintf(w, "Run 'bioid deep' to deep search %d failed entities.\n", state.FailedCount())
	}
}
