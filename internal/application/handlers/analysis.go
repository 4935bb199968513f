package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/ersonp/bioid/internal/domain/entities"
	"github.com/ersonp/bioid/internal/domain/services"
)

// ErrNoSession is returned when a command needs a saved session and none
// could be restored.
var ErrNoSession = errors.New("no usable saved session (run 'bioid run' first)")

// KeyLookup returns the configured credential for a provider, or "".
type KeyLookup func(p entities.Provider) string

// AnalysisHandler runs analysis phases and keeps the saved session current.
type AnalysisHandler struct {
	controller *services.AnalysisController
	sessions   *services.SessionService
	keys       KeyLookup
}

// NewAnalysisHandler creates a new analysis handler. keys may be nil.
func NewAnalysisHandler(controller *services.AnalysisController, sessions *services.SessionService, keys KeyLookup) *AnalysisHandler {
	return &AnalysisHandler{
		controller: controller,
		sessions:   sessions,
		keys:       keys,
	}
}

// RunOptions controls an initial analysis run.
type RunOptions struct {
	Input    string // file path, or StdinPath
	Stdin    io.Reader
	Provider entities.Provider
	APIKey   string
	Options  entities.SearchOptions
	AutoDeep bool // continue into deep search when entities failed
}

// RunResult contains the reports of the phases that ran.
type RunResult struct {
	Initial *services.PhaseReport
	Deep    *services.PhaseReport // nil when deep search did not run
	Saved   bool
	State   *entities.SessionState
}

// Controller returns the controller the handler drives.
func (h *AnalysisHandler) Controller() *services.AnalysisController {
	return h.controller
}

// Run loads the input, runs the initial phase and saves the session. With
// AutoDeep set, a pending deep search runs straight after.
func (h *AnalysisHandler) Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	if _, err := LoadInput(h.controller, opts.Input, opts.Stdin); err != nil {
		return nil, fmt.Errorf("loading input: %w", err)
	}
	if err := h.controller.SetProvider(opts.Provider); err != nil {
		return nil, err
	}
	if err := h.controller.SetOptions(opts.Options); err != nil {
		return nil, err
	}

	apiKey := h.apiKey(opts.Provider, opts.APIKey)
	report, err := h.controller.Start(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	result := &RunResult{Initial: report}
	result.Saved = h.save(ctx)

	if opts.AutoDeep && report.Phase == entities.PhaseDeepSearchPending && ctx.Err() == nil {
		deep, err := h.controller.DeepSearch(ctx, apiKey)
		if err != nil {
			result.State = h.controller.Snapshot()
			return result, fmt.Errorf("deep search: %w", err)
		}
		result.Deep = deep
		result.Saved = h.save(ctx)
	}

	result.State = h.controller.Snapshot()
	return result, nil
}

// Deep restores the saved session and runs deep search over its failed
// entities. An empty apiKey falls back to the saved provider's configured
// key.
func (h *AnalysisHandler) Deep(ctx context.Context, apiKey string) (*RunResult, error) {
	state, ok := h.sessions.Load(ctx, h.controller)
	if !ok {
		return nil, ErrNoSession
	}

	report, err := h.controller.DeepSearch(ctx, h.apiKey(state.APIProvider, apiKey))
	if err != nil {
		return nil, err
	}

	return &RunResult{
		Deep:  report,
		Saved: h.save(ctx),
		State: h.controller.Snapshot(),
	}, nil
}

// Stop asks the running phase to end after the entity in flight.
func (h *AnalysisHandler) Stop() bool {
	return h.controller.Stop()
}

// apiKey prefers the explicit key over the configured one.
func (h *AnalysisHandler) apiKey(p entities.Provider, explicit string) string {
	if explicit != "" || h.keys == nil {
		return explicit
	}
	return h.keys(p)
}

// save persists the session even after the run context was cancelled, so a
// stopped run is still resumable.
func (h *AnalysisHandler) save(ctx context.Context) bool {
	return h.sessions.Save(context.WithoutCancel(ctx), h.controller)
}
