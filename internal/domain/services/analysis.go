package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ersonp/bioid/internal/domain/entities"
	"github.com/ersonp/bioid/internal/domain/ports"
	"github.com/ersonp/bioid/internal/infrastructure/parsers"
	applog "github.com/ersonp/bioid/internal/logger"
)

// Export stages used in generated file names.
const (
	StageInitial = "initial"
	StageFinal   = "final"
)

// AnalysisListener is notified of state changes. Calls are made without the
// controller lock held, so a listener may call back into the controller.
type AnalysisListener interface {
	OnLog(entry entities.LogEntry)
	OnProgress(done, total int)
	OnPhase(phase entities.AnalysisPhase)
}

// ControllerOptions configures an AnalysisController.
type ControllerOptions struct {
	Delay    time.Duration // pause between requests; zero means no pause
	Listener AnalysisListener
	Logger   logrus.FieldLogger
}

// PhaseReport describes a finished phase.
type PhaseReport struct {
	Phase      entities.AnalysisPhase // phase entered when the pass ended
	Metrics    PhaseMetrics
	Stopped    bool
	ExportPath string // empty when the export failed
	Failed     int    // results still carrying validation issues
}

// AnalysisController owns the session state and runs the two analysis phases.
type AnalysisController struct {
	mu       sync.Mutex
	state    *entities.SessionState
	factory  ports.ResolverFactory
	exporter ports.ResultExporter
	delay    time.Duration
	listener AnalysisListener
	logger   logrus.FieldLogger
	cancel   context.CancelFunc
}

// NewAnalysisController creates a controller holding a fresh session.
func NewAnalysisController(factory ports.ResolverFactory, exporter ports.ResultExporter, provider entities.Provider, opts ControllerOptions) *AnalysisController {
	logger := opts.Logger
	if logger == nil {
		logger = applog.Discard()
	}

	return &AnalysisController{
		state:    entities.NewSessionState(provider, timeNow()),
		factory:  factory,
		exporter: exporter,
		delay:    opts.Delay,
		listener: opts.Listener,
		logger:   logger,
	}
}

// Snapshot returns a deep copy of the current state.
func (c *AnalysisController) Snapshot() *entities.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Phase returns the current analysis phase.
func (c *AnalysisController) Phase() entities.AnalysisPhase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.AnalysisPhase
}

// Restore replaces the whole state with s. It is refused while a phase runs.
func (c *AnalysisController) Restore(s *entities.SessionState) error {
	if err := s.Validate(); err != nil {
		return fmt.Errorf("validating session: %w", err)
	}

	c.mu.Lock()
	if c.state.AnalysisPhase.IsProcessing() {
		c.mu.Unlock()
		return fmt.Errorf("restoring session: %w", entities.ErrInvalidPhase)
	}
	c.state = s.Clone()
	phase := c.state.AnalysisPhase
	c.mu.Unlock()

	c.notifyPhase(phase)
	return nil
}

// Log appends a user-visible line to the session log.
func (c *AnalysisController) Log(message string) {
	entry := entities.LogEntry{Time: timeNow().UTC(), Message: message}

	c.mu.Lock()
	c.state.Logs = append(c.state.Logs, entry)
	c.mu.Unlock()

	c.logger.Debug(message)
	if c.listener != nil {
		c.listener.OnLog(entry)
	}
}

// LoadFile replaces the entity list with the lines of content. The raw
// input text is cleared.
func (c *AnalysisController) LoadFile(name, content string) error {
	names := parsers.SplitEntityList(content)

	c.mu.Lock()
	if c.state.AnalysisPhase.IsProcessing() {
		c.mu.Unlock()
		return fmt.Errorf("loading entities: %w", entities.ErrInvalidPhase)
	}
	c.state.EntityList = names
	c.state.FileName = name
	c.state.TextAreaContent = ""
	c.mu.Unlock()

	c.Log(fmt.Sprintf("Loaded %d entities from %s", len(names), name))
	return nil
}

// SetText replaces the entity list with the lines of pasted text. The file
// name is cleared once the text yields at least one entity.
func (c *AnalysisController) SetText(text string) error {
	names := parsers.SplitEntityList(text)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.AnalysisPhase.IsProcessing() {
		return fmt.Errorf("setting entities: %w", entities.ErrInvalidPhase)
	}
	c.state.TextAreaContent = text
	c.state.EntityList = names
	if len(names) > 0 {
		c.state.FileName = ""
	}
	return nil
}

// SetOptions replaces the search options used by the next phase.
func (c *AnalysisController) SetOptions(opts entities.SearchOptions) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.AnalysisPhase.IsProcessing() {
		return fmt.Errorf("setting options: %w", entities.ErrInvalidPhase)
	}
	c.state.Options = opts
	return nil
}

// SetProvider selects the provider used by the next phase.
func (c *AnalysisController) SetProvider(p entities.Provider) error {
	if !p.IsValid() {
		return fmt.Errorf("invalid provider %q", p)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.AnalysisPhase.IsProcessing() {
		return fmt.Errorf("setting provider: %w", entities.ErrInvalidPhase)
	}
	c.state.APIProvider = p
	return nil
}

// Start runs the initial phase over the loaded entity list and blocks until
// it ends. A refused start logs the reason and leaves the state idle.
func (c *AnalysisController) Start(ctx context.Context, apiKey string) (*PhaseReport, error) {
	c.mu.Lock()
	if c.state.AnalysisPhase != entities.PhaseIdle {
		phase := c.state.AnalysisPhase
		c.mu.Unlock()
		return nil, fmt.Errorf("starting analysis in phase %s: %w", phase, entities.ErrInvalidPhase)
	}
	list := append([]string(nil), c.state.EntityList...)
	provider := c.state.APIProvider
	opts := c.state.Options
	c.mu.Unlock()

	if len(list) == 0 {
		c.Log("Error: No entities loaded.")
		return nil, entities.ErrNoEntities
	}

	resolver, err := c.resolver(provider, apiKey)
	if err != nil {
		return nil, err
	}

	runCtx, err := c.begin(ctx, entities.PhaseIdle, entities.PhaseInitial, len(list), func(s *entities.SessionState) {
		s.RunID = uuid.New().String()
		s.Results = []entities.EntityResult{}
	})
	if err != nil {
		return nil, err
	}
	c.notifyPhase(entities.PhaseInitial)
	c.Log(fmt.Sprintf("--- Analysis started for %d entities using %s ---", len(list), provider))

	outcome := NewBatchRunner(resolver, c.delay).Run(runCtx, BatchRequest{
		Entities: list,
		Options:  opts,
	}, c)

	path := c.export(ctx, outcome.Results, StageInitial)
	c.Log("Initial analysis complete. CSV file generated.")

	next := entities.PhaseComplete
	failed := len(entities.FailedEntities(outcome.Results))
	if failed > 0 && !outcome.Stopped {
		next = entities.PhaseDeepSearchPending
	}
	c.finish(outcome.Results, next)

	return &PhaseReport{
		Phase:      next,
		Metrics:    outcome.Metrics,
		Stopped:    outcome.Stopped,
		ExportPath: path,
		Failed:     failed,
	}, nil
}

// DeepSearch re-runs every failed entity with the deep search flag set and
// blocks until the pass ends.
func (c *AnalysisController) DeepSearch(ctx context.Context, apiKey string) (*PhaseReport, error) {
	c.mu.Lock()
	if c.state.AnalysisPhase != entities.PhaseDeepSearchPending {
		phase := c.state.AnalysisPhase
		c.mu.Unlock()
		return nil, fmt.Errorf("starting deep search in phase %s: %w", phase, entities.ErrInvalidPhase)
	}
	failed := entities.FailedEntities(c.state.Results)
	existing := entities.CloneResults(c.state.Results)
	provider := c.state.APIProvider
	opts := c.state.Options
	c.mu.Unlock()

	if len(failed) == 0 {
		c.Log("No failed entities to deep search.")
		return nil, entities.ErrNoFailedEntities
	}

	resolver, err := c.resolver(provider, apiKey)
	if err != nil {
		return nil, err
	}

	runCtx, err := c.begin(ctx, entities.PhaseDeepSearchPending, entities.PhaseDeepSearching, len(failed), nil)
	if err != nil {
		return nil, err
	}
	c.notifyPhase(entities.PhaseDeepSearching)
	c.Log(fmt.Sprintf("--- Deep Search started for %d entities ---", len(failed)))

	outcome := NewBatchRunner(resolver, c.delay).Run(runCtx, BatchRequest{
		Entities:   failed,
		Options:    opts,
		DeepSearch: true,
		Existing:   existing,
	}, c)

	path := c.export(ctx, outcome.Results, StageFinal)
	c.Log("Deep search complete. Final CSV file generated.")
	c.finish(outcome.Results, entities.PhaseComplete)

	return &PhaseReport{
		Phase:      entities.PhaseComplete,
		Metrics:    outcome.Metrics,
		Stopped:    outcome.Stopped,
		ExportPath: path,
		Failed:     len(entities.FailedEntities(outcome.Results)),
	}, nil
}

// Stop asks the running phase to end after the entity in flight. It reports
// whether a phase was running.
func (c *AnalysisController) Stop() bool {
	c.mu.Lock()
	cancel := c.cancel
	running := cancel != nil && c.state.AnalysisPhase.IsProcessing()
	c.mu.Unlock()

	if !running {
		return false
	}
	c.Log("Stop signal received. Finishing current entity...")
	cancel()
	return true
}

// Progress implements BatchObserver.
func (c *AnalysisController) Progress(done, total int, results []entities.EntityResult) {
	c.mu.Lock()
	c.state.Results = results
	c.state.Progress = done
	c.state.Total = total
	c.mu.Unlock()

	if c.listener != nil {
		c.listener.OnProgress(done, total)
	}
}

// resolver checks the credential and builds a resolver for provider.
func (c *AnalysisController) resolver(provider entities.Provider, apiKey string) (ports.EntityResolver, error) {
	if strings.TrimSpace(apiKey) == "" && !provider.HasEnvDefault() {
		c.Log(fmt.Sprintf("Error: API Key is required for %s.", provider))
		return nil, fmt.Errorf("%s: %w", provider, entities.ErrCredentialRequired)
	}

	resolver, err := c.factory.NewResolver(provider, apiKey)
	if err != nil {
		c.Log(fmt.Sprintf("Error: %s", err))
		return nil, fmt.Errorf("creating resolver: %w", err)
	}
	return resolver, nil
}

// begin moves from one phase into a processing phase and stores the cancel
// function Stop uses. The phase is re-checked under the lock.
func (c *AnalysisController) begin(ctx context.Context, from, to entities.AnalysisPhase, total int, mutate func(*entities.SessionState)) (context.Context, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.AnalysisPhase != from || !from.CanTransition(to) {
		return nil, fmt.Errorf("entering %s from %s: %w", to, c.state.AnalysisPhase, entities.ErrInvalidPhase)
	}

	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state.AnalysisPhase = to
	c.state.Progress = 0
	c.state.Total = total
	if mutate != nil {
		mutate(c.state)
	}
	return runCtx, nil
}

// finish stores the final results and leaves the processing phase.
func (c *AnalysisController) finish(results []entities.EntityResult, next entities.AnalysisPhase) {
	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.state.Results = results
	c.state.AnalysisPhase = next
	c.mu.Unlock()

	c.notifyPhase(next)
}

// export writes results and logs, but never returns, a failure.
func (c *AnalysisController) export(ctx context.Context, results []entities.EntityResult, stage string) string {
	if c.exporter == nil {
		return ""
	}

	path, err := c.exporter.Export(context.WithoutCancel(ctx), results, RunFileName(stage, timeNow()))
	if err != nil {
		c.logger.WithError(err).Warn("export failed")
		c.Log(fmt.Sprintf("Error exporting results: %s", err))
		return ""
	}
	c.logger.WithField("path", path).Info("results exported")
	return path
}

func (c *AnalysisController) notifyPhase(phase entities.AnalysisPhase) {
	if c.listener != nil {
		c.listener.OnPhase(phase)
	}
}

// RunFileName returns the export file name for stage at t, e.g.
// results-initial-2026-03-01-09-30-00.csv.
func RunFileName(stage string, t time.Time) string {
	stamp := t.UTC().Format("2006-01-02T15:04:05")
	stamp = strings.NewReplacer(":", "-", "T", "-").Replace(stamp)
	return fmt.Sprintf("results-%s-%s.csv", stage, stamp)
}

// IsRefusal reports whether err is a refused command rather than a failure.
func IsRefusal(err error) bool {
	return errors.Is(err, entities.ErrNoEntities) ||
		errors.Is(err, entities.ErrCredentialRequired) ||
		errors.Is(err, entities.ErrInvalidPhase) ||
		errors.Is(err, entities.ErrNoFailedEntities)
}
