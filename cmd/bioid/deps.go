package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ersonp/bioid/internal/application/handlers"
	"github.com/ersonp/bioid/internal/domain/entities"
	"github.com/ersonp/bioid/internal/domain/services"
	"github.com/ersonp/bioid/internal/infrastructure/config"
	"github.com/ersonp/bioid/internal/infrastructure/exporter"
	"github.com/ersonp/bioid/internal/infrastructure/llm"
	"github.com/ersonp/bioid/internal/infrastructure/sessionstore/sqlite"
	"github.com/ersonp/bioid/internal/logger"
)

// Deps holds high-level dependencies for commands.
type Deps struct {
	Config         *config.Config
	Logger         *logrus.Logger
	Factory        *llm.Factory
	Sessions       *services.SessionService
	SessionHandler *handlers.SessionHandler

	store    *sqlite.Store
	exporter *exporter.FileExporter
}

// withDeps loads config and builds dependencies, then calls the provided function.
// It handles cleanup automatically.
func withDeps(ctx context.Context, fn func(*Deps) error) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	cfg, err := config.LoadOrDefault(cwd)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log, err := logger.New(logger.Options{
		Level:   cfg.Log.Level,
		Verbose: globalVerbose,
	})
	if err != nil {
		return err
	}

	store, err := sqlite.NewStore(config.SessionConfig{Path: cfg.SessionPath(cwd)})
	if err != nil {
		return fmt.Errorf("creating session store: %w", err)
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensuring session schema: %w", err)
	}

	sessions := services.NewSessionService(store, log)

	deps := &Deps{
		Config:         cfg,
		Logger:         log,
		Factory:        llm.NewFactory(cfg.LLM, log),
		Sessions:       sessions,
		SessionHandler: handlers.NewSessionHandler(sessions),
		store:          store,
		exporter:       exporter.NewFileExporter(cfg.Output.Dir),
	}

	log.WithField("session", store.Path()).Debug("dependencies ready")
	return fn(deps)
}

// DefaultProvider returns the provider named by llm.provider.
func (d *Deps) DefaultProvider() (entities.Provider, error) {
	return entities.ParseProvider(d.Config.LLM.Provider)
}

// ConfiguredKey returns the api key configured for p, or "".
func (d *Deps) ConfiguredKey(p entities.Provider) string {
	return d.Config.ProviderSettings(p.Slug()).APIKey
}

// NewAnalysisHandler builds a controller for provider reporting to listener.
func (d *Deps) NewAnalysisHandler(provider entities.Provider, listener services.AnalysisListener) *handlers.AnalysisHandler {
	controller := services.NewAnalysisController(d.Factory, d.exporter, provider, services.ControllerOptions{
		Delay:    d.Config.Batch.Delay,
		Listener: listener,
		Logger:   d.Logger,
	})
	return handlers.NewAnalysisHandler(controller, d.Sessions, d.ConfiguredKey)
}

// SessionSavedAt returns when the session slot was last written.
func (d *Deps) SessionSavedAt(ctx context.Context) (time.Time, error) {
	return d.store.UpdatedAt(ctx, services.SessionKey)
}
