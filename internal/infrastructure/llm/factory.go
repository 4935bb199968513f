// Package llm selects and builds the resolution client for a provider.
package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ersonp/bioid/internal/domain/entities"
	"github.com/ersonp/bioid/internal/domain/ports"
	"github.com/ersonp/bioid/internal/infrastructure/config"
	"github.com/ersonp/bioid/internal/infrastructure/llm/anthropic"
	"github.com/ersonp/bioid/internal/infrastructure/llm/gemini"
	"github.com/ersonp/bioid/internal/infrastructure/llm/openai"
)

// jsonModeProviders accept the json_object response format.
var jsonModeProviders = map[entities.Provider]bool{
	entities.ProviderOpenAI:   true,
	entities.ProviderGroq:     true,
	entities.ProviderMistral:  true,
	entities.ProviderTogether: true,
}

// Factory implements ports.ResolverFactory from the LLM configuration.
type Factory struct {
	cfg    config.LLMConfig
	logger logrus.FieldLogger
}

// NewFactory creates a factory for the given configuration.
func NewFactory(cfg config.LLMConfig, logger logrus.FieldLogger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// NewResolver returns a resolver bound to provider and apiKey. An empty key
// falls back to the key configured for the provider.
func (f *Factory) NewResolver(provider entities.Provider, apiKey string) (ports.EntityResolver, error) {
	if !provider.IsValid() {
		return nil, fmt.Errorf("unknown provider %q", provider)
	}

	settings := f.cfg.Providers[provider.Slug()]
	if apiKey == "" {
		apiKey = settings.APIKey
	}

	var (
		resolver ports.EntityResolver
		err      error
	)
	switch provider {
	case entities.ProviderGemini:
		resolver, err = gemini.NewClient(context.Background(), gemini.Config{
			APIKey:    apiKey,
			BaseURL:   settings.BaseURL,
			Model:     settings.Model,
			DeepModel: settings.DeepModel,
			Timeout:   f.cfg.RequestTimeout,
		})
	case entities.ProviderAnthropic:
		resolver, err = anthropic.NewClient(anthropic.Config{
			APIKey:    apiKey,
			BaseURL:   settings.BaseURL,
			Model:     settings.Model,
			DeepModel: settings.DeepModel,
			Timeout:   f.cfg.RequestTimeout,
		})
	default:
		resolver, err = openai.NewClient(openai.Config{
			Name:      string(provider),
			APIKey:    apiKey,
			BaseURL:   settings.BaseURL,
			Model:     settings.Model,
			DeepModel: settings.DeepModel,
			Timeout:   f.cfg.RequestTimeout,
			JSONMode:  jsonModeProviders[provider],
		})
	}
	if err != nil {
		return nil, err
	}

	if f.logger == nil {
		return resolver, nil
	}
	return &loggingResolver{
		next:   resolver,
		logger: f.logger.WithField("provider", provider.Slug()),
	}, nil
}

// KeyStatus describes where the credential of a provider comes from.
type KeyStatus string

// Credential statuses shown to the user.
const (
	KeyUserProvided KeyStatus = "User Key Provided"
	KeyEnvironment  KeyStatus = "Environment Default"
	KeyRequired     KeyStatus = "Key Required"
)

// Status reports the credential status of provider given an explicit key.
func (f *Factory) Status(provider entities.Provider, apiKey string) KeyStatus {
	if apiKey == "" {
		apiKey = f.cfg.Providers[provider.Slug()].APIKey
	}
	switch {
	case apiKey != "":
		return KeyUserProvided
	case provider.HasEnvDefault():
		return KeyEnvironment
	default:
		return KeyRequired
	}
}

// loggingResolver writes a diagnostic line per request.
type loggingResolver struct {
	next   ports.EntityResolver
	logger logrus.FieldLogger
}

func (r *loggingResolver) Resolve(ctx context.Context, req ports.ResolveRequest) (*entities.Resolution, error) {
	start := time.Now()
	res, err := r.next.Resolve(ctx, req)

	entry := r.logger.WithFields(logrus.Fields{
		"entity":   req.EntityName,
		"deep":     req.DeepSearch,
		"duration": time.Since(start).Round(time.Millisecond),
	})
	if err != nil {
		entry.WithError(err).Warn("resolve failed")
		return nil, err
	}
	entry.Debug("resolved")
	return res, nil
}
