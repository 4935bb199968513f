// Package ports defines interfaces for external service communication.
package ports

import (
	"context"

	"github.com/ersonp/bioid/internal/domain/entities"
)

// ResolveRequest carries one entity and the session options to a provider.
type ResolveRequest struct {
	EntityName string
	Options    entities.SearchOptions
	// DeepSearch asks the provider for a more exhaustive, slower resolution.
	DeepSearch bool
}

// EntityResolver performs one round-trip to an inference provider.
// Implementations do not retry.
type EntityResolver interface {
	Resolve(ctx context.Context, req ResolveRequest) (*entities.Resolution, error)
}

// ResolverFactory binds a provider and credential into an EntityResolver.
type ResolverFactory interface {
	// NewResolver returns a resolver for provider. An empty apiKey is only
	// accepted for providers with an environment default credential.
	NewResolver(provider entities.Provider, apiKey string) (EntityResolver, error)
}
