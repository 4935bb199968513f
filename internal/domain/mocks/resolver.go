// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"errors"
	"sync"

	"github.com/ersonp/bioid/internal/domain/entities"
	"github.com/ersonp/bioid/internal/domain/ports"
)

// Resolver is a mock implementation of ports.EntityResolver.
type Resolver struct {
	mu sync.Mutex

	// Resolutions maps an entity name to the resolution returned for it.
	Resolutions map[string]*entities.Resolution
	// Errors maps an entity name to the error returned for it.
	Errors map[string]error
	// DeepResolutions overrides Resolutions for deep search calls.
	DeepResolutions map[string]*entities.Resolution
	// OnResolve runs after each call with the request, before returning.
	OnResolve func(req ports.ResolveRequest)

	// Calls records every request in order.
	Calls []ports.ResolveRequest
}

// NewResolver creates an empty mock resolver.
func NewResolver() *Resolver {
	return &Resolver{
		Resolutions:     make(map[string]*entities.Resolution),
		Errors:          make(map[string]error),
		DeepResolutions: make(map[string]*entities.Resolution),
	}
}

// Resolve returns the configured resolution or error for req.EntityName.
// Deep search calls prefer DeepResolutions. Unknown names resolve to
// themselves.
func (m *Resolver) Resolve(_ context.Context, req ports.ResolveRequest) (*entities.Resolution, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	deep, deepOK := m.DeepResolutions[req.EntityName]
	res, resOK := m.Resolutions[req.EntityName]
	err := m.Errors[req.EntityName]
	hook := m.OnResolve
	m.mu.Unlock()

	if hook != nil {
		hook(req)
	}

	switch {
	case req.DeepSearch && deepOK:
		copied := *deep
		return &copied, nil
	case err != nil:
		return nil, err
	case resOK:
		copied := *res
		return &copied, nil
	default:
		return &entities.Resolution{ResolvedName: req.EntityName}, nil
	}
}

// CallNames returns the entity names of all recorded calls.
func (m *Resolver) CallNames() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.Calls))
	for _, c := range m.Calls {
		names = append(names, c.EntityName)
	}
	return names
}

// ResolverFactory is a mock implementation of ports.ResolverFactory.
type ResolverFactory struct {
	Resolver *Resolver
	Err      error

	// Providers and Keys record the arguments of each NewResolver call.
	Providers []entities.Provider
	Keys      []string
}

// NewResolver returns the configured resolver or error.
func (m *ResolverFactory) NewResolver(provider entities.Provider, apiKey string) (ports.EntityResolver, error) {
	m.Providers = append(m.Providers, provider)
	m.Keys = append(m.Keys, apiKey)
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Resolver == nil {
		return nil, errors.New("mock resolver not configured")
	}
	return m.Resolver, nil
}
