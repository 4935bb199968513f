package mocks

import (
	"context"
)

// SessionStore is an in-memory mock implementation of ports.SessionStore.
type SessionStore struct {
	Slots   map[string][]byte
	SaveErr error
	LoadErr error

	SaveCallCount int
}

// NewSessionStore creates an empty mock store.
func NewSessionStore() *SessionStore {
	return &SessionStore{Slots: make(map[string][]byte)}
}

// Save stores a copy of data under key.
func (m *SessionStore) Save(_ context.Context, key string, data []byte) error {
	m.SaveCallCount++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.Slots[key] = append([]byte(nil), data...)
	return nil
}

// Load returns the stored data or nil.
func (m *SessionStore) Load(_ context.Context, key string) ([]byte, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}
	return m.Slots[key], nil
}

// Delete removes key.
func (m *SessionStore) Delete(_ context.Context, key string) error {
	delete(m.Slots, key)
	return nil
}

// Close does nothing.
func (m *SessionStore) Close() error {
	return nil
}
