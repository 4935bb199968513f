package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/ersonp/bioid/internal/domain/entities"
	"github.com/ersonp/bioid/internal/domain/ports"
	applog "github.com/ersonp/bioid/internal/logger"
)

// SessionKey is the single slot session snapshots are stored under.
const SessionKey = "bioIdAiSession"

// Session log lines.
const (
	msgSessionSaved     = "Session saved successfully."
	msgSessionSaveError = "Error saving session. Storage might be full or disabled."
	msgSessionNotFound  = "No saved session found."
	msgSessionCorrupt   = "Error loading session. Saved data might be corrupt."
	msgSessionLoaded    = "Successfully loaded previous session."
	msgSessionCleared   = "Saved session cleared."
)

// SessionService saves and restores controller state.
type SessionService struct {
	store  ports.SessionStore
	logger logrus.FieldLogger
}

// NewSessionService creates a new session service.
func NewSessionService(store ports.SessionStore, logger logrus.FieldLogger) *SessionService {
	if logger == nil {
		logger = applog.Discard()
	}
	return &SessionService{
		store:  store,
		logger: logger,
	}
}

// Save serializes the controller state into the session slot, overwriting
// any previous snapshot. The outcome is logged on the controller.
func (s *SessionService) Save(ctx context.Context, c *AnalysisController) bool {
	data, err := json.Marshal(c.Snapshot())
	if err == nil {
		err = s.store.Save(ctx, SessionKey, data)
	}
	if err != nil {
		s.logger.WithError(err).Warn("saving session")
		c.Log(msgSessionSaveError)
		return false
	}

	c.Log(msgSessionSaved)
	return true
}

// Load reads the session slot and replaces the controller state with it.
// On any failure the controller state is left untouched. The returned
// snapshot is the state exactly as it was stored.
func (s *SessionService) Load(ctx context.Context, c *AnalysisController) (*entities.SessionState, bool) {
	state, err := s.Read(ctx)
	if err != nil {
		s.logger.WithError(err).Warn("loading session")
		c.Log(msgSessionCorrupt)
		return nil, false
	}
	if state == nil {
		c.Log(msgSessionNotFound)
		return nil, false
	}

	if err := c.Restore(state); err != nil {
		s.logger.WithError(err).Warn("restoring session")
		c.Log(fmt.Sprintf("Error: %s", err))
		return nil, false
	}

	c.Log(msgSessionLoaded)
	return state, true
}

// Read returns the stored snapshot without touching any controller, or nil
// when the slot is empty.
func (s *SessionService) Read(ctx context.Context) (*entities.SessionState, error) {
	data, err := s.store.Load(ctx, SessionKey)
	if err != nil {
		return nil, fmt.Errorf("reading session slot: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var state entities.SessionState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	if err := state.Validate(); err != nil {
		return nil, err
	}
	return &state, nil
}

// Clear deletes the stored snapshot.
func (s *SessionService) Clear(ctx context.Context) error {
	if err := s.store.Delete(ctx, SessionKey); err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	s.logger.Info(msgSessionCleared)
	return nil
}
