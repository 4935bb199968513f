package entities

import "errors"

// Errors returned when an analysis command is refused.
var (
	ErrNoEntities         = errors.New("no entities loaded")
	ErrCredentialRequired = errors.New("api key is required")
	ErrInvalidPhase       = errors.New("command not allowed in current phase")
	ErrNoFailedEntities   = errors.New("no failed entities to deep search")
	ErrEmptyEntityName    = errors.New("entity name is empty")
)
