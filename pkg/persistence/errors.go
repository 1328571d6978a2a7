package persistence

import (
	"errors"
	"fmt"
)

// Standard persistence error types that all implementations should use.
var (
	// ErrSessionNotFound indicates a design session was not found by the given identifier.
	ErrSessionNotFound = errors.New("session not found")

	// ErrBlueprintNotFound indicates a blueprint was not found by the given workflow id.
	ErrBlueprintNotFound = errors.New("blueprint not found")

	// ErrSessionAlreadyExists indicates a session with the same identifier already exists.
	ErrSessionAlreadyExists = errors.New("session already exists")

	// ErrInvalidID indicates an identifier that is empty or carries path
	// separators and cannot name a stored document.
	ErrInvalidID = errors.New("invalid document identifier")
)

// SessionError wraps session-related errors with operation context.
type SessionError struct {
	Op        string // Operation being performed (e.g., "SaveSession", "SessionByID")
	SessionID string
	Err       error
}

func (e *SessionError) Error() string {
	return fmt.Sprintf("%s operation failed for session %s: %v", e.Op, e.SessionID, e.Err)
}

func (e *SessionError) Unwrap() error {
	return e.Err
}

func (e *SessionError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewSessionError creates a new session error with context.
func NewSessionError(op, sessionID string, err error) *SessionError {
	return &SessionError{
		Op:        op,
		SessionID: sessionID,
		Err:       err,
	}
}

// BlueprintError wraps blueprint-related errors with operation context.
type BlueprintError struct {
	Op         string
	WorkflowID string
	Err        error
}

func (e *BlueprintError) Error() string {
	return fmt.Sprintf("%s operation failed for blueprint %s: %v", e.Op, e.WorkflowID, e.Err)
}

func (e *BlueprintError) Unwrap() error {
	return e.Err
}

func (e *BlueprintError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewBlueprintError creates a new blueprint error with context.
func NewBlueprintError(op, workflowID string, err error) *BlueprintError {
	return &BlueprintError{
		Op:         op,
		WorkflowID: workflowID,
		Err:        err,
	}
}

// IsSessionNotFound checks if an error indicates a session was not found.
func IsSessionNotFound(err error) bool {
	return errors.Is(err, ErrSessionNotFound)
}

// IsBlueprintNotFound checks if an error indicates a blueprint was not found.
func IsBlueprintNotFound(err error) bool {
	return errors.Is(err, ErrBlueprintNotFound)
}

// IsInvalidID checks if an error indicates an unusable document identifier.
func IsInvalidID(err error) bool {
	return errors.Is(err, ErrInvalidID)
}
