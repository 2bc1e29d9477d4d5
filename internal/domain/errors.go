package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation error")
	ErrUpstream   = errors.New("upstream error")
	ErrNotFound   = errors.New("not found")

	ErrSlotNotFound         = fmt.Errorf("slot %w", ErrNotFound)
	ErrActionNotFound       = fmt.Errorf("action %w", ErrNotFound)
	ErrIntegrationNotFound  = fmt.Errorf("integration %w", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("notification %w", ErrNotFound)
	ErrSettingsNotFound     = fmt.Errorf("settings %w", ErrNotFound)

	ErrSlotTerminal = errors.New("slot already dismissed or acted upon")
)

// ValidationError reports a malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation error: " + e.Reason
	}
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// UpstreamError wraps a failed call to an external calendar provider.
type UpstreamError struct {
	Provider string
	Err      error
}

func NewUpstreamError(provider string, err error) *UpstreamError {
	return &UpstreamError{Provider: provider, Err: err}
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream %s: %v", e.Provider, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
