package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeGraph represents graph database errors
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypeExtraction represents entity/relationship extraction errors
	ErrorTypeExtraction ErrorType = "extraction"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeAgent represents conversation orchestration errors
	ErrorTypeAgent ErrorType = "agent"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// Kind returns the error category. Wrapper types inherit it through embedding.
func (e *BaseError) Kind() ErrorType {
	return e.Type
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Graph Errors

// ErrGraphUnavailable is returned when the graph backend cannot be reached
type ErrGraphUnavailable struct {
	*BaseError
	Operation string
}

func NewGraphUnavailable(operation string, err error) *ErrGraphUnavailable {
	return &ErrGraphUnavailable{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("graph store unavailable during %s", operation), err),
		Operation: operation,
	}
}

// ErrGraphQueryFailed is returned when a graph query fails
type ErrGraphQueryFailed struct {
	*BaseError
	Query string
}

func NewGraphQueryFailed(query string, err error) *ErrGraphQueryFailed {
	return &ErrGraphQueryFailed{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("query failed: %s", query), err),
		Query:     query,
	}
}

// ErrInvalidLabel is returned when a node label or relationship type cannot be
// used in a query
type ErrInvalidLabel struct {
	*BaseError
	Label string
}

func NewInvalidLabel(label, reason string) *ErrInvalidLabel {
	return &ErrInvalidLabel{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("invalid label %q: %s", label, reason), nil),
		Label:     label,
	}
}

// Extraction Errors

// ErrExtractionDegraded records that the NLP strategy was unusable and the
// pattern strategy took over. It is logged, never returned to callers.
type ErrExtractionDegraded struct {
	*BaseError
	Strategy string
}

func NewExtractionDegraded(strategy string, err error) *ErrExtractionDegraded {
	return &ErrExtractionDegraded{
		BaseError: NewBaseError(ErrorTypeExtraction, fmt.Sprintf("%s strategy unavailable, using pattern extraction", strategy), err),
		Strategy:  strategy,
	}
}

// Agent Errors

// ErrEntityUpsertFailed is returned when the orchestrator cannot store an extracted entity
type ErrEntityUpsertFailed struct {
	*BaseError
	Name       string
	EntityType string
}

func NewEntityUpsertFailed(name, entityType string, err error) *ErrEntityUpsertFailed {
	return &ErrEntityUpsertFailed{
		BaseError: NewBaseError(ErrorTypeAgent, fmt.Sprintf("failed to upsert entity %q (%s)", name, entityType), err),
		Name:       name,
		EntityType: entityType,
	}
}

// Config Errors

// ErrConfigValidationFailed is returned when configuration validation fails
type ErrConfigValidationFailed struct {
	*BaseError
	Field  string
	Reason string
}

func NewConfigValidationFailed(field, reason string) *ErrConfigValidationFailed {
	return &ErrConfigValidationFailed{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("config validation failed: %s - %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

type kindError interface {
	error
	Kind() ErrorType
}

// IsErrorType checks if an error, or anything it wraps, is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	for err != nil {
		var typed kindError
		if !errors.As(err, &typed) {
			return false
		}
		if typed.Kind() == errType {
			return true
		}
		err = errors.Unwrap(typed)
	}
	return false
}

// IsUnavailable reports whether err means the graph store could not be reached
func IsUnavailable(err error) bool {
	var unavailable *ErrGraphUnavailable
	return errors.As(err, &unavailable)
}
