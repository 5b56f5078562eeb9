package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeGraph represents graph structure errors (unknown vertices, bad kinds)
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypeLoader represents errors raised while populating a graph from rows
	ErrorTypeLoader ErrorType = "loader"
	// ErrorTypeRecommend represents similarity/recommendation errors
	ErrorTypeRecommend ErrorType = "recommend"
	// ErrorTypeRequest represents invalid caller input
	ErrorTypeRequest ErrorType = "request"
	// ErrorTypeStore represents Neo4j row source errors
	ErrorTypeStore ErrorType = "store"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
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

// ErrUnknownVertex is returned when an edge or neighbour query names an absent key
type ErrUnknownVertex struct {
	*BaseError
	Key string
}

func NewUnknownVertex(key string) *ErrUnknownVertex {
	return &ErrUnknownVertex{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("unknown vertex: %s", key), nil),
		Key:       key,
	}
}

// ErrInvalidKind is returned when a vertex is built with, or an operation
// requires, a kind other than the one supplied
type ErrInvalidKind struct {
	*BaseError
	Key  string
	Kind string
}

func NewInvalidKind(key, kind string) *ErrInvalidKind {
	return &ErrInvalidKind{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("invalid kind %q for vertex %s", kind, key), nil),
		Key:       key,
		Kind:      kind,
	}
}

// ErrMalformedAttributes is returned when an attribute list has the wrong arity for its kind
type ErrMalformedAttributes struct {
	*BaseError
	Key  string
	Want int
	Got  int
}

func NewMalformedAttributes(key string, want, got int) *ErrMalformedAttributes {
	return &ErrMalformedAttributes{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("vertex %s: want %d attributes, got %d", key, want, got), nil),
		Key:       key,
		Want:      want,
		Got:       got,
	}
}

// ErrSelfEdge is returned when both endpoints of an edge are the same vertex
type ErrSelfEdge struct {
	*BaseError
	Key string
}

func NewSelfEdge(key string) *ErrSelfEdge {
	return &ErrSelfEdge{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("vertex cannot neighbour itself: %s", key), nil),
		Key:       key,
	}
}

// Loader Errors

// ErrUnresolvedSongReference is returned when a listening row names a song
// that is not in the catalogue
type ErrUnresolvedSongReference struct {
	*BaseError
	SongID   string
	Username string
	Row      int
}

func NewUnresolvedSongReference(songID, username string, row int) *ErrUnresolvedSongReference {
	return &ErrUnresolvedSongReference{
		BaseError: NewBaseError(ErrorTypeLoader, fmt.Sprintf("row %d: user %s references unknown song %s", row, username, songID), nil),
		SongID:    songID,
		Username:  username,
		Row:       row,
	}
}

// ErrMalformedRow is returned when an input row has too few columns
type ErrMalformedRow struct {
	*BaseError
	Source string
	Row    int
	Want   int
	Got    int
}

func NewMalformedRow(source string, row, want, got int) *ErrMalformedRow {
	return &ErrMalformedRow{
		BaseError: NewBaseError(ErrorTypeLoader, fmt.Sprintf("%s row %d: want at least %d columns, got %d", source, row, want, got), nil),
		Source:    source,
		Row:       row,
		Want:      want,
		Got:       got,
	}
}

// Recommendation Errors

// ErrNoEligibleMatch is returned when no other user has a positive similarity score
type ErrNoEligibleMatch struct {
	*BaseError
	Username string
}

func NewNoEligibleMatch(username string) *ErrNoEligibleMatch {
	return &ErrNoEligibleMatch{
		BaseError: NewBaseError(ErrorTypeRecommend, fmt.Sprintf("no eligible match for user: %s", username), nil),
		Username:  username,
	}
}

// ErrSelfComparison is returned when a user is scored against itself
type ErrSelfComparison struct {
	*BaseError
	Username string
}

func NewSelfComparison(username string) *ErrSelfComparison {
	return &ErrSelfComparison{
		BaseError: NewBaseError(ErrorTypeRecommend, fmt.Sprintf("cannot compare user with itself: %s", username), nil),
		Username:  username,
	}
}

// Request Errors

// ErrInvalidRequest is returned when a recommendation request fails validation
type ErrInvalidRequest struct {
	*BaseError
	Field  string
	Reason string
}

func NewInvalidRequest(field, reason string) *ErrInvalidRequest {
	return &ErrInvalidRequest{
		BaseError: NewBaseError(ErrorTypeRequest, fmt.Sprintf("invalid %s: %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// Store Errors

// ErrStoreQueryFailed is returned when a Neo4j query fails
type ErrStoreQueryFailed struct {
	*BaseError
	Operation string
}

func NewStoreQueryFailed(operation string, err error) *ErrStoreQueryFailed {
	return &ErrStoreQueryFailed{
		BaseError: NewBaseError(ErrorTypeStore, fmt.Sprintf("query failed: %s", operation), err),
		Operation: operation,
	}
}

// Config Errors

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

// Helper functions

// IsErrorType checks if an error, or any error it wraps, carries the given type
func IsErrorType(err error, errType ErrorType) bool {
	var carrier interface{ errorType() ErrorType }
	if stderrors.As(err, &carrier) {
		return carrier.errorType() == errType
	}
	return false
}

func (e *BaseError) errorType() ErrorType {
	return e.Type
}
