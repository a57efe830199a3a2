package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrTransport     = errors.New("transport failure")
	ErrUnsupportedDB = errors.New("unsupported database")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConnectionNotFoundError is returned when a named connection is not registered
type ConnectionNotFoundError struct {
	Name string
}

func (e *ConnectionNotFoundError) Error() string {
	return fmt.Sprintf("connection %s not found", e.Name)
}

func (e *ConnectionNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConnectionExistsError is returned when creating a connection whose name is taken
type ConnectionExistsError struct {
	Name string
}

func (e *ConnectionExistsError) Error() string {
	return fmt.Sprintf("connection %s already exists", e.Name)
}

func (e *ConnectionExistsError) Is(target error) bool {
	return target == ErrAlreadyExists
}

// TransportError wraps a failure talking to a database
type TransportError struct {
	Op         string
	Collection string
	Err        error
}

func (e *TransportError) Error() string {
	if e.Collection != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Collection, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}

// UnsupportedDatabaseError is returned for a connection URL no adapter understands
type UnsupportedDatabaseError struct {
	URL string
}

func (e *UnsupportedDatabaseError) Error() string {
	return fmt.Sprintf("no database adapter for %q", e.URL)
}

func (e *UnsupportedDatabaseError) Is(target error) bool {
	return target == ErrUnsupportedDB
}
