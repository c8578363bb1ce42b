package jobmanager

import (
	"errors"
	"fmt"
)

var (
	ErrJobNotFound  = errors.New("job not found")
	ErrJobExpired   = errors.New("job expired")
	ErrShuttingDown = errors.New("manager is shutting down")
)

// ValidationError is returned by Submit when a request is rejected before any
// job is created.
type ValidationError struct {
	Field  string
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// InvalidStateError is returned when attempting an invalid job status
// transition.
type InvalidStateError struct {
	from Status
	to   Status
}

func (e InvalidStateError) Error() string {
	return fmt.Sprintf("cannot go from %s to %s", e.from, e.to)
}

func NewInvalidStateError(from, to Status) InvalidStateError {
	return InvalidStateError{from, to}
}

// LaunchError records that the worker process could not be spawned.
type LaunchError struct {
	Program string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %s: %v", e.Program, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// ParseWarning is returned by ParseProgress for a line that carries the
// progress marker but no usable number.
type ParseWarning struct {
	Value string
	Err   error
}

func (w *ParseWarning) Error() string {
	return fmt.Sprintf("malformed progress value %q", w.Value)
}

func (w *ParseWarning) Unwrap() error {
	return w.Err
}
