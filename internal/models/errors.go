package models

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying failures per the error taxonomy. Callers use
// errors.Is against these, and errors.As against the wrapper types below
// when they need the attached context (URL, component, run number, ...).
var (
	// ErrTransport signals a fetch failure (network, non-2xx, timeout).
	// Retry-worthy at the next scraping round.
	ErrTransport = errors.New("transport error")

	// ErrDecode signals the response was not JSON or not an object.
	// Treated like ErrTransport downstream but logged distinctly.
	ErrDecode = errors.New("decode error")

	// ErrSchema signals the JSON shape violated the component schema - a
	// signal of upstream change.
	ErrSchema = errors.New("schema error")

	// ErrNoBase signals the base component failed, so the match cannot
	// enter the golden dataset.
	ErrNoBase = errors.New("match has no base component")

	// ErrStorage signals a filesystem or serialization failure. Fatal for
	// the current season; propagates to the quality manager.
	ErrStorage = errors.New("storage error")

	// ErrInsufficientRuns signals build_consensus was called with fewer
	// than two runs on disk.
	ErrInsufficientRuns = errors.New("insufficient runs for consensus")
)

// ComponentError wraps a component-level failure with the component kind,
// the URL attempted, and the underlying sentinel for errors.Is/As.
type ComponentError struct {
	Component ComponentKind
	URL       string
	Err       error
}

func (e *ComponentError) Error() string {
	return fmt.Sprintf("component %s (%s): %v", e.Component, e.URL, e.Err)
}

func (e *ComponentError) Unwrap() error { return e.Err }

// NewTransportError wraps err as a component transport failure.
func NewTransportError(component ComponentKind, url string, err error) *ComponentError {
	return &ComponentError{Component: component, URL: url, Err: fmt.Errorf("%w: %v", ErrTransport, err)}
}

// NewDecodeError wraps err as a component decode failure.
func NewDecodeError(component ComponentKind, url string, err error) *ComponentError {
	return &ComponentError{Component: component, URL: url, Err: fmt.Errorf("%w: %v", ErrDecode, err)}
}

// NewSchemaError wraps err as a component schema validation failure.
func NewSchemaError(component ComponentKind, url string, err error) *ComponentError {
	return &ComponentError{Component: component, URL: url, Err: fmt.Errorf("%w: %v", ErrSchema, err)}
}

// StorageErrorf builds a storage-layer error, fatal for the current season.
func StorageErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrStorage, fmt.Sprintf(format, args...))
}

// InsufficientRunsErrorf builds the user-surfaced error for build_consensus
// being invoked on too few runs.
func InsufficientRunsErrorf(tournamentID TournamentID, seasonID SeasonID, have int) error {
	return fmt.Errorf("%w: tournament %d season %d has %d run(s), need at least 2",
		ErrInsufficientRuns, tournamentID, seasonID, have)
}
