// Package errdefs defines the error kinds surfaced by app discovery, selection
// and mounting.
//
// Every fatal condition wraps exactly one kind so callers can branch with
// errors.Is without parsing messages:
//
//   - ErrNotFound: project or app directory missing (callers decide severity)
//   - ErrConfiguration: contradictory selection, invalid surface, missing
//     descriptor, duplicate URL prefix or route
//   - ErrLoad: a unit failed to load
//   - ErrState: double initialization or double mount (programming error)
package errdefs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrConfiguration = errors.New("configuration error")
	ErrLoad          = errors.New("load error")
	ErrState         = errors.New("state error")
)

// NotFound returns an error of kind ErrNotFound.
func NotFound(format string, args ...any) error {
	return wrap(ErrNotFound, format, args...)
}

// Configuration returns an error of kind ErrConfiguration.
func Configuration(format string, args ...any) error {
	return wrap(ErrConfiguration, format, args...)
}

// State returns an error of kind ErrState.
func State(format string, args ...any) error {
	return wrap(ErrState, format, args...)
}

func wrap(kind error, format string, args ...any) error {
	return fmt.Errorf("%w: %s", kind, fmt.Sprintf(format, args...))
}

// LoadError is returned when a unit (app descriptor or controller package)
// cannot be loaded.
type LoadError struct {
	Unit string
	Err  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("load error: unit %q: %v", e.Unit, e.Err)
}

// Unwrap exposes both the kind and the cause.
func (e *LoadError) Unwrap() []error {
	return []error{ErrLoad, e.Err}
}

// UnknownAppsError is returned when a selection names apps that were not
// discovered.
type UnknownAppsError struct {
	Names []string
}

// Error implements the error interface.
func (e *UnknownAppsError) Error() string {
	return fmt.Sprintf("configuration error: unknown apps: [%s]", strings.Join(e.Names, ", "))
}

// Unwrap returns ErrConfiguration.
func (e *UnknownAppsError) Unwrap() error { return ErrConfiguration }

// PrefixConflictError is returned when two mounted apps share a URL prefix.
type PrefixConflictError struct {
	Prefix string
	First  string
	Second string
}

// Error implements the error interface.
func (e *PrefixConflictError) Error() string {
	return fmt.Sprintf("configuration error: url_prefix %q used by both %q and %q",
		e.Prefix, e.First, e.Second)
}

// Unwrap returns ErrConfiguration.
func (e *PrefixConflictError) Unwrap() error { return ErrConfiguration }
