// ABOUTME: Error taxonomy for the embedded store wrapper.
// ABOUTME: InitError is recoverable; callers fall back to the flat store.
package kvdb

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports an absent key. Get distinguishes absence
	// from engine failure; absence is never wrapped in a ReadError.
	ErrNotFound = errors.New("kvdb: not found")

	// ErrClosed reports an operation against a closed database.
	ErrClosed = errors.New("kvdb: database closed")

	// ErrUnknownTable reports access to a table the schema never declared.
	ErrUnknownTable = errors.New("kvdb: unknown table")
)

// InitError reports that the underlying engine could not be opened.
// Callers treat it as recoverable and select the fallback store.
type InitError struct {
	Path string
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("kvdb: open %s: %v", e.Path, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// ReadError reports a failed read transaction against an open engine.
type ReadError struct {
	Table string
	Err   error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("kvdb: read %s: %v", e.Table, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a failed write transaction against an open engine.
type WriteError struct {
	Table string
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("kvdb: write %s: %v", e.Table, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
