package trackql

import (
	"errors"
	"fmt"
)

// Standard sentinel errors for common failure classes.
var (
	// ErrConstruction is returned when a statement or comparison is built
	// from malformed inputs.
	ErrConstruction = errors.New("trackql: invalid construction")

	// ErrSerialization is returned when a statement cannot be rendered to
	// its wire form.
	ErrSerialization = errors.New("trackql: cannot serialize statement")

	// ErrNotFound is returned when a query that expects exactly one result
	// returns none.
	ErrNotFound = errors.New("trackql: entity not found")

	// ErrMultipleResults is returned when a query that expects exactly one
	// result returns more than one.
	ErrMultipleResults = errors.New("trackql: multiple entities found")
)

// ConstructionError reports malformed builder usage: an invalid operand
// type, a disallowed clause for a statement variant, a negative limit or
// offset, and similar misuse. It is recorded at the offending call, never
// deferred to serialization.
type ConstructionError struct {
	op  string // builder call that failed, e.g. "Limit"
	msg string
}

// Error returns the error string.
func (e *ConstructionError) Error() string {
	if e.op != "" {
		return fmt.Sprintf("trackql: %s: %s", e.op, e.msg)
	}
	return fmt.Sprintf("trackql: %s", e.msg)
}

// Is reports whether the target error matches ConstructionError.
// This allows errors.Is(err, ErrConstruction) to return true.
func (e *ConstructionError) Is(err error) bool {
	return err == ErrConstruction
}

// Op returns the builder call that failed.
func (e *ConstructionError) Op() string {
	return e.op
}

// NewConstructionError returns a new ConstructionError for the given
// builder call.
func NewConstructionError(op, format string, args ...any) *ConstructionError {
	return &ConstructionError{op: op, msg: fmt.Sprintf(format, args...)}
}

// IsConstruction returns true if the error is a ConstructionError.
func IsConstruction(err error) bool {
	if err == nil {
		return false
	}
	var e *ConstructionError
	return errors.As(err, &e) || errors.Is(err, ErrConstruction)
}

// SerializationError reports an attempt to serialize an incomplete or
// contradictory statement. No partial output is produced alongside it.
type SerializationError struct {
	kind string // entity kind of the statement, if known
	msg  string
}

// Error returns the error string.
func (e *SerializationError) Error() string {
	if e.kind != "" {
		return fmt.Sprintf("trackql: serializing %s statement: %s", e.kind, e.msg)
	}
	return fmt.Sprintf("trackql: serializing statement: %s", e.msg)
}

// Is reports whether the target error matches SerializationError.
func (e *SerializationError) Is(err error) bool {
	return err == ErrSerialization
}

// NewSerializationError returns a new SerializationError for a statement
// on the given entity kind.
func NewSerializationError(kind, format string, args ...any) *SerializationError {
	return &SerializationError{kind: kind, msg: fmt.Sprintf(format, args...)}
}

// IsSerialization returns true if the error is a SerializationError.
func IsSerialization(err error) bool {
	if err == nil {
		return false
	}
	var e *SerializationError
	return errors.As(err, &e) || errors.Is(err, ErrSerialization)
}

// NotFoundError is returned by a result handle when a single entity was
// requested and zero were found.
type NotFoundError struct {
	kind string
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	if e.kind != "" {
		return fmt.Sprintf("trackql: %s not found", e.kind)
	}
	return "trackql: entity not found"
}

// Is reports whether the target error matches NotFoundError.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// Kind returns the entity kind that was queried.
func (e *NotFoundError) Kind() string {
	return e.kind
}

// NewNotFoundError returns a new NotFoundError for the given entity kind.
func NewNotFoundError(kind string) *NotFoundError {
	return &NotFoundError{kind: kind}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// MultipleResultsError is returned by a result handle when a single entity
// was requested and more than one was found.
type MultipleResultsError struct {
	kind  string
	count int // number of results returned, -1 if unknown
}

// Error returns the error string.
func (e *MultipleResultsError) Error() string {
	if e.count >= 0 {
		return fmt.Sprintf("trackql: %s not singular (got %d results, expected 1)", e.kind, e.count)
	}
	return fmt.Sprintf("trackql: %s not singular", e.kind)
}

// Is reports whether the target error matches MultipleResultsError.
func (e *MultipleResultsError) Is(err error) bool {
	return err == ErrMultipleResults
}

// Kind returns the entity kind that was queried.
func (e *MultipleResultsError) Kind() string {
	return e.kind
}

// Count returns the number of results, or -1 if unknown.
func (e *MultipleResultsError) Count() int {
	return e.count
}

// NewMultipleResultsError returns a new MultipleResultsError for the given
// entity kind and result count.
func NewMultipleResultsError(kind string, count int) *MultipleResultsError {
	return &MultipleResultsError{kind: kind, count: count}
}

// IsMultipleResults returns true if the error is a MultipleResultsError.
func IsMultipleResults(err error) bool {
	if err == nil {
		return false
	}
	var e *MultipleResultsError
	return errors.As(err, &e) || errors.Is(err, ErrMultipleResults)
}
