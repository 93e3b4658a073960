// Package errors provides the error types used across the resume
// preparation pipeline, built on top of cockroachdb/errors so every
// constructor attaches a stack trace.
//
// The pipeline distinguishes three failure classes: a missing required
// column aborts the run (MissingColumnError), a cell that fails a text
// heuristic is never an error and resolves to the documented per-field
// default, and a column that should be numeric but is not is recovered by
// best-effort coercion (StructuralError is used when even that contract is
// broken).
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// MissingColumnError reports that a stage's hard-required column is absent
// from the record set. It is fatal: the chain aborts without output.
type MissingColumnError struct {
	Stage  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("hhprep: %s: required column %q is missing", e.Stage, e.Column)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *MissingColumnError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("stage", e.Stage).
		Str("column", e.Column).
		Str("type", "MissingColumnError")
}

// NewMissingColumnError creates a MissingColumnError with a stack trace.
func NewMissingColumnError(stage, column string) error {
	err := &MissingColumnError{Stage: stage, Column: column}
	return errors.WithStack(err)
}

// StructuralError reports a structural integrity violation: a column that
// must be fully numeric after encoding still carries non-numeric values,
// or an ordinal category falls outside its fixed rank table.
type StructuralError struct {
	Column string
	Detail string
}

func (e *StructuralError) Error() string {
	return fmt.Sprintf("hhprep: column %q: %s", e.Column, e.Detail)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *StructuralError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("column", e.Column).
		Str("detail", e.Detail).
		Str("type", "StructuralError")
}

// NewStructuralError creates a StructuralError with a stack trace.
func NewStructuralError(column, detail string) error {
	err := &StructuralError{Column: column, Detail: detail}
	return errors.WithStack(err)
}

// DimensionError reports a shape mismatch between two arrays.
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns
}

func (e *DimensionError) Error() string {
	axisName := "columns"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("hhprep: %s: dimension mismatch on axis %d (%s): expected %d, got %d",
		e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the structured error fields to a zerolog event.
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DimensionError")
}

// NewDimensionError creates a DimensionError with a stack trace.
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValueError reports an invalid argument or an invalid value in context.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("hhprep: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// NotFittedError reports that an encoder or model is used before Fit.
type NotFittedError struct {
	Name   string
	Method string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("hhprep: %s is not fitted yet, call Fit() before %s()", e.Name, e.Method)
}

// NewNotFittedError creates a NotFittedError with a stack trace.
func NewNotFittedError(name, method string) error {
	err := &NotFittedError{Name: name, Method: method}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain matching target's type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an existing error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates an error with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	common sentinel errors
//
// ===========================================================================

var (
	// ErrEmptyFrame is returned when an operation needs at least one row.
	ErrEmptyFrame = New("empty record set")

	// ErrSingularMatrix is returned when a linear system cannot be solved.
	ErrSingularMatrix = New("singular matrix")
)
