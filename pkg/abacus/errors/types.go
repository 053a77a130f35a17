package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for value conversion.
var (
	// ErrNotNumeric indicates an operand that cannot be read as a number.
	ErrNotNumeric = errors.New("value is not numeric")

	// ErrCollectionItemAbsent indicates a list or dict member that coerced to
	// no value. Collections cannot contain holes.
	ErrCollectionItemAbsent = errors.New("collection item cannot be absent")

	// ErrUnknownType indicates a type name that is not registered.
	ErrUnknownType = errors.New("unknown type")
)

// Sentinel errors for operators.
var (
	// ErrUnsupportedOperator indicates no overloader accepted the operands.
	ErrUnsupportedOperator = errors.New("unsupported operator")

	// ErrDivisionByZero indicates a division with a zero divisor.
	ErrDivisionByZero = errors.New("division by zero")
)

// Sentinel errors for lookups and their row sources.
var (
	// ErrMissingAggregateColumn indicates sum/average/min/max without a column.
	ErrMissingAggregateColumn = errors.New("aggregate column is required")

	// ErrUnsupportedAggregate indicates an aggregate tag that is not known.
	ErrUnsupportedAggregate = errors.New("unsupported aggregate")

	// ErrSourceNotFound indicates the row source does not exist.
	ErrSourceNotFound = errors.New("row source not found")

	// ErrUnknownScheme indicates a row source path with an unregistered scheme.
	ErrUnknownScheme = errors.New("unknown row source scheme")

	// ErrInvalidDelimiter indicates a lookup delimiter that is not one character.
	ErrInvalidDelimiter = errors.New("delimiter must be a single character")
)

// ErrMissingCollaborator indicates an evaluator was asked to run without a
// collaborator it needs, such as a symbol registry.
var ErrMissingCollaborator = errors.New("missing collaborator")

// ErrSymbolCycle indicates a symbol whose definition refers back to itself.
var ErrSymbolCycle = errors.New("symbol refers to itself")

// TransformError indicates a lenient coercion that could not be performed.
type TransformError struct {
	// Type is the target type name.
	Type string
	// Value is a printable form of the rejected input.
	Value string
}

// Error implements the error interface.
func (e *TransformError) Error() string {
	return fmt.Sprintf("unable to transform into [%s] from [%s]", e.Type, e.Value)
}

// AssertError indicates a strict assertion that failed.
type AssertError struct {
	Type  string
	Value string
}

// Error implements the error interface.
func (e *AssertError) Error() string {
	return fmt.Sprintf("expected [%s], got [%s]", e.Type, e.Value)
}

// OperatorError identifies the operand triple an operator could not handle.
type OperatorError struct {
	Left     string
	Operator string
	Right    string
	// Err is ErrUnsupportedOperator, ErrNotNumeric or ErrDivisionByZero.
	Err error
}

// Error implements the error interface.
func (e *OperatorError) Error() string {
	if e.Right == "" && e.Left == "" {
		return fmt.Sprintf("operator %s: %v", e.Operator, e.Err)
	}
	if e.Left == "" {
		return fmt.Sprintf("operator %s [%s]: %v", e.Operator, e.Right, e.Err)
	}
	return fmt.Sprintf("[%s] %s [%s]: %v", e.Left, e.Operator, e.Right, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *OperatorError) Unwrap() error {
	return e.Err
}

// CollaboratorError indicates a node that could not be evaluated because a
// required collaborator was not supplied.
type CollaboratorError struct {
	// Node is the node kind being evaluated.
	Node string
	// Collaborator names what was missing.
	Collaborator string
}

// Error implements the error interface.
func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s evaluator requires a %s", e.Node, e.Collaborator)
}

// Unwrap returns ErrMissingCollaborator for errors.Is support.
func (e *CollaboratorError) Unwrap() error {
	return ErrMissingCollaborator
}

// SourceError wraps a failure to open or read a row source.
type SourceError struct {
	// Path is the row source location.
	Path string
	// Op is the operation that failed ("open", "read").
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("row source %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// LookupError wraps a lookup configuration failure with its source path.
type LookupError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *LookupError) Unwrap() error {
	return e.Err
}
