// Package errors provides the error taxonomy for abacus resolutions.
//
// Resolution failures are values carried inside value.Result, never panics.
// Every failure wraps one of the sentinels in this package, so callers can
// classify it with errors.Is, errors.As or Categorize:
//   - Type: a coercion or assertion rejected its input
//   - Operator: no overloader accepted the operands, or arithmetic failed
//   - Config: a lookup or evaluator is missing required configuration
//   - IO: a row source could not be opened or read
package errors

import (
	"context"
	"errors"
)

// Category groups errors by what the caller can do about them.
type Category int

const (
	// CategoryUnknown is used for errors that carry no abacus sentinel.
	CategoryUnknown Category = iota

	// CategoryType indicates input data of the wrong shape.
	// Examples: "abc" coerced to a number, a list item that is absent.
	CategoryType

	// CategoryOperator indicates an operator that cannot apply.
	// Examples: "a" + 1, division by zero, negating a string.
	CategoryOperator

	// CategoryConfig indicates a malformed tree or missing collaborator.
	// Examples: sum without an aggregate column, symbol without a registry.
	CategoryConfig

	// CategoryIO indicates a row source failure.
	// Examples: missing CSV file, unreadable SQLite table, cancelled scan.
	CategoryIO
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryType:
		return "type"
	case CategoryOperator:
		return "operator"
	case CategoryConfig:
		return "config"
	case CategoryIO:
		return "io"
	default:
		return "unknown"
	}
}

// Categorize determines the category of err.
func Categorize(err error) Category {
	if err == nil {
		return CategoryUnknown
	}

	var transformErr *TransformError
	var assertErr *AssertError
	if errors.As(err, &transformErr) || errors.As(err, &assertErr) ||
		errors.Is(err, ErrCollectionItemAbsent) || errors.Is(err, ErrNotNumeric) && !isOperator(err) {
		return CategoryType
	}

	if isOperator(err) {
		return CategoryOperator
	}

	switch {
	case errors.Is(err, ErrMissingAggregateColumn),
		errors.Is(err, ErrUnsupportedAggregate),
		errors.Is(err, ErrMissingCollaborator),
		errors.Is(err, ErrSymbolCycle),
		errors.Is(err, ErrUnknownType),
		errors.Is(err, ErrUnknownScheme),
		errors.Is(err, ErrInvalidDelimiter):
		return CategoryConfig
	}

	var sourceErr *SourceError
	if errors.As(err, &sourceErr) || errors.Is(err, ErrSourceNotFound) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return CategoryIO
	}

	return CategoryUnknown
}

func isOperator(err error) bool {
	var opErr *OperatorError
	return errors.As(err, &opErr) || errors.Is(err, ErrUnsupportedOperator) || errors.Is(err, ErrDivisionByZero)
}

// IsType reports whether err is a type error.
func IsType(err error) bool {
	return Categorize(err) == CategoryType
}

// IsConfig reports whether err is a configuration error.
func IsConfig(err error) bool {
	return Categorize(err) == CategoryConfig
}

// IsIO reports whether err is a row source failure.
func IsIO(err error) bool {
	return Categorize(err) == CategoryIO
}
