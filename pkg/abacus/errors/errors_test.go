package errors

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestCategoryString(t *testing.T) {
	tests := []struct {
		category Category
		expected string
	}{
		{CategoryUnknown, "unknown"},
		{CategoryType, "type"},
		{CategoryOperator, "operator"},
		{CategoryConfig, "config"},
		{CategoryIO, "io"},
		{Category(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.category.String(); got != tt.expected {
				t.Errorf("Category(%d).String() = %s, want %s", tt.category, got, tt.expected)
			}
		})
	}
}

func TestCategorize(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Category
	}{
		{"nil error", nil, CategoryUnknown},
		{"transform", &TransformError{Type: "numeric", Value: `"abc"`}, CategoryType},
		{"assert", &AssertError{Type: "string", Value: "1"}, CategoryType},
		{"absent item", fmt.Errorf("index 2: %w", ErrCollectionItemAbsent), CategoryType},
		{"not numeric", ErrNotNumeric, CategoryType},
		{"negate non-numeric", &OperatorError{Operator: "-", Right: "a", Err: ErrNotNumeric}, CategoryOperator},
		{"unsupported operator", &OperatorError{Left: "a", Operator: "+", Right: "1", Err: ErrUnsupportedOperator}, CategoryOperator},
		{"division by zero", ErrDivisionByZero, CategoryOperator},
		{"missing column", &LookupError{Path: "x.csv", Err: ErrMissingAggregateColumn}, CategoryConfig},
		{"unsupported aggregate", ErrUnsupportedAggregate, CategoryConfig},
		{"collaborator", &CollaboratorError{Node: "symbol", Collaborator: "symbol registry"}, CategoryConfig},
		{"unknown scheme", ErrUnknownScheme, CategoryConfig},
		{"cycle", fmt.Errorf("%w: a", ErrSymbolCycle), CategoryConfig},
		{"delimiter", &LookupError{Path: "x.tsv", Err: ErrInvalidDelimiter}, CategoryConfig},
		{"source", &SourceError{Path: "x.csv", Op: "open", Err: os.ErrNotExist}, CategoryIO},
		{"not found", ErrSourceNotFound, CategoryIO},
		{"cancelled", context.Canceled, CategoryIO},
		{"plain", errors.New("plain"), CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Categorize(tt.err); got != tt.expected {
				t.Errorf("Categorize(%v) = %s, want %s", tt.err, got, tt.expected)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"transform", &TransformError{Type: "numeric", Value: `"abc"`}, `unable to transform into [numeric] from ["abc"]`},
		{"assert", &AssertError{Type: "string", Value: "1"}, "expected [string], got [1]"},
		{"binary operator", &OperatorError{Left: `"a"`, Operator: "+", Right: "1", Err: ErrUnsupportedOperator}, `["a"] + [1]: unsupported operator`},
		{"unary operator", &OperatorError{Operator: "-", Right: `"a"`, Err: ErrNotNumeric}, `operator - ["a"]: value is not numeric`},
		{"bare operator", &OperatorError{Operator: "~", Err: ErrUnsupportedOperator}, "operator ~: unsupported operator"},
		{"collaborator", &CollaboratorError{Node: "symbol", Collaborator: "symbol registry"}, "symbol evaluator requires a symbol registry"},
		{"source", &SourceError{Path: "x.csv", Op: "open", Err: ErrSourceNotFound}, "row source open x.csv: row source not found"},
		{"lookup", &LookupError{Path: "x.csv", Err: ErrMissingAggregateColumn}, "lookup x.csv: aggregate column is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	src := &SourceError{Path: "x.csv", Op: "open", Err: os.ErrNotExist}
	if !errors.Is(src, os.ErrNotExist) {
		t.Error("SourceError should unwrap to its cause")
	}

	collab := &CollaboratorError{Node: "symbol", Collaborator: "symbol registry"}
	if !errors.Is(collab, ErrMissingCollaborator) {
		t.Error("CollaboratorError should unwrap to ErrMissingCollaborator")
	}

	wrapped := fmt.Errorf("resolve premium: %w", &LookupError{Path: "p.csv", Err: ErrUnsupportedAggregate})
	var lookupErr *LookupError
	if !errors.As(wrapped, &lookupErr) || lookupErr.Path != "p.csv" {
		t.Error("LookupError should be reachable through wrapping")
	}
}

func TestHelpers(t *testing.T) {
	if !IsType(&TransformError{}) {
		t.Error("IsType(TransformError) = false")
	}
	if !IsConfig(ErrMissingAggregateColumn) {
		t.Error("IsConfig(ErrMissingAggregateColumn) = false")
	}
	if !IsIO(&SourceError{Err: os.ErrNotExist}) {
		t.Error("IsIO(SourceError) = false")
	}
}
