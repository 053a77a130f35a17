package lookup

import (
	"fmt"
	"strings"

	abserrors "github.com/randalmurphal/abacus/pkg/abacus/errors"
	"github.com/randalmurphal/abacus/pkg/abacus/rowsource"
)

// Aggregate selects how matched rows are reduced to one value.
type Aggregate string

// Aggregates. The zero Aggregate behaves as First.
const (
	First   Aggregate = "first"
	Last    Aggregate = "last"
	Count   Aggregate = "count"
	Sum     Aggregate = "sum"
	Average Aggregate = "average"
	Min     Aggregate = "min"
	Max     Aggregate = "max"
)

// Aggregates lists the supported aggregates.
var Aggregates = []Aggregate{First, Last, Count, Sum, Average, Min, Max}

// ParseAggregate parses an aggregate tag. It is case-insensitive, accepts
// "avg" for average, and maps "" to First.
func ParseAggregate(s string) (Aggregate, error) {
	switch a := Aggregate(strings.ToLower(strings.TrimSpace(s))); a {
	case "":
		return First, nil
	case "avg":
		return Average, nil
	case First, Last, Count, Sum, Average, Min, Max:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q", abserrors.ErrUnsupportedAggregate, s)
}

// NeedsColumn reports whether the aggregate reads an aggregate column.
func (a Aggregate) NeedsColumn() bool {
	switch a {
	case Sum, Average, Min, Max:
		return true
	}
	return false
}

func (a Aggregate) orDefault() Aggregate {
	if a == "" {
		return First
	}
	return a
}

// Query is one lookup with its filter values already resolved.
type Query struct {
	Source   rowsource.Spec
	Matchers []Matcher
	// Columns selects the output. Empty returns the whole row as a dict, one
	// column returns that cell, several return a dict in the given order.
	Columns         []string
	Aggregate       Aggregate
	AggregateColumn string
}

// aggregateColumn returns the column Sum/Average/Min/Max read. With no
// explicit column, a single requested column stands in for it.
func (q Query) aggregateColumn() (string, error) {
	if !q.Aggregate.NeedsColumn() {
		return q.AggregateColumn, nil
	}
	if q.AggregateColumn != "" {
		return q.AggregateColumn, nil
	}
	if len(q.Columns) == 1 {
		return q.Columns[0], nil
	}
	return "", abserrors.ErrMissingAggregateColumn
}
