package lookup

import (
	"github.com/randalmurphal/abacus/pkg/abacus/operators"
	"github.com/randalmurphal/abacus/pkg/abacus/rowsource"
	"github.com/randalmurphal/abacus/pkg/abacus/value"
)

// Matcher decides whether a row passes a filter.
type Matcher interface {
	Match(row rowsource.Row) (bool, error)
}

// Exact matches rows whose Column cell equals Value exactly.
type Exact struct {
	Column string
	Value  string
}

// NewExact builds an Exact matcher comparing against the text form of v.
func NewExact(column string, v value.Value) Exact {
	return Exact{Column: column, Value: v.String()}
}

// Match implements Matcher. A row without the column does not match.
func (m Exact) Match(row rowsource.Row) (bool, error) {
	cell, ok := row.Get(m.Column)
	return ok && cell == m.Value, nil
}

// Range matches rows whose band [MinColumn, MaxColumn) contains Value.
//
// The band is half-open, so a value equal to one band's max falls in the
// band whose min it equals. Comparison is numeric when the value and both
// bounds are numeric, and lexicographic otherwise.
type Range struct {
	MinColumn string
	MaxColumn string
	Value     value.Value
}

// Match implements Matcher.
func (m Range) Match(row rowsource.Row) (bool, error) {
	lo, ok := row.Get(m.MinColumn)
	if !ok {
		return false, nil
	}
	hi, ok := row.Get(m.MaxColumn)
	if !ok {
		return false, nil
	}

	if n, ok := value.ToNumber(m.Value); ok {
		l, lok := value.ParseNumber(lo)
		h, hok := value.ParseNumber(hi)
		if lok && hok {
			return n.Cmp(l) >= 0 && n.Cmp(h) < 0, nil
		}
	}
	s := m.Value.String()
	return s >= lo && s < hi, nil
}

// Compare matches rows where "<cell> Operator Value" is truthy under Chain.
// Cells are passed to the chain as strings.
type Compare struct {
	Column   string
	Operator string
	Value    value.Value
	Chain    *operators.Chain
}

// Match implements Matcher. A row without the column does not match; an
// operator error stops the lookup.
func (m Compare) Match(row rowsource.Row) (bool, error) {
	cell, ok := row.Get(m.Column)
	if !ok {
		return false, nil
	}
	chain := m.Chain
	if chain == nil {
		chain = defaultChain
	}
	v, present, err := chain.Evaluate(value.String(cell), m.Value, m.Operator).Unwrap()
	if err != nil {
		return false, err
	}
	return present && value.IsTruthy(v), nil
}

var defaultChain = operators.New()

func matchAll(row rowsource.Row, matchers []Matcher) (bool, error) {
	for _, m := range matchers {
		ok, err := m.Match(row)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
