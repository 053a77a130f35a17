package definition_test

import (
	"strings"

	"github.com/randalmurphal/abacus/pkg/abacus/value"
)

// shout upper-cases strings.
type shout struct{}

func (shout) Name() string { return "shout" }

func (shout) Coerce(v value.Value) value.Result {
	s, ok := v.AsString()
	if !ok {
		return value.Absent()
	}
	return value.Ok(value.String(strings.ToUpper(s)))
}

func (s shout) Assert(v value.Value) value.Result { return s.Coerce(v) }

func (shout) Compare(a, b value.Value) bool { return value.Equal(a, b) }
