package types

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	abserrors "github.com/randalmurphal/abacus/pkg/abacus/errors"
	"github.com/randalmurphal/abacus/pkg/abacus/value"
)

var (
	hundred   = decimal.NewFromInt(100)
	gbPrinter = message.NewPrinter(language.BritishEnglish)
)

// Number is the numeric type. Values are exact decimals.
type Number struct{}

// Name implements Type.
func (Number) Name() string { return "number" }

// Coerce accepts numbers, numeric strings and "<number>%" strings, which are
// divided by 100.
func (Number) Coerce(v value.Value) value.Result {
	switch v.Kind() {
	case value.KindNull:
		return value.Absent()
	case value.KindNumber:
		return value.Ok(v)
	case value.KindString:
		s, _ := v.AsString()
		if isNullToken(s) {
			return value.Absent()
		}
		if d, ok := value.ParseNumber(s); ok {
			return value.Ok(value.Number(d))
		}
		if pct, found := strings.CutSuffix(s, "%"); found {
			if d, ok := value.ParseNumber(pct); ok {
				return value.Ok(value.Number(d.Div(hundred)))
			}
		}
	}
	return value.Err(&abserrors.TransformError{Type: "numeric", Value: v.Repr()})
}

// Assert accepts only numbers.
func (Number) Assert(v value.Value) value.Result {
	switch v.Kind() {
	case value.KindNull:
		return value.Absent()
	case value.KindNumber:
		return value.Ok(v)
	}
	return value.Err(&abserrors.AssertError{Type: "number", Value: v.Repr()})
}

// Compare implements Type.
func (Number) Compare(a, b value.Value) bool {
	return value.Equal(a, b)
}

// Format renders a number with en-GB digit grouping and at most three
// fraction digits, e.g. 1234567.891 as "1,234,567.891".
func (Number) Format(v value.Value) string {
	d, ok := v.AsNumber()
	if !ok {
		return v.String()
	}
	return gbPrinter.Sprint(number.Decimal(d.InexactFloat64(), number.MaxFractionDigits(3)))
}

// String is the text type.
type String struct{}

// Name implements Type.
func (String) Name() string { return "string" }

// Coerce accepts strings, numbers and booleans. "" and "null" are Absent.
func (String) Coerce(v value.Value) value.Result {
	switch v.Kind() {
	case value.KindNull:
		return value.Absent()
	case value.KindString:
		s, _ := v.AsString()
		if isNullToken(s) {
			return value.Absent()
		}
		return value.Ok(v)
	case value.KindNumber, value.KindBool:
		return value.Ok(value.String(v.String()))
	}
	return value.Err(&abserrors.TransformError{Type: "string", Value: v.Repr()})
}

// Assert accepts only strings.
func (String) Assert(v value.Value) value.Result {
	switch v.Kind() {
	case value.KindNull:
		return value.Absent()
	case value.KindString:
		return value.Ok(v)
	}
	return value.Err(&abserrors.AssertError{Type: "string", Value: v.Repr()})
}

// Compare implements Type.
func (String) Compare(a, b value.Value) bool {
	return value.Equal(a, b)
}

// Format implements Formatter.
func (String) Format(v value.Value) string {
	return v.String()
}

// Boolean is the true/false type.
type Boolean struct{}

// Name implements Type.
func (Boolean) Name() string { return "boolean" }

// Coerce accepts booleans and the tokens yes/on/1/true/TRUE and
// no/off/0/false/FALSE. Null coerces to false; "" and "null" are Absent.
func (Boolean) Coerce(v value.Value) value.Result {
	switch v.Kind() {
	case value.KindNull:
		return value.Ok(value.Bool(false))
	case value.KindBool:
		return value.Ok(v)
	case value.KindNumber:
		d, _ := v.AsNumber()
		switch {
		case d.Equal(decimal.NewFromInt(1)):
			return value.Ok(value.Bool(true))
		case d.IsZero():
			return value.Ok(value.Bool(false))
		}
	case value.KindString:
		s, _ := v.AsString()
		switch s {
		case "yes", "on", "1", "true", "TRUE":
			return value.Ok(value.Bool(true))
		case "no", "off", "0", "false", "FALSE":
			return value.Ok(value.Bool(false))
		case "", "null":
			return value.Absent()
		}
	}
	return value.Err(&abserrors.TransformError{Type: "boolean", Value: v.Repr()})
}

// Assert accepts only booleans.
func (Boolean) Assert(v value.Value) value.Result {
	switch v.Kind() {
	case value.KindNull:
		return value.Absent()
	case value.KindBool:
		return value.Ok(v)
	}
	return value.Err(&abserrors.AssertError{Type: "boolean", Value: v.Repr()})
}

// Compare implements Type.
func (Boolean) Compare(a, b value.Value) bool {
	return value.Equal(a, b)
}

// Format renders True or False.
func (Boolean) Format(v value.Value) string {
	if value.IsTruthy(v) {
		return "True"
	}
	return "False"
}
