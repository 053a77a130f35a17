package value

import "fmt"

type state uint8

const (
	stateAbsent state = iota
	statePresent
	stateError
)

// Result is the outcome of resolving a node: an error, an explicit absence,
// or a present value. The zero Result is absent.
type Result struct {
	state state
	value Value
	err   error
}

// Ok returns a present result.
func Ok(v Value) Result {
	return Result{state: statePresent, value: v}
}

// Absent returns the "no value" result.
func Absent() Result {
	return Result{}
}

// Err returns a failed result. A nil error yields an absent result.
func Err(err error) Result {
	if err == nil {
		return Absent()
	}
	return Result{state: stateError, err: err}
}

// Maybe returns Absent for Null and a present result otherwise.
func Maybe(v Value) Result {
	if v.IsNull() {
		return Absent()
	}
	return Ok(v)
}

// IsErr reports whether the result carries an error.
func (r Result) IsErr() bool { return r.state == stateError }

// IsAbsent reports whether the result is the explicit "no value".
func (r Result) IsAbsent() bool { return r.state == stateAbsent }

// IsPresent reports whether the result carries a value.
func (r Result) IsPresent() bool { return r.state == statePresent }

// Value returns the present value. ok is false for absent and failed results.
func (r Result) Value() (v Value, ok bool) {
	return r.value, r.state == statePresent
}

// Err returns the error, or nil.
func (r Result) Err() error { return r.err }

// OrNull returns the present value, or Null when there is none.
func (r Result) OrNull() Value {
	if r.state == statePresent {
		return r.value
	}
	return Null
}

// Unwrap splits the result into Go's usual (value, present, error) triple.
func (r Result) Unwrap() (Value, bool, error) {
	return r.value, r.state == statePresent, r.err
}

// Then calls fn with the present value. Absent and failed results pass
// through unchanged.
func (r Result) Then(fn func(Value) Result) Result {
	if r.state != statePresent {
		return r
	}
	return fn(r.value)
}

// String describes the result for logs and test failures.
func (r Result) String() string {
	switch r.state {
	case statePresent:
		return fmt.Sprintf("Present(%s)", r.value)
	case stateError:
		return fmt.Sprintf("Error(%v)", r.err)
	default:
		return "Absent"
	}
}

// Outcome names the state: "present", "absent" or "error".
func (r Result) Outcome() string {
	switch r.state {
	case statePresent:
		return "present"
	case stateError:
		return "error"
	default:
		return "absent"
	}
}
