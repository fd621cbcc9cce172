package eval

import (
	"errors"

	"github.com/cockroachdb/apd/v3"
)

// Sentinel errors for evaluation failures.
var (
	// ErrDivideByZero is returned for division or modulo by zero.
	ErrDivideByZero = errors.New("eval: division by zero")

	// ErrDomain is returned when an argument falls outside a function's
	// mathematical domain (sqrt of a negative, asin beyond [-1,1], …).
	ErrDomain = errors.New("eval: argument outside function domain")

	// ErrUndefinedVariable is returned when the tree references a name
	// absent from both the constant table and the supplied bindings.
	ErrUndefinedVariable = errors.New("eval: undefined variable")

	// ErrUnsupported is returned for unknown functions or operators.
	ErrUnsupported = errors.New("eval: unsupported function or operator")

	// ErrArity is returned when a call has the wrong argument count.
	ErrArity = errors.New("eval: wrong number of arguments")
)

// DefaultPrecision is the decimal digit count used when no
// WithPrecision option is supplied. Matches IEEE 754-2008 decimal128.
const DefaultPrecision = 34

// Option configures an Evaluator at construction time.
// The context of a live Evaluator is never mutated afterwards; build a
// new instance to change precision mid-flight.
type Option func(*Evaluator)

// WithPrecision sets the decimal precision (significant digits).
// Values < 1 are ignored and the default kept.
func WithPrecision(p uint32) Option {
	return func(e *Evaluator) {
		if p >= 1 {
			e.ctx.Precision = p
		}
	}
}

// WithRounding sets the rounding mode (apd.RoundHalfEven by default).
func WithRounding(r apd.Rounder) Option {
	return func(e *Evaluator) {
		e.ctx.Rounding = r
	}
}
