// Package eval walks an ast.Node tree and produces an arbitrary-precision
// decimal result.
//
// Every Evaluator owns its own apd.Context — precision and rounding mode
// are per-instance, never process-wide, so two evaluators with different
// settings cannot interfere. Evaluate is stateless and pure with respect
// to (tree, bindings, context): repeated evaluation of the same inputs
// yields the identical decimal.
//
// Angle handling is a deliberate layering decision: the evaluator always
// works in radians. Degree/gradian conversion happens in the caller
// (see the sample package's polar mode) before values reach Evaluate.
//
// Failure is always a typed sentinel: ErrDivideByZero, ErrDomain,
// ErrUndefinedVariable, ErrUnsupported or ErrArity.
package eval
