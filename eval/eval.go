package eval

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"github.com/miounet11/jisuanqipc-sub000/ast"
)

// Evaluator computes decimal values from AST trees. Safe for concurrent
// use as long as its configuration is not changed (it cannot be: options
// apply only at construction).
type Evaluator struct {
	ctx       apd.Context
	constants map[string]*apd.Decimal
}

// Constant literals, well beyond any practical precision setting.
// Materialized per instance, rounded to the instance's precision.
const (
	piLiteral  = "3.14159265358979323846264338327950288419716939937511"
	eLiteral   = "2.71828182845904523536028747135266249775724709369996"
	phiLiteral = "1.61803398874989484820458683436563811772030917980576"
)

// New builds an Evaluator with DefaultPrecision and half-even rounding,
// adjusted by any options.
func New(opts ...Option) *Evaluator {
	e := &Evaluator{ctx: *apd.BaseContext.WithPrecision(DefaultPrecision)}
	for _, opt := range opts {
		opt(e)
	}
	e.constants = map[string]*apd.Decimal{
		"pi":  e.mustConstant(piLiteral),
		"e":   e.mustConstant(eLiteral),
		"phi": e.mustConstant(phiLiteral),
	}
	return e
}

// mustConstant parses a constant literal and rounds it to the
// instance precision. The literals are package-controlled, so a parse
// failure is a programmer error.
func (e *Evaluator) mustConstant(lit string) *apd.Decimal {
	d, _, err := apd.NewFromString(lit)
	if err != nil {
		panic("eval: bad constant literal: " + lit)
	}
	if _, err := e.ctx.Round(d, d); err != nil {
		panic("eval: cannot round constant: " + err.Error())
	}
	return d
}

// Precision returns the configured significant-digit count.
func (e *Evaluator) Precision() uint32 { return e.ctx.Precision }

// Rounding returns the configured rounding mode.
func (e *Evaluator) Rounding() apd.Rounder { return e.ctx.Rounding }

// Evaluate walks the tree and returns its decimal value under the given
// variable bindings. The bindings map may be nil for variable-free
// expressions. The tree and bindings are never mutated.
//
// Errors: ErrDivideByZero, ErrDomain, ErrUndefinedVariable,
// ErrUnsupported, ErrArity — each possibly wrapped with detail.
// Complexity: O(nodes) decimal operations.
func (e *Evaluator) Evaluate(n ast.Node, vars map[string]*apd.Decimal) (*apd.Decimal, error) {
	switch x := n.(type) {
	case *ast.Number:
		out := new(apd.Decimal).Set(x.Value)
		return out, nil

	case *ast.Variable:
		if c, ok := e.constants[x.Name]; ok {
			return new(apd.Decimal).Set(c), nil
		}
		if v, ok := vars[x.Name]; ok {
			return new(apd.Decimal).Set(v), nil
		}
		return nil, fmt.Errorf("%w: %q", ErrUndefinedVariable, x.Name)

	case *ast.Unary:
		operand, err := e.Evaluate(x.X, vars)
		if err != nil {
			return nil, err
		}
		return e.applyUnary(x.Op, operand)

	case *ast.Binary:
		left, err := e.Evaluate(x.Left, vars)
		if err != nil {
			return nil, err
		}
		right, err := e.Evaluate(x.Right, vars)
		if err != nil {
			return nil, err
		}
		return e.applyBinary(x.Op, left, right)

	case *ast.Call:
		args := make([]*apd.Decimal, len(x.Args))
		for i, a := range x.Args {
			v, err := e.Evaluate(a, vars)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return e.call(x.Name, args)

	case nil:
		return nil, fmt.Errorf("%w: nil node", ErrUnsupported)

	default:
		return nil, fmt.Errorf("%w: unknown node type", ErrUnsupported)
	}
}

// EvaluateFloat is the sampling bridge: it binds float64 variables,
// evaluates, and converts the result back to float64. Non-finite
// bindings or results fail with ErrDomain, which samplers treat as a
// skippable sample.
func (e *Evaluator) EvaluateFloat(n ast.Node, vars map[string]float64) (float64, error) {
	var bound map[string]*apd.Decimal
	if len(vars) > 0 {
		bound = make(map[string]*apd.Decimal, len(vars))
		for name, f := range vars {
			d := new(apd.Decimal)
			if _, err := d.SetFloat64(f); err != nil {
				return 0, fmt.Errorf("%w: binding %q is not finite", ErrDomain, name)
			}
			bound[name] = d
		}
	}
	out, err := e.Evaluate(n, bound)
	if err != nil {
		return 0, err
	}
	f, err := out.Float64()
	if err != nil {
		return 0, fmt.Errorf("%w: result exceeds float64 range", ErrDomain)
	}
	return f, nil
}

// applyUnary handles prefix + and -.
func (e *Evaluator) applyUnary(op string, x *apd.Decimal) (*apd.Decimal, error) {
	out := new(apd.Decimal)
	switch op {
	case "+":
		out.Set(x)
		return out, nil
	case "-":
		if _, err := e.ctx.Neg(out, x); err != nil {
			return nil, fmt.Errorf("%w: negate: %v", ErrUnsupported, err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unary %q", ErrUnsupported, op)
	}
}

// applyBinary handles the six infix operators. Division and modulo by
// zero are pre-checked so the typed sentinel, not an apd error, reaches
// the caller.
func (e *Evaluator) applyBinary(op string, left, right *apd.Decimal) (*apd.Decimal, error) {
	out := new(apd.Decimal)
	var err error
	switch op {
	case "+":
		_, err = e.ctx.Add(out, left, right)
	case "-":
		_, err = e.ctx.Sub(out, left, right)
	case "*":
		_, err = e.ctx.Mul(out, left, right)
	case "/":
		if right.IsZero() {
			return nil, fmt.Errorf("%w: %s / 0", ErrDivideByZero, left.String())
		}
		_, err = e.ctx.Quo(out, left, right)
	case "%":
		if right.IsZero() {
			return nil, fmt.Errorf("%w: %s %% 0", ErrDivideByZero, left.String())
		}
		_, err = e.ctx.Rem(out, left, right)
	case "^":
		if _, perr := e.ctx.Pow(out, left, right); perr != nil {
			return nil, fmt.Errorf("%w: %s ^ %s", ErrDomain, left.String(), right.String())
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: operator %q", ErrUnsupported, op)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDomain, op, err)
	}
	return out, nil
}
