package eval

import (
	"fmt"
	"math"

	"github.com/cockroachdb/apd/v3"
)

// builtin describes one dispatchable function: its arity bounds and its
// implementation. maxArgs == variadic means "at least minArgs".
type builtin struct {
	minArgs int
	maxArgs int
	apply   func(e *Evaluator, args []*apd.Decimal) (*apd.Decimal, error)
}

const variadic = -1

var (
	one    = apd.New(1, 0)
	negOne = apd.New(-1, 0)
)

// builtins is the single dispatch table: every callable name, its arity
// and its domain checks live here.
var builtins = map[string]builtin{
	"sin":  {1, 1, func(e *Evaluator, a []*apd.Decimal) (*apd.Decimal, error) { return e.float1(math.Sin, a[0]) }},
	"cos":  {1, 1, func(e *Evaluator, a []*apd.Decimal) (*apd.Decimal, error) { return e.float1(math.Cos, a[0]) }},
	"tan":  {1, 1, func(e *Evaluator, a []*apd.Decimal) (*apd.Decimal, error) { return e.float1(math.Tan, a[0]) }},
	"atan": {1, 1, func(e *Evaluator, a []*apd.Decimal) (*apd.Decimal, error) { return e.float1(math.Atan, a[0]) }},

	"asin": {1, 1, func(e *Evaluator, a []*apd.Decimal) (*apd.Decimal, error) {
		if a[0].Cmp(negOne) < 0 || a[0].Cmp(one) > 0 {
			return nil, fmt.Errorf("%w: asin(%s), argument must be in [-1,1]", ErrDomain, a[0].String())
		}
		return e.float1(math.Asin, a[0])
	}},
	"acos": {1, 1, func(e *Evaluator, a []*apd.Decimal) (*apd.Decimal, error) {
		if a[0].Cmp(negOne) < 0 || a[0].Cmp(one) > 0 {
			return nil, fmt.Errorf("%w: acos(%s), argument must be in [-1,1]", ErrDomain, a[0].String())
		}
		return e.float1(math.Acos, a[0])
	}},

	"ln": {1, 1, func(e *Evaluator, a []*apd.Decimal) (*apd.Decimal, error) {
		if a[0].Sign() <= 0 {
			return nil, fmt.Errorf("%w: ln(%s), argument must be > 0", ErrDomain, a[0].String())
		}
		return e.ctxOp1(e.ctx.Ln, a[0])
	}},
	"log": {1, 1, func(e *Evaluator, a []*apd.Decimal) (*apd.Decimal, error) {
		if a[0].Sign() <= 0 {
			return nil, fmt.Errorf("%w: log(%s), argument must be > 0", ErrDomain, a[0].String())
		}
		return e.ctxOp1(e.ctx.Log10, a[0])
	}},
	"sqrt": {1, 1, func(e *Evaluator, a []*apd.Decimal) (*apd.Decimal, error) {
		if a[0].Sign() < 0 {
			return nil, fmt.Errorf("%w: sqrt(%s), argument must be >= 0", ErrDomain, a[0].String())
		}
		return e.ctxOp1(e.ctx.Sqrt, a[0])
	}},
	"exp": {1, 1, func(e *Evaluator, a []*apd.Decimal) (*apd.Decimal, error) {
		return e.ctxOp1(e.ctx.Exp, a[0])
	}},
	"abs": {1, 1, func(e *Evaluator, a []*apd.Decimal) (*apd.Decimal, error) {
		return e.ctxOp1(e.ctx.Abs, a[0])
	}},
	"ceil": {1, 1, func(e *Evaluator, a []*apd.Decimal) (*apd.Decimal, error) {
		return e.ctxOp1(e.ctx.Ceil, a[0])
	}},
	"floor": {1, 1, func(e *Evaluator, a []*apd.Decimal) (*apd.Decimal, error) {
		return e.ctxOp1(e.ctx.Floor, a[0])
	}},

	// round uses half-up ("school") rounding regardless of the context
	// mode, matching calculator display conventions.
	"round": {1, 1, func(e *Evaluator, a []*apd.Decimal) (*apd.Decimal, error) {
		rctx := e.ctx
		rctx.Rounding = apd.RoundHalfUp
		out := new(apd.Decimal)
		if _, err := rctx.RoundToIntegralValue(out, a[0]); err != nil {
			return nil, fmt.Errorf("%w: round: %v", ErrDomain, err)
		}
		return out, nil
	}},

	"pow": {2, 2, func(e *Evaluator, a []*apd.Decimal) (*apd.Decimal, error) {
		return e.applyBinary("^", a[0], a[1])
	}},

	"max": {2, variadic, func(e *Evaluator, a []*apd.Decimal) (*apd.Decimal, error) {
		best := a[0]
		for _, v := range a[1:] {
			if v.Cmp(best) > 0 {
				best = v
			}
		}
		return new(apd.Decimal).Set(best), nil
	}},
	"min": {2, variadic, func(e *Evaluator, a []*apd.Decimal) (*apd.Decimal, error) {
		best := a[0]
		for _, v := range a[1:] {
			if v.Cmp(best) < 0 {
				best = v
			}
		}
		return new(apd.Decimal).Set(best), nil
	}},

	"factorial": {1, 1, func(e *Evaluator, a []*apd.Decimal) (*apd.Decimal, error) {
		n, err := a[0].Int64()
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: factorial(%s), argument must be a non-negative integer", ErrDomain, a[0].String())
		}
		out := apd.New(1, 0)
		step := new(apd.Decimal)
		for i := int64(2); i <= n; i++ {
			step.SetInt64(i)
			if _, err := e.ctx.Mul(out, out, step); err != nil {
				return nil, fmt.Errorf("%w: factorial(%d): %v", ErrDomain, n, err)
			}
		}
		return out, nil
	}},
}

// call validates arity against the dispatch table and applies the
// function. Unknown names fail with ErrUnsupported, bad counts with
// ErrArity.
func (e *Evaluator) call(name string, args []*apd.Decimal) (*apd.Decimal, error) {
	fn, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w: function %q", ErrUnsupported, name)
	}
	if len(args) < fn.minArgs {
		return nil, fmt.Errorf("%w: %s requires at least %d argument(s), got %d",
			ErrArity, name, fn.minArgs, len(args))
	}
	if fn.maxArgs != variadic && len(args) > fn.maxArgs {
		return nil, fmt.Errorf("%w: %s takes at most %d argument(s), got %d",
			ErrArity, name, fn.maxArgs, len(args))
	}
	return fn.apply(e, args)
}

// ctxOp1 runs a one-operand context operation into a fresh decimal.
func (e *Evaluator) ctxOp1(op func(*apd.Decimal, *apd.Decimal) (apd.Condition, error), x *apd.Decimal) (*apd.Decimal, error) {
	out := new(apd.Decimal)
	if _, err := op(out, x); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDomain, err)
	}
	return out, nil
}

// float1 bridges a one-argument function through float64 (used for the
// trigonometric family, which has no decimal-native implementation) and
// rounds the result back into the instance's precision. Non-finite
// results are a domain failure.
func (e *Evaluator) float1(fn func(float64) float64, x *apd.Decimal) (*apd.Decimal, error) {
	f, err := x.Float64()
	if err != nil {
		return nil, fmt.Errorf("%w: argument exceeds float64 range", ErrDomain)
	}
	v := fn(f)
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: non-finite result", ErrDomain)
	}
	out := new(apd.Decimal)
	if _, err := out.SetFloat64(v); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDomain, err)
	}
	if _, err := e.ctx.Round(out, out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDomain, err)
	}
	return out, nil
}
