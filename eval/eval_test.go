package eval_test

import (
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miounet11/jisuanqipc-sub000/eval"
	"github.com/miounet11/jisuanqipc-sub000/parser"
)

// evalString parses and evaluates in one step for test brevity.
func evalString(t *testing.T, e *eval.Evaluator, input string, vars map[string]*apd.Decimal) (*apd.Decimal, error) {
	t.Helper()
	n, err := parser.ParseString(input)
	require.NoError(t, err, "test expression %q must parse", input)
	return e.Evaluate(n, vars)
}

// mustEqual asserts a decimal result equals the expected literal.
func mustEqual(t *testing.T, want string, got *apd.Decimal) {
	t.Helper()
	expected, _, err := apd.NewFromString(want)
	require.NoError(t, err, "expected literal must parse")
	assert.Zerof(t, expected.Cmp(got), "want %s, got %s", want, got.String())
}

// TestEvaluate_Arithmetic covers the end-to-end basics from plain
// operator precedence through grouping.
func TestEvaluate_Arithmetic(t *testing.T) {
	e := eval.New()

	v, err := evalString(t, e, "2 + 3 * 4", nil)
	require.NoError(t, err, "precedence expression must evaluate")
	mustEqual(t, "14", v)

	v, err = evalString(t, e, "(2+3)*4 - 5", nil)
	require.NoError(t, err, "grouped expression must evaluate")
	mustEqual(t, "15", v)

	v, err = evalString(t, e, "2^3^2", nil)
	require.NoError(t, err, "right-associative power must evaluate")
	mustEqual(t, "512", v)

	v, err = evalString(t, e, "10 % 3", nil)
	require.NoError(t, err, "modulo must evaluate")
	mustEqual(t, "1", v)

	v, err = evalString(t, e, "-3 + +5", nil)
	require.NoError(t, err, "unary signs must evaluate")
	mustEqual(t, "2", v)
}

// TestEvaluate_DecimalExactness is the reason everything routes through
// decimals: 0.1 + 0.2 is exactly 0.3, never 0.30000000000000004.
func TestEvaluate_DecimalExactness(t *testing.T) {
	e := eval.New()
	v, err := evalString(t, e, "0.1 + 0.2", nil)
	require.NoError(t, err, "decimal addition must evaluate")
	mustEqual(t, "0.3", v)
}

// TestEvaluate_Determinism re-evaluates the same tree and demands the
// identical decimal each time.
func TestEvaluate_Determinism(t *testing.T) {
	e := eval.New()
	n, err := parser.ParseString("sqrt(2) * sin(1) + ln(10)")
	require.NoError(t, err, "expression must parse")

	first, err := e.Evaluate(n, nil)
	require.NoError(t, err, "first evaluation must succeed")
	for i := 0; i < 5; i++ {
		again, err := e.Evaluate(n, nil)
		require.NoError(t, err, "repeat evaluation must succeed")
		assert.Zero(t, first.Cmp(again), "repeated evaluation must be identical")
	}
}

// TestEvaluate_DivisionByZero checks both / and % against a zero
// divisor, including one reached through a variable binding.
func TestEvaluate_DivisionByZero(t *testing.T) {
	e := eval.New()

	_, err := evalString(t, e, "1 / 0", nil)
	assert.ErrorIs(t, err, eval.ErrDivideByZero, "1/0 must fail typed")

	_, err = evalString(t, e, "5 % 0", nil)
	assert.ErrorIs(t, err, eval.ErrDivideByZero, "5%0 must fail typed")

	vars := map[string]*apd.Decimal{"a": apd.New(42, 0)}
	_, err = evalString(t, e, "a / (1 - 1)", vars)
	assert.ErrorIs(t, err, eval.ErrDivideByZero, "a/0 must fail for any a")
}

// TestEvaluate_DivisionRoundTrip: for b != 0, (a/b)*b ≈ a within the
// configured precision.
func TestEvaluate_DivisionRoundTrip(t *testing.T) {
	e := eval.New()
	v, err := evalString(t, e, "(10 / 3) * 3", nil)
	require.NoError(t, err, "division round trip must evaluate")

	diff := new(apd.Decimal)
	ten := apd.New(10, 0)
	_, err = apd.BaseContext.WithPrecision(eval.DefaultPrecision).Sub(diff, v, ten)
	require.NoError(t, err, "difference must compute")

	tol, _, err := apd.NewFromString("1e-30")
	require.NoError(t, err, "tolerance literal must parse")
	abs := new(apd.Decimal)
	_, err = apd.BaseContext.Abs(abs, diff)
	require.NoError(t, err, "absolute value must compute")
	assert.True(t, abs.Cmp(tol) < 0, "residual %s must stay below 1e-30", abs.String())
}

// TestEvaluate_DomainChecks exercises every domain-checked function on
// both sides of its boundary.
func TestEvaluate_DomainChecks(t *testing.T) {
	e := eval.New()

	for _, bad := range []string{"sqrt(-1)", "asin(2)", "acos(-1.5)", "ln(0)", "log(-3)", "factorial(2.5)", "factorial(-1)"} {
		_, err := evalString(t, e, bad, nil)
		assert.ErrorIs(t, err, eval.ErrDomain, "%q must fail the domain check", bad)
	}

	v, err := evalString(t, e, "sqrt(4)", nil)
	require.NoError(t, err, "sqrt(4) is inside the domain")
	mustEqual(t, "2", v)

	v, err = evalString(t, e, "asin(1)", nil)
	require.NoError(t, err, "asin(1) sits exactly on the boundary")
	assert.InDelta(t, 1.5707963, mustFloat(t, v), 1e-6, "asin(1) is pi/2")
}

// TestEvaluate_Functions spot-checks the rest of the dispatch table.
func TestEvaluate_Functions(t *testing.T) {
	e := eval.New()
	cases := map[string]string{
		"abs(-7)":         "7",
		"ceil(2.1)":       "3",
		"floor(2.9)":      "2",
		"round(2.5)":      "3",
		"round(-2.5)":     "-3",
		"pow(2, 10)":      "1024",
		"max(1, 7, 3)":    "7",
		"min(4, -2, 9)":   "-2",
		"factorial(5)":    "120",
		"factorial(0)":    "1",
		"exp(0)":          "1",
		"sqrt(16)":        "4",
		"max(2, 3) * 2":   "6",
		"abs(ceil(-2.5))": "2",
	}
	for input, want := range cases {
		v, err := evalString(t, e, input, nil)
		require.NoError(t, err, "%q must evaluate", input)
		mustEqual(t, want, v)
	}

	// Results reached through float64 or logarithms compare by delta.
	v, err := evalString(t, e, "ln(e)", nil)
	require.NoError(t, err, "ln(e) must evaluate")
	assert.InDelta(t, 1.0, mustFloat(t, v), 1e-12, "ln(e) is 1")

	v, err = evalString(t, e, "log(1000)", nil)
	require.NoError(t, err, "log(1000) must evaluate")
	assert.InDelta(t, 3.0, mustFloat(t, v), 1e-12, "log10(1000) is 3")
}

// TestEvaluate_Trigonometry checks the radian assumption end to end:
// sin(pi/2) + cos(0) ≈ 2.
func TestEvaluate_Trigonometry(t *testing.T) {
	e := eval.New()
	v, err := evalString(t, e, "sin(pi/2) + cos(0)", nil)
	require.NoError(t, err, "trig expression must evaluate")
	assert.InDelta(t, 2.0, mustFloat(t, v), 1e-12, "sin(pi/2)+cos(0) is 2 in radians")
}

// TestEvaluate_Variables covers bindings, undefined names, and the
// precedence of reserved constants over user bindings.
func TestEvaluate_Variables(t *testing.T) {
	e := eval.New()
	vars := map[string]*apd.Decimal{"x": apd.New(3, 0), "y": apd.New(-2, 0)}

	v, err := evalString(t, e, "x^2 + y", vars)
	require.NoError(t, err, "bound variables must evaluate")
	mustEqual(t, "7", v)

	_, err = evalString(t, e, "x + z", vars)
	assert.ErrorIs(t, err, eval.ErrUndefinedVariable, "unbound z must fail typed")

	// pi resolves from the constant table even when a binding exists.
	withPi := map[string]*apd.Decimal{"pi": apd.New(3, 0)}
	v, err = evalString(t, e, "pi", withPi)
	require.NoError(t, err, "pi must evaluate")
	assert.InDelta(t, 3.14159265, mustFloat(t, v), 1e-8, "constants shadow bindings")
}

// TestEvaluate_Arity checks under- and over-supplied argument lists.
func TestEvaluate_Arity(t *testing.T) {
	e := eval.New()
	for _, bad := range []string{"sin(1, 2)", "pow(2)", "max(1)", "pow(1, 2, 3)"} {
		_, err := evalString(t, e, bad, nil)
		assert.ErrorIs(t, err, eval.ErrArity, "%q must fail the arity check", bad)
	}
}

// TestEvaluate_PerInstancePrecision verifies precision is owned by each
// instance: a 5-digit evaluator and a 34-digit evaluator disagree on
// 10/3 without affecting each other.
func TestEvaluate_PerInstancePrecision(t *testing.T) {
	coarse := eval.New(eval.WithPrecision(5))
	fine := eval.New()

	vc, err := evalString(t, coarse, "10 / 3", nil)
	require.NoError(t, err, "coarse division must evaluate")
	vf, err := evalString(t, fine, "10 / 3", nil)
	require.NoError(t, err, "fine division must evaluate")

	assert.Equal(t, "3.3333", vc.Text('f'), "5-digit context keeps 5 digits")
	assert.NotEqual(t, vc.Text('f'), vf.Text('f'), "instances do not interfere")
	assert.Equal(t, uint32(5), coarse.Precision(), "precision is per instance")
}

// mustFloat converts a decimal result for delta comparisons.
func mustFloat(t *testing.T, d *apd.Decimal) float64 {
	t.Helper()
	f, err := d.Float64()
	require.NoError(t, err, "result must fit float64")
	return f
}
