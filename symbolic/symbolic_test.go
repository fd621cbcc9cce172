package symbolic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miounet11/jisuanqipc-sub000/ast"
	"github.com/miounet11/jisuanqipc-sub000/parser"
	"github.com/miounet11/jisuanqipc-sub000/symbolic"
)

// parse is a test shortcut with a hard failure on bad fixtures.
func parse(t *testing.T, s string) ast.Node {
	t.Helper()
	n, err := parser.ParseString(s)
	require.NoError(t, err, "fixture %q must parse", s)
	return n
}

// TestSimplify_Identities runs each rewrite rule through its canonical
// input and compares rendered trees.
func TestSimplify_Identities(t *testing.T) {
	cases := map[string]string{
		"0 + x":     "x",
		"x + 0":     "x",
		"x - 0":     "x",
		"x - x":     "0",
		"x + x":     "(2 * x)",
		"0 * x":     "0",
		"1 * x":     "x",
		"x * 1":     "x",
		"x * 0":     "0",
		"x / 1":     "x",
		"x / x":     "1",
		"x ^ 0":     "1",
		"x ^ 1":     "x",
		"1 ^ x":     "1",
		"--x":       "x",
		"2 + 3 * 4": "14",
		"10 % 3":    "1",
	}
	for input, want := range cases {
		got := symbolic.Simplify(parse(t, input))
		assert.Equalf(t, want, got.String(), "simplify(%q)", input)
	}
}

// TestSimplify_Idempotent is the contract from the package doc:
// simplify(simplify(e)) == simplify(e) for a spread of shapes.
func TestSimplify_Idempotent(t *testing.T) {
	inputs := []string{
		"x + x",
		"0 + x * 1",
		"(x - x) + sin(y) * 1",
		"2 * x + 3 * x",
		"sin(0 + x)",
		"x ^ 1 + 0 * y",
	}
	for _, input := range inputs {
		once := symbolic.Simplify(parse(t, input))
		twice := symbolic.Simplify(once)
		assert.Truef(t, ast.Equal(once, twice),
			"simplify must be idempotent for %q (got %s then %s)",
			input, once.String(), twice.String())
	}
}

// TestSimplify_DoesNotFoldUnsafe leaves division by zero for the
// evaluator so the typed error is preserved.
func TestSimplify_DoesNotFoldUnsafe(t *testing.T) {
	got := symbolic.Simplify(parse(t, "1 / 0"))
	assert.Equal(t, "(1 / 0)", got.String(), "1/0 must stay unfolded")
}

// TestDiff_Basics checks the rule set through rendered results.
func TestDiff_Basics(t *testing.T) {
	cases := map[string]string{
		"5":       "0",
		"x":       "1",
		"y":       "0",
		"x + x":   "2",
		"x ^ 2":   "(2 * x)",
		"3 * x":   "3",
		"sin(x)":  "cos(x)",
		"exp(x)":  "exp(x)",
	}
	for input, want := range cases {
		d, err := symbolic.Diff(parse(t, input), "x")
		require.NoErrorf(t, err, "diff(%q) must succeed", input)
		assert.Equalf(t, want, d.String(), "diff(%q)", input)
	}
}

// TestDiff_ChainRule spot-checks a composite: d/dx sin(x^2) = cos(x^2)*2x.
func TestDiff_ChainRule(t *testing.T) {
	d, err := symbolic.Diff(parse(t, "sin(x^2)"), "x")
	require.NoError(t, err, "chain rule must apply")
	assert.Equal(t, "(cos((x ^ 2)) * (2 * x))", d.String(), "chain rule result")
}

// TestDiff_Unsupported rejects x^x instead of guessing.
func TestDiff_Unsupported(t *testing.T) {
	_, err := symbolic.Diff(parse(t, "x ^ x"), "x")
	assert.ErrorIs(t, err, symbolic.ErrUnsupported, "x^x is outside the rules")
}

// TestIntegrate_Basics checks the power rule, the x^-1 special case and
// the covered transcendentals.
func TestIntegrate_Basics(t *testing.T) {
	cases := map[string]string{
		"3":      "(3 * x)",
		"x":      "((x ^ 2) / 2)",
		"x ^ 2":  "((x ^ 3) / 3)",
		"x ^ -1": "ln(x)",
		"cos(x)": "sin(x)",
		"sin(x)": "(-cos(x))",
		"exp(x)": "exp(x)",
		"2 * x":  "(2 * ((x ^ 2) / 2))",
	}
	for input, want := range cases {
		in, err := symbolic.Integrate(parse(t, input), "x")
		require.NoErrorf(t, err, "integrate(%q) must succeed", input)
		assert.Equalf(t, want, in.String(), "integrate(%q)", input)
	}
}

// TestIntegrate_Unsupported rejects products of variable factors.
func TestIntegrate_Unsupported(t *testing.T) {
	_, err := symbolic.Integrate(parse(t, "x * sin(x)"), "x")
	assert.ErrorIs(t, err, symbolic.ErrUnsupported, "x*sin(x) is outside the rules")
}
