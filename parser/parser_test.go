package parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miounet11/jisuanqipc-sub000/ast"
	"github.com/miounet11/jisuanqipc-sub000/parser"
)

// TestParse_Precedence checks that term binds tighter than expr:
// 2 + 3 * 4 parses as 2 + (3 * 4).
func TestParse_Precedence(t *testing.T) {
	n, err := parser.ParseString("2 + 3 * 4")
	require.NoError(t, err, "valid arithmetic must parse")

	root, ok := n.(*ast.Binary)
	require.True(t, ok, "root must be a binary node")
	assert.Equal(t, "+", root.Op, "addition is the outermost operation")

	mul, ok := root.Right.(*ast.Binary)
	require.True(t, ok, "right child must be the multiplication")
	assert.Equal(t, "*", mul.Op, "multiplication binds tighter")
}

// TestParse_LeftAssociativity checks 10 - 4 - 3 parses as (10 - 4) - 3.
func TestParse_LeftAssociativity(t *testing.T) {
	n, err := parser.ParseString("10 - 4 - 3")
	require.NoError(t, err, "chained subtraction must parse")

	root := n.(*ast.Binary)
	assert.Equal(t, "-", root.Op, "outer op is subtraction")
	inner, ok := root.Left.(*ast.Binary)
	require.True(t, ok, "left child must be the first subtraction")
	assert.Equal(t, "-", inner.Op, "subtraction associates to the left")
}

// TestParse_PowerRightAssociative checks 2^3^2 parses as 2^(3^2).
func TestParse_PowerRightAssociative(t *testing.T) {
	n, err := parser.ParseString("2^3^2")
	require.NoError(t, err, "chained power must parse")

	root := n.(*ast.Binary)
	assert.Equal(t, "^", root.Op, "outer op is power")
	_, leftIsNumber := root.Left.(*ast.Number)
	assert.True(t, leftIsNumber, "left operand stays a bare number")
	inner, ok := root.Right.(*ast.Binary)
	require.True(t, ok, "right operand must be the nested power")
	assert.Equal(t, "^", inner.Op, "power associates to the right")
}

// TestParse_UnaryMinus checks -x^2 keeps the unary outside the power
// and that double negation nests.
func TestParse_UnaryMinus(t *testing.T) {
	n, err := parser.ParseString("-x")
	require.NoError(t, err, "unary minus must parse")
	u, ok := n.(*ast.Unary)
	require.True(t, ok, "root must be unary")
	assert.Equal(t, "-", u.Op, "operator is minus")

	n, err = parser.ParseString("--3")
	require.NoError(t, err, "double negation must parse")
	outer := n.(*ast.Unary)
	_, ok = outer.X.(*ast.Unary)
	assert.True(t, ok, "negations nest")
}

// TestParse_FunctionCalls covers single, nested and variadic calls;
// arity is not the parser's concern.
func TestParse_FunctionCalls(t *testing.T) {
	n, err := parser.ParseString("max(1, sin(x), 3)")
	require.NoError(t, err, "variadic call must parse")

	call, ok := n.(*ast.Call)
	require.True(t, ok, "root must be a call")
	assert.Equal(t, "max", call.Name, "callee name preserved")
	require.Len(t, call.Args, 3, "three arguments recorded")

	nested, ok := call.Args[1].(*ast.Call)
	require.True(t, ok, "second argument is a nested call")
	assert.Equal(t, "sin", nested.Name, "nested callee preserved")

	// Wrong arity still parses; the evaluator rejects it later.
	_, err = parser.ParseString("sin(1, 2, 3)")
	assert.NoError(t, err, "arity is checked at evaluation time, not parse time")
}

// TestParse_Constants maps constant tokens to variables under their
// canonical names.
func TestParse_Constants(t *testing.T) {
	n, err := parser.ParseString("pi")
	require.NoError(t, err, "constant must parse")
	v, ok := n.(*ast.Variable)
	require.True(t, ok, "constant parses as a named reference")
	assert.Equal(t, "pi", v.Name, "canonical name preserved")
}

// TestParse_Failures enumerates the typed failure cases, each
// unwrapping to ast.ErrParse.
func TestParse_Failures(t *testing.T) {
	cases := map[string]string{
		"empty input":           "",
		"whitespace only":       "  \t ",
		"unbalanced open":       "(2 + 3",
		"unbalanced close":      "2 + 3)",
		"empty pair":            "()",
		"empty call":            "sin()",
		"trailing operator":     "2 +",
		"leading operator":      "* 2",
		"double operator":       "2 * / 3",
		"trailing tokens":       "2 3",
		"bare function":         "sin",
		"comma outside call":    "1, 2",
		"comparison in grammar": "1 == 2",
	}
	for name, input := range cases {
		_, err := parser.ParseString(input)
		require.Error(t, err, "%s (%q) must fail", name, input)
		assert.ErrorIs(t, err, ast.ErrParse, "%s must unwrap to ErrParse", name)
	}
}

// TestParse_ParenthesisBalance is the iff property: an expression with
// balanced parentheses parses, the same expression unbalanced does not.
func TestParse_ParenthesisBalance(t *testing.T) {
	_, err := parser.ParseString("((1 + 2) * (3 - 4))")
	assert.NoError(t, err, "balanced parentheses must parse")

	_, err = parser.ParseString("((1 + 2) * (3 - 4)")
	assert.ErrorIs(t, err, ast.ErrParse, "one missing close must fail")
}

// TestParse_StringRendering sanity-checks the tree via String().
func TestParse_StringRendering(t *testing.T) {
	n, err := parser.ParseString("(2+3)*4")
	require.NoError(t, err, "grouped expression must parse")
	assert.Equal(t, "((2 + 3) * 4)", n.String(), "rendering reflects structure")
}
