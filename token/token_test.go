package token_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miounet11/jisuanqipc-sub000/ast"
	"github.com/miounet11/jisuanqipc-sub000/token"
)

// kinds extracts the kind sequence for compact comparisons.
func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

// texts extracts the text sequence for compact comparisons.
func texts(toks []token.Token) []string {
	out := make([]string, len(toks))
	for i, t := range toks {
		out[i] = t.Text
	}
	return out
}

// TestTokenize_Arithmetic checks a plain arithmetic expression with
// whitespace and all four basic operators.
func TestTokenize_Arithmetic(t *testing.T) {
	toks, err := token.Tokenize("2 + 3.5*4 - 10/5")
	require.NoError(t, err, "plain arithmetic must tokenize")
	assert.Equal(t,
		[]string{"2", "+", "3.5", "*", "4", "-", "10", "/", "5"},
		texts(toks), "token texts must follow input order")
	assert.Equal(t, token.Number, toks[0].Kind, "leading literal is a number")
	assert.Equal(t, token.Operator, toks[1].Kind, "plus is an operator")
}

// TestTokenize_ExponentialLiteral covers exponent forms and the case
// where a trailing 'e' is the constant, not an exponent marker.
func TestTokenize_ExponentialLiteral(t *testing.T) {
	toks, err := token.Tokenize("6.02e23 + 1e-3")
	require.NoError(t, err, "exponential literals must tokenize")
	assert.Equal(t, []string{"6.02e23", "+", "1e-3"}, texts(toks),
		"exponents belong to the literal")

	toks, err = token.Tokenize("2e")
	require.NoError(t, err, "bare 'e' after a number must tokenize")
	require.Len(t, toks, 2, "expected number then constant")
	assert.Equal(t, token.Number, toks[0].Kind, "2 is a number")
	assert.Equal(t, token.Constant, toks[1].Kind, "e is the Euler constant")
}

// TestTokenize_ReservedIdentifiers verifies the single reserved-table
// classification: functions, constants (including Unicode spellings)
// and free variables.
func TestTokenize_ReservedIdentifiers(t *testing.T) {
	toks, err := token.Tokenize("sin(π) + phi * radius")
	require.NoError(t, err, "identifiers must tokenize")
	assert.Equal(t,
		[]token.Kind{token.Function, token.LeftParen, token.Constant,
			token.RightParen, token.Operator, token.Constant,
			token.Operator, token.Identifier},
		kinds(toks), "each identifier resolves against the reserved table")
	assert.Equal(t, "pi", toks[2].Text, "π canonicalizes to pi")
}

// TestTokenize_PowerNormalization ensures ** and ^ produce the same token.
func TestTokenize_PowerNormalization(t *testing.T) {
	star, err := token.Tokenize("2**3")
	require.NoError(t, err, "** must tokenize")
	caret, err2 := token.Tokenize("2^3")
	require.NoError(t, err2, "^ must tokenize")
	assert.Equal(t, texts(caret), texts(star), "** normalizes to ^")
}

// TestTokenize_Comparisons checks the two-character comparison operators.
func TestTokenize_Comparisons(t *testing.T) {
	toks, err := token.Tokenize("x <= 3 == y != 2 >= 1 < 5 > 0")
	require.NoError(t, err, "comparison operators must tokenize")
	assert.Equal(t,
		[]string{"x", "<=", "3", "==", "y", "!=", "2", ">=", "1", "<", "5", ">", "0"},
		texts(toks), "two-character operators must not split")
}

// TestTokenize_UnsupportedCharacter verifies the typed, position-carrying
// failure for characters outside the supported set.
func TestTokenize_UnsupportedCharacter(t *testing.T) {
	for _, input := range []string{"2 + $3", "a ? b", "3 ! 2", "2 # 2"} {
		_, err := token.Tokenize(input)
		require.Error(t, err, "input %q must fail", input)
		assert.ErrorIs(t, err, ast.ErrParse, "failure must unwrap to ErrParse")

		var pe *ast.ParseError
		require.ErrorAs(t, err, &pe, "failure must carry a ParseError")
		assert.GreaterOrEqual(t, pe.Pos, 0, "position must point into the input")
	}
}

// TestTokenize_Positions checks byte offsets survive into the tokens.
func TestTokenize_Positions(t *testing.T) {
	toks, err := token.Tokenize("1 + 22")
	require.NoError(t, err, "must tokenize")
	assert.Equal(t, 0, toks[0].Pos, "first token at offset 0")
	assert.Equal(t, 2, toks[1].Pos, "operator after one space")
	assert.Equal(t, 4, toks[2].Pos, "second literal offset")
}

// TestTokenize_Empty yields an empty token sequence, not an error;
// rejecting empty input is the parser's job.
func TestTokenize_Empty(t *testing.T) {
	toks, err := token.Tokenize("   ")
	require.NoError(t, err, "whitespace-only input tokenizes to nothing")
	assert.Empty(t, toks, "no tokens expected")
}
