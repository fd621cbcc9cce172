package token

import (
	"unicode"
	"unicode/utf8"

	"github.com/miounet11/jisuanqipc-sub000/ast"
)

// Tokenize scans s into an ordered token sequence.
//
// Recognized: numeric literals (integer, decimal, exponential),
// identifiers (functions, constants, variables), the operators
// + - * / ^ ** % = == != < > <= >=, parentheses and commas.
// Whitespace separates tokens and is otherwise ignored.
//
// Any unsupported character fails with an *ast.ParseError carrying the
// byte offset of the offending character.
// Complexity: O(len(s)) time, O(tokens) memory.
func Tokenize(s string) ([]Token, error) {
	toks := make([]Token, 0, 16)
	i := 0
	for i < len(s) {
		c := s[i]

		// Skip whitespace between tokens.
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			i++
			continue
		}

		switch {
		case c >= '0' && c <= '9' || c == '.' && i+1 < len(s) && isDigit(s[i+1]):
			tok, next := scanNumber(s, i)
			toks = append(toks, tok)
			i = next

		case c == '(':
			toks = append(toks, Token{Kind: LeftParen, Text: "(", Pos: i})
			i++

		case c == ')':
			toks = append(toks, Token{Kind: RightParen, Text: ")", Pos: i})
			i++

		case c == ',':
			toks = append(toks, Token{Kind: Comma, Text: ",", Pos: i})
			i++

		case isOperatorStart(c):
			tok, next, err := scanOperator(s, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = next

		default:
			r, _ := utf8.DecodeRuneInString(s[i:])
			if unicode.IsLetter(r) || r == '_' {
				tok, next := scanIdentifier(s, i)
				toks = append(toks, tok)
				i = next
				continue
			}
			return nil, ast.NewParseError(i, "unsupported character %q", r)
		}
	}
	return toks, nil
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isOperatorStart(c byte) bool {
	switch c {
	case '+', '-', '*', '/', '^', '%', '=', '!', '<', '>':
		return true
	}
	return false
}

// scanNumber consumes digits, an optional fraction and an optional
// exponent. The exponent marker is consumed only when a digit (or a
// signed digit) follows, so "2e" tokenizes as the number 2 and the
// constant e.
func scanNumber(s string, start int) (Token, int) {
	i := start
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	if i < len(s) && (s[i] == 'e' || s[i] == 'E') {
		j := i + 1
		if j < len(s) && (s[j] == '+' || s[j] == '-') {
			j++
		}
		if j < len(s) && isDigit(s[j]) {
			i = j
			for i < len(s) && isDigit(s[i]) {
				i++
			}
		}
	}
	return Token{Kind: Number, Text: s[start:i], Pos: start}, i
}

// scanOperator consumes one operator, preferring two-character forms.
// "**" is normalized to "^" so the parser sees a single power operator.
// A lone '!' is not an operator and fails like any unsupported character.
func scanOperator(s string, start int) (Token, int, error) {
	two := ""
	if start+1 < len(s) {
		two = s[start : start+2]
	}
	switch two {
	case "**":
		return Token{Kind: Operator, Text: "^", Pos: start}, start + 2, nil
	case "==", "!=", "<=", ">=":
		return Token{Kind: Operator, Text: two, Pos: start}, start + 2, nil
	}
	if s[start] == '!' {
		return Token{}, 0, ast.NewParseError(start, "unsupported character %q", '!')
	}
	return Token{Kind: Operator, Text: s[start : start+1], Pos: start}, start + 1, nil
}

// scanIdentifier consumes letters, digits and underscores, then
// classifies the name against the reserved tables exactly once.
func scanIdentifier(s string, start int) (Token, int) {
	i := start
	for i < len(s) {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '_' {
			break
		}
		i += size
	}
	name := s[start:i]
	switch {
	case IsFunction(name):
		return Token{Kind: Function, Text: name, Pos: start}, i
	case IsConstant(name):
		canonical, _ := CanonicalConstant(name)
		return Token{Kind: Constant, Text: canonical, Pos: start}, i
	default:
		return Token{Kind: Identifier, Text: name, Pos: start}, i
	}
}
