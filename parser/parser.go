package parser

import (
	"github.com/cockroachdb/apd/v3"

	"github.com/miounet11/jisuanqipc-sub000/ast"
	"github.com/miounet11/jisuanqipc-sub000/token"
)

// Parse builds an AST from a token sequence.
//
// Constant tokens (pi, e, phi) become ast.Variable nodes under their
// canonical names; the evaluator materializes their values at its own
// precision, so the tree stays precision-independent.
//
// Returns an error unwrapping to ast.ErrParse on empty input, unbalanced
// parentheses, empty parenthesis pairs, dangling operators, or trailing
// unconsumed tokens. Pure function, no side effects.
// Complexity: O(tokens) time and memory.
func Parse(toks []token.Token) (ast.Node, error) {
	if len(toks) == 0 {
		return nil, ast.NewParseError(ast.NoPos, "empty expression")
	}
	p := &parser{toks: toks}
	n, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.done() {
		t := p.peek()
		return nil, ast.NewParseError(t.Pos, "unexpected token %q after expression", t.Text)
	}
	return n, nil
}

// ParseString tokenizes and parses in one step.
func ParseString(s string) (ast.Node, error) {
	toks, err := token.Tokenize(s)
	if err != nil {
		return nil, err
	}
	return Parse(toks)
}

// parser holds the cursor over the token sequence.
type parser struct {
	toks []token.Token
	pos  int
}

func (p *parser) done() bool { return p.pos >= len(p.toks) }

func (p *parser) peek() token.Token { return p.toks[p.pos] }

func (p *parser) next() token.Token {
	t := p.toks[p.pos]
	p.pos++
	return t
}

// acceptOperator consumes the next token when it is one of the given
// operator texts, returning the matched text.
func (p *parser) acceptOperator(ops ...string) (string, bool) {
	if p.done() {
		return "", false
	}
	t := p.peek()
	if t.Kind != token.Operator {
		return "", false
	}
	for _, op := range ops {
		if t.Text == op {
			p.pos++
			return op, true
		}
	}
	return "", false
}

// parseExpr := term (('+'|'-') term)*
func (p *parser) parseExpr() (ast.Node, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.acceptOperator("+", "-")
		if !ok {
			return left, nil
		}
		right, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
}

// parseTerm := factor (('*'|'/'|'%') factor)*
func (p *parser) parseTerm() (ast.Node, error) {
	left, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := p.acceptOperator("*", "/", "%")
		if !ok {
			return left, nil
		}
		right, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
}

// parseFactor := unary ('^' factor)?   — power is right-associative.
func (p *parser) parseFactor() (ast.Node, error) {
	base, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	if _, ok := p.acceptOperator("^"); ok {
		exp, err := p.parseFactor()
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Op: "^", Left: base, Right: exp}, nil
	}
	return base, nil
}

// parseUnary := ('+'|'-')? primary
func (p *parser) parseUnary() (ast.Node, error) {
	if op, ok := p.acceptOperator("+", "-"); ok {
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.Unary{Op: op, X: operand}, nil
	}
	return p.parsePrimary()
}

// parsePrimary := number | identifier | identifier '(' args ')' | '(' expr ')'
func (p *parser) parsePrimary() (ast.Node, error) {
	if p.done() {
		return nil, ast.NewParseError(ast.NoPos, "unexpected end of expression")
	}
	t := p.next()
	switch t.Kind {
	case token.Number:
		d, _, err := apd.NewFromString(t.Text)
		if err != nil {
			return nil, ast.NewParseError(t.Pos, "malformed number %q", t.Text)
		}
		return &ast.Number{Value: d}, nil

	case token.Identifier, token.Constant:
		return &ast.Variable{Name: t.Text}, nil

	case token.Function:
		return p.parseCall(t)

	case token.LeftParen:
		if !p.done() && p.peek().Kind == token.RightParen {
			return nil, ast.NewParseError(p.peek().Pos, "empty parentheses")
		}
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if err := p.expectRightParen(t.Pos); err != nil {
			return nil, err
		}
		return inner, nil

	default:
		return nil, ast.NewParseError(t.Pos, "unexpected token %q", t.Text)
	}
}

// parseCall parses the argument list of a reserved function name.
// Arity is recorded, not validated; the evaluator owns arity rules.
func (p *parser) parseCall(name token.Token) (ast.Node, error) {
	if p.done() || p.peek().Kind != token.LeftParen {
		return nil, ast.NewParseError(name.Pos, "function %q requires an argument list", name.Text)
	}
	open := p.next()
	if !p.done() && p.peek().Kind == token.RightParen {
		return nil, ast.NewParseError(p.peek().Pos, "empty parentheses")
	}
	args := make([]ast.Node, 0, 2)
	for {
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		if p.done() {
			return nil, ast.NewParseError(open.Pos, "missing closing parenthesis")
		}
		switch p.peek().Kind {
		case token.Comma:
			p.next()
		case token.RightParen:
			p.next()
			return &ast.Call{Name: name.Text, Args: args}, nil
		default:
			t := p.peek()
			return nil, ast.NewParseError(t.Pos, "unexpected token %q in argument list", t.Text)
		}
	}
}

// expectRightParen consumes a closing parenthesis or reports the
// position of the unmatched opener.
func (p *parser) expectRightParen(openPos int) error {
	if p.done() {
		return ast.NewParseError(openPos, "missing closing parenthesis")
	}
	if t := p.peek(); t.Kind != token.RightParen {
		return ast.NewParseError(t.Pos, "expected ')', found %q", t.Text)
	}
	p.next()
	return nil
}
