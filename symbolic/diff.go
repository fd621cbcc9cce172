package symbolic

import (
	"fmt"

	"github.com/miounet11/jisuanqipc-sub000/ast"
)

// Diff returns the derivative of n with respect to name, simplified.
// Coverage: constants, variables, sums, products, quotients, powers
// with a constant exponent or constant base, and the chain rule through
// sin, cos, tan, exp, ln and sqrt. Anything else fails with
// ErrUnsupported; no partial tree is returned.
func Diff(n ast.Node, name string) (ast.Node, error) {
	// Pre-simplification folds literal shapes (e.g. a unary-minus
	// exponent) into the forms the rules match on.
	d, err := diffNode(Simplify(n), name)
	if err != nil {
		return nil, err
	}
	return Simplify(d), nil
}

func diffNode(n ast.Node, name string) (ast.Node, error) {
	switch x := n.(type) {
	case *ast.Number:
		return ast.Num(0), nil

	case *ast.Variable:
		if x.Name == name {
			return ast.Num(1), nil
		}
		// Any other name — including pi/e/phi — is a constant here.
		return ast.Num(0), nil

	case *ast.Unary:
		inner, err := diffNode(x.X, name)
		if err != nil {
			return nil, err
		}
		if x.Op == "-" {
			return &ast.Unary{Op: "-", X: inner}, nil
		}
		return inner, nil

	case *ast.Binary:
		return diffBinary(x, name)

	case *ast.Call:
		return diffCall(x, name)

	default:
		return nil, fmt.Errorf("%w: unknown node", ErrUnsupported)
	}
}

func diffBinary(b *ast.Binary, name string) (ast.Node, error) {
	dl, err := diffNode(b.Left, name)
	if err != nil {
		return nil, err
	}
	dr, err := diffNode(b.Right, name)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case "+", "-":
		return &ast.Binary{Op: b.Op, Left: dl, Right: dr}, nil

	case "*":
		// (uv)' = u'v + uv'
		return &ast.Binary{
			Op:    "+",
			Left:  &ast.Binary{Op: "*", Left: dl, Right: b.Right},
			Right: &ast.Binary{Op: "*", Left: b.Left, Right: dr},
		}, nil

	case "/":
		// (u/v)' = (u'v - uv') / v^2
		num := &ast.Binary{
			Op:    "-",
			Left:  &ast.Binary{Op: "*", Left: dl, Right: b.Right},
			Right: &ast.Binary{Op: "*", Left: b.Left, Right: dr},
		}
		den := &ast.Binary{Op: "^", Left: b.Right, Right: ast.Num(2)}
		return &ast.Binary{Op: "/", Left: num, Right: den}, nil

	case "^":
		// u^c: power rule with chain. c^u: exponential rule.
		if c, ok := b.Right.(*ast.Number); ok {
			newExp := &ast.Binary{Op: "-", Left: &ast.Number{Value: c.Value}, Right: ast.Num(1)}
			power := &ast.Binary{Op: "^", Left: b.Left, Right: newExp}
			scaled := &ast.Binary{Op: "*", Left: &ast.Number{Value: c.Value}, Right: power}
			return &ast.Binary{Op: "*", Left: scaled, Right: dl}, nil
		}
		if _, ok := b.Left.(*ast.Number); ok && !containsVar(b.Left, name) {
			lnBase := &ast.Call{Name: "ln", Args: []ast.Node{b.Left}}
			grown := &ast.Binary{Op: "*", Left: b, Right: lnBase}
			return &ast.Binary{Op: "*", Left: grown, Right: dr}, nil
		}
		return nil, fmt.Errorf("%w: power with variable base and exponent", ErrUnsupported)

	default:
		return nil, fmt.Errorf("%w: operator %q", ErrUnsupported, b.Op)
	}
}

func diffCall(c *ast.Call, name string) (ast.Node, error) {
	if len(c.Args) != 1 {
		return nil, fmt.Errorf("%w: derivative of %s with %d arguments", ErrUnsupported, c.Name, len(c.Args))
	}
	u := c.Args[0]
	du, err := diffNode(u, name)
	if err != nil {
		return nil, err
	}

	var outer ast.Node
	switch c.Name {
	case "sin":
		outer = &ast.Call{Name: "cos", Args: []ast.Node{u}}
	case "cos":
		outer = &ast.Unary{Op: "-", X: &ast.Call{Name: "sin", Args: []ast.Node{u}}}
	case "tan":
		cos2 := &ast.Binary{Op: "^", Left: &ast.Call{Name: "cos", Args: []ast.Node{u}}, Right: ast.Num(2)}
		outer = &ast.Binary{Op: "/", Left: ast.Num(1), Right: cos2}
	case "exp":
		outer = &ast.Call{Name: "exp", Args: []ast.Node{u}}
	case "ln":
		outer = &ast.Binary{Op: "/", Left: ast.Num(1), Right: u}
	case "sqrt":
		twice := &ast.Binary{Op: "*", Left: ast.Num(2), Right: &ast.Call{Name: "sqrt", Args: []ast.Node{u}}}
		outer = &ast.Binary{Op: "/", Left: ast.Num(1), Right: twice}
	default:
		return nil, fmt.Errorf("%w: derivative of %q", ErrUnsupported, c.Name)
	}
	return &ast.Binary{Op: "*", Left: outer, Right: du}, nil
}
