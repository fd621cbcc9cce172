package symbolic

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"github.com/miounet11/jisuanqipc-sub000/ast"
)

// Integrate returns an antiderivative of n with respect to name,
// simplified, without the constant of integration.
// Coverage: constants, the power rule (including x^-1 → ln(x)), sums,
// constant multiples and quotients by a constant, plus sin, cos and
// exp of the bare variable. Anything else fails with ErrUnsupported.
func Integrate(n ast.Node, name string) (ast.Node, error) {
	// Pre-simplification folds literal shapes (e.g. x^-1's unary-minus
	// exponent) into the forms the rules match on.
	in, err := integrateNode(Simplify(n), name)
	if err != nil {
		return nil, err
	}
	return Simplify(in), nil
}

func integrateNode(n ast.Node, name string) (ast.Node, error) {
	v := &ast.Variable{Name: name}

	switch x := n.(type) {
	case *ast.Number:
		// ∫ c dx = c*x
		return &ast.Binary{Op: "*", Left: x, Right: v}, nil

	case *ast.Variable:
		if x.Name == name {
			// ∫ x dx = x^2 / 2
			sq := &ast.Binary{Op: "^", Left: v, Right: ast.Num(2)}
			return &ast.Binary{Op: "/", Left: sq, Right: ast.Num(2)}, nil
		}
		return &ast.Binary{Op: "*", Left: x, Right: v}, nil

	case *ast.Unary:
		inner, err := integrateNode(x.X, name)
		if err != nil {
			return nil, err
		}
		if x.Op == "-" {
			return &ast.Unary{Op: "-", X: inner}, nil
		}
		return inner, nil

	case *ast.Binary:
		return integrateBinary(x, name, v)

	case *ast.Call:
		return integrateCall(x, name)

	default:
		return nil, fmt.Errorf("%w: unknown node", ErrUnsupported)
	}
}

func integrateBinary(b *ast.Binary, name string, v *ast.Variable) (ast.Node, error) {
	switch b.Op {
	case "+", "-":
		left, err := integrateNode(b.Left, name)
		if err != nil {
			return nil, err
		}
		right, err := integrateNode(b.Right, name)
		if err != nil {
			return nil, err
		}
		return &ast.Binary{Op: b.Op, Left: left, Right: right}, nil

	case "*":
		// Constant multiple: pull the side free of the variable out.
		if !containsVar(b.Left, name) {
			inner, err := integrateNode(b.Right, name)
			if err != nil {
				return nil, err
			}
			return &ast.Binary{Op: "*", Left: b.Left, Right: inner}, nil
		}
		if !containsVar(b.Right, name) {
			inner, err := integrateNode(b.Left, name)
			if err != nil {
				return nil, err
			}
			return &ast.Binary{Op: "*", Left: b.Right, Right: inner}, nil
		}
		return nil, fmt.Errorf("%w: product of two variable factors", ErrUnsupported)

	case "/":
		if !containsVar(b.Right, name) {
			inner, err := integrateNode(b.Left, name)
			if err != nil {
				return nil, err
			}
			return &ast.Binary{Op: "/", Left: inner, Right: b.Right}, nil
		}
		return nil, fmt.Errorf("%w: quotient with variable divisor", ErrUnsupported)

	case "^":
		base, baseIsVar := b.Left.(*ast.Variable)
		exp, expIsNum := b.Right.(*ast.Number)
		if !baseIsVar || base.Name != name || !expIsNum {
			return nil, fmt.Errorf("%w: power outside the x^c rule", ErrUnsupported)
		}
		// x^-1 integrates to ln(x); every other constant power bumps
		// the exponent.
		if exp.Value.Cmp(apd.New(-1, 0)) == 0 {
			return &ast.Call{Name: "ln", Args: []ast.Node{v}}, nil
		}
		bumped := new(apd.Decimal)
		if _, err := foldCtx.Add(bumped, exp.Value, apd.New(1, 0)); err != nil {
			return nil, fmt.Errorf("%w: exponent arithmetic failed", ErrUnsupported)
		}
		grown := &ast.Binary{Op: "^", Left: v, Right: &ast.Number{Value: bumped}}
		return &ast.Binary{Op: "/", Left: grown, Right: &ast.Number{Value: new(apd.Decimal).Set(bumped)}}, nil

	default:
		return nil, fmt.Errorf("%w: operator %q", ErrUnsupported, b.Op)
	}
}

func integrateCall(c *ast.Call, name string) (ast.Node, error) {
	if len(c.Args) != 1 {
		return nil, fmt.Errorf("%w: integral of %s with %d arguments", ErrUnsupported, c.Name, len(c.Args))
	}
	arg, ok := c.Args[0].(*ast.Variable)
	if !ok || arg.Name != name {
		return nil, fmt.Errorf("%w: integral of %s over a composite argument", ErrUnsupported, c.Name)
	}

	switch c.Name {
	case "sin":
		return &ast.Unary{Op: "-", X: &ast.Call{Name: "cos", Args: []ast.Node{arg}}}, nil
	case "cos":
		return &ast.Call{Name: "sin", Args: []ast.Node{arg}}, nil
	case "exp":
		return &ast.Call{Name: "exp", Args: []ast.Node{arg}}, nil
	default:
		return nil, fmt.Errorf("%w: integral of %q", ErrUnsupported, c.Name)
	}
}
