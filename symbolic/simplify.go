package symbolic

import (
	"errors"

	"github.com/cockroachdb/apd/v3"

	"github.com/miounet11/jisuanqipc-sub000/ast"
)

// ErrUnsupported is returned when a tree falls outside the rule set.
var ErrUnsupported = errors.New("symbolic: expression not covered by the rewrite rules")

// foldCtx is the context for constant folding inside rewrites. Folding
// is an internal convenience, not user-visible arithmetic, so a fixed
// decimal128 precision is fine here.
var foldCtx = apd.BaseContext.WithPrecision(34)

// maxRewritePasses bounds the fixpoint loop. Each pass strictly
// shrinks or preserves the tree, so this is never reached in practice.
const maxRewritePasses = 32

// Simplify rewrites n bottom-up until a fixpoint: constant folding plus
// the identity rules listed in the package documentation. The input
// tree is never mutated; returned trees may share leaf nodes with it.
//
// Simplify is idempotent: applying it to its own output is a no-op.
func Simplify(n ast.Node) ast.Node {
	prev := n
	for i := 0; i < maxRewritePasses; i++ {
		next := simplifyNode(prev)
		if ast.Equal(next, prev) {
			return next
		}
		prev = next
	}
	return prev
}

func simplifyNode(n ast.Node) ast.Node {
	switch x := n.(type) {
	case *ast.Number, *ast.Variable:
		return n

	case *ast.Unary:
		inner := simplifyNode(x.X)
		if x.Op == "+" {
			return inner
		}
		// -(-y) → y
		if u, ok := inner.(*ast.Unary); ok && u.Op == "-" {
			return u.X
		}
		// -(number) folds into the literal.
		if num, ok := inner.(*ast.Number); ok {
			out := new(apd.Decimal)
			if _, err := foldCtx.Neg(out, num.Value); err == nil {
				return &ast.Number{Value: out}
			}
		}
		return &ast.Unary{Op: x.Op, X: inner}

	case *ast.Binary:
		return simplifyBinary(x)

	case *ast.Call:
		args := make([]ast.Node, len(x.Args))
		for i, a := range x.Args {
			args[i] = simplifyNode(a)
		}
		return &ast.Call{Name: x.Name, Args: args}

	default:
		return n
	}
}

func simplifyBinary(b *ast.Binary) ast.Node {
	left := simplifyNode(b.Left)
	right := simplifyNode(b.Right)

	switch b.Op {
	case "+":
		if isZero(left) {
			return right
		}
		if isZero(right) {
			return left
		}
		if ast.Equal(left, right) {
			return &ast.Binary{Op: "*", Left: ast.Num(2), Right: left}
		}
	case "-":
		if isZero(right) {
			return left
		}
		if ast.Equal(left, right) {
			return ast.Num(0)
		}
	case "*":
		if isZero(left) || isZero(right) {
			return ast.Num(0)
		}
		if isOne(left) {
			return right
		}
		if isOne(right) {
			return left
		}
	case "/":
		if isOne(right) {
			return left
		}
		if ast.Equal(left, right) && !isZero(left) {
			return ast.Num(1)
		}
	case "^":
		if isZero(right) {
			return ast.Num(1)
		}
		if isOne(right) {
			return left
		}
		if isOne(left) {
			return ast.Num(1)
		}
	}

	if folded, ok := foldConstants(b.Op, left, right); ok {
		return folded
	}
	return &ast.Binary{Op: b.Op, Left: left, Right: right}
}

// foldConstants evaluates op over two numeric literals. Folds that
// would fail (division by zero, fractional powers of negatives) are
// left to the evaluator so the typed error surfaces there.
func foldConstants(op string, left, right ast.Node) (ast.Node, bool) {
	l, lok := left.(*ast.Number)
	r, rok := right.(*ast.Number)
	if !lok || !rok {
		return nil, false
	}
	out := new(apd.Decimal)
	var err error
	switch op {
	case "+":
		_, err = foldCtx.Add(out, l.Value, r.Value)
	case "-":
		_, err = foldCtx.Sub(out, l.Value, r.Value)
	case "*":
		_, err = foldCtx.Mul(out, l.Value, r.Value)
	case "/":
		if r.Value.IsZero() {
			return nil, false
		}
		_, err = foldCtx.Quo(out, l.Value, r.Value)
	case "%":
		if r.Value.IsZero() {
			return nil, false
		}
		_, err = foldCtx.Rem(out, l.Value, r.Value)
	case "^":
		_, err = foldCtx.Pow(out, l.Value, r.Value)
	default:
		return nil, false
	}
	if err != nil {
		return nil, false
	}
	return &ast.Number{Value: out}, true
}

func isZero(n ast.Node) bool {
	num, ok := n.(*ast.Number)
	return ok && num.Value.IsZero()
}

func isOne(n ast.Node) bool {
	num, ok := n.(*ast.Number)
	return ok && num.Value.Cmp(apd.New(1, 0)) == 0
}

// containsVar reports whether name occurs anywhere in the tree.
func containsVar(n ast.Node, name string) bool {
	switch x := n.(type) {
	case *ast.Variable:
		return x.Name == name
	case *ast.Unary:
		return containsVar(x.X, name)
	case *ast.Binary:
		return containsVar(x.Left, name) || containsVar(x.Right, name)
	case *ast.Call:
		for _, a := range x.Args {
			if containsVar(a, name) {
				return true
			}
		}
	}
	return false
}
