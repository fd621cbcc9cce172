package ast

import (
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// Node is the sealed interface implemented by every AST node.
// The node() marker keeps the union closed to this package.
type Node interface {
	node()
	// String renders the subtree as a parenthesized expression.
	String() string
}

// Number is a numeric literal holding an arbitrary-precision decimal.
type Number struct {
	Value *apd.Decimal
}

// Variable references a binding supplied at evaluation time.
type Variable struct {
	Name string
}

// Unary applies a prefix operator ("+" or "-") to its operand.
type Unary struct {
	Op string
	X  Node
}

// Binary applies an infix operator ("+", "-", "*", "/", "^", "%").
type Binary struct {
	Op    string
	Left  Node
	Right Node
}

// Call invokes a named function with an ordered argument list.
// Arity is not validated here; the evaluator checks it per function.
type Call struct {
	Name string
	Args []Node
}

func (*Number) node()   {}
func (*Variable) node() {}
func (*Unary) node()    {}
func (*Binary) node()   {}
func (*Call) node()     {}

func (n *Number) String() string   { return n.Value.Text('f') }
func (n *Variable) String() string { return n.Name }

func (n *Unary) String() string {
	return "(" + n.Op + n.X.String() + ")"
}

func (n *Binary) String() string {
	return "(" + n.Left.String() + " " + n.Op + " " + n.Right.String() + ")"
}

func (n *Call) String() string {
	parts := make([]string, len(n.Args))
	for i, a := range n.Args {
		parts[i] = a.String()
	}
	return n.Name + "(" + strings.Join(parts, ", ") + ")"
}

// Num builds a Number node from an int64 coefficient.
// Convenience for tests and the symbolic rewriter.
func Num(v int64) *Number {
	return &Number{Value: apd.New(v, 0)}
}

// Equal reports structural equality of two trees.
// Numbers compare by decimal value, not by textual representation.
// Complexity: O(n) over the smaller tree.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case *Number:
		y, ok := b.(*Number)
		return ok && x.Value.Cmp(y.Value) == 0
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.Name == y.Name
	case *Unary:
		y, ok := b.(*Unary)
		return ok && x.Op == y.Op && Equal(x.X, y.X)
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	case *Call:
		y, ok := b.(*Call)
		if !ok || x.Name != y.Name || len(x.Args) != len(y.Args) {
			return false
		}
		for i := range x.Args {
			if !Equal(x.Args[i], y.Args[i]) {
				return false
			}
		}
		return true
	}
	return false
}
