// Package symbolic applies substitution-style rewrite rules to AST
// trees: simplification, differentiation and integration.
//
// This is deliberately not a computer-algebra system. The rule set is
// the small, deterministic one a calculator needs:
//
//	Simplify:  constant folding, 0+x→x, x-0→x, x-x→0, x+x→2*x,
//	           0*x→0, 1*x→x, x/1→x, x/x→1, x^0→1, x^1→x, 1^x→1, -(-x)→x
//	Diff:      constants, powers, sums, products, quotients, and the
//	           chain rule through sin, cos, tan, exp, ln and sqrt
//	Integrate: power rule (x^-1 → ln(x)), constant multiples, sums,
//	           sin, cos and exp
//
// Simplify is idempotent: Simplify(Simplify(n)) equals Simplify(n).
// Anything outside the rule set fails with ErrUnsupported rather than
// returning a half-rewritten tree.
package symbolic
