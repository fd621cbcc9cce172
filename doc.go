// Package calcgraph is an embeddable calculator and graphing engine:
// it parses textual math expressions, evaluates them with
// arbitrary-precision decimal arithmetic, and samples functions into
// plottable point sets with zero/extremum analysis.
//
// 🚀 What is calcgraph?
//
//	A deterministic, dependency-light engine that brings together:
//		• Tokenizer & parser: strings → tokens → AST (precedence climbing)
//		• Evaluator: AST + variable bindings → Decimal, per-instance precision
//		• Classifier: arithmetic / scientific / equation / function / matrix
//		• Symbolic helpers: simplify, derivative and integral rewrite rules
//		• Sampling: 2D, 3D, parametric, polar and implicit-contour point sets
//		• Analysis: zeros and local extrema from sampled curves
//		• Viewport: math↔screen mapping with zoom, pan, rotate and fit
//
// ✨ Why choose calcgraph?
//
//   - Exact by default – all arithmetic routes through apd.Decimal,
//     never binary floating point, with precision owned per Evaluator
//   - Rock-solid guarantees – every failure is a typed sentinel error;
//     malformed input never escapes as a panic
//   - Extensible – functional options (WithContext, WithResolution,
//     WithAngleUnit…) on every sampling entry point
//
// Under the hood, everything is organized as small focused packages:
//
//	token/    — tokenizer with a reserved-identifier table
//	ast/      — closed node union + shared parse errors
//	parser/   — precedence-climbing parser
//	eval/     — decimal tree-walk evaluator with domain checks
//	classify/ — heuristic input classification
//	symbolic/ — simplify / differentiate / integrate rewrite rules
//	grid/     — dense value grids backing 3D and contour sampling
//	sample/   — the graph sampler (2D/3D/parametric/polar/implicit)
//	analyze/  — special-point detection (zeros, maxima, minima)
//	view/     — viewport transforms
//	calc/     — the high-level calculator facade and JSON entities
//
// Quick example:
//
//	c := calc.New()
//	res, err := c.Evaluate("2 + 3 * 4", nil) // res.Value == 14
//
// Dive into each package's doc.go for grammar, invariants and examples.
package calcgraph
