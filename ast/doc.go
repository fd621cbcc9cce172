// Package ast defines the closed node union produced by the parser and
// consumed by the evaluator and the symbolic rewriter, plus the shared
// parse-error type carried by the tokenizer and parser.
//
// The union is sealed: every node type embeds the unexported marker, so a
// type switch over ast.Node is exhaustive by construction. Trees are owned —
// no sharing, no cycles — and immutable once built.
package ast
