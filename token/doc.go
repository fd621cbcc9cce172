// Package token turns a raw expression string into an ordered token
// sequence: numeric literals (integer, decimal, exponential), identifiers,
// operators, parentheses and commas.
//
// Identifier disambiguation happens here, once, against a single
// reserved-identifier table: a name is either a known function, a known
// constant (pi, e, phi and their Unicode forms), or a free variable.
// Downstream packages never re-derive this from string comparisons.
//
// Tokenize is a pure function: no state, no side effects. Any character
// outside the supported set fails with a position-carrying error that
// unwraps to ast.ErrParse.
package token
