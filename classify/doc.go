// Package classify tags raw calculator input with a coarse expression
// type — arithmetic, scientific, equation, function or matrix — so
// downstream consumers can pick the matching validation ruleset.
//
// This is a deliberately lightweight heuristic scan, not a parse:
// classification never fails, and a tag does not guarantee the input is
// valid. The tokenizer and parser remain the source of truth.
package classify
