// Package parser builds an ast.Node tree from a token sequence using
// recursive descent with precedence climbing.
//
// Grammar (low → high precedence):
//
//	expr    := term (('+'|'-') term)*
//	term    := factor (('*'|'/'|'%') factor)*
//	factor  := unary ('^' factor)?          // right-associative power
//	unary   := ('+'|'-')? primary
//	primary := number | identifier | identifier '(' args ')' | '(' expr ')'
//
// Function arity is deliberately not checked here — some functions are
// variadic — the evaluator validates arity and domains per function.
//
// Failure cases (all unwrap to ast.ErrParse): empty input, unbalanced
// parentheses, an empty parenthesis pair, trailing unconsumed tokens,
// and a leading or trailing binary operator.
package parser
