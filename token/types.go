package token

// Kind classifies a token.
type Kind int

const (
	// Number is an integer, decimal or exponential literal ("2", "3.14", "6.02e23").
	Number Kind = iota

	// Identifier is a free variable name (not reserved).
	Identifier

	// Function is a reserved callable name ("sin", "sqrt", "max", …).
	Function

	// Constant is a reserved constant name ("pi", "e", "phi").
	Constant

	// Operator is one of + - * / ^ % = == != < > <= >= ("**" is
	// normalized to "^" during tokenizing).
	Operator

	// LeftParen and RightParen delimit groups and argument lists.
	LeftParen
	RightParen

	// Comma separates function-call arguments.
	Comma
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case Identifier:
		return "identifier"
	case Function:
		return "function"
	case Constant:
		return "constant"
	case Operator:
		return "operator"
	case LeftParen:
		return "left-paren"
	case RightParen:
		return "right-paren"
	case Comma:
		return "comma"
	default:
		return "unknown"
	}
}

// Token is one lexical unit. Immutable after creation.
type Token struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text"`
	Pos  int    `json:"pos"` // byte offset of the first character
}

// functions is the reserved callable set. Arity and domain rules live in
// the evaluator; the tokenizer only fixes the name's classification.
var functions = map[string]struct{}{
	"sin": {}, "cos": {}, "tan": {},
	"asin": {}, "acos": {}, "atan": {},
	"ln": {}, "log": {}, "sqrt": {}, "exp": {},
	"abs": {}, "ceil": {}, "floor": {}, "round": {},
	"pow": {}, "max": {}, "min": {}, "factorial": {},
}

// constants maps reserved constant spellings to their canonical name.
var constants = map[string]string{
	"pi": "pi", "π": "pi",
	"e": "e",
	"phi": "phi", "φ": "phi",
}

// IsFunction reports whether name is a reserved function.
func IsFunction(name string) bool {
	_, ok := functions[name]
	return ok
}

// IsConstant reports whether name is a reserved constant spelling.
func IsConstant(name string) bool {
	_, ok := constants[name]
	return ok
}

// CanonicalConstant maps a constant spelling ("π") to its canonical
// name ("pi"). The second result is false for non-constants.
func CanonicalConstant(name string) (string, bool) {
	c, ok := constants[name]
	return c, ok
}

// Functions returns a copy of the reserved function names.
func Functions() []string {
	out := make([]string, 0, len(functions))
	for name := range functions {
		out = append(out, name)
	}
	return out
}
