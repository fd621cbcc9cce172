package classify

import (
	"strings"
	"unicode"

	"github.com/miounet11/jisuanqipc-sub000/token"
)

// Type is the coarse classification of a raw input string.
type Type int

const (
	// Arithmetic is the fallback: plain numbers and operators.
	Arithmetic Type = iota

	// Scientific input uses at least one reserved function name, or was
	// forced by WithScientific.
	Scientific

	// Equation input contains a standalone '=' (not ==, !=, <=, >=).
	Equation

	// Function input has the call shape "name(args)" with a
	// non-reserved name, e.g. a user-defined f(x).
	Function

	// Matrix input uses bracket syntax.
	Matrix
)

// String returns the tag name used in serialized records.
func (t Type) String() string {
	switch t {
	case Scientific:
		return "scientific"
	case Equation:
		return "equation"
	case Function:
		return "function"
	case Matrix:
		return "matrix"
	default:
		return "arithmetic"
	}
}

// TypeFromString is the inverse of String; unknown tags fall back to
// Arithmetic.
func TypeFromString(s string) Type {
	switch s {
	case "scientific":
		return Scientific
	case "equation":
		return Equation
	case "function":
		return Function
	case "matrix":
		return Matrix
	default:
		return Arithmetic
	}
}

// Option tweaks classification.
type Option func(*options)

type options struct {
	scientific bool
}

// WithScientific marks the input as coming from scientific mode, which
// upgrades the fallback tags (arithmetic, function) to Scientific.
// Equation and matrix detection still win.
func WithScientific() Option {
	return func(o *options) { o.scientific = true }
}

// Classify tags input in priority order: equation, scientific,
// matrix, function, arithmetic. It never fails; garbage input simply
// lands on the arithmetic fallback for the parser to reject.
// Complexity: O(len(input)).
func Classify(input string, opts ...Option) Type {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if hasStandaloneEquals(input) {
		return Equation
	}
	if usesReservedFunction(input) {
		return Scientific
	}
	if strings.ContainsAny(input, "[]") {
		return Matrix
	}
	if o.scientific {
		return Scientific
	}
	if hasCallShape(input) {
		return Function
	}
	return Arithmetic
}

// SplitEquation splits input at its first standalone '=' into the two
// sides of the equation. ok is false when no standalone '=' exists.
func SplitEquation(input string) (lhs, rhs string, ok bool) {
	i := standaloneEqualsIndex(input)
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(input[:i]), strings.TrimSpace(input[i+1:]), true
}

// hasStandaloneEquals reports a '=' that is not part of ==, !=, <= or >=.
func hasStandaloneEquals(s string) bool {
	return standaloneEqualsIndex(s) >= 0
}

func standaloneEqualsIndex(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] != '=' {
			continue
		}
		if i > 0 && (s[i-1] == '=' || s[i-1] == '!' || s[i-1] == '<' || s[i-1] == '>') {
			continue
		}
		if i+1 < len(s) && s[i+1] == '=' {
			i++ // skip the '==' pair entirely
			continue
		}
		return i
	}
	return -1
}

// usesReservedFunction scans identifiers against the reserved function
// table without a full tokenize.
func usesReservedFunction(s string) bool {
	i := 0
	for i < len(s) {
		c := rune(s[i])
		if !unicode.IsLetter(c) && c != '_' {
			i++
			continue
		}
		j := i
		for j < len(s) && (isWordByte(s[j])) {
			j++
		}
		if token.IsFunction(s[i:j]) {
			return true
		}
		i = j
	}
	return false
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '_'
}

// hasCallShape reports whether the trimmed input is exactly
// "identifier(...)" with a matching final parenthesis.
func hasCallShape(s string) bool {
	s = strings.TrimSpace(s)
	if len(s) < 3 {
		return false
	}
	i := 0
	for i < len(s) && isWordByte(s[i]) && !(s[i] >= '0' && s[i] <= '9' && i == 0) {
		i++
	}
	if i == 0 || i >= len(s) || s[i] != '(' {
		return false
	}
	return s[len(s)-1] == ')'
}
