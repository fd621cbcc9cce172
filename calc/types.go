package calc

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/apd/v3"

	"github.com/miounet11/jisuanqipc-sub000/ast"
	"github.com/miounet11/jisuanqipc-sub000/classify"
	"github.com/miounet11/jisuanqipc-sub000/parser"
	"github.com/miounet11/jisuanqipc-sub000/token"
)

// Sentinel errors for the facade layer. Pipeline failures keep their
// originating package's sentinel (parser, eval, sample, analyze).
var (
	// ErrInvalidExpression is returned when an operation needs a valid
	// parsed expression and the record does not hold one.
	ErrInvalidExpression = errors.New("calc: expression is not valid")

	// ErrUnsupportedOperation is returned when an operation does not
	// apply to the expression's classified type, e.g. Solve on
	// plain arithmetic.
	ErrUnsupportedOperation = errors.New("calc: operation not supported for this expression type")

	// ErrBadRecord is returned when a serialized record cannot be
	// restored losslessly.
	ErrBadRecord = errors.New("calc: malformed serialized record")
)

// exprSeq numbers expressions within the process.
var exprSeq atomic.Int64

// Expression is the durable record of one raw input. Invalid input
// still produces a record: IsValid is false and ErrorMessage holds the
// parse failure, so a history of attempts can be kept.
type Expression struct {
	ID           string
	Input        string
	Tokens       []token.Token
	AST          ast.Node
	IsValid      bool
	ErrorMessage string
	Type         classify.Type
	Variables    map[string]*apd.Decimal
	CreatedAt    time.Time
}

// expressionJSON is the wire shape. The tree is not serialized; it is
// rebuilt from the token stream on restore. Decimal bindings travel as
// strings to stay lossless.
type expressionJSON struct {
	ID           string            `json:"id"`
	Input        string            `json:"input"`
	Tokens       []token.Token     `json:"tokens,omitempty"`
	IsValid      bool              `json:"isValid"`
	ErrorMessage string            `json:"errorMessage,omitempty"`
	Type         string            `json:"type"`
	Variables    map[string]string `json:"variables,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// MarshalJSON serializes the record losslessly.
func (e Expression) MarshalJSON() ([]byte, error) {
	out := expressionJSON{
		ID:           e.ID,
		Input:        e.Input,
		Tokens:       e.Tokens,
		IsValid:      e.IsValid,
		ErrorMessage: e.ErrorMessage,
		Type:         e.Type.String(),
		CreatedAt:    e.CreatedAt,
	}
	if len(e.Variables) > 0 {
		out.Variables = make(map[string]string, len(e.Variables))
		for name, v := range e.Variables {
			out.Variables[name] = v.String()
		}
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores the record, re-parsing the tree from the
// stored token stream when the record is valid.
func (e *Expression) UnmarshalJSON(b []byte) error {
	var in expressionJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRecord, err)
	}
	restored := Expression{
		ID:           in.ID,
		Input:        in.Input,
		Tokens:       in.Tokens,
		IsValid:      in.IsValid,
		ErrorMessage: in.ErrorMessage,
		Type:         classify.TypeFromString(in.Type),
		CreatedAt:    in.CreatedAt,
	}
	if len(in.Variables) > 0 {
		restored.Variables = make(map[string]*apd.Decimal, len(in.Variables))
		for name, text := range in.Variables {
			v, _, err := apd.NewFromString(text)
			if err != nil {
				return fmt.Errorf("%w: variable %s = %q", ErrBadRecord, name, text)
			}
			restored.Variables[name] = v
		}
	}
	if restored.IsValid {
		n, err := parser.Parse(restored.Tokens)
		if err != nil {
			return fmt.Errorf("%w: stored tokens do not parse: %v", ErrBadRecord, err)
		}
		restored.AST = n
	}
	*e = restored
	return nil
}

// Result is one evaluation outcome. Value keeps full decimal
// precision; DisplayValue is what a front-end shows.
type Result struct {
	Value           *apd.Decimal
	DisplayValue    string
	Format          string
	Precision       uint32
	IsExact         bool
	ComputationTime time.Duration
}

type resultJSON struct {
	Value           string `json:"value"`
	DisplayValue    string `json:"displayValue"`
	Format          string `json:"format"`
	Precision       uint32 `json:"precision"`
	IsExact         bool   `json:"isExact"`
	ComputationTime int64  `json:"computationTimeNs"`
}

// MarshalJSON serializes the result with the decimal value as a string.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(resultJSON{
		Value:           r.Value.String(),
		DisplayValue:    r.DisplayValue,
		Format:          r.Format,
		Precision:       r.Precision,
		IsExact:         r.IsExact,
		ComputationTime: int64(r.ComputationTime),
	})
}

// UnmarshalJSON restores the result losslessly.
func (r *Result) UnmarshalJSON(b []byte) error {
	var in resultJSON
	if err := json.Unmarshal(b, &in); err != nil {
		return fmt.Errorf("%w: %v", ErrBadRecord, err)
	}
	v, _, err := apd.NewFromString(in.Value)
	if err != nil {
		return fmt.Errorf("%w: value %q", ErrBadRecord, in.Value)
	}
	*r = Result{
		Value:           v,
		DisplayValue:    in.DisplayValue,
		Format:          in.Format,
		Precision:       in.Precision,
		IsExact:         in.IsExact,
		ComputationTime: time.Duration(in.ComputationTime),
	}
	return nil
}
