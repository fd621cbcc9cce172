package calc

import (
	"fmt"
	"sort"
	"time"

	"github.com/cockroachdb/apd/v3"

	"github.com/miounet11/jisuanqipc-sub000/analyze"
	"github.com/miounet11/jisuanqipc-sub000/ast"
	"github.com/miounet11/jisuanqipc-sub000/classify"
	"github.com/miounet11/jisuanqipc-sub000/eval"
	"github.com/miounet11/jisuanqipc-sub000/parser"
	"github.com/miounet11/jisuanqipc-sub000/sample"
	"github.com/miounet11/jisuanqipc-sub000/symbolic"
	"github.com/miounet11/jisuanqipc-sub000/token"
)

// Numeric equation solving parameters.
const (
	// solveResolution is the sweep step count for root bracketing.
	solveResolution = 1000

	// solveTolerance is the |y| threshold for the direct zero scan.
	solveTolerance = 1e-9
)

// Calculator ties the pipeline together. Each instance owns its own
// decimal context; instances are independent and safe to use from
// separate goroutines as long as each goroutine uses its own instance.
type Calculator struct {
	precision  uint32
	rounding   apd.Rounder
	scientific bool

	ev      *eval.Evaluator
	check   *eval.Evaluator
	sampler *sample.Sampler
}

// Option configures a Calculator at construction time.
type Option func(*Calculator)

// WithPrecision sets the decimal precision (significant digits) of the
// instance's evaluator. Values < 1 are ignored.
func WithPrecision(p uint32) Option {
	return func(c *Calculator) {
		if p >= 1 {
			c.precision = p
		}
	}
}

// WithRounding sets the rounding mode (apd.RoundHalfEven by default).
func WithRounding(r apd.Rounder) Option {
	return func(c *Calculator) { c.rounding = r }
}

// WithScientificMode upgrades classification: plain arithmetic and
// user-function inputs are tagged Scientific.
func WithScientificMode() Option {
	return func(c *Calculator) { c.scientific = true }
}

// New builds a Calculator. The check evaluator runs at double
// precision and backs the Result.IsExact verdict.
func New(opts ...Option) *Calculator {
	c := &Calculator{
		precision: eval.DefaultPrecision,
		rounding:  apd.RoundHalfEven,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.ev = eval.New(eval.WithPrecision(c.precision), eval.WithRounding(c.rounding))
	c.check = eval.New(eval.WithPrecision(2*c.precision), eval.WithRounding(c.rounding))
	c.sampler = sample.New(c.ev)
	return c
}

// Precision returns the instance's decimal precision.
func (c *Calculator) Precision() uint32 { return c.precision }

// Parse turns raw input into an Expression record. It never fails:
// unparsable input yields a record with IsValid false and the failure
// text in ErrorMessage.
func (c *Calculator) Parse(input string) *Expression {
	var copts []classify.Option
	if c.scientific {
		copts = append(copts, classify.WithScientific())
	}
	e := &Expression{
		ID:        fmt.Sprintf("expr-%d", exprSeq.Add(1)),
		Input:     input,
		Type:      classify.Classify(input, copts...),
		CreatedAt: time.Now().UTC(),
	}
	toks, err := token.Tokenize(input)
	if err != nil {
		e.ErrorMessage = err.Error()
		return e
	}
	e.Tokens = toks
	n, err := parser.Parse(toks)
	if err != nil {
		e.ErrorMessage = err.Error()
		return e
	}
	e.AST = n
	e.IsValid = true
	return e
}

// Bind sets a variable on the expression's binding map.
func (e *Expression) Bind(name string, v *apd.Decimal) {
	if e.Variables == nil {
		e.Variables = make(map[string]*apd.Decimal, 1)
	}
	e.Variables[name] = v
}

// Evaluate parses and evaluates input in one step. vars may be nil.
func (c *Calculator) Evaluate(input string, vars map[string]*apd.Decimal) (*Result, error) {
	n, err := parser.ParseString(input)
	if err != nil {
		return nil, err
	}
	return c.evaluateNode(n, vars)
}

// EvaluateExpression evaluates a parsed record against its stored
// bindings merged with extra (extra wins on collision).
func (c *Calculator) EvaluateExpression(e *Expression, extra map[string]*apd.Decimal) (*Result, error) {
	if e == nil || !e.IsValid || e.AST == nil {
		return nil, ErrInvalidExpression
	}
	vars := e.Variables
	if len(extra) > 0 {
		vars = make(map[string]*apd.Decimal, len(e.Variables)+len(extra))
		for name, v := range e.Variables {
			vars[name] = v
		}
		for name, v := range extra {
			vars[name] = v
		}
	}
	return c.evaluateNode(e.AST, vars)
}

func (c *Calculator) evaluateNode(n ast.Node, vars map[string]*apd.Decimal) (*Result, error) {
	start := time.Now()
	v, err := c.ev.Evaluate(n, vars)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)
	return &Result{
		Value:           v,
		DisplayValue:    v.String(),
		Format:          "decimal",
		Precision:       c.precision,
		IsExact:         c.isExact(n, vars, v),
		ComputationTime: elapsed,
	}, nil
}

// isExact re-runs the tree at double precision; a value that survives
// the precision doubling unchanged carried no rounding loss.
func (c *Calculator) isExact(n ast.Node, vars map[string]*apd.Decimal, v *apd.Decimal) bool {
	wide, err := c.check.Evaluate(n, vars)
	if err != nil {
		return false
	}
	return wide.Cmp(v) == 0
}

// Simplify parses input, applies the rewrite rules and renders the
// simplified tree back to text.
func (c *Calculator) Simplify(input string) (string, error) {
	n, err := parser.ParseString(input)
	if err != nil {
		return "", err
	}
	return symbolic.Simplify(n).String(), nil
}

// Differentiate parses input and returns d/d(name) as text.
func (c *Calculator) Differentiate(input, name string) (string, error) {
	n, err := parser.ParseString(input)
	if err != nil {
		return "", err
	}
	d, err := symbolic.Diff(n, name)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

// Integrate parses input and returns the antiderivative with respect
// to name as text, without the integration constant.
func (c *Calculator) Integrate(input, name string) (string, error) {
	n, err := parser.ParseString(input)
	if err != nil {
		return "", err
	}
	in, err := symbolic.Integrate(n, name)
	if err != nil {
		return "", err
	}
	return in.String(), nil
}

// Render samples the expression with the strategy for ft and wraps the
// points in a Graph fitted to its own bounding box.
//
// xDomain sweeps x (2D, 3D, implicit), theta (polar) or t (parametric
// is rejected here: it needs component expressions, use the sampler
// directly). yDomain is only read by the 3D and implicit strategies.
// resolution is steps per swept axis.
func (c *Calculator) Render(e *Expression, ft sample.FunctionType, xDomain, yDomain sample.Range, resolution int, opts ...sample.Option) (*sample.Graph, error) {
	if e == nil || !e.IsValid || e.AST == nil {
		return nil, fmt.Errorf("%w: render needs a parsed expression", sample.ErrInvalidExpression)
	}

	all := make([]sample.Option, 0, len(opts)+1)
	all = append(all, opts...)

	var points []sample.Point3D
	var err error
	switch ft {
	case sample.Func2D:
		all = append(all, sample.WithResolution(resolution))
		points, err = c.sampler.Sample2D(e.AST, xDomain, all...)
	case sample.FuncPolar:
		all = append(all, sample.WithResolution(resolution))
		points, err = c.sampler.SamplePolar(e.AST, xDomain, all...)
	case sample.Func3D:
		all = append(all, sample.WithGridResolution(resolution, resolution))
		points, err = c.sampler.Sample3D(e.AST, xDomain, yDomain, all...)
	case sample.FuncImplicit:
		all = append(all, sample.WithGridResolution(resolution, resolution))
		points, err = c.sampler.SampleImplicit(e.AST, xDomain, yDomain, all...)
	default:
		return nil, fmt.Errorf("%w: %s requires per-component expressions", sample.ErrUnsupportedType, ft)
	}
	if err != nil {
		return nil, err
	}

	g, err := sample.NewGraph(e.ID, ft, xDomain, valueRange(points, ft), resolution)
	if err != nil {
		return nil, err
	}
	if err := g.SetPoints(points); err != nil {
		return nil, err
	}
	g.FitToView(0.05)
	return g, nil
}

// valueRange is the extent of the dependent value across points: z for
// surfaces and contours, y otherwise. A flat extent is widened by one
// unit each way so the range invariant holds.
func valueRange(points []sample.Point3D, ft sample.FunctionType) sample.Range {
	pick := func(p sample.Point3D) float64 { return p.Y }
	if ft == sample.Func3D || ft == sample.FuncImplicit {
		pick = func(p sample.Point3D) float64 { return p.Z }
	}
	min, max := pick(points[0]), pick(points[0])
	for _, p := range points[1:] {
		v := pick(p)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		min, max = min-1, max+1
	}
	return sample.Range{Min: min, Max: max}
}

// Solve finds real roots of an equation record over domain by sweeping
// lhs-rhs and collecting its zeros. Roots within half a sweep step of
// each other are merged. Only Equation-typed records are accepted.
func (c *Calculator) Solve(e *Expression, domain sample.Range) ([]float64, error) {
	if e == nil {
		return nil, ErrInvalidExpression
	}
	if e.Type != classify.Equation {
		return nil, fmt.Errorf("%w: solve needs an equation, got %s", ErrUnsupportedOperation, e.Type)
	}
	lhs, rhs, ok := classify.SplitEquation(e.Input)
	if !ok {
		return nil, fmt.Errorf("%w: no standalone '=' in %q", ErrUnsupportedOperation, e.Input)
	}
	left, err := parser.ParseString(lhs)
	if err != nil {
		return nil, err
	}
	right, err := parser.ParseString(rhs)
	if err != nil {
		return nil, err
	}
	diff := &ast.Binary{Op: "-", Left: left, Right: right}

	points, err := c.sampler.Sample2D(diff, domain, sample.WithResolution(solveResolution))
	if err != nil {
		return nil, err
	}
	found, err := analyze.FindSpecialPoints(points, solveTolerance)
	if err != nil {
		return nil, err
	}

	var roots []float64
	for _, sp := range found {
		if sp.Type == analyze.Zero {
			roots = append(roots, sp.Position)
		}
	}
	sort.Float64s(roots)

	eps := domain.Width() / solveResolution / 2
	merged := roots[:0]
	for _, r := range roots {
		if len(merged) == 0 || r-merged[len(merged)-1] > eps {
			merged = append(merged, r)
		}
	}
	return merged, nil
}
