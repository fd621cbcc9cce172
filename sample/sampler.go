package sample

import (
	"math"

	"github.com/miounet11/jisuanqipc-sub000/ast"
	"github.com/miounet11/jisuanqipc-sub000/eval"
)

// Sampler drives one Evaluator across numeric domains. The evaluator's
// precision travels with it; a Sampler adds no numeric policy of its own.
type Sampler struct {
	ev *eval.Evaluator
}

// New builds a Sampler around ev. A nil ev gets a default evaluator.
func New(ev *eval.Evaluator) *Sampler {
	if ev == nil {
		ev = eval.New()
	}
	return &Sampler{ev: ev}
}

// isFinite is the keep/skip test shared by all strategies.
func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Sample2D sweeps x over domain in Resolution equal steps and keeps
// every finite y = f(x). Individual failures (domain gaps, asymptotes)
// are skipped; an entirely empty result fails with ErrNoPoints.
// The output is ascending in x with length <= Resolution+1.
// Complexity: O(Resolution) evaluations.
func (s *Sampler) Sample2D(fn ast.Node, domain Range, opts ...Option) ([]Point3D, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, ErrInvalidExpression
	}
	if !domain.valid() {
		return nil, ErrInvalidRange
	}

	step := domain.Width() / float64(o.Resolution)
	points := make([]Point3D, 0, o.Resolution+1)
	vars := map[string]float64{VarX: 0}

	for i := 0; i <= o.Resolution; i++ {
		if err := o.Ctx.Err(); err != nil {
			return nil, err
		}
		x := domain.Min + float64(i)*step
		vars[VarX] = x
		y, err := s.ev.EvaluateFloat(fn, vars)
		if err != nil || !isFinite(y) {
			continue // skip the bad sample, keep the sweep alive
		}
		points = append(points, Point3D{X: x, Y: y})
	}
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	return points, nil
}

// SampleParametric sweeps t over tRange and evaluates two or three
// component expressions per step: x(t), y(t) and, when zFn is non-nil,
// z(t). A point is kept only when every component is finite.
// The output is ascending in t.
// Complexity: O(Resolution) evaluations per component.
func (s *Sampler) SampleParametric(xFn, yFn, zFn ast.Node, tRange Range, opts ...Option) ([]Point3D, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return nil, err
	}
	if xFn == nil || yFn == nil {
		return nil, ErrInvalidExpression
	}
	if !tRange.valid() {
		return nil, ErrInvalidRange
	}

	step := tRange.Width() / float64(o.Resolution)
	points := make([]Point3D, 0, o.Resolution+1)
	vars := map[string]float64{VarT: 0}

	for i := 0; i <= o.Resolution; i++ {
		if err := o.Ctx.Err(); err != nil {
			return nil, err
		}
		vars[VarT] = tRange.Min + float64(i)*step

		x, err := s.ev.EvaluateFloat(xFn, vars)
		if err != nil || !isFinite(x) {
			continue
		}
		y, err := s.ev.EvaluateFloat(yFn, vars)
		if err != nil || !isFinite(y) {
			continue
		}
		p := Point3D{X: x, Y: y}
		if zFn != nil {
			z, err := s.ev.EvaluateFloat(zFn, vars)
			if err != nil || !isFinite(z) {
				continue
			}
			p.Z = z
		}
		points = append(points, p)
	}
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	return points, nil
}

// SamplePolar sweeps theta over thetaRange (interpreted in the
// configured angle unit and converted to radians before evaluation)
// and keeps r = f(theta) when r is finite and non-negative, converted
// to Cartesian (r·cosθ, r·sinθ). The output is ascending in theta.
// Complexity: O(Resolution) evaluations.
func (s *Sampler) SamplePolar(rFn ast.Node, thetaRange Range, opts ...Option) ([]Point3D, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return nil, err
	}
	if rFn == nil {
		return nil, ErrInvalidExpression
	}
	if !thetaRange.valid() {
		return nil, ErrInvalidRange
	}

	step := thetaRange.Width() / float64(o.Resolution)
	points := make([]Point3D, 0, o.Resolution+1)
	vars := map[string]float64{VarTheta: 0}

	for i := 0; i <= o.Resolution; i++ {
		if err := o.Ctx.Err(); err != nil {
			return nil, err
		}
		theta := o.toRadians(thetaRange.Min + float64(i)*step)
		vars[VarTheta] = theta

		r, err := s.ev.EvaluateFloat(rFn, vars)
		if err != nil || !isFinite(r) || r < 0 {
			continue // negative radii are dropped, not reflected
		}
		points = append(points, Point3D{X: r * math.Cos(theta), Y: r * math.Sin(theta)})
	}
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	return points, nil
}
