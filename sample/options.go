package sample

import (
	"context"
	"fmt"
	"math"
)

// Option configures a sampling call via functional arguments. Invalid
// values are recorded and surfaced as ErrOptionViolation before any
// evaluation starts.
type Option func(*Options)

// Options holds the knobs shared by every sampling strategy. Not every
// field applies to every strategy; irrelevant ones are ignored.
type Options struct {
	// Ctx allows cancellation and deadlines for long sweeps
	// (a 200x200 surface is 40k evaluations).
	Ctx context.Context

	// Resolution is the step count along the swept axis
	// (2D, parametric, polar). Capped at MaxResolution.
	Resolution int

	// XResolution and YResolution are the per-axis step counts for
	// surfaces and contours. Capped at MaxResolution each.
	XResolution int
	YResolution int

	// Unit interprets polar angles; converted to radians before the
	// evaluator is involved.
	Unit AngleUnit

	// Contour is the target value c for implicit rendering f(x,y) = c.
	Contour float64

	// Tolerance accepts an implicit cell center when |f(center)-c| is
	// within it. Zero means automatic: within the cell's own corner
	// spread.
	Tolerance float64

	// Workers is the sampling parallelism for surfaces. Results are
	// reassembled in row order regardless of worker count.
	Workers int

	// internal error recorded during option application
	err error
}

// DefaultOptions returns the baseline configuration:
// background context, DefaultResolution sweeps, DefaultGridResolution
// grids, radians, contour 0, automatic tolerance, single worker.
func DefaultOptions() Options {
	return Options{
		Ctx:         context.Background(),
		Resolution:  DefaultResolution,
		XResolution: DefaultGridResolution,
		YResolution: DefaultGridResolution,
		Unit:        Radians,
		Contour:     0,
		Tolerance:   0,
		Workers:     1,
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithResolution sets the swept-axis step count.
func WithResolution(n int) Option {
	return func(o *Options) {
		if n < 1 || n > MaxResolution {
			o.err = fmt.Errorf("%w: resolution %d outside [1, %d]", ErrOptionViolation, n, MaxResolution)
			return
		}
		o.Resolution = n
	}
}

// WithGridResolution sets the per-axis step counts for surfaces and
// contours.
func WithGridResolution(xSteps, ySteps int) Option {
	return func(o *Options) {
		if xSteps < 1 || xSteps > MaxResolution || ySteps < 1 || ySteps > MaxResolution {
			o.err = fmt.Errorf("%w: grid resolution %dx%d outside [1, %d]", ErrOptionViolation, xSteps, ySteps, MaxResolution)
			return
		}
		o.XResolution = xSteps
		o.YResolution = ySteps
	}
}

// WithAngleUnit sets the polar angle unit.
func WithAngleUnit(u AngleUnit) Option {
	return func(o *Options) {
		switch u {
		case Radians, Degrees, Gradians:
			o.Unit = u
		default:
			o.err = fmt.Errorf("%w: unknown angle unit %d", ErrOptionViolation, u)
		}
	}
}

// WithContour sets the implicit target value c in f(x,y) = c.
func WithContour(c float64) Option {
	return func(o *Options) {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			o.err = fmt.Errorf("%w: contour must be finite", ErrOptionViolation)
			return
		}
		o.Contour = c
	}
}

// WithTolerance sets an absolute acceptance tolerance for implicit
// cell centers. Zero restores the automatic corner-spread rule.
func WithTolerance(tol float64) Option {
	return func(o *Options) {
		if tol < 0 || math.IsNaN(tol) {
			o.err = fmt.Errorf("%w: tolerance must be >= 0", ErrOptionViolation)
			return
		}
		o.Tolerance = tol
	}
}

// WithWorkers sets surface-sampling parallelism.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: workers must be >= 1", ErrOptionViolation)
			return
		}
		o.Workers = n
	}
}

// gatherOptions applies opts over the defaults and surfaces the first
// recorded violation.
func gatherOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
		if o.err != nil {
			return o, o.err
		}
	}
	return o, nil
}

// toRadians converts an angle in the configured unit to radians.
func (o Options) toRadians(angle float64) float64 {
	switch o.Unit {
	case Degrees:
		return angle * math.Pi / 180
	case Gradians:
		return angle * math.Pi / 200
	default:
		return angle
	}
}
