package sample

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/miounet11/jisuanqipc-sub000/view"
)

// Sentinel errors for sampling and graph construction.
var (
	// ErrNoPoints is the render failure: sampling produced zero valid
	// points over the requested domain.
	ErrNoPoints = errors.New("sample: no valid points in domain")

	// ErrOptionViolation is returned when an invalid option is supplied.
	ErrOptionViolation = errors.New("sample: invalid option supplied")

	// ErrInvalidRange is returned when a range violates min < max.
	ErrInvalidRange = errors.New("sample: range min must be < max")

	// ErrInvalidExpression is returned when a required expression tree is
	// nil or otherwise unusable for sampling.
	ErrInvalidExpression = errors.New("sample: invalid expression")

	// ErrTooManyPoints is returned when a request would exceed MaxPoints.
	ErrTooManyPoints = errors.New("sample: point budget exceeded")

	// ErrUnsupportedType is returned for a FunctionType the renderer
	// does not implement.
	ErrUnsupportedType = errors.New("sample: unsupported function type")

	// ErrTooManyAnnotations is returned when a graph exceeds MaxAnnotations.
	ErrTooManyAnnotations = errors.New("sample: annotation budget exceeded")
)

// Hard caps bounding the worst-case cost of a single render call.
const (
	// MaxResolution caps steps per swept axis.
	MaxResolution = 10_000

	// MaxPoints caps the emitted point count per call.
	MaxPoints = 50_000

	// MaxAnnotations caps per-graph annotations.
	MaxAnnotations = 100
)

// Default resolutions, chosen to keep interactive renders cheap.
const (
	// DefaultResolution is the step count for 2D, parametric and polar sweeps.
	DefaultResolution = 100

	// DefaultGridResolution is the per-axis step count for 3D surfaces
	// and implicit contours.
	DefaultGridResolution = 50
)

// Swept variable names bound during evaluation.
const (
	VarX     = "x"
	VarY     = "y"
	VarT     = "t"
	VarTheta = "theta"
)

// Range is a half-open numeric interval with the invariant Min < Max.
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// NewRange validates the Min < Max invariant.
func NewRange(min, max float64) (Range, error) {
	if !(min < max) {
		return Range{}, fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, min, max)
	}
	return Range{Min: min, Max: max}, nil
}

// Width returns Max - Min.
func (r Range) Width() float64 { return r.Max - r.Min }

// valid reports the invariant without constructing.
func (r Range) valid() bool { return r.Min < r.Max }

// Point3D is a sampled point. 2D samples carry Z == 0.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// AngleUnit selects how polar angles are interpreted. Conversion to
// radians happens before any value reaches the evaluator.
type AngleUnit int

const (
	// Radians passes angles through unchanged.
	Radians AngleUnit = iota

	// Degrees converts by pi/180.
	Degrees

	// Gradians converts by pi/200.
	Gradians
)

// FunctionType names the sampling strategy a graph was built with.
type FunctionType int

const (
	// Func2D is y = f(x).
	Func2D FunctionType = iota

	// Func3D is z = f(x, y).
	Func3D

	// FuncParametric is (x(t), y(t)[, z(t)]).
	FuncParametric

	// FuncPolar is r = f(theta).
	FuncPolar

	// FuncImplicit is the contour f(x, y) = c.
	FuncImplicit
)

// String returns the tag used in serialized graphs.
func (ft FunctionType) String() string {
	switch ft {
	case Func3D:
		return "3d"
	case FuncParametric:
		return "parametric"
	case FuncPolar:
		return "polar"
	case FuncImplicit:
		return "implicit"
	default:
		return "2d"
	}
}

// MarshalJSON serializes the type as its string tag.
func (ft FunctionType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ft.String() + `"`), nil
}

// UnmarshalJSON restores the type from its string tag.
func (ft *FunctionType) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return fmt.Errorf("%w: %s", ErrUnsupportedType, string(b))
	}
	parsed, err := FunctionTypeFromString(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*ft = parsed
	return nil
}

// FunctionTypeFromString is the inverse of String; unknown tags yield
// ErrUnsupportedType.
func FunctionTypeFromString(s string) (FunctionType, error) {
	switch s {
	case "2d":
		return Func2D, nil
	case "3d":
		return Func3D, nil
	case "parametric":
		return FuncParametric, nil
	case "polar":
		return FuncPolar, nil
	case "implicit":
		return FuncImplicit, nil
	default:
		return Func2D, fmt.Errorf("%w: %q", ErrUnsupportedType, s)
	}
}

// graphSeq numbers graphs within the process.
var graphSeq atomic.Int64

// Graph is one fully recomputed render result. It is rebuilt from
// scratch on every render call; there is no incremental diffing.
type Graph struct {
	ID           string         `json:"id"`
	ExpressionID string         `json:"expressionId"`
	Type         FunctionType   `json:"functionType"`
	Domain       Range          `json:"domain"`
	Range        Range          `json:"range"`
	Resolution   int            `json:"resolution"`
	Points       []Point3D      `json:"points"`
	Style        string         `json:"style"`
	Viewport     *view.Viewport `json:"viewport"`
	Annotations  []string       `json:"annotations,omitempty"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// NewGraph builds an empty graph and enforces the construction
// invariants: valid domain and range, resolution within (0, MaxResolution].
func NewGraph(expressionID string, ft FunctionType, domain, rng Range, resolution int) (*Graph, error) {
	if !domain.valid() {
		return nil, fmt.Errorf("%w: domain [%v, %v]", ErrInvalidRange, domain.Min, domain.Max)
	}
	if !rng.valid() {
		return nil, fmt.Errorf("%w: range [%v, %v]", ErrInvalidRange, rng.Min, rng.Max)
	}
	if resolution < 1 || resolution > MaxResolution {
		return nil, fmt.Errorf("%w: resolution %d outside [1, %d]", ErrOptionViolation, resolution, MaxResolution)
	}
	vp, err := view.New(
		(domain.Min+domain.Max)/2,
		(rng.Min+rng.Max)/2,
		1, 1,
	)
	if err != nil {
		return nil, err
	}
	return &Graph{
		ID:           fmt.Sprintf("graph-%d", graphSeq.Add(1)),
		ExpressionID: expressionID,
		Type:         ft,
		Domain:       domain,
		Range:        rng,
		Resolution:   resolution,
		Points:       nil,
		Style:        "line",
		Viewport:     vp,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

// SetPoints replaces the point set, enforcing the MaxPoints cap.
func (g *Graph) SetPoints(points []Point3D) error {
	if len(points) > MaxPoints {
		return fmt.Errorf("%w: %d > %d", ErrTooManyPoints, len(points), MaxPoints)
	}
	g.Points = points
	return nil
}

// Annotate appends a text annotation, enforcing the MaxAnnotations cap.
func (g *Graph) Annotate(text string) error {
	if len(g.Annotations) >= MaxAnnotations {
		return fmt.Errorf("%w: %d", ErrTooManyAnnotations, MaxAnnotations)
	}
	g.Annotations = append(g.Annotations, text)
	return nil
}

// FitToView recenters and rescales the graph's viewport to its point
// set with symmetric padding. No-op for empty point sets or zero extent
// on either axis.
func (g *Graph) FitToView(padding float64) {
	if len(g.Points) == 0 || g.Viewport == nil {
		return
	}
	minX, maxX := g.Points[0].X, g.Points[0].X
	minY, maxY := g.Points[0].Y, g.Points[0].Y
	for _, p := range g.Points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	g.Viewport.FitTo(minX, maxX, minY, maxY, padding)
}
