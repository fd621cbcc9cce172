package analyze

import (
	"errors"
	"fmt"

	"github.com/miounet11/jisuanqipc-sub000/sample"
)

// Sentinel errors for analysis input validation.
var (
	// ErrEmptySeries is returned for an empty point sequence.
	ErrEmptySeries = errors.New("analyze: point sequence is empty")

	// ErrBadTolerance is returned for a negative or non-finite tolerance.
	ErrBadTolerance = errors.New("analyze: tolerance must be >= 0")
)

// PointType classifies a special point.
type PointType int

const (
	// Zero marks y = 0, detected directly or by interpolation.
	Zero PointType = iota

	// Maximum marks a local maximum.
	Maximum

	// Minimum marks a local minimum.
	Minimum
)

// String returns the type name used in descriptions.
func (t PointType) String() string {
	switch t {
	case Maximum:
		return "maximum"
	case Minimum:
		return "minimum"
	default:
		return "zero"
	}
}

// SpecialPoint is one detected feature of a sampled curve. Derived
// data: never persisted on its own.
type SpecialPoint struct {
	Type        PointType `json:"type"`
	Position    float64   `json:"position"` // x coordinate
	Value       float64   `json:"value"`    // y at (or interpolated to) Position
	Description string    `json:"description"`
}

// DefaultTolerance is the |y| threshold for the direct zero scan when
// callers have no better scale information.
const DefaultTolerance = 1e-6

// FindSpecialPoints scans points (ascending in x) with the given
// tolerance and reports, in scan order:
//
//  1. direct zeros: every point with |y| < tolerance;
//  2. interpolated zeros: for each consecutive pair with y1*y2 < 0,
//     the linear root x1 + (x2-x1)*(-y1/(y2-y1));
//  3. extrema: for each interior point, a maximum when the left slope
//     is positive and the right negative, a minimum for the opposite.
//
// The two zero mechanisms overlap by design and are not deduplicated.
// Complexity: O(len(points)).
func FindSpecialPoints(points []sample.Point3D, tolerance float64) ([]SpecialPoint, error) {
	if len(points) == 0 {
		return nil, ErrEmptySeries
	}
	if tolerance < 0 || tolerance != tolerance {
		return nil, fmt.Errorf("%w: %v", ErrBadTolerance, tolerance)
	}

	found := make([]SpecialPoint, 0, 8)

	// Mechanism 1: direct near-zero scan.
	for _, p := range points {
		if abs(p.Y) < tolerance {
			found = append(found, SpecialPoint{
				Type:        Zero,
				Position:    p.X,
				Value:       p.Y,
				Description: fmt.Sprintf("zero at x=%.6g", p.X),
			})
		}
	}

	// Mechanism 2: sign-change interpolation between neighbors.
	for i := 0; i+1 < len(points); i++ {
		y1, y2 := points[i].Y, points[i+1].Y
		if y1*y2 >= 0 {
			continue
		}
		x1, x2 := points[i].X, points[i+1].X
		root := x1 + (x2-x1)*(-y1/(y2-y1))
		found = append(found, SpecialPoint{
			Type:        Zero,
			Position:    root,
			Value:       0,
			Description: fmt.Sprintf("zero near x=%.6g (interpolated)", root),
		})
	}

	// Extrema need a point on each side.
	for i := 1; i+1 < len(points); i++ {
		left := slope(points[i-1], points[i])
		right := slope(points[i], points[i+1])
		switch {
		case left > 0 && right < 0:
			found = append(found, SpecialPoint{
				Type:        Maximum,
				Position:    points[i].X,
				Value:       points[i].Y,
				Description: fmt.Sprintf("local maximum at x=%.6g", points[i].X),
			})
		case left < 0 && right > 0:
			found = append(found, SpecialPoint{
				Type:        Minimum,
				Position:    points[i].X,
				Value:       points[i].Y,
				Description: fmt.Sprintf("local minimum at x=%.6g", points[i].X),
			})
		}
	}

	return found, nil
}

func slope(a, b sample.Point3D) float64 {
	return (b.Y - a.Y) / (b.X - a.X)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
