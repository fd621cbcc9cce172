package sample

import (
	"math"

	"github.com/miounet11/jisuanqipc-sub000/ast"
	"github.com/miounet11/jisuanqipc-sub000/grid"
)

// SampleImplicit approximates the contour f(x, y) = c over a coarse
// grid. For each cell, the relation is evaluated at the four corners;
// when any corner pair straddles the contour value (inclusive
// comparison, so touching counts), the cell is flagged and one
// representative point — the cell center, re-evaluated against the
// tolerance — is emitted.
//
// This is a deliberately simplified marching squares: no per-edge
// interpolation or bisection, one point per flagged cell. Output is
// row-major over flagged cells.
// Complexity: O(XResolution*YResolution) corner evaluations plus one
// center evaluation per flagged cell.
func (s *Sampler) SampleImplicit(fn ast.Node, xDomain, yDomain Range, opts ...Option) ([]Point3D, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return nil, err
	}
	if fn == nil {
		return nil, ErrInvalidExpression
	}
	if !xDomain.valid() || !yDomain.valid() {
		return nil, ErrInvalidRange
	}
	if (o.XResolution+1)*(o.YResolution+1) > MaxPoints {
		return nil, ErrTooManyPoints
	}

	// Corner values for every grid node, shared by the four cells that
	// touch each node.
	values, err := s.evaluateGrid(fn, xDomain, yDomain, o)
	if err != nil {
		return nil, err
	}

	xStep := xDomain.Width() / float64(o.XResolution)
	yStep := yDomain.Width() / float64(o.YResolution)
	vars := map[string]float64{VarX: 0, VarY: 0}
	points := make([]Point3D, 0, 64)

	for i := 0; i < o.XResolution; i++ {
		if err := o.Ctx.Err(); err != nil {
			return nil, err
		}
		for j := 0; j < o.YResolution; j++ {
			corners, ok := cellCorners(values, i, j)
			if !ok {
				continue // a corner failed to evaluate; skip the cell
			}
			if !straddles(corners, o.Contour) {
				continue
			}

			// Re-evaluate at the cell center for the tolerance check.
			cx := xDomain.Min + (float64(i)+0.5)*xStep
			cy := yDomain.Min + (float64(j)+0.5)*yStep
			vars[VarX], vars[VarY] = cx, cy
			fc, err := s.ev.EvaluateFloat(fn, vars)
			if err != nil || !isFinite(fc) {
				continue
			}
			if math.Abs(fc-o.Contour) > cellTolerance(corners, o) {
				continue
			}
			points = append(points, Point3D{X: cx, Y: cy, Z: fc})
		}
	}
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	return points, nil
}

// cellCorners gathers the four corner samples of cell (i, j); ok is
// false when any corner is unset.
func cellCorners(values *grid.Dense, i, j int) ([4]float64, bool) {
	var out [4]float64
	idx := 0
	for _, rc := range [4][2]int{{i, j}, {i + 1, j}, {i, j + 1}, {i + 1, j + 1}} {
		if !values.IsSet(rc[0], rc[1]) {
			return out, false
		}
		v, err := values.At(rc[0], rc[1])
		if err != nil {
			return out, false
		}
		out[idx] = v
		idx++
	}
	return out, true
}

// straddles reports whether any pair of corner values brackets the
// contour, inclusively: a corner sitting exactly on the contour counts.
func straddles(corners [4]float64, contour float64) bool {
	for a := 0; a < len(corners); a++ {
		for b := a + 1; b < len(corners); b++ {
			da, db := corners[a]-contour, corners[b]-contour
			if da*db <= 0 {
				return true
			}
		}
	}
	return false
}

// cellTolerance returns the acceptance band for a cell center: the
// configured absolute tolerance, or — when unset — the cell's own
// corner spread around the contour, so steep cells stay permissive and
// flat cells stay tight.
func cellTolerance(corners [4]float64, o Options) float64 {
	if o.Tolerance > 0 {
		return o.Tolerance
	}
	spread := 0.0
	for _, v := range corners {
		if d := math.Abs(v - o.Contour); d > spread {
			spread = d
		}
	}
	return spread
}
