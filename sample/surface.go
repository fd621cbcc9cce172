package sample

import (
	"golang.org/x/sync/errgroup"

	"github.com/miounet11/jisuanqipc-sub000/ast"
	"github.com/miounet11/jisuanqipc-sub000/grid"
)

// Sample3D evaluates z = f(x, y) over the XResolution x YResolution
// grid spanned by xDomain and yDomain. Non-finite samples are skipped.
// The output is row-major: ascending x, then ascending y within a row,
// regardless of worker count — each worker owns whole rows of the
// backing grid and emission happens in one ordered pass afterwards.
//
// Point budget: (XResolution+1)*(YResolution+1) must stay within
// MaxPoints or the call fails up front with ErrTooManyPoints.
// Complexity: O(XResolution*YResolution) evaluations.
func (s *Sampler) Sample3D(fn ast.Node, xDomain, yDomain Range, opts ...Option) ([]Point3D, error) {
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
	rows, cols := o.XResolution+1, o.YResolution+1
	if rows*cols > MaxPoints {
		return nil, ErrTooManyPoints
	}

	values, err := s.evaluateGrid(fn, xDomain, yDomain, o)
	if err != nil {
		return nil, err
	}

	xStep := xDomain.Width() / float64(o.XResolution)
	yStep := yDomain.Width() / float64(o.YResolution)
	points := make([]Point3D, 0, rows*cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if !values.IsSet(i, j) {
				continue
			}
			z, _ := values.At(i, j)
			points = append(points, Point3D{
				X: xDomain.Min + float64(i)*xStep,
				Y: yDomain.Min + float64(j)*yStep,
				Z: z,
			})
		}
	}
	if len(points) == 0 {
		return nil, ErrNoPoints
	}
	return points, nil
}

// evaluateGrid fills a Dense with f at every grid node. Rows are
// distributed over o.Workers goroutines; each worker writes disjoint
// rows, so the grid needs no locking. Evaluation failures leave the
// cell unset rather than aborting the sweep.
func (s *Sampler) evaluateGrid(fn ast.Node, xDomain, yDomain Range, o Options) (*grid.Dense, error) {
	rows, cols := o.XResolution+1, o.YResolution+1
	values, err := grid.NewDense(rows, cols)
	if err != nil {
		return nil, err
	}
	xStep := xDomain.Width() / float64(o.XResolution)
	yStep := yDomain.Width() / float64(o.YResolution)

	g, ctx := errgroup.WithContext(o.Ctx)
	g.SetLimit(o.Workers)

	chunk := (rows + o.Workers - 1) / o.Workers
	for start := 0; start < rows; start += chunk {
		start := start
		end := start + chunk
		if end > rows {
			end = rows
		}
		g.Go(func() error {
			vars := map[string]float64{VarX: 0, VarY: 0}
			for i := start; i < end; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				vars[VarX] = xDomain.Min + float64(i)*xStep
				for j := 0; j < cols; j++ {
					vars[VarY] = yDomain.Min + float64(j)*yStep
					z, err := s.ev.EvaluateFloat(fn, vars)
					if err != nil || !isFinite(z) {
						continue // cell stays NaN
					}
					if err := values.Set(i, j, z); err != nil {
						return err
					}
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return values, nil
}
