package analyze_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/miounet11/jisuanqipc-sub000/analyze"
	"github.com/miounet11/jisuanqipc-sub000/eval"
	"github.com/miounet11/jisuanqipc-sub000/parser"
	"github.com/miounet11/jisuanqipc-sub000/sample"
)

// curve samples fn over [-5, 5] at the given resolution.
func curve(t *testing.T, expr string, resolution int) []sample.Point3D {
	t.Helper()
	n, err := parser.ParseString(expr)
	require.NoError(t, err, "fixture %q must parse", expr)
	domain, err := sample.NewRange(-5, 5)
	require.NoError(t, err, "fixture domain must build")
	points, err := sample.New(eval.New()).Sample2D(n, domain, sample.WithResolution(resolution))
	require.NoError(t, err, "fixture %q must sample", expr)
	return points
}

// TestFindSpecialPoints_Parabola is the canonical case: x^2-4 has
// zeros near ±2 and a minimum near 0.
func TestFindSpecialPoints_Parabola(t *testing.T) {
	found, err := analyze.FindSpecialPoints(curve(t, "x^2 - 4", 100), analyze.DefaultTolerance)
	require.NoError(t, err, "analysis must succeed")

	var zeros, minima []analyze.SpecialPoint
	for _, sp := range found {
		switch sp.Type {
		case analyze.Zero:
			zeros = append(zeros, sp)
		case analyze.Minimum:
			minima = append(minima, sp)
		}
	}

	require.NotEmpty(t, zeros, "the parabola crosses zero")
	var nearMinus2, nearPlus2 bool
	for _, z := range zeros {
		if math.Abs(z.Position+2) < 0.2 {
			nearMinus2 = true
		}
		if math.Abs(z.Position-2) < 0.2 {
			nearPlus2 = true
		}
	}
	assert.True(t, nearMinus2, "a zero near x=-2 must be reported")
	assert.True(t, nearPlus2, "a zero near x=+2 must be reported")

	require.Len(t, minima, 1, "one local minimum expected")
	assert.InDelta(t, 0, minima[0].Position, 0.2, "minimum sits near x=0")
	assert.Empty(t, filterType(found, analyze.Maximum), "a parabola has no maximum")
}

// TestFindSpecialPoints_DuplicateZeros documents the intended overlap:
// a sampled point exactly on the axis is reported by the near-zero scan
// while neighbouring sign changes still interpolate their own roots.
func TestFindSpecialPoints_DuplicateZeros(t *testing.T) {
	points := []sample.Point3D{
		{X: -1, Y: -1},
		{X: 0, Y: 0}, // exactly on the axis
		{X: 1, Y: 1},
	}
	found, err := analyze.FindSpecialPoints(points, 1e-9)
	require.NoError(t, err, "analysis must succeed")

	zeros := filterType(found, analyze.Zero)
	assert.Len(t, zeros, 1, "touching zero reports once: y1*y2 < 0 is strict")

	// Shift the middle point slightly off axis: now both mechanisms fire.
	points[1].Y = 1e-12
	found, err = analyze.FindSpecialPoints(points, 1e-9)
	require.NoError(t, err, "analysis must succeed")
	zeros = filterType(found, analyze.Zero)
	assert.Len(t, zeros, 2, "near-zero scan and interpolation both report, undeduplicated")
}

// TestFindSpecialPoints_InterpolatedRoot checks the linear-root formula
// on a hand-built crossing.
func TestFindSpecialPoints_InterpolatedRoot(t *testing.T) {
	points := []sample.Point3D{{X: 1, Y: -2}, {X: 3, Y: 6}}
	found, err := analyze.FindSpecialPoints(points, 1e-12)
	require.NoError(t, err, "analysis must succeed")

	zeros := filterType(found, analyze.Zero)
	require.Len(t, zeros, 1, "one crossing expected")
	assert.InDelta(t, 1.5, zeros[0].Position, 1e-12, "root interpolates to x=1.5")
}

// TestFindSpecialPoints_SineExtrema finds the maximum and minimum of a
// sine wave over one period.
func TestFindSpecialPoints_SineExtrema(t *testing.T) {
	found, err := analyze.FindSpecialPoints(curve(t, "sin(x)", 200), analyze.DefaultTolerance)
	require.NoError(t, err, "analysis must succeed")

	maxima := filterType(found, analyze.Maximum)
	minima := filterType(found, analyze.Minimum)
	require.NotEmpty(t, maxima, "sine has maxima in [-5, 5]")
	require.NotEmpty(t, minima, "sine has minima in [-5, 5]")
	assert.InDelta(t, math.Pi/2, maxima[len(maxima)-1].Position, 0.1, "maximum near pi/2")
	assert.InDelta(t, -math.Pi/2, minima[0].Position, 0.1, "minimum near -pi/2")
}

// TestFindSpecialPoints_Validation covers the typed input failures and
// the too-few-points extremum rule.
func TestFindSpecialPoints_Validation(t *testing.T) {
	_, err := analyze.FindSpecialPoints(nil, 1e-6)
	assert.ErrorIs(t, err, analyze.ErrEmptySeries, "empty input must fail typed")

	_, err = analyze.FindSpecialPoints([]sample.Point3D{{X: 0, Y: 1}}, -1)
	assert.ErrorIs(t, err, analyze.ErrBadTolerance, "negative tolerance must fail typed")

	found, err := analyze.FindSpecialPoints([]sample.Point3D{{X: 0, Y: 1}, {X: 1, Y: 2}}, 1e-6)
	require.NoError(t, err, "two points are analyzable")
	assert.Empty(t, filterType(found, analyze.Maximum), "extrema need three points")
	assert.Empty(t, filterType(found, analyze.Minimum), "extrema need three points")
}

func filterType(in []analyze.SpecialPoint, ty analyze.PointType) []analyze.SpecialPoint {
	var out []analyze.SpecialPoint
	for _, sp := range in {
		if sp.Type == ty {
			out = append(out, sp)
		}
	}
	return out
}
