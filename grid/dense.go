package grid

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidDimensions indicates non-positive requested dimensions.
var ErrInvalidDimensions = errors.New("grid: dimensions must be > 0")

// ErrIndexOutOfBounds indicates a row or column outside the grid.
var ErrIndexOutOfBounds = errors.New("grid: index out of bounds")

// Dense is a row-major grid of float64 sample values.
// Unset cells hold NaN.
type Dense struct {
	rows, cols int
	data       []float64
}

// NewDense creates a rows×cols grid with every cell unset (NaN).
// Returns ErrInvalidDimensions unless both dimensions are positive.
// Complexity: O(rows*cols) time and memory.
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = math.NaN()
	}
	return &Dense{rows: rows, cols: cols, data: data}, nil
}

// Rows returns the row count. Complexity: O(1).
func (g *Dense) Rows() int { return g.rows }

// Cols returns the column count. Complexity: O(1).
func (g *Dense) Cols() int { return g.cols }

// indexOf computes the flat offset for (row, col) with bounds checking.
func (g *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return 0, fmt.Errorf("grid: (%d,%d) outside %dx%d: %w", row, col, g.rows, g.cols, ErrIndexOutOfBounds)
	}
	return row*g.cols + col, nil
}

// At returns the value at (row, col), which is NaN for unset cells.
// Complexity: O(1).
func (g *Dense) At(row, col int) (float64, error) {
	idx, err := g.indexOf(row, col)
	if err != nil {
		return 0, err
	}
	return g.data[idx], nil
}

// Set stores v at (row, col). NaN and ±Inf are legal stores: they mark
// the cell as an invalid sample, exactly what the samplers need for
// domain gaps. Complexity: O(1).
func (g *Dense) Set(row, col int, v float64) error {
	idx, err := g.indexOf(row, col)
	if err != nil {
		return err
	}
	g.data[idx] = v
	return nil
}

// IsSet reports whether the cell holds a finite sample.
// Complexity: O(1).
func (g *Dense) IsSet(row, col int) bool {
	idx, err := g.indexOf(row, col)
	if err != nil {
		return false
	}
	v := g.data[idx]
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
