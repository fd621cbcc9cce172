// Package grid provides a small, bounds-checked dense grid of float64
// samples. The 3D and implicit-contour samplers evaluate functions into
// a Dense before emitting points, so corner lookups during the contour
// scan are O(1) and never re-run the evaluator.
//
// Cells default to NaN, the "no valid sample here" marker; IsSet
// distinguishes evaluated cells from skipped ones.
package grid
