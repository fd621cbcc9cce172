// Package sample drives the evaluator across numeric domains to build
// ordered, plottable point sequences: 2D curves, 3D surfaces,
// parametric paths, polar curves and implicit contours.
//
// Sampling never fails on a single bad point — domain gaps and
// asymptotes are skipped — but fails with ErrNoPoints when the entire
// output would be empty. Output order is always ascending in the swept
// parameter (x, then y for surfaces; t for parametric; theta for polar;
// row-major for contours), even when sampling runs on multiple workers:
// results are partitioned by row and concatenated in order.
//
// Every entry point takes functional options (WithResolution,
// WithContext for cancellation, WithAngleUnit, WithWorkers, …) in the
// style of the rest of the module. Resolution is capped at
// MaxResolution to bound worst-case cost, and a single call never emits
// more than MaxPoints points.
//
// The implicit-contour sampler is an intentionally simplified marching
// squares: a cell whose corner values straddle the contour emits one
// representative point at the cell center (re-evaluated against the
// tolerance), not an edge-interpolated root.
package sample
