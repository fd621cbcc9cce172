// Package analyze scans an ascending-x 2D point sequence for special
// points: zeros, local maxima and local minima.
//
// Two independent zero-detection mechanisms run together and are NOT
// deduplicated — a crossing close to a sampled point can legitimately
// be reported twice, once by the near-zero scan and once by the
// sign-change interpolation. Test authors should expect overlapping
// roots rather than a canonical set.
//
// Extremum detection compares discrete slopes on each interior point
// and needs at least three points; fewer points simply yield no
// extrema. Output order follows scan order; nothing is sorted.
package analyze
