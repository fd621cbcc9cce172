// Package view holds the math↔screen coordinate mapping for a graph:
// a center, per-axis scale factors and a rotation angle.
//
// Invariants enforced on every mutation: ScaleX > 0, ScaleY > 0,
// Rotation normalized into [0, 2π). Zoom can pivot around a fixed
// point; FitTo recomputes center and scale from a bounding box.
// Rotation is accumulated state reserved for consumers — the sampling
// math never applies it.
package view
