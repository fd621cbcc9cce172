package view

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for viewport mutations.
var (
	// ErrBadScale is returned when a scale factor is not strictly positive.
	ErrBadScale = errors.New("view: scale factor must be > 0")

	// ErrBadZoom is returned when a zoom factor is not strictly positive.
	ErrBadZoom = errors.New("view: zoom factor must be > 0")

	// ErrBadPivot is returned when Zoom receives a partial pivot.
	ErrBadPivot = errors.New("view: pivot requires both x and y")
)

// Viewport maps math coordinates to display space. Mutated in place by
// Zoom, Pan, Rotate and FitTo; not safe for concurrent mutation.
type Viewport struct {
	CenterX  float64 `json:"centerX"`
	CenterY  float64 `json:"centerY"`
	ScaleX   float64 `json:"scaleX"`
	ScaleY   float64 `json:"scaleY"`
	Rotation float64 `json:"rotation"`
}

// New validates the strictly-positive scale invariant.
func New(centerX, centerY, scaleX, scaleY float64) (*Viewport, error) {
	if scaleX <= 0 || scaleY <= 0 {
		return nil, fmt.Errorf("%w: (%v, %v)", ErrBadScale, scaleX, scaleY)
	}
	return &Viewport{CenterX: centerX, CenterY: centerY, ScaleX: scaleX, ScaleY: scaleY}, nil
}

// Zoom multiplies both scale factors by factor. With a pivot (x, y),
// the center is recomputed so that the pivot point stays visually
// fixed. Fails with ErrBadZoom for factor <= 0 and ErrBadPivot when
// exactly one pivot coordinate is supplied.
func (v *Viewport) Zoom(factor float64, pivot ...float64) error {
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return fmt.Errorf("%w: %v", ErrBadZoom, factor)
	}
	switch len(pivot) {
	case 0:
		v.ScaleX *= factor
		v.ScaleY *= factor
		return nil
	case 2:
		px, py := pivot[0], pivot[1]
		v.ScaleX *= factor
		v.ScaleY *= factor
		// Keep the pivot's screen position unchanged: shrink its offset
		// from the center by the zoom factor.
		v.CenterX = px - (px-v.CenterX)/factor
		v.CenterY = py - (py-v.CenterY)/factor
		return nil
	default:
		return ErrBadPivot
	}
}

// Pan shifts the center by a screen-space delta translated into math
// units (dx/ScaleX, dy/ScaleY).
func (v *Viewport) Pan(dx, dy float64) {
	v.CenterX += dx / v.ScaleX
	v.CenterY += dy / v.ScaleY
}

// Rotate accumulates angle (radians) into Rotation, normalized to
// [0, 2π). Reserved for presentation consumers; sampling ignores it.
func (v *Viewport) Rotate(angle float64) {
	twoPi := 2 * math.Pi
	r := math.Mod(v.Rotation+angle, twoPi)
	if r < 0 {
		r += twoPi
	}
	v.Rotation = r
}

// FitTo recenters on the bounding box [minX,maxX]x[minY,maxY] and
// rescales so the padded box maps to the unit viewport. No-op when
// either axis extent is zero.
func (v *Viewport) FitTo(minX, maxX, minY, maxY, padding float64) {
	extentX := maxX - minX
	extentY := maxY - minY
	if extentX == 0 || extentY == 0 {
		return
	}
	if padding < 0 {
		padding = 0
	}
	v.CenterX = (minX + maxX) / 2
	v.CenterY = (minY + maxY) / 2
	v.ScaleX = 1 / (extentX * (1 + 2*padding))
	v.ScaleY = 1 / (extentY * (1 + 2*padding))
}

// ToScreen maps a math point into a width x height pixel surface,
// with y growing downwards as displays expect.
func (v *Viewport) ToScreen(x, y float64, width, height float64) (float64, float64) {
	sx := (x-v.CenterX)*v.ScaleX*width + width/2
	sy := height/2 - (y-v.CenterY)*v.ScaleY*height
	return sx, sy
}

// ToMath is the inverse of ToScreen.
func (v *Viewport) ToMath(sx, sy float64, width, height float64) (float64, float64) {
	x := (sx-width/2)/(v.ScaleX*width) + v.CenterX
	y := (height/2-sy)/(v.ScaleY*height) + v.CenterY
	return x, y
}
