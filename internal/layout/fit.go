// Package layout provides the post-layout font auto-fit pass for the
// calendar widget's center label. The host measures rendered text and
// calls FitScale; no DOM concerns live here.
package layout

// minScale keeps extreme overflows legible instead of vanishing.
const minScale = 0.25

// FitScale returns the font scale that fits measured text into the
// bounding width. The current scale shrinks proportionally on overflow
// and may grow into available slack, but never beyond max (or 1.0 when
// max is unset) and never below the floor. Non-positive measurements
// leave the scale untouched.
func FitScale(measured, bounding, current, max float64) float64 {
	if measured <= 0 || bounding <= 0 {
		return current
	}
	if current <= 0 {
		current = 1
	}
	if max <= 0 {
		max = 1
	}

	scale := current * bounding / measured
	if scale > max {
		scale = max
	}
	if scale < minScale {
		scale = minScale
	}
	return scale
}
