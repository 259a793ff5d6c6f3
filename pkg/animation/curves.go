package animation

import "math"

// Easing curves map linear progress in [0, 1] to eased progress. Assign one
// to [Settle.Curve] to shape a value's motion.

// Linear returns progress unchanged.
func Linear(t float64) float64 { return t }

// Reveal is the soft decelerating curve used when the sheet expands. The
// long tail lets content fade in while the sheet is still settling.
var Reveal = CubicBezier(0.22, 1.0, 0.36, 1.0)

// Sharp is the accelerating curve used when the sheet collapses. Collapsing
// reads as a quick, decisive motion.
var Sharp = CubicBezier(0.4, 0.0, 1.0, 1.0)

// EaseOut starts quickly and decelerates. Equivalent to CSS ease-out.
var EaseOut = CubicBezier(0.0, 0.0, 0.2, 1.0)

// EaseInOut starts and ends slowly. Equivalent to CSS ease-in-out.
var EaseInOut = CubicBezier(0.4, 0.0, 0.2, 1.0)

// CubicBezier returns an easing function matching CSS cubic-bezier() with
// control points (x1,y1) and (x2,y2). The curve runs from (0,0) to (1,1).
func CubicBezier(x1, y1, x2, y2 float64) func(float64) float64 {
	return func(t float64) float64 {
		if t <= 0 {
			return 0
		}
		if t >= 1 {
			return 1
		}

		// Newton-Raphson converges in a few steps for well-behaved curves.
		u := t
		for i := 0; i < 8; i++ {
			x := bezierAxis(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				return bezierAxis(y1, y2, clamp01(u))
			}
			dx := bezierAxisDerivative(x1, x2, u)
			if math.Abs(dx) < 1e-7 {
				break
			}
			u -= x / dx
		}

		// Bisection fallback guarantees a stable solution in [0, 1].
		lo, hi := 0.0, 1.0
		u = clamp01(u)
		for i := 0; i < 12; i++ {
			x := bezierAxis(x1, x2, u) - t
			if math.Abs(x) < 1e-7 {
				break
			}
			if x > 0 {
				hi = u
			} else {
				lo = u
			}
			u = (lo + hi) * 0.5
		}
		return bezierAxis(y1, y2, u)
	}
}

func bezierAxis(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*t*a + 3*inv*t*t*b + t*t*t
}

func bezierAxisDerivative(a, b, t float64) float64 {
	inv := 1 - t
	return 3*inv*inv*a + 6*inv*t*(b-a) + 3*t*t*(1-b)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
