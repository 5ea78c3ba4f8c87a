package wheel

import "math"

// Easing maps progress t in [0,1] to eased progress in [0,1]. Every curve
// here is monotonic and never exceeds 1, so snaps cannot overshoot.
type Easing func(t float64) float64

// EaseOutCubic decelerates to rest: 1-(1-t)^3.
func EaseOutCubic(t float64) float64 {
	t = clamp01(t)
	u := 1 - t
	return 1 - u*u*u
}

// CubicBezier returns the CSS-style timing curve through (0,0), (x1,y1),
// (x2,y2), (1,1). x1 and x2 must lie in [0,1].
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	// Polynomial coefficients, as in the WebKit UnitBezier.
	cx := 3 * x1
	bx := 3*(x2-x1) - cx
	ax := 1 - cx - bx
	cy := 3 * y1
	by := 3*(y2-y1) - cy
	ay := 1 - cy - by

	sampleX := func(s float64) float64 { return ((ax*s+bx)*s + cx) * s }
	sampleY := func(s float64) float64 { return ((ay*s+by)*s + cy) * s }
	slopeX := func(s float64) float64 { return (3*ax*s+2*bx)*s + cx }

	solve := func(x float64) float64 {
		s := x
		for i := 0; i < 8; i++ {
			err := sampleX(s) - x
			if math.Abs(err) < 1e-7 {
				return s
			}
			d := slopeX(s)
			if math.Abs(d) < 1e-6 {
				break
			}
			s -= err / d
		}
		// Newton stalled; bisect.
		lo, hi := 0.0, 1.0
		s = x
		for i := 0; i < 32; i++ {
			v := sampleX(s)
			if math.Abs(v-x) < 1e-7 {
				break
			}
			if v < x {
				lo = s
			} else {
				hi = s
			}
			s = (lo + hi) / 2
		}
		return s
	}

	return func(t float64) float64 {
		t = clamp01(t)
		if t == 0 || t == 1 {
			return t
		}
		return clamp01(sampleY(solve(t)))
	}
}

// easeCSS is the CSS "ease" curve, cubic-bezier(0.25, 0.1, 0.25, 1).
var easeCSS = CubicBezier(0.25, 0.1, 0.25, 1)

func easingFor(name EasingName) Easing {
	if name == EasingEase {
		return easeCSS
	}
	return EaseOutCubic
}

func clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}
