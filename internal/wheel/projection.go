package wheel

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Transform is the visual state of one item for one frame.
type Transform struct {
	Index int

	// Center is the item's center in viewport coordinates (0 = top edge).
	Center float64
	// Distance is Center minus the viewport center; negative above.
	Distance float64

	Opacity  float64
	Selected bool
	Scale    float64 // content scale in [ScaleRange[1], ScaleRange[0]]

	// Angle is the rotation about the horizontal axis in radians; zero when
	// the projection is disabled.
	Angle float64
	// Foreshortening is the projected row height over the flat row height.
	Foreshortening float64
	// Hidden is set for items rotated fully out of view.
	Hidden bool
}

// Project computes the transform of item index at the given offset. It is a
// pure function of its arguments and is safe to call at any rate.
func Project(g Geometry, cfg Config, index int, offset float64) Transform {
	e := g.ItemExtent
	center := float64(index)*e + offset + e/2
	distance := center - g.ViewportHeight/2
	abs := math.Abs(distance)

	t := Transform{
		Index:          index,
		Center:         center,
		Distance:       distance,
		Opacity:        1,
		Scale:          1,
		Foreshortening: 1,
		Selected:       abs < e/2,
	}

	animate := !cfg.DisableAnimations
	if animate && cfg.OpacityEnabled {
		t.Opacity = interpolate(abs, []float64{0, e, 2 * e}, cfg.OpacityRange[:])
	}

	if animate && cfg.ScaleEnabled {
		t.Scale = cfg.ScaleRange[0]
		if !t.Selected {
			t.Scale = interpolate(abs, []float64{0, e}, cfg.ScaleRange[:])
		}
	}

	if cfg.Projection.Enabled {
		r := g.Radius()
		n := math.Max(-1, math.Min(1, distance/r))
		t.Angle = math.Asin(n)
		t.Foreshortening = foreshorten(t.Angle, e, cfg.Projection.Perspective)
		if abs >= r {
			t.Hidden = true
			t.Opacity = math.Min(t.Opacity, cfg.OpacityRange[2])
		}
	}

	return t
}

// foreshorten rotates a row of height e about its horizontal center line and
// projects it onto the screen plane from a viewer at the given depth. The
// result is the projected height divided by e.
func foreshorten(angle, e, perspective float64) float64 {
	rot := mgl64.HomogRotate3DX(angle)

	// Projection with the eye at z = perspective looking down -z:
	// w = 1 - z/perspective.
	proj := mgl64.Ident4()
	proj.Set(3, 2, -1/perspective)

	m := proj.Mul4(rot)
	top := m.Mul4x1(mgl64.Vec4{0, e / 2, 0, 1})
	bottom := m.Mul4x1(mgl64.Vec4{0, -e / 2, 0, 1})

	h := top.Y()/top.W() - bottom.Y()/bottom.W()
	return math.Abs(h) / e
}

// interpolate maps x over ascending stops xs onto ys, clamping outside the
// first and last stop.
func interpolate(x float64, xs, ys []float64) float64 {
	if x <= xs[0] {
		return ys[0]
	}
	last := len(xs) - 1
	if x >= xs[last] {
		return ys[last]
	}
	for i := 1; i <= last; i++ {
		if x <= xs[i] {
			f := (x - xs[i-1]) / (xs[i] - xs[i-1])
			return ys[i-1] + (ys[i]-ys[i-1])*f
		}
	}
	return ys[last]
}
