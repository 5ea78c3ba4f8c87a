package wheel

import (
	"math"
	"time"
)

// Decay simulates inertial scrolling after a fling. Velocity is in units per
// second and decays by Deceleration every millisecond; the offset follows the
// exact integral of that curve, so the trajectory does not depend on how the
// host slices time into frames.
type Decay struct {
	Offset       float64
	Velocity     float64
	Deceleration float64
	StopVelocity float64
	Min, Max     float64

	done bool
}

// NewDecay starts a simulation at offset with release velocity v.
func NewDecay(offset, v float64, cfg Config, g Geometry) *Decay {
	return &Decay{
		Offset:       offset,
		Velocity:     v,
		Deceleration: cfg.DecayDeceleration,
		StopVelocity: cfg.StopVelocity,
		Min:          g.MinOffset(),
		Max:          g.MaxOffset(),
	}
}

// Step advances the simulation by dt. Once done it keeps returning the
// final state.
func (d *Decay) Step(dt time.Duration) (offset, velocity float64, done bool) {
	if d.done {
		return d.Offset, d.Velocity, true
	}
	if dt <= 0 {
		return d.Offset, d.Velocity, false
	}

	ms := float64(dt) / float64(time.Millisecond)
	k := math.Log(d.Deceleration) // < 0
	factor := math.Pow(d.Deceleration, ms)
	// integral of v0*e^(k*t) over [0, ms], with v in units/ms
	d.Offset += d.Velocity / 1000 * (factor - 1) / k
	d.Velocity *= factor

	switch {
	case d.Offset >= d.Max:
		d.Offset, d.Velocity, d.done = d.Max, 0, true
	case d.Offset <= d.Min:
		d.Offset, d.Velocity, d.done = d.Min, 0, true
	case math.Abs(d.Velocity) < d.StopVelocity:
		d.Velocity, d.done = 0, true
	}
	return d.Offset, d.Velocity, d.done
}

// Done reports whether the simulation has come to rest.
func (d *Decay) Done() bool {
	return d.done
}

// RestingOffset predicts where an unbounded fling from offset with velocity v
// would stop, clamped to the bounds. Hosts use it for scroll previews.
func RestingOffset(offset, v float64, cfg Config, g Geometry) float64 {
	k := math.Log(cfg.DecayDeceleration)
	return g.Clamp(offset - v/1000/k)
}
