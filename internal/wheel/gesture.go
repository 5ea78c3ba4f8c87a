package wheel

import "time"

// drag holds the in-progress gesture: the offset at DragStart and the sum of
// all deltas since.
type drag struct {
	origin     float64
	cumulative float64
}

func (d *drag) offset(g Geometry) float64 {
	return g.Clamp(d.origin + d.cumulative)
}

// velocityWindow is how far back VelocityTracker looks when estimating the
// release velocity.
const velocityWindow = 100 * time.Millisecond

// maxSamples bounds the sample ring.
const maxSamples = 20

type sample struct {
	at time.Time
	y  float64
}

// VelocityTracker turns timestamped pointer positions into per-event deltas
// and a release velocity. It knows nothing about items or offsets; hosts feed
// it raw pointer coordinates already scaled to offset units.
type VelocityTracker struct {
	samples []sample
	last    float64
	active  bool
}

// Begin starts a new gesture at pointer position y.
func (t *VelocityTracker) Begin(at time.Time, y float64) {
	t.samples = append(t.samples[:0], sample{at: at, y: y})
	t.last = y
	t.active = true
}

// Move records a pointer position and returns the delta since the previous one.
func (t *VelocityTracker) Move(at time.Time, y float64) float64 {
	if !t.active {
		t.Begin(at, y)
		return 0
	}
	delta := y - t.last
	t.last = y
	t.samples = append(t.samples, sample{at: at, y: y})
	if len(t.samples) > maxSamples {
		t.samples = t.samples[len(t.samples)-maxSamples:]
	}
	return delta
}

// End finishes the gesture and returns the release velocity in units per
// second, measured over the trailing velocityWindow. A pointer that paused
// before release yields zero.
func (t *VelocityTracker) End(at time.Time) float64 {
	if !t.active {
		return 0
	}
	t.active = false
	if len(t.samples) < 2 {
		return 0
	}
	newest := t.samples[len(t.samples)-1]
	if at.Sub(newest.at) > velocityWindow {
		return 0
	}
	oldest := newest
	for i := len(t.samples) - 2; i >= 0; i-- {
		if newest.at.Sub(t.samples[i].at) > velocityWindow {
			break
		}
		oldest = t.samples[i]
	}
	dt := newest.at.Sub(oldest.at).Seconds()
	if dt <= 0 {
		return 0
	}
	return (newest.y - oldest.y) / dt
}

// Active reports whether a gesture is in progress.
func (t *VelocityTracker) Active() bool {
	return t.active
}
