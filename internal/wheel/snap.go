package wheel

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// settleMotion moves the offset onto a resolved target. Implementations
// must finish exactly on the target and never pass it.
type settleMotion interface {
	step(dt time.Duration) (offset float64, done bool)
	target() float64
}

// easeMotion interpolates from start to end over a fixed duration.
type easeMotion struct {
	from, to float64
	elapsed  time.Duration
	duration time.Duration
	ease     Easing
}

func newEaseMotion(from, to float64, d time.Duration, ease Easing) *easeMotion {
	return &easeMotion{from: from, to: to, duration: d, ease: ease}
}

func (m *easeMotion) step(dt time.Duration) (float64, bool) {
	if dt > 0 {
		m.elapsed += dt
	}
	if m.duration <= 0 || m.elapsed >= m.duration {
		return m.to, true
	}
	p := float64(m.elapsed) / float64(m.duration)
	return m.from + (m.to-m.from)*m.ease(p), false
}

func (m *easeMotion) target() float64 { return m.to }

// springRestDistance ends a spring once it is this close to the target and
// moving slower than springRestVelocity.
const (
	springRestDistance = 0.01
	springRestVelocity = 0.05
	springMaxStep      = 50 * time.Millisecond
)

// springMotion follows a damped harmonic oscillator. Damping ratios below 1
// are raised to 1 so the motion approaches the target from one side only.
type springMotion struct {
	pos, vel  float64
	to        float64
	frequency float64
	damping   float64
}

func newSpringMotion(from, to float64, s Spring) *springMotion {
	return &springMotion{
		pos:       from,
		to:        to,
		frequency: s.Frequency,
		damping:   math.Max(1, s.Damping),
	}
}

func (m *springMotion) step(dt time.Duration) (float64, bool) {
	// Long frames are split so the integration stays stable.
	for dt > 0 {
		slice := min(dt, springMaxStep)
		dt -= slice
		sp := harmonica.NewSpring(slice.Seconds(), m.frequency, m.damping)
		m.pos, m.vel = sp.Update(m.pos, m.vel, m.to)
	}
	if math.Abs(m.pos-m.to) < springRestDistance && math.Abs(m.vel) < springRestVelocity {
		m.pos, m.vel = m.to, 0
		return m.to, true
	}
	return m.pos, false
}

func (m *springMotion) target() float64 { return m.to }
