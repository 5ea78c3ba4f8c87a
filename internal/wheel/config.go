package wheel

import (
	"fmt"
	"time"
)

// SetMotion selects how programmatic selection changes travel.
type SetMotion string

const (
	SetMotionEase    SetMotion = "ease"    // same eased snap as gestures
	SetMotionSpring  SetMotion = "spring"  // critically damped spring
	SetMotionInstant SetMotion = "instant" // jump and settle synchronously
)

// EasingName selects the snap curve.
type EasingName string

const (
	EasingCubic EasingName = "cubic" // 1-(1-t)^3
	EasingEase  EasingName = "ease"  // cubic-bezier(0.25, 0.1, 0.25, 1)
)

// Defaults.
const (
	DefaultItemExtent        = 50
	DefaultVisibleCount      = 5
	DefaultDecayDeceleration = 0.998
	DefaultSnapDuration      = 300 * time.Millisecond
	DefaultVelocityThreshold = 20
	DefaultStopVelocity      = 1
	DefaultPerspective       = 600
	DefaultSpringFrequency   = 6
	DefaultSpringDamping     = 1
)

// Projection configures the cylindrical 3D effect.
type Projection struct {
	Enabled     bool
	Perspective float64 // depth of the viewer from the rotation plane
}

// Spring configures SetMotionSpring.
type Spring struct {
	Frequency float64 // angular frequency
	Damping   float64 // damping ratio, clamped to >= 1
}

// Config holds the picker geometry and motion tuning.
type Config struct {
	ItemExtent        float64
	VisibleCount      int
	DecayDeceleration float64 // per millisecond, in (0,1)
	SnapDuration      time.Duration

	// VelocityThreshold is the release speed (units/s) a drag must exceed
	// to enter decay. Releases at exactly the threshold snap directly.
	VelocityThreshold float64
	// StopVelocity ends decay once the speed drops below it.
	StopVelocity float64

	DecayEnabled      bool
	DisableAnimations bool

	SetMotion SetMotion
	Spring    Spring
	Easing    EasingName

	Projection Projection

	OpacityEnabled bool
	OpacityRange   [3]float64 // at distance 0, 1 extent, 2 extents
	ScaleEnabled   bool
	ScaleRange     [2]float64 // selected scale, floor scale
}

// DefaultConfig returns the default wheel configuration.
func DefaultConfig() Config {
	return Config{
		ItemExtent:        DefaultItemExtent,
		VisibleCount:      DefaultVisibleCount,
		DecayDeceleration: DefaultDecayDeceleration,
		SnapDuration:      DefaultSnapDuration,
		VelocityThreshold: DefaultVelocityThreshold,
		StopVelocity:      DefaultStopVelocity,
		DecayEnabled:      true,
		SetMotion:         SetMotionEase,
		Spring: Spring{
			Frequency: DefaultSpringFrequency,
			Damping:   DefaultSpringDamping,
		},
		Easing: EasingCubic,
		Projection: Projection{
			Perspective: DefaultPerspective,
		},
		OpacityEnabled: true,
		OpacityRange:   [3]float64{1, 0.6, 0.3},
		ScaleEnabled:   true,
		ScaleRange:     [2]float64{1, 20.0 / 24.0},
	}
}

// Validate reports programmer errors in the configuration.
func (c Config) Validate() error {
	if c.ItemExtent <= 0 {
		return fmt.Errorf("item extent must be > 0 (got %v): %w", c.ItemExtent, ErrInvalidConfig)
	}
	if c.VisibleCount < 1 || c.VisibleCount%2 == 0 {
		return fmt.Errorf("visible count must be odd and >= 1 (got %d): %w", c.VisibleCount, ErrInvalidConfig)
	}
	if c.DecayDeceleration <= 0 || c.DecayDeceleration >= 1 {
		return fmt.Errorf("decay deceleration must be in (0,1) (got %v): %w", c.DecayDeceleration, ErrInvalidConfig)
	}
	if c.SnapDuration < 0 {
		return fmt.Errorf("snap duration must be >= 0 (got %v): %w", c.SnapDuration, ErrInvalidConfig)
	}
	if c.VelocityThreshold < 0 || c.StopVelocity <= 0 {
		return fmt.Errorf("velocity thresholds must be positive: %w", ErrInvalidConfig)
	}
	if c.Projection.Enabled && c.Projection.Perspective <= 0 {
		return fmt.Errorf("perspective must be > 0 (got %v): %w", c.Projection.Perspective, ErrInvalidConfig)
	}
	switch c.SetMotion {
	case SetMotionEase, SetMotionSpring, SetMotionInstant, "":
	default:
		return fmt.Errorf("unknown set motion %q: %w", c.SetMotion, ErrInvalidConfig)
	}
	if c.SetMotion == SetMotionSpring && c.Spring.Frequency <= 0 {
		return fmt.Errorf("spring frequency must be > 0: %w", ErrInvalidConfig)
	}
	switch c.Easing {
	case EasingCubic, EasingEase, "":
	default:
		return fmt.Errorf("unknown easing %q: %w", c.Easing, ErrInvalidConfig)
	}
	return nil
}

// snapDuration is zero when animations are disabled.
func (c Config) snapDuration() time.Duration {
	if c.DisableAnimations {
		return 0
	}
	return c.SnapDuration
}

func (c Config) decayAllowed() bool {
	return c.DecayEnabled && !c.DisableAnimations
}

func (c Config) setMotion() SetMotion {
	if c.DisableAnimations {
		return SetMotionInstant
	}
	if c.SetMotion == "" {
		return SetMotionEase
	}
	return c.SetMotion
}
