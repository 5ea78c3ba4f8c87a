package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/runger/fitwheel/internal/measure"
	"github.com/runger/fitwheel/internal/wheel"
)

// Config represents the fitwheel configuration.
type Config struct {
	Picker PickerConfig `yaml:"picker"`
	Units  UnitsConfig  `yaml:"units"`
	Log    LogConfig    `yaml:"log"`
}

// PickerConfig holds wheel motion and rendering settings.
type PickerConfig struct {
	VisibleCount      int     `yaml:"visible_count"`      // Rows shown per column (odd)
	SnapDurationMs    int     `yaml:"snap_duration_ms"`   // Snap animation length
	Deceleration      float64 `yaml:"deceleration"`       // Per-millisecond velocity retention, (0,1)
	VelocityThreshold float64 `yaml:"velocity_threshold"` // Release speed (items*50/s) needed to fling
	Decay             bool    `yaml:"decay"`              // Inertial scrolling after a fling
	Animations        bool    `yaml:"animations"`         // false jumps straight to the result
	SetMotion         string  `yaml:"set_motion"`         // ease, spring, or instant
	Easing            string  `yaml:"easing"`             // cubic or ease
	SpringFrequency   float64 `yaml:"spring_frequency"`   // Angular frequency of set_motion=spring
	SpringDamping     float64 `yaml:"spring_damping"`     // Damping ratio (raised to 1 if lower)
	Projection        bool    `yaml:"projection"`         // Cylindrical 3D foreshortening
	Perspective       float64 `yaml:"perspective"`        // Viewer depth for projection
	Opacity           bool    `yaml:"opacity"`            // Fade rows away from the center
	Scale             bool    `yaml:"scale"`              // Shrink rows away from the center
	FPS               int     `yaml:"fps"`                // Animation frame rate
}

// UnitsConfig holds display unit settings.
type UnitsConfig struct {
	System string `yaml:"system"` // metric or imperial
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file path (overrides default)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Picker: PickerConfig{
			VisibleCount:      wheel.DefaultVisibleCount,
			SnapDurationMs:    int(wheel.DefaultSnapDuration / time.Millisecond),
			Deceleration:      wheel.DefaultDecayDeceleration,
			VelocityThreshold: wheel.DefaultVelocityThreshold,
			Decay:             true,
			Animations:        true,
			SetMotion:         string(wheel.SetMotionEase),
			Easing:            string(wheel.EasingCubic),
			SpringFrequency:   wheel.DefaultSpringFrequency,
			SpringDamping:     wheel.DefaultSpringDamping,
			Projection:        false,
			Perspective:       wheel.DefaultPerspective,
			Opacity:           true,
			Scale:             true,
			FPS:               60,
		},
		Units: UnitsConfig{
			System: string(measure.Metric),
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// WheelConfig converts the picker section into a wheel configuration. One
// terminal row is one item extent.
func (p PickerConfig) WheelConfig() wheel.Config {
	cfg := wheel.DefaultConfig()
	cfg.VisibleCount = p.VisibleCount
	cfg.SnapDuration = time.Duration(p.SnapDurationMs) * time.Millisecond
	cfg.DecayDeceleration = p.Deceleration
	cfg.VelocityThreshold = p.VelocityThreshold
	cfg.DecayEnabled = p.Decay
	cfg.DisableAnimations = !p.Animations
	cfg.SetMotion = wheel.SetMotion(p.SetMotion)
	cfg.Easing = wheel.EasingName(p.Easing)
	cfg.Spring = wheel.Spring{Frequency: p.SpringFrequency, Damping: p.SpringDamping}
	cfg.Projection = wheel.Projection{Enabled: p.Projection, Perspective: p.Perspective}
	cfg.OpacityEnabled = p.Opacity
	cfg.ScaleEnabled = p.Scale
	return cfg
}

// FrameInterval is the duration of one animation frame.
func (p PickerConfig) FrameInterval() time.Duration {
	if p.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(p.FPS)
}

// UnitSystem returns the configured unit system.
func (c *Config) UnitSystem() measure.UnitSystem {
	u, err := measure.ParseUnitSystem(c.Units.System)
	if err != nil {
		return measure.Metric
	}
	return u
}

// Load loads configuration from the default path.
func Load() (*Config, error) {
	paths := DefaultPaths()
	return LoadFromFile(paths.ConfigFile())
}

// LoadFromFile loads configuration from the specified file.
// If the file doesn't exist, returns default configuration.
// Environment variable overrides are applied after file loading.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.ApplyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ApplyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Save saves the configuration to the default path.
func (c *Config) Save() error {
	paths := DefaultPaths()
	return c.SaveToFile(paths.ConfigFile())
}

// SaveToFile saves the configuration to the specified file.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Get retrieves a configuration value by dot-separated key.
// For example: "picker.fps" or "units.system"
func (c *Config) Get(key string) (string, error) {
	section, field, err := splitKey(key)
	if err != nil {
		return "", err
	}

	switch section {
	case "picker":
		return c.getPickerField(field)
	case "units":
		return c.getUnitsField(field)
	case "log":
		return c.getLogField(field)
	default:
		return "", fmt.Errorf("unknown section: %s", section)
	}
}

// Set sets a configuration value by dot-separated key. The value is parsed
// for the field's type; the config as a whole is not re-validated.
func (c *Config) Set(key, value string) error {
	section, field, err := splitKey(key)
	if err != nil {
		return err
	}

	switch section {
	case "picker":
		return c.setPickerField(field, value)
	case "units":
		return c.setUnitsField(field, value)
	case "log":
		return c.setLogField(field, value)
	default:
		return fmt.Errorf("unknown section: %s", section)
	}
}

func splitKey(key string) (section, field string, err error) {
	parts := strings.Split(key, ".")
	if len(parts) != 2 {
		return "", "", errors.New("key must be in format 'section.key'")
	}
	return parts[0], parts[1], nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (c *Config) getPickerField(field string) (string, error) {
	p := &c.Picker
	switch field {
	case "visible_count":
		return strconv.Itoa(p.VisibleCount), nil
	case "snap_duration_ms":
		return strconv.Itoa(p.SnapDurationMs), nil
	case "deceleration":
		return formatFloat(p.Deceleration), nil
	case "velocity_threshold":
		return formatFloat(p.VelocityThreshold), nil
	case "decay":
		return strconv.FormatBool(p.Decay), nil
	case "animations":
		return strconv.FormatBool(p.Animations), nil
	case "set_motion":
		return p.SetMotion, nil
	case "easing":
		return p.Easing, nil
	case "spring_frequency":
		return formatFloat(p.SpringFrequency), nil
	case "spring_damping":
		return formatFloat(p.SpringDamping), nil
	case "projection":
		return strconv.FormatBool(p.Projection), nil
	case "perspective":
		return formatFloat(p.Perspective), nil
	case "opacity":
		return strconv.FormatBool(p.Opacity), nil
	case "scale":
		return strconv.FormatBool(p.Scale), nil
	case "fps":
		return strconv.Itoa(p.FPS), nil
	default:
		return "", fmt.Errorf("unknown field: picker.%s", field)
	}
}

func (c *Config) setPickerField(field, value string) error {
	p := &c.Picker

	setInt := func(dst *int) error {
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", field, err)
		}
		*dst = v
		return nil
	}
	setFloat := func(dst *float64) error {
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", field, err)
		}
		*dst = v
		return nil
	}
	setBool := func(dst *bool) error {
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", field, err)
		}
		*dst = v
		return nil
	}

	switch field {
	case "visible_count":
		return setInt(&p.VisibleCount)
	case "snap_duration_ms":
		return setInt(&p.SnapDurationMs)
	case "deceleration":
		return setFloat(&p.Deceleration)
	case "velocity_threshold":
		return setFloat(&p.VelocityThreshold)
	case "decay":
		return setBool(&p.Decay)
	case "animations":
		return setBool(&p.Animations)
	case "set_motion":
		if !isValidSetMotion(value) {
			return fmt.Errorf("invalid value for set_motion: must be ease, spring, or instant (got: %s)", value)
		}
		p.SetMotion = value
	case "easing":
		if !isValidEasing(value) {
			return fmt.Errorf("invalid value for easing: must be cubic or ease (got: %s)", value)
		}
		p.Easing = value
	case "spring_frequency":
		return setFloat(&p.SpringFrequency)
	case "spring_damping":
		return setFloat(&p.SpringDamping)
	case "projection":
		return setBool(&p.Projection)
	case "perspective":
		return setFloat(&p.Perspective)
	case "opacity":
		return setBool(&p.Opacity)
	case "scale":
		return setBool(&p.Scale)
	case "fps":
		return setInt(&p.FPS)
	default:
		return fmt.Errorf("unknown field: picker.%s", field)
	}
	return nil
}

func (c *Config) getUnitsField(field string) (string, error) {
	switch field {
	case "system":
		return c.Units.System, nil
	default:
		return "", fmt.Errorf("unknown field: units.%s", field)
	}
}

func (c *Config) setUnitsField(field, value string) error {
	switch field {
	case "system":
		u, err := measure.ParseUnitSystem(value)
		if err != nil {
			return fmt.Errorf("invalid value for system: %w", err)
		}
		c.Units.System = string(u)
	default:
		return fmt.Errorf("unknown field: units.%s", field)
	}
	return nil
}

func (c *Config) getLogField(field string) (string, error) {
	switch field {
	case "level":
		return c.Log.Level, nil
	case "file":
		return c.Log.File, nil
	default:
		return "", fmt.Errorf("unknown field: log.%s", field)
	}
}

func (c *Config) setLogField(field, value string) error {
	switch field {
	case "level":
		if !isValidLogLevel(value) {
			return fmt.Errorf("invalid value for level: must be debug, info, warn, or error (got: %s)", value)
		}
		c.Log.Level = value
	case "file":
		c.Log.File = value
	default:
		return fmt.Errorf("unknown field: log.%s", field)
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if _, err := measure.ParseUnitSystem(c.Units.System); err != nil {
		return fmt.Errorf("units.system must be metric or imperial (got: %s)", c.Units.System)
	}

	if !isValidLogLevel(c.Log.Level) {
		return fmt.Errorf("log.level must be debug, info, warn, or error (got: %s)", c.Log.Level)
	}

	if c.Picker.FPS < 1 || c.Picker.FPS > 240 {
		return fmt.Errorf("picker.fps must be between 1 and 240 (got: %d)", c.Picker.FPS)
	}

	if err := c.Picker.WheelConfig().Validate(); err != nil {
		return fmt.Errorf("picker: %w", err)
	}
	return nil
}

func isValidLogLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

func isValidSetMotion(m string) bool {
	switch wheel.SetMotion(m) {
	case wheel.SetMotionEase, wheel.SetMotionSpring, wheel.SetMotionInstant:
		return true
	default:
		return false
	}
}

func isValidEasing(e string) bool {
	switch wheel.EasingName(e) {
	case wheel.EasingCubic, wheel.EasingEase:
		return true
	default:
		return false
	}
}

// ApplyEnvOverrides applies environment variable overrides to the config.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv("FITWHEEL_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil && b {
			c.Log.Level = "debug"
		}
	}
	if v := os.Getenv("FITWHEEL_LOG_LEVEL"); v != "" {
		if isValidLogLevel(v) {
			c.Log.Level = v
		}
	}
	if v := os.Getenv("FITWHEEL_UNITS"); v != "" {
		if u, err := measure.ParseUnitSystem(v); err == nil {
			c.Units.System = string(u)
		}
	}
}

// ListKeys returns user-facing configuration keys.
func ListKeys() []string {
	return []string{
		"picker.visible_count",
		"picker.snap_duration_ms",
		"picker.deceleration",
		"picker.velocity_threshold",
		"picker.decay",
		"picker.animations",
		"picker.set_motion",
		"picker.easing",
		"picker.spring_frequency",
		"picker.spring_damping",
		"picker.projection",
		"picker.perspective",
		"picker.opacity",
		"picker.scale",
		"picker.fps",
		"units.system",
		"log.level",
		"log.file",
	}
}
