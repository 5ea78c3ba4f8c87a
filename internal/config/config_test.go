package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/runger/fitwheel/internal/wheel"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Picker.VisibleCount != 5 {
		t.Errorf("Expected visible_count=5, got %d", cfg.Picker.VisibleCount)
	}
	if cfg.Picker.SnapDurationMs != 300 {
		t.Errorf("Expected snap_duration_ms=300, got %d", cfg.Picker.SnapDurationMs)
	}
	if !cfg.Picker.Decay {
		t.Error("Expected decay=true")
	}
	if cfg.Picker.Projection {
		t.Error("Expected projection=false by default")
	}
	if cfg.Units.System != "metric" {
		t.Errorf("Expected units.system=metric, got %s", cfg.Units.System)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Expected log.level=info, got %s", cfg.Log.Level)
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() error = %v", err)
	}
}

func TestWheelConfig(t *testing.T) {
	p := DefaultConfig().Picker
	p.Animations = false
	p.Projection = true
	p.SnapDurationMs = 120
	p.SetMotion = "spring"

	cfg := p.WheelConfig()
	if !cfg.DisableAnimations {
		t.Error("animations=false should disable animations")
	}
	if !cfg.Projection.Enabled || cfg.Projection.Perspective != 600 {
		t.Errorf("Projection = %+v", cfg.Projection)
	}
	if cfg.SnapDuration != 120*time.Millisecond {
		t.Errorf("SnapDuration = %v, want 120ms", cfg.SnapDuration)
	}
	if cfg.SetMotion != wheel.SetMotionSpring {
		t.Errorf("SetMotion = %s, want spring", cfg.SetMotion)
	}
	if cfg.ItemExtent != wheel.DefaultItemExtent {
		t.Errorf("ItemExtent = %v, want %v", cfg.ItemExtent, wheel.DefaultItemExtent)
	}
}

func TestFrameInterval(t *testing.T) {
	p := PickerConfig{FPS: 50}
	if got := p.FrameInterval(); got != 20*time.Millisecond {
		t.Errorf("FrameInterval() = %v, want 20ms", got)
	}
	p.FPS = 0
	if got := p.FrameInterval(); got != time.Second/60 {
		t.Errorf("FrameInterval() with fps=0 = %v, want 1/60s", got)
	}
}

func TestConfigGet(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		key      string
		expected string
	}{
		{"picker.visible_count", "5"},
		{"picker.snap_duration_ms", "300"},
		{"picker.deceleration", "0.998"},
		{"picker.velocity_threshold", "20"},
		{"picker.decay", "true"},
		{"picker.animations", "true"},
		{"picker.set_motion", "ease"},
		{"picker.easing", "cubic"},
		{"picker.spring_frequency", "6"},
		{"picker.spring_damping", "1"},
		{"picker.projection", "false"},
		{"picker.perspective", "600"},
		{"picker.opacity", "true"},
		{"picker.scale", "true"},
		{"picker.fps", "60"},
		{"units.system", "metric"},
		{"log.level", "info"},
		{"log.file", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, err := cfg.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%q) error = %v", tt.key, err)
			}
			if got != tt.expected {
				t.Errorf("Get(%q) = %q, want %q", tt.key, got, tt.expected)
			}
		})
	}
}

func TestConfigSet(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"picker.visible_count", "7"},
		{"picker.snap_duration_ms", "150"},
		{"picker.deceleration", "0.99"},
		{"picker.velocity_threshold", "35.5"},
		{"picker.decay", "false"},
		{"picker.animations", "false"},
		{"picker.set_motion", "instant"},
		{"picker.easing", "ease"},
		{"picker.spring_frequency", "8"},
		{"picker.spring_damping", "1.5"},
		{"picker.projection", "true"},
		{"picker.perspective", "400"},
		{"picker.opacity", "false"},
		{"picker.scale", "false"},
		{"picker.fps", "30"},
		{"units.system", "imperial"},
		{"log.level", "debug"},
		{"log.file", "/tmp/fitwheel.log"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Fatalf("Set(%q, %q) error = %v", tt.key, tt.value, err)
			}
			got, err := cfg.Get(tt.key)
			if err != nil {
				t.Fatalf("Get(%q) error = %v", tt.key, err)
			}
			if got != tt.value {
				t.Errorf("Get(%q) after Set = %q, want %q", tt.key, got, tt.value)
			}
		})
	}
}

func TestConfigSet_NormalizesUnits(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Set("units.system", "IMPERIAL"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if cfg.Units.System != "imperial" {
		t.Errorf("units.system = %q, want imperial", cfg.Units.System)
	}
}

func TestConfigGetInvalidKey(t *testing.T) {
	cfg := DefaultConfig()

	for _, key := range []string{"picker", "a.b.c", "nope.level", "picker.nope", "units.nope", "log.nope"} {
		if _, err := cfg.Get(key); err == nil {
			t.Errorf("Get(%q) expected error", key)
		}
	}
}

func TestConfigSetInvalidValue(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"picker.visible_count", "five"},
		{"picker.deceleration", "slow"},
		{"picker.decay", "maybe"},
		{"picker.set_motion", "bounce"},
		{"picker.easing", "linear"},
		{"units.system", "stone"},
		{"log.level", "verbose"},
		{"picker.nope", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			cfg := DefaultConfig()
			if err := cfg.Set(tt.key, tt.value); err == nil {
				t.Errorf("Set(%q, %q) expected error", tt.key, tt.value)
			}
		})
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"even visible count", func(c *Config) { c.Picker.VisibleCount = 4 }, true},
		{"deceleration >= 1", func(c *Config) { c.Picker.Deceleration = 1 }, true},
		{"negative snap", func(c *Config) { c.Picker.SnapDurationMs = -1 }, true},
		{"zero fps", func(c *Config) { c.Picker.FPS = 0 }, true},
		{"bad units", func(c *Config) { c.Units.System = "stone" }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "trace" }, true},
		{"projection without perspective", func(c *Config) {
			c.Picker.Projection = true
			c.Picker.Perspective = 0
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigValidate_WrapsWheelError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Picker.VisibleCount = 2
	if err := cfg.Validate(); !errors.Is(err, wheel.ErrInvalidConfig) {
		t.Errorf("Validate() error = %v, want wheel.ErrInvalidConfig", err)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("FITWHEEL_UNITS", "imperial")
	t.Setenv("FITWHEEL_LOG_LEVEL", "warn")

	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()
	if cfg.Units.System != "imperial" {
		t.Errorf("units.system = %s, want imperial", cfg.Units.System)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("log.level = %s, want warn", cfg.Log.Level)
	}
}

func TestApplyEnvOverrides_Debug(t *testing.T) {
	t.Setenv("FITWHEEL_DEBUG", "1")

	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()
	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %s, want debug", cfg.Log.Level)
	}
}

func TestApplyEnvOverrides_IgnoresInvalid(t *testing.T) {
	t.Setenv("FITWHEEL_UNITS", "furlongs")
	t.Setenv("FITWHEEL_LOG_LEVEL", "loud")

	cfg := DefaultConfig()
	cfg.ApplyEnvOverrides()
	if cfg.Units.System != "metric" || cfg.Log.Level != "info" {
		t.Errorf("invalid env values applied: %+v", cfg)
	}
}

func TestLoadFromFile_NonExistent(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.Picker.FPS != 60 {
		t.Errorf("Expected defaults, got fps=%d", cfg.Picker.FPS)
	}
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("picker: [unclosed"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFromFile(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadFromFile_PartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "picker:\n  projection: true\nunits:\n  system: imperial\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if !cfg.Picker.Projection {
		t.Error("Expected projection=true from file")
	}
	if cfg.Units.System != "imperial" {
		t.Errorf("units.system = %s, want imperial", cfg.Units.System)
	}
	// Unset fields keep defaults
	if cfg.Picker.VisibleCount != 5 {
		t.Errorf("visible_count = %d, want default 5", cfg.Picker.VisibleCount)
	}
}

func TestLoadFromFile_InvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("picker:\n  visible_count: 6\n"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadFromFile(path)
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Errorf("LoadFromFile() error = %v, want invalid config", err)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.Picker.SetMotion = "spring"
	cfg.Picker.FPS = 30
	cfg.Units.System = "imperial"
	cfg.Log.File = "/var/log/fitwheel.log"

	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", loaded, cfg)
	}
}

func TestListKeysAllGettable(t *testing.T) {
	cfg := DefaultConfig()
	for _, key := range ListKeys() {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("ListKeys() key %q not gettable: %v", key, err)
		}
	}
}

func TestListKeysAllSettable(t *testing.T) {
	cfg := DefaultConfig()
	for _, key := range ListKeys() {
		v, err := cfg.Get(key)
		if err != nil {
			t.Fatalf("Get(%q) error = %v", key, err)
		}
		if err := cfg.Set(key, v); err != nil {
			t.Errorf("ListKeys() key %q not settable with its own value: %v", key, err)
		}
	}
}
