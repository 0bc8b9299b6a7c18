// Package config provides configuration loading and access for the engine.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/vitals/status"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all engine configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Viewport   ViewportConfig   `yaml:"viewport"`
	Frame      FrameConfig      `yaml:"frame"`
	Status     StatusConfig     `yaml:"status"`
	Orb        OrbConfig        `yaml:"orb"`
	Population PopulationConfig `yaml:"population"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Scenario   []ScenarioStep   `yaml:"scenario"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// ViewportConfig holds the spawn area used when the real window size is unknown.
type ViewportConfig struct {
	FallbackWidth  float64 `yaml:"fallback_width"`
	FallbackHeight float64 `yaml:"fallback_height"`
	Margin         float64 `yaml:"margin"` // Spawn positions stay this far from the right/bottom edge
}

// FrameConfig holds frame-loop timing.
type FrameConfig struct {
	DT             float64 `yaml:"dt"`               // Fixed step used in headless runs
	MaxSmoothingDT float64 `yaml:"max_smoothing_dt"` // Cap on dt fed to parameter smoothing
	SliderMax      int     `yaml:"slider_max"`       // Upper bound of the dev metric slider
}

// StatusConfig holds classification thresholds and named skins.
type StatusConfig struct {
	Thresholds status.Thresholds            `yaml:"thresholds"`
	Skin       string                       `yaml:"skin"`  // Optional skin name overriding Thresholds
	Skins      map[string]status.Thresholds `yaml:"skins"` // Named threshold presets
}

// OrbConfig holds the continuous render parameter mapping.
type OrbConfig struct {
	Colors    ColorTable    `yaml:"colors"`
	Speed     AffineConfig  `yaml:"speed"`
	Intensity AffineConfig  `yaml:"intensity"`
	Rates     RatesConfig   `yaml:"rates"`
	Initial   InitialConfig `yaml:"initial"`
	Pulse     PulseConfig   `yaml:"pulse"`
	Idle      IdleConfig    `yaml:"idle"`
}

// ColorTable maps each classification to a hex color.
type ColorTable struct {
	Stable   string `yaml:"stable"`
	Warning  string `yaml:"warning"`
	Critical string `yaml:"critical"`
}

// AffineConfig describes value = Base + metric * PerMetric.
type AffineConfig struct {
	Base      float64 `yaml:"base"`
	PerMetric float64 `yaml:"per_metric"`
}

// At evaluates the affine mapping.
func (a AffineConfig) At(metric int) float64 {
	return a.Base + float64(metric)*a.PerMetric
}

// RatesConfig holds exponential smoothing rates (per second).
type RatesConfig struct {
	Color     float64 `yaml:"color"`
	Speed     float64 `yaml:"speed"`
	Intensity float64 `yaml:"intensity"`
}

// InitialConfig holds the render parameters at engine start.
type InitialConfig struct {
	Color     string  `yaml:"color"`
	Speed     float64 `yaml:"speed"`
	Intensity float64 `yaml:"intensity"`
}

// PulseConfig holds the one-shot shockwave parameters.
type PulseConfig struct {
	Speed    float64 `yaml:"speed"`    // elapsed += dt * Speed
	Duration float64 `yaml:"duration"` // Pulse ends once elapsed reaches this
	Trigger  string  `yaml:"trigger"`  // "always" or "unstable"
	MaxScale float64 `yaml:"max_scale"`
}

// IdleConfig holds cosmetic idle motion parameters.
type IdleConfig struct {
	DriftRate       float64 `yaml:"drift_rate"`        // Group yaw, radians per second
	TiltFrequency   float64 `yaml:"tilt_frequency"`
	TiltAmplitude   float64 `yaml:"tilt_amplitude"`
	BreathFrequency float64 `yaml:"breath_frequency"`  // Emissive breathing
	BreathAmplitude float64 `yaml:"breath_amplitude"`
	ScaleFrequency  float64 `yaml:"scale_frequency"`
	ScaleAmplitude  float64 `yaml:"scale_amplitude"`
	RingSpeedFactor float64 `yaml:"ring_speed_factor"` // Ring spin = current speed * this
	FloatSpeed      float64 `yaml:"float_speed"`
	FloatAmplitude  float64 `yaml:"float_amplitude"`
	NoiseSeed       int64   `yaml:"noise_seed"`
}

// PopulationConfig holds spirit population parameters.
type PopulationConfig struct {
	UnitsPerFixer int         `yaml:"units_per_fixer"`
	MaxFixers     int         `yaml:"max_fixers"`
	Burst         BurstConfig `yaml:"burst"`
	Clear         ClearConfig `yaml:"clear"`
}

// BurstConfig holds the defender burst parameters.
type BurstConfig struct {
	Count        int     `yaml:"count"`
	Radius       float64 `yaml:"radius"`
	CenterAdjust float64 `yaml:"center_adjust"` // Subtracted from both coordinates
	Expiry       float64 `yaml:"expiry"`        // Seconds until all defenders are removed
	Tooltip      string  `yaml:"tooltip"`
}

// ClearConfig holds the cheer-then-despawn choreography timing.
type ClearConfig struct {
	ResetAfter float64 `yaml:"reset_after"` // Seconds between cheer and metric reset
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`
	PerfCollectorWindow int     `yaml:"perf_collector_window"`
	FrameSampleEvery    int     `yaml:"frame_sample_every"` // Write every Nth frame to frames.csv
}

// ScenarioStep is one timed action of a headless run.
type ScenarioStep struct {
	At     float64  `yaml:"at"`     // Seconds since start
	Action string   `yaml:"action"` // set, burst, clear, resize
	Metric int      `yaml:"metric"`
	X      float64  `yaml:"x"`
	Y      float64  `yaml:"y"`
	Width  float64  `yaml:"width"`
	Height float64  `yaml:"height"`
	After  *float64 `yaml:"after,omitempty"` // Reset delay for clear; unset uses population.clear.reset_after
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	Thresholds status.Thresholds // Effective thresholds after skin selection
	Colors     [3]colorful.Color // Indexed by status.Classification
	Initial    colorful.Color
	DT32       float32
	ScreenW32  float32
	ScreenH32  float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// UseSkin selects a named threshold preset. An empty name restores the
// base thresholds.
func (c *Config) UseSkin(name string) error {
	if name != "" {
		if _, ok := c.Status.Skins[name]; !ok {
			return fmt.Errorf("unknown skin %q (have %v)", name, c.SkinNames())
		}
	}
	c.Status.Skin = name
	return c.computeDerived()
}

// SkinNames returns the configured skin names in sorted order.
func (c *Config) SkinNames() []string {
	names := make([]string, 0, len(c.Status.Skins))
	for name := range c.Status.Skins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.DT32 = float32(c.Frame.DT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	c.Derived.Thresholds = c.Status.Thresholds
	if c.Status.Skin != "" {
		th, ok := c.Status.Skins[c.Status.Skin]
		if !ok {
			return fmt.Errorf("unknown skin %q", c.Status.Skin)
		}
		c.Derived.Thresholds = th
	}

	hexes := [3]string{c.Orb.Colors.Stable, c.Orb.Colors.Warning, c.Orb.Colors.Critical}
	for i, h := range hexes {
		col, err := colorful.Hex(h)
		if err != nil {
			return fmt.Errorf("parsing %s color %q: %w", status.Classification(i), h, err)
		}
		c.Derived.Colors[i] = col
	}

	initial, err := colorful.Hex(c.Orb.Initial.Color)
	if err != nil {
		return fmt.Errorf("parsing initial color %q: %w", c.Orb.Initial.Color, err)
	}
	c.Derived.Initial = initial
	return nil
}

// Validate reports every out-of-range value at once.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Derived.Thresholds.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("status: %w", err))
	}
	if c.Population.UnitsPerFixer <= 0 {
		errs = append(errs, fmt.Errorf("population.units_per_fixer must be positive, got %d", c.Population.UnitsPerFixer))
	}
	if c.Population.MaxFixers < 0 {
		errs = append(errs, fmt.Errorf("population.max_fixers must not be negative, got %d", c.Population.MaxFixers))
	}
	if c.Population.Burst.Count < 0 {
		errs = append(errs, fmt.Errorf("population.burst.count must not be negative, got %d", c.Population.Burst.Count))
	}
	if c.Population.Burst.Expiry <= 0 {
		errs = append(errs, fmt.Errorf("population.burst.expiry must be positive, got %v", c.Population.Burst.Expiry))
	}
	if c.Orb.Pulse.Duration <= 0 || c.Orb.Pulse.Speed <= 0 {
		errs = append(errs, errors.New("orb.pulse.duration and orb.pulse.speed must be positive"))
	}
	switch c.Orb.Pulse.Trigger {
	case "always", "unstable":
	default:
		errs = append(errs, fmt.Errorf("orb.pulse.trigger must be always or unstable, got %q", c.Orb.Pulse.Trigger))
	}
	if c.Orb.Rates.Color < 0 || c.Orb.Rates.Speed < 0 || c.Orb.Rates.Intensity < 0 {
		errs = append(errs, errors.New("orb.rates must not be negative"))
	}
	if c.Frame.DT <= 0 {
		errs = append(errs, fmt.Errorf("frame.dt must be positive, got %v", c.Frame.DT))
	}
	if c.Viewport.FallbackWidth <= 0 || c.Viewport.FallbackHeight <= 0 {
		errs = append(errs, errors.New("viewport fallback extent must be positive"))
	}
	for i, step := range c.Scenario {
		switch step.Action {
		case "set", "burst", "clear", "resize":
		default:
			errs = append(errs, fmt.Errorf("scenario[%d]: unknown action %q", i, step.Action))
		}
		if step.After != nil && (*step.After < 0 || math.IsNaN(*step.After)) {
			errs = append(errs, fmt.Errorf("scenario[%d]: after must not be negative, got %v", i, *step.After))
		}
	}
	return errors.Join(errs...)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
