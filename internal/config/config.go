// Package config loads and validates simulation parameters.
//
// Configuration lives in one YAML file with three sections (robot, env,
// simulator) of flat numeric/string parameters. Distances are in meters;
// the grid is derived by dividing by the tassel dimension.
package config

import (
	"fmt"
	"math"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration document.
type Config struct {
	Robot     RobotConfig     `yaml:"robot"`
	Env       EnvConfig       `yaml:"env"`
	Simulator SimulatorConfig `yaml:"simulator"`
}

// RobotConfig describes the coverage robot.
type RobotConfig struct {
	// Speed in meters per second.
	Speed float64 `yaml:"speed"`
	// Autonomy in minutes of mowing per charge.
	Autonomy float64 `yaml:"autonomy"`
	// CuttingDiameter in meters.
	CuttingDiameter float64 `yaml:"cutting_diameter"`
	// CuttingMode is "<movement>-<bounce>", e.g. "random-sharp".
	CuttingMode string `yaml:"cutting_mode"`
	// Recharge duration in seconds, charged against the run budget at
	// every cycle boundary.
	Recharge float64 `yaml:"recharge"`
}

// EnvConfig describes the field to generate.
type EnvConfig struct {
	Width  float64 `yaml:"width"`
	Length float64 `yaml:"length"`

	IsolatedAreaShape     string  `yaml:"isolated_area_shape"` // "Square" or "Circle"
	IsolatedAreaMinWidth  float64 `yaml:"isolated_area_min_width"`
	IsolatedAreaMaxWidth  float64 `yaml:"isolated_area_max_width"`
	IsolatedAreaMinLength float64 `yaml:"isolated_area_min_length"`
	IsolatedAreaMaxLength float64 `yaml:"isolated_area_max_length"`
	MinRadius             float64 `yaml:"min_radius"`
	MaxRadius             float64 `yaml:"max_radius"`

	NumBlockedSquares int     `yaml:"num_blocked_squares"`
	MinWidthSquare    float64 `yaml:"min_width_square"`
	MaxWidthSquare    float64 `yaml:"max_width_square"`
	MinHeightSquare   float64 `yaml:"min_height_square"`
	MaxHeightSquare   float64 `yaml:"max_height_square"`

	NumBlockedCircles int     `yaml:"num_blocked_circles"`
	MinRay            float64 `yaml:"min_ray"`
	MaxRay            float64 `yaml:"max_ray"`
}

// SimulatorConfig describes the batch.
type SimulatorConfig struct {
	// DimTassel is the side of one grid cell in meters.
	DimTassel float64 `yaml:"dim_tassel"`
	// Cycle is the total run budget per repetition, in minutes.
	Cycle float64 `yaml:"cycle"`
	// Repetitions per map.
	Repetitions int `yaml:"repetitions"`
	// NumMaps is the number of independently generated map variants.
	NumMaps int `yaml:"num_maps"`
	// Seed for the run RNG; zero means derive one from the clock.
	Seed int64 `yaml:"seed"`
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks parameter consistency.
func (c *Config) Validate() error {
	if c.Simulator.DimTassel <= 0 {
		return fmt.Errorf("simulator.dim_tassel must be positive, got %g", c.Simulator.DimTassel)
	}
	if c.Env.Width <= 0 || c.Env.Length <= 0 {
		return fmt.Errorf("env dimensions must be positive, got %gx%g", c.Env.Width, c.Env.Length)
	}
	if c.Robot.Speed <= 0 {
		return fmt.Errorf("robot.speed must be positive, got %g", c.Robot.Speed)
	}
	if c.Robot.Autonomy <= 0 {
		return fmt.Errorf("robot.autonomy must be positive, got %g", c.Robot.Autonomy)
	}
	if c.Robot.CuttingDiameter <= 0 {
		return fmt.Errorf("robot.cutting_diameter must be positive, got %g", c.Robot.CuttingDiameter)
	}
	if c.Robot.Recharge < 0 {
		return fmt.Errorf("robot.recharge must not be negative, got %g", c.Robot.Recharge)
	}
	if _, _, err := c.SplitCuttingMode(); err != nil {
		return err
	}
	switch c.Env.IsolatedAreaShape {
	case "Square", "Circle":
	default:
		return fmt.Errorf("env.isolated_area_shape must be %q or %q, got %q", "Square", "Circle", c.Env.IsolatedAreaShape)
	}
	pairs := []struct {
		name     string
		min, max float64
	}{
		{"isolated_area width", c.Env.IsolatedAreaMinWidth, c.Env.IsolatedAreaMaxWidth},
		{"isolated_area length", c.Env.IsolatedAreaMinLength, c.Env.IsolatedAreaMaxLength},
		{"radius", c.Env.MinRadius, c.Env.MaxRadius},
		{"square width", c.Env.MinWidthSquare, c.Env.MaxWidthSquare},
		{"square height", c.Env.MinHeightSquare, c.Env.MaxHeightSquare},
		{"ray", c.Env.MinRay, c.Env.MaxRay},
	}
	for _, p := range pairs {
		if p.min < 0 || p.max < p.min {
			return fmt.Errorf("env %s bounds invalid: min %g, max %g", p.name, p.min, p.max)
		}
	}
	if c.Env.NumBlockedSquares < 0 || c.Env.NumBlockedCircles < 0 {
		return fmt.Errorf("obstacle counts must not be negative")
	}
	if c.Simulator.Cycle <= 0 {
		return fmt.Errorf("simulator.cycle must be positive, got %g", c.Simulator.Cycle)
	}
	if c.Simulator.Repetitions <= 0 || c.Simulator.NumMaps <= 0 {
		return fmt.Errorf("simulator.repetitions and simulator.num_maps must be positive")
	}
	return nil
}

// GridWidth returns the grid width in tassels.
func (c *Config) GridWidth() int {
	return int(math.Ceil(c.Env.Width / c.Simulator.DimTassel))
}

// GridHeight returns the grid height in tassels.
func (c *Config) GridHeight() int {
	return int(math.Ceil(c.Env.Length / c.Simulator.DimTassel))
}

// EffectiveAutonomy returns the per-cycle autonomy in seconds, derated by
// the 10% reserve the battery never yields.
func (c *Config) EffectiveAutonomy() float64 {
	return (c.Robot.Autonomy - c.Robot.Autonomy*0.10) * 60
}

// RunBudget returns the total per-repetition run budget in seconds.
func (c *Config) RunBudget() float64 {
	return c.Simulator.Cycle * 60
}

// SplitCuttingMode splits "<movement>-<bounce>" at the first hyphen. A
// missing bounce part selects the default.
func (c *Config) SplitCuttingMode() (movement, bounce string, err error) {
	mode := strings.TrimSpace(c.Robot.CuttingMode)
	if mode == "" {
		return "", "", fmt.Errorf("robot.cutting_mode must not be empty")
	}
	parts := strings.SplitN(mode, "-", 2)
	movement = strings.TrimSpace(parts[0])
	if len(parts) == 2 {
		bounce = strings.TrimSpace(parts[1])
	}
	return movement, bounce, nil
}
