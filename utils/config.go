package utils

import (
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/pkg/errors"
)

const (
	RendererTerminal = "terminal"
	RendererCanvas   = "canvas"
	RendererHeadless = "headless"

	SeedUniform  = "uniform"
	SeedPatterns = "patterns"
)

// Config holds the configuration for the game
type Config struct {
	ViewportWidth       int           `json:"viewport_width"`
	ViewportHeight      int           `json:"viewport_height"`
	CellSize            int           `json:"cell_size"`
	FrameRate           time.Duration `json:"frame_rate"`
	Renderer            string        `json:"renderer"`
	Seed                int64         `json:"seed"`
	SeedMode            string        `json:"seed_mode"`
	AutoRestart         bool          `json:"auto_restart"`
	StagnationThreshold int           `json:"stagnation_threshold"`
	MaxGenerations      int           `json:"max_generations"`
	RandomDensity       float64       `json:"random_density"`
	InjectionCount      int           `json:"injection_count"`
	Simulations         int           `json:"simulations"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	config := Config{
		ViewportWidth:       300,
		ViewportHeight:      150,
		CellSize:            5,
		FrameRate:           100 * time.Millisecond,
		Renderer:            RendererTerminal,
		SeedMode:            SeedUniform,
		AutoRestart:         true,
		StagnationThreshold: 5,
		MaxGenerations:      1000,
		RandomDensity:       0.15,
		InjectionCount:      3,
		Simulations:         1,
	}
	platformDefaults(&config)
	return config
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	return config, nil
}

// Bind attaches the configuration to the provided FlagSet so command-line
// values override whatever the config file set.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.ViewportWidth, "width", c.ViewportWidth, "viewport width in pixels")
	fs.IntVar(&c.ViewportHeight, "height", c.ViewportHeight, "viewport height in pixels")
	fs.IntVar(&c.CellSize, "cell-size", c.CellSize, "cell edge length in pixels")
	fs.DurationVar(&c.FrameRate, "frame-rate", c.FrameRate, "delay between frames (terminal and headless)")
	fs.StringVar(&c.Renderer, "renderer", c.Renderer, "terminal, canvas or headless")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed, 0 picks one from the clock")
	fs.StringVar(&c.SeedMode, "seed-mode", c.SeedMode, "uniform or patterns")
	fs.BoolVar(&c.AutoRestart, "auto-restart", c.AutoRestart, "reseed on extinction or stagnation")
	fs.IntVar(&c.MaxGenerations, "max-generations", c.MaxGenerations, "stop after this many generations, 0 runs forever")
	fs.IntVar(&c.Simulations, "simulations", c.Simulations, "independent simulations to run (headless only)")
}

// Validate reports the first setting that cannot start a simulation.
func (c Config) Validate() error {
	switch {
	case c.CellSize <= 0:
		return errors.Errorf("[Validate] cell size must be positive, got %d", c.CellSize)
	case c.ViewportWidth < c.CellSize || c.ViewportHeight < c.CellSize:
		return errors.Errorf("[Validate] viewport %dx%d is smaller than one %dpx cell",
			c.ViewportWidth, c.ViewportHeight, c.CellSize)
	case c.FrameRate < 0:
		return errors.Errorf("[Validate] frame rate must not be negative, got %v", c.FrameRate)
	case c.MaxGenerations < 0:
		return errors.Errorf("[Validate] max generations must not be negative, got %d", c.MaxGenerations)
	case c.RandomDensity < 0 || c.RandomDensity > 1:
		return errors.Errorf("[Validate] random density must be within [0, 1], got %v", c.RandomDensity)
	case c.StagnationThreshold < 1:
		return errors.Errorf("[Validate] stagnation threshold must be at least 1, got %d", c.StagnationThreshold)
	case c.InjectionCount < 0:
		return errors.Errorf("[Validate] injection count must not be negative, got %d", c.InjectionCount)
	case c.Simulations < 1:
		return errors.Errorf("[Validate] simulations must be at least 1, got %d", c.Simulations)
	case c.Simulations > 1 && c.Renderer != RendererHeadless:
		return errors.Errorf("[Validate] %d simulations need the %s renderer", c.Simulations, RendererHeadless)
	}
	switch c.Renderer {
	case RendererTerminal, RendererCanvas, RendererHeadless:
	default:
		return errors.Errorf("[Validate] unknown renderer %q", c.Renderer)
	}
	switch c.SeedMode {
	case SeedUniform, SeedPatterns:
	default:
		return errors.Errorf("[Validate] unknown seed mode %q", c.SeedMode)
	}
	return nil
}
