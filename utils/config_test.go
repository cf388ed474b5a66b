package utils

import (
	"flag"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"viewport_width": 640, "viewport_height": 480, "cell_size": 8, "frame_rate": 16000000, "seed_mode": "patterns"}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if config.ViewportWidth != 640 || config.ViewportHeight != 480 || config.CellSize != 8 {
		t.Fatalf("viewport not loaded: %+v", config)
	}
	if config.FrameRate != 16*time.Millisecond || config.SeedMode != SeedPatterns {
		t.Fatalf("frame rate or seed mode not loaded: %+v", config)
	}
	// untouched keys keep their defaults
	if config.StagnationThreshold != DefaultConfig().StagnationThreshold {
		t.Fatalf("stagnation threshold = %d", config.StagnationThreshold)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfig(filepath.Join(dir, "missing.json")); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("missing file error = %v, want fs.ErrNotExist", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(bad); err == nil {
		t.Fatal("malformed JSON accepted")
	}
}

func TestBindOverridesConfig(t *testing.T) {
	config := DefaultConfig()
	flags := flag.NewFlagSet("test", flag.ContinueOnError)
	config.Bind(flags)
	err := flags.Parse([]string{"-width", "1000", "-cell-size", "10", "-renderer", "headless", "-simulations", "4", "-frame-rate", "0s"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if config.ViewportWidth != 1000 || config.CellSize != 10 || config.Simulations != 4 || config.FrameRate != 0 {
		t.Fatalf("flags not applied: %+v", config)
	}
	if err := config.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero cell size", func(c *Config) { c.CellSize = 0 }},
		{"viewport below one cell", func(c *Config) { c.ViewportHeight = c.CellSize - 1 }},
		{"negative frame rate", func(c *Config) { c.FrameRate = -time.Second }},
		{"negative generations", func(c *Config) { c.MaxGenerations = -1 }},
		{"density above one", func(c *Config) { c.RandomDensity = 1.5 }},
		{"zero stagnation threshold", func(c *Config) { c.StagnationThreshold = 0 }},
		{"negative injection count", func(c *Config) { c.InjectionCount = -1 }},
		{"no simulations", func(c *Config) { c.Simulations = 0 }},
		{"batch outside headless", func(c *Config) { c.Simulations = 2 }},
		{"unknown renderer", func(c *Config) { c.Renderer = "plotter" }},
		{"unknown seed mode", func(c *Config) { c.SeedMode = "checkerboard" }},
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(&config)
			if err := config.Validate(); err == nil {
				t.Fatal("Validate accepted the config")
			}
		})
	}
}

func TestNewRNGDeterministic(t *testing.T) {
	a, b := NewRNG(5), NewRNG(5)
	for range 10 {
		if a.Uint64() != b.Uint64() {
			t.Fatal("same seed produced different streams")
		}
	}
	if DeriveSeed(5, 0) != 5 || DeriveSeed(5, 1) == DeriveSeed(5, 2) {
		t.Fatal("derived seeds collide")
	}
	if DeriveSeed(0, 3) != 0 {
		t.Fatal("zero seed must stay clock based")
	}
}
