package libfield

import (
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

type Axis int

const (
	X Axis = iota
	Y
	Z
)

func (a Axis) String() string {
	switch a {
	case X:
		return "x"
	case Y:
		return "y"
	case Z:
		return "z"
	}
	return fmt.Sprintf("Axis(%d)", int(a))
}

// Config describes the lattice and the mass bending it.
type Config struct {
	// Number of lattice lines per axis
	Counts [3]int `toml:"counts"`
	// Samples along each line
	Steps int `toml:"steps"`
	// Bounding box of the lattice; displaced samples outside of it are dropped
	Min    mgl32.Vec3 `toml:"min"`
	Max    mgl32.Vec3 `toml:"max"`
	Mass   float32    `toml:"mass"`
	Source mgl32.Vec3 `toml:"source"`
}

func DefaultConfig() Config {
	return Config{
		Counts: [3]int{5, 5, 5},
		Steps:  200,
		Min:    mgl32.Vec3{-5, -5, -5},
		Max:    mgl32.Vec3{5, 5, 5},
		Mass:   EarthMass,
	}
}

func (cfg Config) Validate() error {
	for axis, count := range cfg.Counts {
		if count < 2 {
			return fmt.Errorf("%v line count must be at least 2, got %d: %w", Axis(axis), count, ErrInvalidArgument)
		}
	}
	if cfg.Steps < 2 {
		return fmt.Errorf("steps must be at least 2, got %d: %w", cfg.Steps, ErrInvalidArgument)
	}
	for axis := X; axis <= Z; axis++ {
		if !(cfg.Min[axis] < cfg.Max[axis]) {
			return fmt.Errorf("%v bounds [%v, %v] are empty: %w", axis, cfg.Min[axis], cfg.Max[axis], ErrInvalidArgument)
		}
	}
	return nil
}

// Contains reports whether p lies inside the bounding box, borders included.
func (cfg Config) Contains(p mgl32.Vec3) bool {
	for axis := X; axis <= Z; axis++ {
		if p[axis] > cfg.Max[axis] || p[axis] < cfg.Min[axis] {
			return false
		}
	}
	return true
}

// DecodeConfig reads a TOML config. Keys that are not present keep their default value.
func DecodeConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("could not decode field config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func LoadConfig(filename string) (Config, error) {
	file, err := os.Open(filename)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()
	return DecodeConfig(file)
}
