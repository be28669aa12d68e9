// Package config provides YAML-based game configuration loading for tilebox.
package config

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// MaxPaletteSize is the number of distinct tile colors the renderer can show.
const MaxPaletteSize = 6

// TileboxConfig contains all tunable parameters of the game.
// Board dimensions are fixed and intentionally not part of it.
type TileboxConfig struct {
	Timing TileboxTiming `yaml:"timing"`
	Rules  TileboxRules  `yaml:"rules"`
}

// TileboxTiming defines the durations of the turn phases.
type TileboxTiming struct {
	NextTile      time.Duration `yaml:"next_tile"`       // Idle budget before an automatic insert
	NextTileFloor time.Duration `yaml:"next_tile_floor"` // Lower bound of the idle budget
	Slide         time.Duration `yaml:"slide"`           // Slide animation delay
	Insert        time.Duration `yaml:"insert"`          // New tile pop-in delay
	Collect       time.Duration `yaml:"collect"`         // Animated removal duration
}

// TileboxRules defines matching and scoring parameters.
type TileboxRules struct {
	MatchSize         int `yaml:"match_size"`          // Smallest group that is collected
	PaletteSize       int `yaml:"palette_size"`        // Number of tile colors in play
	AnimateUntilScore int `yaml:"animate_until_score"` // Removals are animated while score is below this
}

// Validate checks that the configuration is playable.
func (c TileboxConfig) Validate() error {
	t := c.Timing
	for name, d := range map[string]time.Duration{
		"next_tile":       t.NextTile,
		"next_tile_floor": t.NextTileFloor,
		"slide":           t.Slide,
		"insert":          t.Insert,
		"collect":         t.Collect,
	} {
		if d < 0 {
			return fmt.Errorf("%w: timing.%s must not be negative", ErrInvalidConfig, name)
		}
	}
	if t.NextTileFloor > t.NextTile {
		return fmt.Errorf("%w: timing.next_tile_floor (%v) exceeds timing.next_tile (%v)",
			ErrInvalidConfig, t.NextTileFloor, t.NextTile)
	}
	if t.NextTileFloor <= 0 {
		return fmt.Errorf("%w: timing.next_tile_floor must be positive", ErrInvalidConfig)
	}

	r := c.Rules
	if r.MatchSize < 2 {
		return fmt.Errorf("%w: rules.match_size must be at least 2, got %d", ErrInvalidConfig, r.MatchSize)
	}
	if r.PaletteSize < 1 || r.PaletteSize > MaxPaletteSize {
		return fmt.Errorf("%w: rules.palette_size must be in 1..%d, got %d",
			ErrInvalidConfig, MaxPaletteSize, r.PaletteSize)
	}
	if r.AnimateUntilScore < 0 {
		return fmt.Errorf("%w: rules.animate_until_score must not be negative", ErrInvalidConfig)
	}
	return nil
}
