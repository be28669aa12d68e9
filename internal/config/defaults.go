package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tilebox.yaml
var defaultTileboxYAML []byte

// DefaultTileboxConfig returns the default tilebox configuration.
func DefaultTileboxConfig() TileboxConfig {
	return TileboxConfig{
		Timing: TileboxTiming{
			NextTile:      1500 * time.Millisecond,
			NextTileFloor: 200 * time.Millisecond,
			Slide:         100 * time.Millisecond,
			Insert:        100 * time.Millisecond,
			Collect:       600 * time.Millisecond,
		},
		Rules: TileboxRules{
			MatchSize:         3,
			PaletteSize:       5,
			AnimateUntilScore: 12,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultTileboxYAML
}
