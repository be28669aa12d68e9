package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tilebox.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded default config is invalid: %v", err)
	}
	if cfg != DefaultTileboxConfig() {
		t.Errorf("embedded defaults %+v differ from DefaultTileboxConfig() %+v", cfg, DefaultTileboxConfig())
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := writeConfig(t, `
timing:
  next_tile: 2s
  collect: 300ms
rules:
  palette_size: 4
`)

	cfg, err := LoadTilebox(path)
	if err != nil {
		t.Fatalf("LoadTilebox() failed: %v", err)
	}

	if cfg.Timing.NextTile != 2*time.Second {
		t.Errorf("NextTile = %v, want 2s", cfg.Timing.NextTile)
	}
	if cfg.Timing.Collect != 300*time.Millisecond {
		t.Errorf("Collect = %v, want 300ms", cfg.Timing.Collect)
	}
	if cfg.Rules.PaletteSize != 4 {
		t.Errorf("PaletteSize = %d, want 4", cfg.Rules.PaletteSize)
	}

	// Keys not mentioned keep their defaults
	def := DefaultTileboxConfig()
	if cfg.Timing.Slide != def.Timing.Slide || cfg.Rules.MatchSize != def.Rules.MatchSize {
		t.Errorf("unspecified keys should keep defaults, got %+v", cfg)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := LoadTilebox(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Error("LoadTilebox() should fail for a missing custom path")
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"palette too large", "rules:\n  palette_size: 9\n"},
		{"match size too small", "rules:\n  match_size: 1\n"},
		{"floor above base", "timing:\n  next_tile: 100ms\n  next_tile_floor: 500ms\n"},
		{"negative slide", "timing:\n  slide: -5ms\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadTilebox(writeConfig(t, tc.content))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("LoadTilebox() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestLoadMalformedYAML(t *testing.T) {
	_, err := LoadTilebox(writeConfig(t, "timing: [oops"))
	if err == nil {
		t.Error("LoadTilebox() should fail on malformed YAML")
	}
}
