package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadTilebox loads the game configuration.
// Search order: customPath -> ~/.tilebox/configs/tilebox.yaml -> ./configs/tilebox.yaml -> embedded default
func LoadTilebox(customPath string) (TileboxConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return TileboxConfig{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return TileboxConfig{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("tilebox.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "tilebox.yaml")); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultTileboxYAML)
	if err != nil {
		return DefaultTileboxConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML on top of the defaults, so partial files only override
// the keys they mention, and validates the result.
func parse(data []byte) (TileboxConfig, error) {
	cfg := DefaultTileboxConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return TileboxConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return TileboxConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tilebox", "configs", filename)
}
