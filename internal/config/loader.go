package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadHoops loads the game configuration.
// Search order: customPath -> ~/.hoops/configs/hoops.yaml -> ./configs/hoops.yaml -> embedded default.
// Files are decoded over the defaults, so a partial file only overrides what it names.
func LoadHoops(customPath string) (HoopsConfig, error) {
	cfg := DefaultHoopsConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return DefaultHoopsConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("hoops.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultHoopsConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", "hoops.yaml")); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultHoopsConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultHoopsYAML, &cfg); err != nil {
		return DefaultHoopsConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hoops", "configs", filename)
}

// ApplyHoopsPreset modifies the config based on a difficulty preset.
func ApplyHoopsPreset(cfg *HoopsConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Rules.InitialShots = 15
		cfg.Obstacles.Cap = 5
		cfg.Physics.MaxPull *= 1.2
	case DifficultyHard:
		cfg.Rules.InitialShots = 7
		cfg.Obstacles.Cap = 15
	}
}
