package config

import "math"

// DifficultyManager scales round parameters with the game level.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the difficulty (0.0 to 1.0) for a game level.
// Game level 1 maps to the initial difficulty.
func (d *DifficultyManager) Level(gameLevel int) float64 {
	if !d.IsEnabled() || d.cfg.Progression.Type != "level" {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt - 1)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}
	progress := clampF(float64(gameLevel-1)/maxAt, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// ObstacleMaxSize grows the largest obstacle side with difficulty.
func (d *DifficultyManager) ObstacleMaxSize(base float64, gameLevel int) float64 {
	return base * (1.0 + d.Level(gameLevel)*d.cfg.Scaling.SizeMultiplier)
}

// ObstacleCount returns how many obstacles a level gets: one per level, capped.
func ObstacleCount(gameLevel, limit int) int {
	return max(0, min(gameLevel, limit))
}

// clampF restricts a float64 to [lo, hi].
func clampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}
