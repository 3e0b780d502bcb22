package config

import (
	_ "embed"
)

//go:embed defaults/hoops.yaml
var defaultHoopsYAML []byte

// DefaultHoopsConfig returns the built-in configuration. It matches
// defaults/hoops.yaml and is used when the embedded file cannot be parsed.
func DefaultHoopsConfig() HoopsConfig {
	return HoopsConfig{
		Board: HoopsBoard{
			CellWidth:     10,
			CellHeight:    20,
			HUDRows:       2,
			WallThickness: 10,
			MinCols:       40,
			MinRows:       18,
		},
		Ball: HoopsBall{
			Radius:       20,
			Restitution:  1.0,
			Density:      0.004,
			AirFriction:  0.01,
			LaunchOffset: 100,
		},
		Basket: HoopsBasket{
			BallRatio:    1.8848,
			Thickness:    15,
			TopMargin:    50,
			BottomMargin: 50,
			NetHeight:    50,
			NetThickness: 2,
			NetColumns:   7,
			NetRows:      4,
		},
		Physics: HoopsPhysics{
			Gravity:          0.2,
			Substeps:         2,
			ElasticStiffness: 0.08,
			PointerStiffness: 0.2,
			GrabReach:        20,
			MaxPull:          160,
			LaunchThreshold:  10,
			KeyStep:          20,
		},
		Rules: HoopsRules{
			InitialShots:   10,
			FirstShotBonus: 5,
			GoalReward:     1,
			CelebrationMS:  2000,
			StuckMS:        4000,
			StuckRadius:    30,
			NudgeForce:     6,
		},
		Obstacles: HoopsObstacles{
			Cap:         10,
			MinSize:     30,
			MaxSize:     200,
			MaxFraction: 0.08,
		},
		Hints: []string{
			"Goal the first shot to get 5 more.",
			"Shoot walls.",
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "level",
				MaxAt: 20,
			},
			Scaling: ScalingConfig{
				SizeMultiplier: 1.0,
			},
		},
	}
}
