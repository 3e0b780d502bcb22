// Package config provides YAML-based game configuration loading and
// difficulty management for hoops.
package config

// HoopsConfig contains all tuning for the game.
// Lengths are world units; one terminal cell is CellWidth x CellHeight units.
type HoopsConfig struct {
	Board      HoopsBoard       `yaml:"board"`
	Ball       HoopsBall        `yaml:"ball"`
	Basket     HoopsBasket      `yaml:"basket"`
	Physics    HoopsPhysics     `yaml:"physics"`
	Rules      HoopsRules       `yaml:"rules"`
	Obstacles  HoopsObstacles   `yaml:"obstacles"`
	Hints      []string         `yaml:"hints"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// HoopsBoard defines how the terminal maps onto the playing field.
type HoopsBoard struct {
	CellWidth     float64 `yaml:"cell_width"`
	CellHeight    float64 `yaml:"cell_height"`
	HUDRows       int     `yaml:"hud_rows"` // Text rows above the field
	WallThickness float64 `yaml:"wall_thickness"`
	MinCols       int     `yaml:"min_cols"`
	MinRows       int     `yaml:"min_rows"`
}

// HoopsBall defines the ball and where it is launched from.
type HoopsBall struct {
	Radius       float64 `yaml:"radius"`
	Restitution  float64 `yaml:"restitution"`
	Density      float64 `yaml:"density"`
	AirFriction  float64 `yaml:"air_friction"`
	LaunchOffset float64 `yaml:"launch_offset"` // Launch point distance above the field bottom
}

// HoopsBasket defines the hoop geometry.
type HoopsBasket struct {
	BallRatio    float64 `yaml:"ball_ratio"` // Half basket width relative to the ball radius
	Thickness    float64 `yaml:"thickness"`
	TopMargin    float64 `yaml:"top_margin"`    // Extra clearance above, on top of one ball diameter
	BottomMargin float64 `yaml:"bottom_margin"` // Extra clearance above the launch point
	NetHeight    float64 `yaml:"net_height"`
	NetThickness float64 `yaml:"net_thickness"`
	NetColumns   int     `yaml:"net_columns"`
	NetRows      int     `yaml:"net_rows"`
}

// HoopsPhysics defines the simulation and the launch mechanics.
type HoopsPhysics struct {
	Gravity          float64 `yaml:"gravity"` // Units per tick squared
	Substeps         int     `yaml:"substeps"`
	ElasticStiffness float64 `yaml:"elastic_stiffness"`
	PointerStiffness float64 `yaml:"pointer_stiffness"`
	GrabReach        float64 `yaml:"grab_reach"` // Extra distance around the ball that still grabs it
	MaxPull          float64 `yaml:"max_pull"`   // Longest elastic stretch
	LaunchThreshold  float64 `yaml:"launch_threshold"`
	KeyStep          float64 `yaml:"key_step"` // Pointer movement per arrow key press
}

// HoopsRules defines progression and timing.
type HoopsRules struct {
	InitialShots   int     `yaml:"initial_shots"`
	FirstShotBonus int     `yaml:"first_shot_bonus"`
	GoalReward     int     `yaml:"goal_reward"`
	CelebrationMS  int     `yaml:"celebration_ms"`
	StuckMS        int     `yaml:"stuck_ms"`     // A ball idling this long in flight is nudged, then out
	StuckRadius    float64 `yaml:"stuck_radius"` // Movement below this counts as idling
	NudgeForce     float64 `yaml:"nudge_force"`
}

// HoopsObstacles defines the random blocks added per level.
type HoopsObstacles struct {
	Cap         int     `yaml:"cap"` // Never more than this many
	MinSize     float64 `yaml:"min_size"`
	MaxSize     float64 `yaml:"max_size"`
	MaxFraction float64 `yaml:"max_fraction"` // Largest side as a fraction of the field side
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "level" or "none"
	MaxAt int    `yaml:"max_at"` // Game level at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SizeMultiplier float64 `yaml:"size_multiplier"` // Added to the obstacle size limit at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	}
	return ""
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}
