// Package progress owns the player's progression: shots remaining, the
// current and best level, and the per-ball attempt counter. The persisted
// subset survives restarts through a key-value Backend.
package progress

// Persisted keys.
const (
	KeyLevel    = "level"
	KeyMaxLevel = "maxLevel"
	KeyShots    = "numberOfShots"
)

// Rules are the constants of the progression.
type Rules struct {
	InitialShots   int // Shots granted to a fresh session
	FirstShotBonus int // Reward for a goal on the first launch of a ball
	GoalReward     int // Reward for any other goal
}

// DefaultRules returns the stock progression.
func DefaultRules() Rules {
	return Rules{
		InitialShots:   10,
		FirstShotBonus: 5,
		GoalReward:     1,
	}
}

// Session is the progression state of one player.
type Session struct {
	ShotsRemaining int
	Level          int
	MaxLevel       int

	// ShotAttemptsThisBall counts launches since the ball was freshly armed.
	ShotAttemptsThisBall int
	// IsCelebrating is true between a goal and the next round.
	IsCelebrating bool
}

// NewSession returns a fresh session for the given rules.
func NewSession(r Rules) Session {
	return Session{
		ShotsRemaining: r.InitialShots,
		Level:          1,
		MaxLevel:       1,
	}
}

// Depleted reports whether the player has no shots left.
func (s Session) Depleted() bool {
	return s.ShotsRemaining <= 0
}
