package hoops

import "github.com/vovakirdan/tui-hoops/internal/physics"

// HUD is the Presenter used by the terminal game. It only records what
// should be on screen; Render draws it.
type HUD struct {
	Level int
	Shots int
	Hint  string

	GoalVisible bool
	GoalAt      physics.Vec
	GoalReward  int

	MenuVisible bool
	LastBall    physics.Vec

	refreshes int
}

func (h *HUD) Refresh(level, shots int, hint string) {
	h.Level = level
	h.Shots = shots
	h.Hint = hint
	h.refreshes++
}

func (h *HUD) ShowGoal(at physics.Vec, reward int) {
	h.GoalVisible = true
	h.GoalAt = at
	h.GoalReward = reward
}

func (h *HUD) HideGoal() {
	h.GoalVisible = false
}

func (h *HUD) ShowMenu(lastBall physics.Vec) {
	h.MenuVisible = true
	h.LastBall = lastBall
}

func (h *HUD) HideMenu() {
	h.MenuVisible = false
}

// Refreshes counts Refresh calls.
func (h *HUD) Refreshes() int {
	return h.refreshes
}

var _ Presenter = (*HUD)(nil)
