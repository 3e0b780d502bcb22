package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-hoops/internal/progress"
)

func menuStep(m MenuModel, msgs ...tea.Msg) MenuModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(MenuModel)
	}
	return m
}

var (
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
)

func TestMenuShowsProgress(t *testing.T) {
	b := progress.NewMemoryBackend()
	_ = b.Set(progress.KeyLevel, "3")
	_ = b.Set(progress.KeyMaxLevel, "8")
	_ = b.Set(progress.KeyShots, "12")

	m := NewMenuModel(Env{Progress: b, Profile: "ann"}, testConfig())
	view := m.View()
	for _, want := range []string{"Level 3", "Shots 12", "Best 8", "profile: ann"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestMenuSelect(t *testing.T) {
	tests := []struct {
		downs int
		want  MenuChoice
	}{
		{0, ChoicePlay},
		{1, ChoiceScores},
		{3, ChoiceQuit},
	}
	for _, tt := range tests {
		m := NewMenuModel(Env{}, testConfig())
		for range tt.downs {
			m = menuStep(m, keyDown)
		}
		m = menuStep(m, keyEnter)
		if m.Selected() != tt.want {
			t.Errorf("after %d downs Selected() = %v, want %v", tt.downs, m.Selected(), tt.want)
		}
	}
}

func TestMenuResetNeedsConfirmation(t *testing.T) {
	b := progress.NewMemoryBackend()
	_ = b.Set(progress.KeyLevel, "5")
	_ = b.Set(progress.KeyMaxLevel, "5")
	_ = b.Set(progress.KeyShots, "2")

	m := NewMenuModel(Env{Progress: b}, testConfig())
	m = menuStep(m, keyDown, keyDown, keyEnter)
	if _, ok := b.Snapshot()[progress.KeyLevel]; !ok {
		t.Fatal("progress cleared without confirmation")
	}
	if m.Selected() != ChoiceNone {
		t.Fatal("reset should keep the menu open")
	}

	m = menuStep(m, keyEnter)
	if len(b.Snapshot()) != 0 {
		t.Errorf("progress not cleared: %v", b.Snapshot())
	}
	if m.session.Level != 1 || m.session.ShotsRemaining != 10 {
		t.Errorf("menu shows %+v after reset", m.session)
	}
}

func TestMenuResetCancelledByMoving(t *testing.T) {
	b := progress.NewMemoryBackend()
	_ = b.Set(progress.KeyLevel, "5")

	m := NewMenuModel(Env{Progress: b}, testConfig())
	m = menuStep(m, keyDown, keyDown, keyEnter, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyDown}, keyEnter)
	if _, ok := b.Snapshot()[progress.KeyLevel]; !ok {
		t.Error("moving away should cancel the pending reset")
	}
}
