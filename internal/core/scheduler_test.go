package core

import (
	"testing"
	"time"
)

func TestSchedulerRunsWhenDue(t *testing.T) {
	s := NewScheduler()
	ran := false
	s.After(2*time.Second, func() { ran = true })

	s.Advance(1999 * time.Millisecond)
	if ran {
		t.Fatal("task ran before its delay elapsed")
	}

	s.Advance(time.Millisecond)
	if !ran {
		t.Fatal("task should run once its delay elapsed")
	}
	if s.Pending() != 0 {
		t.Errorf("Pending() = %d, expected 0", s.Pending())
	}
}

func TestSchedulerOrder(t *testing.T) {
	s := NewScheduler()
	var order []string
	s.After(30*time.Millisecond, func() { order = append(order, "c") })
	s.After(10*time.Millisecond, func() { order = append(order, "a") })
	s.After(10*time.Millisecond, func() { order = append(order, "b") })

	s.Advance(time.Second)

	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("ran %v, expected %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("order[%d] = %s, expected %s", i, order[i], want[i])
		}
	}
}

func TestSchedulerCancel(t *testing.T) {
	s := NewScheduler()
	ran := false
	h := s.After(time.Second, func() { ran = true })

	if !h.Pending() {
		t.Error("new task should be pending")
	}
	if !h.Cancel() {
		t.Error("Cancel() should succeed for a pending task")
	}
	if h.Cancel() {
		t.Error("second Cancel() should report false")
	}

	s.Advance(2 * time.Second)
	if ran {
		t.Error("cancelled task must not run")
	}

	var zero TaskHandle
	if zero.Cancel() || zero.Pending() {
		t.Error("zero handle should be inert")
	}
}

func TestSchedulerNestedScheduling(t *testing.T) {
	s := NewScheduler()
	count := 0
	s.After(10*time.Millisecond, func() {
		count++
		s.After(0, func() { count++ })
	})

	s.Advance(10 * time.Millisecond)
	if count != 2 {
		t.Errorf("count = %d, expected nested zero-delay task to run in the same Advance", count)
	}
}

func TestSchedulerCancelAll(t *testing.T) {
	s := NewScheduler()
	ran := 0
	a := s.After(time.Second, func() { ran++ })
	s.After(2*time.Second, func() { ran++ })

	s.CancelAll()
	if s.Pending() != 0 || a.Pending() {
		t.Errorf("Pending() = %d after CancelAll", s.Pending())
	}
	s.Advance(3 * time.Second)
	if ran != 0 {
		t.Errorf("%d cancelled tasks ran", ran)
	}
}
