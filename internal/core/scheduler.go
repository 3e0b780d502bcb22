package core

import (
	"sort"
	"time"
)

// Scheduler runs deferred tasks on simulated time.
// It is advanced by the game loop, so tasks always run on the same
// goroutine as the rest of the simulation and never concurrently with it.
type Scheduler struct {
	now    time.Duration
	nextID uint64
	tasks  []*scheduledTask
}

type scheduledTask struct {
	id  uint64
	due time.Duration
	fn  func()
}

// TaskHandle identifies a scheduled task so it can be cancelled.
// The zero value refers to no task.
type TaskHandle struct {
	s  *Scheduler
	id uint64
}

// NewScheduler creates a scheduler starting at time zero.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Now returns the simulated time elapsed since creation.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// After schedules fn to run once delay has elapsed.
func (s *Scheduler) After(delay time.Duration, fn func()) TaskHandle {
	s.nextID++
	s.tasks = append(s.tasks, &scheduledTask{
		id:  s.nextID,
		due: s.now + delay,
		fn:  fn,
	})
	return TaskHandle{s: s, id: s.nextID}
}

// Advance moves simulated time forward by dt and runs every task that
// became due, in due order (ties run in scheduling order).
// Tasks scheduled by a running task are eligible in the same call.
func (s *Scheduler) Advance(dt time.Duration) {
	s.now += dt
	for {
		task := s.popDue()
		if task == nil {
			return
		}
		task.fn()
	}
}

// Pending returns the number of tasks waiting to run.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// CancelAll drops every pending task.
func (s *Scheduler) CancelAll() {
	s.tasks = s.tasks[:0]
}

func (s *Scheduler) popDue() *scheduledTask {
	if len(s.tasks) == 0 {
		return nil
	}
	sort.SliceStable(s.tasks, func(i, j int) bool {
		return s.tasks[i].due < s.tasks[j].due
	})
	if s.tasks[0].due > s.now {
		return nil
	}
	task := s.tasks[0]
	s.tasks = s.tasks[1:]
	return task
}

func (s *Scheduler) cancel(id uint64) bool {
	for i, task := range s.tasks {
		if task.id == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Scheduler) pending(id uint64) bool {
	for _, task := range s.tasks {
		if task.id == id {
			return true
		}
	}
	return false
}

// Cancel removes the task if it has not run yet.
// Returns false if the task already ran, was cancelled, or the handle is empty.
func (h TaskHandle) Cancel() bool {
	if h.s == nil {
		return false
	}
	return h.s.cancel(h.id)
}

// Pending reports whether the task is still waiting to run.
func (h TaskHandle) Pending() bool {
	if h.s == nil {
		return false
	}
	return h.s.pending(h.id)
}
