package mocks

import (
	"sort"
	"sync"
	"time"

	"github.com/ganeshpawar09/CarZy-Admin/domain"
)

// ManualScheduler implements domain.Scheduler with a hand-cranked clock so
// countdown and redirect behavior can be tested deterministically.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []*manualTask
}

type manualTask struct {
	due     time.Duration
	fn      func()
	stopped bool
	fired   bool
}

// Stop implements domain.TaskHandle. It reports true only the first time
// it cancels a still-pending task, matching time.Timer.
func (t *manualTask) Stop() bool {
	pending := !t.fired && !t.stopped
	t.stopped = true
	return pending
}

// NewManualScheduler creates a scheduler that only moves via Advance
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc implements domain.Scheduler
func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) domain.TaskHandle {
	s.mu.Lock()
	defer s.mu.Unlock()
	task := &manualTask{due: s.now + d, fn: fn}
	s.tasks = append(s.tasks, task)
	return task
}

// Advance moves the clock forward and fires every due, unstopped task in
// due order. The clock steps to each task's due time before its callback
// runs, so tasks a callback schedules relative to its own firing moment
// run too when they fall inside the advanced window.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		task := s.nextDue(target)
		if task == nil {
			break
		}
		task.fn()
	}

	s.mu.Lock()
	s.now = target
	s.mu.Unlock()
}

// Pending returns how many unstopped tasks have not fired yet.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if !t.fired && !t.stopped {
			n++
		}
	}
	return n
}

func (s *ManualScheduler) nextDue(target time.Duration) *manualTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	sort.SliceStable(s.tasks, func(i, j int) bool { return s.tasks[i].due < s.tasks[j].due })
	for _, t := range s.tasks {
		if !t.fired && !t.stopped && t.due <= target {
			t.fired = true
			if t.due > s.now {
				s.now = t.due
			}
			return t
		}
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.Scheduler = (*ManualScheduler)(nil)
