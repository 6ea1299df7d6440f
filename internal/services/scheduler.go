package services

import (
	"time"

	"github.com/ganeshpawar09/CarZy-Admin/domain"
)

// TimerScheduler implements domain.Scheduler on top of the runtime timer.
type TimerScheduler struct{}

// NewTimerScheduler creates the production scheduler
func NewTimerScheduler() domain.Scheduler {
	return TimerScheduler{}
}

// AfterFunc implements domain.Scheduler
func (TimerScheduler) AfterFunc(d time.Duration, fn func()) domain.TaskHandle {
	return timerHandle{timer: time.AfterFunc(d, fn)}
}

type timerHandle struct {
	timer *time.Timer
}

// Stop implements domain.TaskHandle
func (h timerHandle) Stop() bool {
	return h.timer.Stop()
}

// Compile-time interface compliance verification
var _ domain.Scheduler = TimerScheduler{}
