package mocks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualScheduler_AdvanceRunsCascadedTasks(t *testing.T) {
	scheduler := NewManualScheduler()

	// Each firing schedules the next one second out, the way a countdown
	// tick does. One Advance must walk the whole chain inside its window.
	fired := 0
	var tick func()
	tick = func() {
		fired++
		if fired < 5 {
			scheduler.AfterFunc(time.Second, tick)
		}
	}
	scheduler.AfterFunc(time.Second, tick)

	scheduler.Advance(3 * time.Second)
	assert.Equal(t, 3, fired, "ticks due at 1s, 2s and 3s all run")
	assert.Equal(t, 1, scheduler.Pending(), "the 4s tick waits for the next window")

	scheduler.Advance(2 * time.Second)
	assert.Equal(t, 5, fired)
	assert.Equal(t, 0, scheduler.Pending())
}

func TestManualScheduler_StoppedTaskDoesNotFire(t *testing.T) {
	scheduler := NewManualScheduler()

	fired := false
	handle := scheduler.AfterFunc(time.Second, func() { fired = true })
	assert.True(t, handle.Stop())

	scheduler.Advance(2 * time.Second)
	assert.False(t, fired)
	assert.False(t, handle.Stop(), "a second stop reports nothing pending")
}
