package domain

// TimerState represents the current state of a countdown timer.
type TimerState string

const (
	TimerIdle      TimerState = "idle"
	TimerRunning   TimerState = "running"
	TimerCompleted TimerState = "completed"
)

// Timer is a one-second-resolution countdown. It only moves when Tick
// is called; scheduling the ticks (and cancelling stale ones) is the
// caller's job. Completion fires exactly once per run, after which the
// timer is back at Idle with the full duration restored.
//
// Invariant: 0 <= Remaining <= Total.
type Timer struct {
	Total     int
	Remaining int
	State     TimerState
}

// NewTimer returns an Idle timer for the given number of seconds.
func NewTimer(totalSeconds int) *Timer {
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	return &Timer{
		Total:     totalSeconds,
		Remaining: totalSeconds,
		State:     TimerIdle,
	}
}

// Start transitions Idle -> Running. A timer with no duration cannot
// be started.
func (t *Timer) Start() bool {
	if t.State != TimerIdle || t.Total <= 0 {
		return false
	}
	t.State = TimerRunning
	return true
}

// Tick advances the countdown by one second. It returns true exactly
// once per run: on the tick that brings Remaining to zero. That tick
// passes through Completed and leaves the timer Idle again with
// Remaining restored to Total, ready for another Start.
func (t *Timer) Tick() bool {
	if t.State != TimerRunning {
		return false
	}

	t.Remaining--
	if t.Remaining > 0 {
		return false
	}

	t.State = TimerCompleted
	t.Remaining = t.Total
	t.State = TimerIdle
	return true
}

// Reset cancels a run: the timer returns to Idle with the full
// duration restored. Resetting an Idle timer is a no-op.
func (t *Timer) Reset() {
	t.Remaining = t.Total
	t.State = TimerIdle
}

// IsRunning reports whether the timer is counting down.
func (t *Timer) IsRunning() bool {
	return t.State == TimerRunning
}
