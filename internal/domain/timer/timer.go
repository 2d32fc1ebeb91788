package timer

import (
	"errors"
	"sync"
	"time"
)

// Mode is the timer's current phase.
type Mode string

const (
	ModeIdle  Mode = "idle"
	ModeFocus Mode = "focus"
	ModeBreak Mode = "break"
)

const (
	// DefaultFocusMinutes is the starting focus session length.
	DefaultFocusMinutes = 25

	// BreakMinutes is the fixed break length.
	BreakMinutes = 5

	// MaxMinutes caps any configured session length.
	MaxMinutes = 180
)

var ErrTimerRunning = errors.New("timer is running")

// Snapshot is the externally visible timer state.
type Snapshot struct {
	Mode             Mode   `json:"mode"`
	Running          bool   `json:"running"`
	RemainingSeconds int    `json:"remainingSeconds"`
	DurationSeconds  int    `json:"durationSeconds"`
	AlarmRinging     bool   `json:"alarmRinging"`
	LinkedTaskID     string `json:"linkedTaskId,omitempty"`
	FocusSessions    int    `json:"focusSessions"`
}

// Timer is one user's Pomodoro state machine. A positive tick interval makes
// Start run a background ticker; an interval of zero leaves ticking to the
// caller, which is how tests drive the machine deterministically.
//
// A session completes on the tick that brings the remaining time to zero, so
// a 25 minute focus session takes exactly 1500 ticks.
type Timer struct {
	mu       sync.Mutex
	interval time.Duration

	mode          Mode
	running       bool
	remaining     int
	duration      int
	alarm         bool
	linkedTask    string
	focusSessions int

	stop chan struct{}
}

func NewTimer(interval time.Duration) *Timer {
	return &Timer{
		interval:  interval,
		mode:      ModeIdle,
		remaining: DefaultFocusMinutes * 60,
		duration:  DefaultFocusMinutes * 60,
	}
}

// Snapshot returns a copy of the current state.
func (t *Timer) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

func (t *Timer) snapshotLocked() Snapshot {
	return Snapshot{
		Mode:             t.mode,
		Running:          t.running,
		RemainingSeconds: t.remaining,
		DurationSeconds:  t.duration,
		AlarmRinging:     t.alarm,
		LinkedTaskID:     t.linkedTask,
		FocusSessions:    t.focusSessions,
	}
}

func clampMinutes(m int) int {
	if m < 0 {
		return 0
	}
	if m > MaxMinutes {
		return MaxMinutes
	}
	return m
}

// SetDuration replaces the session length while the timer is stopped and
// arms a focus session.
func (t *Timer) SetDuration(minutes int) (Snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return t.snapshotLocked(), ErrTimerRunning
	}
	minutes = clampMinutes(minutes)
	t.duration = minutes * 60
	t.remaining = t.duration
	t.mode = ModeFocus
	return t.snapshotLocked(), nil
}

// AdjustTime shifts the session length by signed minutes and seconds. The
// deltas are normalized into seconds and the result clamped to
// [0, MaxMinutes]. While running it is a no-op.
func (t *Timer) AdjustTime(deltaMinutes, deltaSeconds int) (Snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return t.snapshotLocked(), ErrTimerRunning
	}
	total := t.duration + deltaMinutes*60 + deltaSeconds
	if total < 0 {
		total = 0
	}
	if total > MaxMinutes*60 {
		total = MaxMinutes * 60
	}
	t.duration = total
	t.remaining = total
	if total > 0 {
		t.mode = ModeFocus
	} else {
		t.mode = ModeIdle
	}
	return t.snapshotLocked(), nil
}

// Start begins or resumes the countdown. An idle timer enters focus mode.
func (t *Timer) Start() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running || t.remaining == 0 {
		return t.snapshotLocked()
	}
	if t.mode == ModeIdle {
		t.mode = ModeFocus
	}
	t.alarm = false
	t.running = true
	t.startTickerLocked()
	return t.snapshotLocked()
}

// Pause halts the countdown without losing the remaining time.
func (t *Timer) Pause() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopTickerLocked()
	t.running = false
	return t.snapshotLocked()
}

// Reset returns to an idle timer at the configured duration. Any task link
// belongs to the abandoned session and is dropped with it.
func (t *Timer) Reset() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopTickerLocked()
	t.running = false
	t.mode = ModeIdle
	t.remaining = t.duration
	t.alarm = false
	t.linkedTask = ""
	return t.snapshotLocked()
}

// Tick advances a running timer by one second. The tick that reaches zero
// completes the session: the alarm rings, focus sessions are counted and the
// machine stops.
func (t *Timer) Tick() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tickLocked()
}

func (t *Timer) tickLocked() Snapshot {
	if !t.running || t.remaining == 0 {
		return t.snapshotLocked()
	}

	t.remaining--
	if t.remaining == 0 {
		t.stopTickerLocked()
		t.running = false
		t.alarm = true
		switch t.mode {
		case ModeFocus:
			t.focusSessions++
		case ModeBreak:
			// A finished break leaves the timer ready for the next session.
			t.mode = ModeIdle
			t.remaining = t.duration
		}
	}
	return t.snapshotLocked()
}

// StartBreak dismisses the alarm and runs a fixed-length break. The finished
// focus session's task link does not carry into the break.
func (t *Timer) StartBreak() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stopTickerLocked()
	t.mode = ModeBreak
	t.duration = BreakMinutes * 60
	t.remaining = t.duration
	t.alarm = false
	t.linkedTask = ""
	t.running = true
	t.startTickerLocked()
	return t.snapshotLocked()
}

// Snooze dismisses the alarm and runs a fresh focus session for the given
// number of minutes, which becomes the new configured length; non-positive
// values use the break length.
func (t *Timer) Snooze(minutes int) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.alarm {
		return t.snapshotLocked()
	}
	if minutes <= 0 {
		minutes = BreakMinutes
	}
	t.mode = ModeFocus
	t.alarm = false
	t.duration = clampMinutes(minutes) * 60
	t.remaining = t.duration
	t.running = true
	t.startTickerLocked()
	return t.snapshotLocked()
}

// DismissAlarm silences the alarm and nothing else; the finished session's
// state stays put until a reset, break or new duration.
func (t *Timer) DismissAlarm() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.alarm = false
	return t.snapshotLocked()
}

// SetLinkedTask associates the session with a task; an empty id unlinks.
func (t *Timer) SetLinkedTask(taskID string) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.linkedTask = taskID
	return t.snapshotLocked()
}

func (t *Timer) startTickerLocked() {
	if t.interval <= 0 || t.stop != nil {
		return
	}
	stop := make(chan struct{})
	t.stop = stop

	go func() {
		ticker := time.NewTicker(t.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				t.Tick()
			}
		}
	}()
}

func (t *Timer) stopTickerLocked() {
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
}
