package timer

import (
	"sync"
	"time"
)

// Manager owns one timer per user, created lazily. Timers are in-memory
// only; a restart loses running sessions.
type Manager struct {
	mu       sync.Mutex
	interval time.Duration
	timers   map[string]*Timer
}

// NewManager builds a manager whose timers tick at the given interval. A
// zero interval produces manually driven timers.
func NewManager(interval time.Duration) *Manager {
	return &Manager{
		interval: interval,
		timers:   make(map[string]*Timer),
	}
}

// Timer returns the user's timer, creating it on first use.
func (m *Manager) Timer(userID string) *Timer {
	m.mu.Lock()
	defer m.mu.Unlock()

	t, ok := m.timers[userID]
	if !ok {
		t = NewTimer(m.interval)
		m.timers[userID] = t
	}
	return t
}

// Shutdown pauses every timer so no ticker goroutines outlive the manager.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range m.timers {
		t.Pause()
	}
}
