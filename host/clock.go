package host

import (
	"sync"
	"sync/atomic"
	"time"
)

// TimeProvider supplies wall time
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the real monotonic clock
type MonotonicTimeProvider struct{}

// Now returns time.Now
func (MonotonicTimeProvider) Now() time.Time { return time.Now() }

// MockTimeProvider is a controllable time source for tests
type MockTimeProvider struct {
	mu  sync.RWMutex
	now time.Time
}

// NewMockTimeProvider starts at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

// Now returns the mocked time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

// Advance moves the mocked time forward
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// PausableClock is game time: real time minus time spent paused
// Steps stop while paused and the partial-step fraction freezes with it
type PausableClock struct {
	mu sync.RWMutex

	src        TimeProvider
	start      time.Time
	isPaused   atomic.Bool
	pauseStart time.Time
	paused     time.Duration
}

// NewPausableClock creates a clock over src; nil uses the monotonic clock
func NewPausableClock(src TimeProvider) *PausableClock {
	if src == nil {
		src = MonotonicTimeProvider{}
	}
	return &PausableClock{src: src, start: src.Now()}
}

// Now returns current game time, frozen while paused
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.isPaused.Load() {
		return pc.start.Add(pc.pauseStart.Sub(pc.start) - pc.paused)
	}
	return pc.start.Add(pc.src.Now().Sub(pc.start) - pc.paused)
}

// Pause stops game time
func (pc *PausableClock) Pause() {
	if pc.isPaused.CompareAndSwap(false, true) {
		pc.mu.Lock()
		pc.pauseStart = pc.src.Now()
		pc.mu.Unlock()
	}
}

// Resume continues game time, excluding the paused span
func (pc *PausableClock) Resume() {
	if pc.isPaused.CompareAndSwap(true, false) {
		pc.mu.Lock()
		if !pc.pauseStart.IsZero() {
			pc.paused += pc.src.Now().Sub(pc.pauseStart)
			pc.pauseStart = time.Time{}
		}
		pc.mu.Unlock()
	}
}

// IsPaused reports the pause state
func (pc *PausableClock) IsPaused() bool {
	return pc.isPaused.Load()
}

// TotalPaused returns cumulative pause time including a pause in progress
func (pc *PausableClock) TotalPaused() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.paused
	if pc.isPaused.Load() && !pc.pauseStart.IsZero() {
		total += pc.src.Now().Sub(pc.pauseStart)
	}
	return total
}
