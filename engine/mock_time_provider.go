package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a manual clock for throttle tests. Sleep never blocks:
// it moves the clock forward and remembers the requested duration.
type MockTimeProvider struct {
	mu     sync.Mutex
	now    time.Time
	sleeps []time.Duration
}

// NewMockTimeProvider starts the clock at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

// Now implements TimeProvider
func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance simulates work taking d
func (m *MockTimeProvider) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// Sleep implements TimeProvider
func (m *MockTimeProvider) Sleep(d time.Duration) {
	m.mu.Lock()
	m.sleeps = append(m.sleeps, d)
	m.now = m.now.Add(d)
	m.mu.Unlock()
}

// Sleeps returns the recorded sleeps in call order
func (m *MockTimeProvider) Sleeps() []time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]time.Duration(nil), m.sleeps...)
}
