package mocks

import (
	"time"

	"github.com/courtshot/courtshot/internal/dependencies/clock"
)

// MockClock is a settable clock for tests. CurrentTime is exported so
// assertions can read the seeded time directly.
type MockClock struct {
	CurrentTime time.Time
}

var _ clock.Clock = (*MockClock)(nil)

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

func (c *MockClock) Now() time.Time {
	return c.CurrentTime
}

func (c *MockClock) Since(t time.Time) time.Duration {
	return c.CurrentTime.Sub(t)
}

// Advance moves the clock forward.
func (c *MockClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}

// Set jumps the clock to an absolute time.
func (c *MockClock) Set(t time.Time) {
	c.CurrentTime = t
}
