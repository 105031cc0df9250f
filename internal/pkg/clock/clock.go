// Package clock provides injectable time for the progression stores.
//
// Streak continuity and battle speed bonuses are both functions of the
// current wall clock, so every component that reads time takes a Clock.
package clock

import (
	"sync"
	"time"
)

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// Real implements Clock using the system time.
type Real struct{}

// Now returns the current system time.
func (c *Real) Now() time.Time {
	return time.Now()
}

// New returns a new real clock.
func New() Clock {
	return &Real{}
}

// Fake is a settable clock for tests. The zero value starts at the zero
// time; use SetNow before first use.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

// NewFake returns a fake clock pinned to the given time.
func NewFake(now time.Time) *Fake {
	return &Fake{now: now}
}

// Now returns the fake's current time.
func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

// SetNow pins the fake to the given time.
func (f *Fake) SetNow(now time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

// Advance moves the fake forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}
