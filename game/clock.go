package game

import (
	"time"
)

// Clock is the time source a session ticks against
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a plain function to Clock
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock
var SystemClock Clock = ClockFunc(time.Now)

// Ticker turns successive clock readings into per-tick deltas. Elapsed time
// only grows, and a single delta never exceeds MaxTickDelta.
type Ticker struct {
	clock   Clock
	last    time.Time
	elapsed float64
	started bool
}

// NewTicker creates a ticker reading from clock, or SystemClock if nil
func NewTicker(clock Clock) *Ticker {
	if clock == nil {
		clock = SystemClock
	}
	return &Ticker{clock: clock}
}

// Tick returns the capped delta in seconds since the previous call. The
// first call returns zero.
func (t *Ticker) Tick() float64 {
	now := t.clock.Now()
	if !t.started {
		t.started = true
		t.last = now
		return 0
	}

	dt := now.Sub(t.last).Seconds()
	t.last = now
	dt = ClampDelta(dt)
	t.elapsed += dt
	return dt
}

// Elapsed is the sum of every delta returned so far
func (t *Ticker) Elapsed() float64 {
	return t.elapsed
}

// ClampDelta bounds a raw frame delta to [0, MaxTickDelta]
func ClampDelta(dt float64) float64 {
	if dt < 0 {
		return 0
	}
	if dt > MaxTickDelta {
		return MaxTickDelta
	}
	return dt
}
