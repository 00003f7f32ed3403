// Package clock provides the time sources the game core consumes: a monotonic
// "now", one-shot deferred callbacks and a per-frame callback.
// The core never reads wall-clock time for measurement, so system clock
// adjustments cannot skew elapsed values.
package clock

import (
	"sync"
	"time"
)

// Clock is a monotonic time source.
// Now returns the time elapsed since an arbitrary, fixed epoch.
type Clock interface {
	Now() time.Duration
}

// Timer is a handle to a pending one-shot callback.
type Timer interface {
	// Stop cancels the callback. Returns false if it already fired or was stopped.
	Stop() bool
}

// Scheduler runs a callback once after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

// FrameScheduler invokes a callback once per display frame until stopped.
// Callers must not assume a fixed interval between invocations.
type FrameScheduler interface {
	StartFrames(f func()) (stop func())
}

// DefaultFrameRate is the intended sampling cadence (frames per second).
const DefaultFrameRate = 60

// systemClock reads Go's monotonic clock.
type systemClock struct {
	epoch time.Time
}

// System returns a Clock backed by the runtime's monotonic clock.
func System() Clock {
	return systemClock{epoch: time.Now()}
}

// Now returns the monotonic time since the clock was created.
func (c systemClock) Now() time.Duration {
	return time.Since(c.epoch)
}

// systemScheduler wraps time.AfterFunc.
type systemScheduler struct{}

// SystemScheduler returns a Scheduler backed by time.AfterFunc.
// Callbacks run on their own goroutine.
func SystemScheduler() Scheduler {
	return systemScheduler{}
}

// AfterFunc schedules f to run after d.
func (systemScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Ticker is a FrameScheduler driven by a time.Ticker goroutine.
type Ticker struct {
	interval time.Duration
}

// NewTicker creates a frame scheduler firing at the given rate.
// Non-positive rates fall back to DefaultFrameRate.
func NewTicker(rate int) *Ticker {
	if rate <= 0 {
		rate = DefaultFrameRate
	}
	return &Ticker{interval: time.Second / time.Duration(rate)}
}

// Interval returns the nominal time between frames.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// StartFrames runs f on every tick until stop is called.
// Stop does not wait for an in-flight callback; callers guard against
// a callback that was already running when stop returned.
func (t *Ticker) StartFrames(f func()) (stop func()) {
	ticker := time.NewTicker(t.interval)
	done := make(chan struct{})
	var once sync.Once

	go func() {
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				select {
				case <-done:
					return
				default:
				}
				f()
			}
		}
	}()

	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}
