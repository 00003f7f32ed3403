// Package timing implements the run/stop measurement lifecycle.
// Elapsed time is always recomputed as now minus the start instant,
// never accumulated from frame ticks, so sampling cadence cannot drift.
package timing

import (
	"time"

	"github.com/vovakirdan/temporal-precision/internal/clock"
)

// Engine measures a single run against a monotonic clock.
// It is not safe for concurrent use; the game controller serializes access.
type Engine struct {
	clock   clock.Clock
	start   time.Duration // Monotonic start instant of the live session
	last    time.Duration // Largest value handed out for the live session
	final   time.Duration // Frozen elapsed after Stop
	running bool
	frozen  bool
}

// NewEngine creates an idle engine reading the given clock.
func NewEngine(c clock.Clock) *Engine {
	return &Engine{clock: c}
}

// Start begins a session at the current instant.
// Returns false without touching state if a session is live or a stopped
// value has not been cleared with Reset.
func (e *Engine) Start() bool {
	if e.running || e.frozen {
		return false
	}
	e.start = e.clock.Now()
	e.last = 0
	e.running = true
	return true
}

// Sample returns now minus the start instant.
// The result is never negative and never smaller than a previous sample of
// the same session. Returns false when no session is running.
func (e *Engine) Sample() (time.Duration, bool) {
	if !e.running {
		return 0, false
	}
	return e.elapsed(), true
}

// Stop freezes the elapsed time at the moment of the call and ends the session.
// Returns false when no session is running.
func (e *Engine) Stop() (time.Duration, bool) {
	if !e.running {
		return 0, false
	}
	e.final = e.elapsed()
	e.running = false
	e.frozen = true
	return e.final, true
}

// Reset discards any live session and frozen value.
func (e *Engine) Reset() {
	e.start = 0
	e.last = 0
	e.final = 0
	e.running = false
	e.frozen = false
}

// Running reports whether a session is live.
func (e *Engine) Running() bool {
	return e.running
}

// Final returns the frozen elapsed time of the last stopped session.
func (e *Engine) Final() (time.Duration, bool) {
	return e.final, e.frozen
}

// StartInstant returns the monotonic start of the live or frozen session.
func (e *Engine) StartInstant() time.Duration {
	return e.start
}

func (e *Engine) elapsed() time.Duration {
	d := e.clock.Now() - e.start
	if d < e.last {
		d = e.last
	}
	e.last = d
	return d
}
