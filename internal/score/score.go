// Package score computes the result of a stopped run and keeps the session's
// bounded attempt history together with the cumulative best result.
package score

import (
	"math"
	"time"
)

// DefaultMaxHistory is the number of attempts kept for display.
const DefaultMaxHistory = 10

// Attempt is the immutable record of one completed run.
type Attempt struct {
	ID        string    // Opaque unique token
	Target    float64   // Target time in seconds
	Stopped   float64   // Measured time in seconds
	Delta     float64   // Stopped - Target; negative = early, positive = late
	Timestamp time.Time // Wall-clock capture time, display only
}

// AbsDelta returns the magnitude of the deviation.
func (a Attempt) AbsDelta() float64 {
	return math.Abs(a.Delta)
}

// Early reports whether the run was stopped before the target.
func (a Attempt) Early() bool {
	return a.Delta < 0
}

// Best identifies the attempt holding the session record.
type Best struct {
	AbsDelta  float64
	Delta     float64
	AttemptID string
}

// ScoreBoard holds the bounded recent history (most recent first) and the
// best result ever recorded this session, including evicted attempts.
// The zero value is an empty board with DefaultMaxHistory capacity.
// A ScoreBoard is a value: Record returns a new one and never mutates its input.
type ScoreBoard struct {
	attempts []Attempt
	best     *Best
	limit    int
}

// NewScoreBoard creates an empty board keeping at most limit attempts.
// Non-positive limits fall back to DefaultMaxHistory.
func NewScoreBoard(limit int) ScoreBoard {
	if limit <= 0 {
		limit = DefaultMaxHistory
	}
	return ScoreBoard{limit: limit}
}

// Limit returns the history capacity.
func (b ScoreBoard) Limit() int {
	if b.limit <= 0 {
		return DefaultMaxHistory
	}
	return b.limit
}

// Len returns the number of attempts currently in the history.
func (b ScoreBoard) Len() int {
	return len(b.attempts)
}

// Attempts returns a copy of the history, most recent first.
func (b ScoreBoard) Attempts() []Attempt {
	out := make([]Attempt, len(b.attempts))
	copy(out, b.attempts)
	return out
}

// Latest returns the most recent attempt.
func (b ScoreBoard) Latest() (Attempt, bool) {
	if len(b.attempts) == 0 {
		return Attempt{}, false
	}
	return b.attempts[0], true
}

// Best returns the session record, if any attempt has been recorded.
func (b ScoreBoard) Best() (Best, bool) {
	if b.best == nil {
		return Best{}, false
	}
	return *b.best, true
}

// BestAbsDelta returns the smallest |delta| recorded this session.
func (b ScoreBoard) BestAbsDelta() (float64, bool) {
	if b.best == nil {
		return 0, false
	}
	return b.best.AbsDelta, true
}

// BestDelta returns the signed delta of the record-holding attempt.
func (b ScoreBoard) BestDelta() (float64, bool) {
	if b.best == nil {
		return 0, false
	}
	return b.best.Delta, true
}

// Record scores a stopped run against the board.
// Only a strictly smaller |delta| replaces the record, so on ties the first
// achiever keeps it. The new attempt is prepended and the tail is dropped
// beyond the board's limit. The input board is left untouched.
func Record(board ScoreBoard, target, stopped float64, id string, at time.Time) (Attempt, ScoreBoard, bool) {
	delta := stopped - target
	attempt := Attempt{
		ID:        id,
		Target:    target,
		Stopped:   stopped,
		Delta:     delta,
		Timestamp: at,
	}
	abs := math.Abs(delta)

	limit := board.Limit()
	n := len(board.attempts) + 1
	if n > limit {
		n = limit
	}
	attempts := make([]Attempt, n)
	attempts[0] = attempt
	copy(attempts[1:], board.attempts)

	next := ScoreBoard{
		attempts: attempts,
		best:     board.best,
		limit:    limit,
	}

	isNewRecord := board.best == nil || abs < board.best.AbsDelta
	if isNewRecord {
		next.best = &Best{AbsDelta: abs, Delta: delta, AttemptID: id}
	}

	return attempt, next, isNewRecord
}
