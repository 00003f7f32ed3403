package score

import (
	"time"

	"github.com/google/uuid"
)

// IDGenerator produces opaque attempt identifiers unique within a session.
type IDGenerator func() string

// NewID returns a time-ordered UUIDv7, falling back to a random UUIDv4.
func NewID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Result is the outcome of recording one attempt.
type Result struct {
	Attempt   Attempt
	Board     ScoreBoard
	NewRecord bool
}

// Keeper records attempts, supplying ids and display timestamps.
type Keeper struct {
	ids IDGenerator
	now func() time.Time
}

// NewKeeper creates a keeper. Nil arguments select NewID and time.Now.
func NewKeeper(ids IDGenerator, now func() time.Time) *Keeper {
	if ids == nil {
		ids = NewID
	}
	if now == nil {
		now = time.Now
	}
	return &Keeper{ids: ids, now: now}
}

// Record scores a run of stopped seconds against target on the given board.
func (k *Keeper) Record(board ScoreBoard, target, stopped float64) Result {
	attempt, next, isNew := Record(board, target, stopped, k.ids(), k.now())
	return Result{
		Attempt:   attempt,
		Board:     next,
		NewRecord: isNew,
	}
}
