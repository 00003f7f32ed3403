package score

import (
	"fmt"
	"math"
	"testing"
	"time"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func seqIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("a%d", n)
	}
}

func TestRecordDeltaSign(t *testing.T) {
	tests := []struct {
		name    string
		target  float64
		stopped float64
		delta   float64
		early   bool
	}{
		{"stopped early", 3.0, 2.5, -0.5, true},
		{"stopped late", 3.0, 3.2, 0.2, false},
		{"exact", 1.0, 1.0, 0.0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, _, _ := Record(NewScoreBoard(10), tc.target, tc.stopped, "x", time.Time{})
			if !approx(a.Delta, tc.delta) {
				t.Errorf("Delta = %v, expected %v", a.Delta, tc.delta)
			}
			if a.Early() != tc.early {
				t.Errorf("Early() = %v, expected %v", a.Early(), tc.early)
			}
			if !approx(a.AbsDelta(), math.Abs(tc.delta)) {
				t.Errorf("AbsDelta() = %v, expected %v", a.AbsDelta(), math.Abs(tc.delta))
			}
		})
	}
}

func TestRecordFirstAttemptIsRecord(t *testing.T) {
	board := NewScoreBoard(10)
	if _, ok := board.Best(); ok {
		t.Fatal("empty board should have no best")
	}

	a, next, isNew := Record(board, 3.0, 3.5, "first", time.Time{})
	if !isNew {
		t.Error("first attempt should be a new record")
	}
	best, ok := next.Best()
	if !ok {
		t.Fatal("board should have a best after first attempt")
	}
	if best.AttemptID != a.ID || !approx(best.Delta, 0.5) || !approx(best.AbsDelta, 0.5) {
		t.Errorf("Best() = %+v, expected attempt %q with delta 0.5", best, a.ID)
	}
}

func TestRecordStrictness(t *testing.T) {
	board := NewScoreBoard(10)
	// Establish bestAbsDelta = 0.25 with a late stop
	_, board, _ = Record(board, 1.0, 1.25, "late", time.Time{})

	// Exact tie with opposite sign must not replace the record
	_, tied, isNew := Record(board, 1.0, 0.75, "early", time.Time{})
	if isNew {
		t.Error("tie should not be a new record")
	}
	delta, _ := tied.BestDelta()
	if !approx(delta, 0.25) {
		t.Errorf("BestDelta() after tie = %v, expected +0.25 (first achiever)", delta)
	}

	// Strictly smaller magnitude replaces it
	_, better, isNew := Record(tied, 1.0, 0.7500001, "closer", time.Time{})
	if !isNew {
		t.Error("strictly smaller |delta| should be a new record")
	}
	best, _ := better.Best()
	if best.AttemptID != "closer" || best.Delta >= 0 {
		t.Errorf("Best() = %+v, expected negative delta from %q", best, "closer")
	}
}

func TestRecordWorseAttemptKeepsBest(t *testing.T) {
	board := NewScoreBoard(10)
	_, board, _ = Record(board, 3.0, 3.01, "good", time.Time{})
	_, board, isNew := Record(board, 3.0, 4.0, "bad", time.Time{})

	if isNew {
		t.Error("worse attempt should not be a record")
	}
	abs, _ := board.BestAbsDelta()
	if !approx(abs, 0.01) {
		t.Errorf("BestAbsDelta() = %v, expected 0.01", abs)
	}
}

func TestRecordHistoryBound(t *testing.T) {
	const limit = 10
	const extra = 5
	board := NewScoreBoard(limit)
	ids := seqIDs()

	// The global best is the very first attempt, which will be evicted.
	stops := []float64{3.0001}
	for i := 1; i < limit+extra; i++ {
		stops = append(stops, 3.0+float64(i)*0.1)
	}
	for _, s := range stops {
		_, board, _ = Record(board, 3.0, s, ids(), time.Time{})
	}

	if board.Len() != limit {
		t.Fatalf("Len() = %d, expected %d", board.Len(), limit)
	}

	attempts := board.Attempts()
	for i, a := range attempts {
		expectedID := fmt.Sprintf("a%d", limit+extra-i)
		if a.ID != expectedID {
			t.Errorf("attempts[%d].ID = %q, expected %q", i, a.ID, expectedID)
		}
	}

	best, ok := board.Best()
	if !ok {
		t.Fatal("board should have a best")
	}
	if best.AttemptID != "a1" || !approx(best.AbsDelta, 0.0001) {
		t.Errorf("Best() = %+v, expected evicted attempt a1 with |delta| 0.0001", best)
	}
}

func TestRecordDoesNotMutateInput(t *testing.T) {
	board := NewScoreBoard(2)
	_, board, _ = Record(board, 1.0, 1.1, "one", time.Time{})
	_, board, _ = Record(board, 1.0, 1.2, "two", time.Time{})
	before := board.Attempts()

	_, next, _ := Record(board, 1.0, 1.0, "three", time.Time{})

	after := board.Attempts()
	if len(after) != len(before) {
		t.Fatalf("input board length changed: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("input attempt %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}
	if best, _ := board.Best(); best.AttemptID != "one" {
		t.Errorf("input board best changed to %q", best.AttemptID)
	}
	if latest, _ := next.Latest(); latest.ID != "three" {
		t.Errorf("Latest() = %q, expected %q", latest.ID, "three")
	}
}

func TestAttemptsReturnsCopy(t *testing.T) {
	_, board, _ := Record(NewScoreBoard(5), 1.0, 1.5, "orig", time.Time{})

	attempts := board.Attempts()
	attempts[0].Delta = 99

	if latest, _ := board.Latest(); !approx(latest.Delta, 0.5) {
		t.Errorf("modifying returned slice changed board: delta = %v", latest.Delta)
	}
}

func TestZeroValueBoard(t *testing.T) {
	var board ScoreBoard
	if board.Limit() != DefaultMaxHistory {
		t.Errorf("zero board Limit() = %d, expected %d", board.Limit(), DefaultMaxHistory)
	}
	_, next, isNew := Record(board, 2.0, 2.0, "z", time.Time{})
	if !isNew || next.Len() != 1 {
		t.Errorf("Record on zero board: isNew=%v Len=%d", isNew, next.Len())
	}
}

func TestKeeperUniqueIDs(t *testing.T) {
	k := NewKeeper(nil, nil)
	board := NewScoreBoard(100)
	seen := make(map[string]bool)

	for i := 0; i < 100; i++ {
		res := k.Record(board, 1.0, 1.0+float64(i)*0.01)
		if res.Attempt.ID == "" {
			t.Fatal("empty attempt id")
		}
		if seen[res.Attempt.ID] {
			t.Fatalf("duplicate attempt id %q", res.Attempt.ID)
		}
		seen[res.Attempt.ID] = true
		board = res.Board
	}
}

func TestKeeperTimestamp(t *testing.T) {
	fixed := time.Date(2049, 1, 2, 3, 4, 5, 0, time.UTC)
	k := NewKeeper(seqIDs(), func() time.Time { return fixed })

	res := k.Record(NewScoreBoard(10), 3.0, 3.0021)
	if !res.Attempt.Timestamp.Equal(fixed) {
		t.Errorf("Timestamp = %v, expected %v", res.Attempt.Timestamp, fixed)
	}
	if res.Attempt.ID != "a1" {
		t.Errorf("ID = %q, expected a1", res.Attempt.ID)
	}
	if !res.NewRecord {
		t.Error("first attempt should be a record")
	}
}

func TestFormatDelta(t *testing.T) {
	tests := []struct {
		delta    float64
		expected string
	}{
		{0.0021, "+0.0021s"},
		{-0.5, "-0.5000s"},
		{0, "+0.0000s"},
		{1.23456, "+1.2346s"},
	}
	for _, tc := range tests {
		if got := FormatDelta(tc.delta); got != tc.expected {
			t.Errorf("FormatDelta(%v) = %q, expected %q", tc.delta, got, tc.expected)
		}
	}
}

func TestFormatSeconds(t *testing.T) {
	if got := FormatSeconds(3.0021); got != "3.0021s" {
		t.Errorf("FormatSeconds(3.0021) = %q", got)
	}
}

func TestIsClose(t *testing.T) {
	if !IsClose(0.049, DefaultCloseThreshold) {
		t.Error("0.049 should be close")
	}
	if !IsClose(-0.049, DefaultCloseThreshold) {
		t.Error("-0.049 should be close")
	}
	if IsClose(0.05, DefaultCloseThreshold) {
		t.Error("0.05 should not be close")
	}
}
