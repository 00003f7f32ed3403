package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestMinMax(t *testing.T) {
	if Min(5, 10) != 5 {
		t.Error("Min(5, 10) should be 5")
	}
	if Min(10, 5) != 5 {
		t.Error("Min(10, 5) should be 5")
	}
	if Max(5, 10) != 10 {
		t.Error("Max(5, 10) should be 10")
	}
	if Max(10, 5) != 10 {
		t.Error("Max(10, 5) should be 10")
	}
}

func TestRectInsetAndEmpty(t *testing.T) {
	r := NewRect(0, 0, 10, 6).Inset(1)
	if r != NewRect(1, 1, 8, 4) {
		t.Errorf("Inset(1) = %+v, expected {1 1 8 4}", r)
	}
	if r.Empty() {
		t.Error("8x4 rect should not be empty")
	}

	small := NewRect(0, 0, 2, 2).Inset(3)
	if !small.Empty() {
		t.Errorf("over-inset rect should be empty, got %+v", small)
	}
}

func TestCenteredIn(t *testing.T) {
	tests := []struct {
		name     string
		outer    Rect
		w, h     int
		expected Rect
	}{
		{"fits", NewRect(0, 0, 80, 24), 20, 4, NewRect(30, 10, 20, 4)},
		{"offset outer", NewRect(10, 5, 20, 10), 10, 2, NewRect(15, 9, 10, 2)},
		{"clamped", NewRect(0, 0, 10, 5), 40, 20, NewRect(0, 0, 10, 5)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := CenteredIn(tc.outer, tc.w, tc.h)
			if result != tc.expected {
				t.Errorf("CenteredIn() = %+v, expected %+v", result, tc.expected)
			}
		})
	}
}
