package core

import "testing"

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionNone, "None"},
		{ActionTrigger, "Trigger"},
		{ActionPreset, "Preset"},
		{ActionEdit, "Edit"},
		{ActionQuit, "Quit"},
		{Action(99), "Unknown"},
	}

	for _, tc := range tests {
		if got := tc.action.String(); got != tc.expected {
			t.Errorf("Action(%d).String() = %q, expected %q", tc.action, got, tc.expected)
		}
	}
}

func TestColorString(t *testing.T) {
	if ColorPrimary.String() != "Primary" || ColorCelebrate.String() != "Celebrate" {
		t.Error("unexpected color slot names")
	}
	if Color(200).String() != "Unknown" {
		t.Error("unknown slot should stringify as Unknown")
	}
}
