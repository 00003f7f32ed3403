package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/temporal-precision/internal/core"
	"github.com/vovakirdan/temporal-precision/internal/score"
	"github.com/vovakirdan/temporal-precision/internal/theme"
)

func TestHistoryRows(t *testing.T) {
	board := score.NewScoreBoard(10)
	at := time.Unix(0, 0)
	_, board, _ = score.Record(board, 3, 3.2, "a1", at)   // +0.2
	_, board, _ = score.Record(board, 3, 2.99, "a2", at)  // -0.01, best
	_, board, _ = score.Record(board, 3, 3.03, "a3", at)  // +0.03, close
	_, board, _ = score.Record(board, 3, 3.5, "a4", at)   // +0.5

	rows := historyRows(board, score.DefaultCloseThreshold)
	if len(rows) != 4 {
		t.Fatalf("len(rows) = %d, expected 4", len(rows))
	}

	expected := []struct {
		delta string
		mark  string
	}{
		{"+0.5000s", ""},
		{"+0.0300s", markClose},
		{"-0.0100s", markBest},
		{"+0.2000s", ""},
	}
	for i, e := range expected {
		if rows[i][3] != e.delta {
			t.Errorf("row %d delta = %q, expected %q", i, rows[i][3], e.delta)
		}
		if rows[i][4] != e.mark {
			t.Errorf("row %d mark = %q, expected %q", i, rows[i][4], e.mark)
		}
	}
	if rows[0][0] != "1" || rows[0][2] != "3.5000s" {
		t.Errorf("row 0 = %v", rows[0])
	}
}

func TestFormatBest(t *testing.T) {
	board := score.NewScoreBoard(3)
	if got := formatBest(board); got != "---" {
		t.Errorf("formatBest(empty) = %q, expected ---", got)
	}

	_, board, _ = score.Record(board, 3, 2.5, "a1", time.Unix(0, 0))
	if got := formatBest(board); got != "-0.5000s" {
		t.Errorf("formatBest() = %q, expected -0.5000s", got)
	}
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorPrimary)
	s.DrawText(2, 0, "cd")
	s.DrawText(0, 1, "日x")

	out := RenderScreen(s, NewPalette(theme.At(0)))
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("rendered %d lines, expected 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "cd") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.Contains(lines[1], "日x") {
		t.Errorf("wide rune placeholder leaked into output: %q", lines[1])
	}
}

func TestPaletteFallback(t *testing.T) {
	p := NewPalette(theme.At(0))
	if p.Style(core.Color(200)).Render("x") != p.Style(core.ColorDefault).Render("x") {
		t.Error("unknown slot should fall back to the default style")
	}
}
