package tui

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/temporal-precision/internal/clock"
	"github.com/vovakirdan/temporal-precision/internal/game"
	"github.com/vovakirdan/temporal-precision/internal/score"
	"github.com/vovakirdan/temporal-precision/internal/theme"
)

var (
	spaceKey = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enterKey = tea.KeyMsg{Type: tea.KeyEnter}
	escKey   = tea.KeyMsg{Type: tea.KeyEscape}
	click    = tea.MouseMsg{X: 3, Y: 4, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
)

func newTestModel(t *testing.T) (Model, *clock.Fake) {
	t.Helper()

	fc := clock.NewFake(0)
	n := 0
	ids := func() string {
		n++
		return fmt.Sprintf("a%d", n)
	}

	ctrl, err := game.New(game.Options{
		ThemeCount: theme.Count(),
		Clock:      fc,
		Scheduler:  fc,
		Frames:     fc,
		Keeper:     score.NewKeeper(ids, func() time.Time { return time.Unix(0, 0) }),
	})
	if err != nil {
		t.Fatalf("game.New() failed: %v", err)
	}
	t.Cleanup(ctrl.Close)

	return NewModel(ctrl, DefaultOptions()), fc
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	for _, r := range text {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func TestKeyboardAndMouseShareTrigger(t *testing.T) {
	m, fc := newTestModel(t)

	m, _ = update(t, m, spaceKey)
	if m.Snapshot().Phase != game.PhaseRunning {
		t.Fatalf("space: phase = %v, expected Running", m.Snapshot().Phase)
	}

	fc.Advance(3002100 * time.Microsecond)
	m, _ = update(t, m, click)
	snap := m.Snapshot()
	if snap.Phase != game.PhaseReviewing {
		t.Fatalf("click: phase = %v, expected Reviewing", snap.Phase)
	}
	if !snap.HasLast || math.Abs(snap.Last.Stopped-3.0021) > 1e-9 {
		t.Errorf("click: last attempt = %+v", snap.Last)
	}
	if !strings.Contains(m.Notice(), "new record") {
		t.Errorf("notice = %q, expected new record", m.Notice())
	}

	m, _ = update(t, m, enterKey)
	if m.Snapshot().Phase != game.PhaseIdle {
		t.Errorf("enter: phase = %v, expected Idle", m.Snapshot().Phase)
	}
	if m.Snapshot().Board.Len() != 1 {
		t.Errorf("board length = %d, expected 1", m.Snapshot().Board.Len())
	}
}

func TestNonLeftClickIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	if m.Snapshot().Phase != game.PhaseIdle {
		t.Errorf("right click changed phase to %v", m.Snapshot().Phase)
	}
}

func TestPresetKeys(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, runeKey('1'))
	if m.Snapshot().Target != 1 {
		t.Errorf("preset 1: target = %v, expected 1", m.Snapshot().Target)
	}
	m, _ = update(t, m, runeKey('4'))
	if m.Snapshot().Target != 10 {
		t.Errorf("preset 4: target = %v, expected 10", m.Snapshot().Target)
	}

	m, _ = update(t, m, spaceKey)
	m, _ = update(t, m, runeKey('2'))
	if m.Snapshot().Target != 10 {
		t.Errorf("preset while running changed target to %v", m.Snapshot().Target)
	}
	if !strings.Contains(m.Notice(), "before a run") {
		t.Errorf("notice = %q, expected lock rejection", m.Notice())
	}
}

func TestEditTarget(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, runeKey('e'))
	if !m.Editing() {
		t.Fatal("e should open the target editor")
	}

	// Trigger and quit keys are text while editing
	m = typeText(t, m, "1.2345")
	if m.Snapshot().Phase != game.PhaseIdle {
		t.Fatal("typing should not trigger the game")
	}

	m, _ = update(t, m, enterKey)
	if m.Editing() {
		t.Error("enter should close the editor")
	}
	if m.Snapshot().Target != 1.2345 {
		t.Errorf("target = %v, expected 1.2345", m.Snapshot().Target)
	}
}

func TestEditTargetRejections(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, runeKey('e'))
	m = typeText(t, m, "5000")
	m, _ = update(t, m, enterKey)
	if !m.Editing() {
		t.Error("out-of-range value should keep the editor open")
	}
	if m.Snapshot().Target != game.DefaultTarget {
		t.Errorf("target changed to %v", m.Snapshot().Target)
	}
	if !strings.Contains(m.Notice(), "between 0 and 3600") {
		t.Errorf("notice = %q", m.Notice())
	}

	m, _ = update(t, m, escKey)
	if m.Editing() {
		t.Error("esc should close the editor")
	}

	m, _ = update(t, m, runeKey('e'))
	m = typeText(t, m, "abc")
	m, _ = update(t, m, enterKey)
	if !strings.Contains(m.Notice(), "not a number") {
		t.Errorf("notice = %q", m.Notice())
	}
}

func TestEditBlockedOutsideIdle(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, spaceKey)
	m, _ = update(t, m, runeKey('e'))
	if m.Editing() {
		t.Error("editor should not open while running")
	}
}

func TestSnapshotMsgUpdatesModel(t *testing.T) {
	m, fc := newTestModel(t)
	m, _ = update(t, m, spaceKey)

	fc.Advance(1500 * time.Millisecond)
	fc.Frame()

	snap := m.ctrl.Snapshot()
	m, cmd := update(t, m, SnapshotMsg(snap))
	if m.Snapshot().Elapsed != 1500*time.Millisecond {
		t.Errorf("elapsed = %v, expected 1.5s", m.Snapshot().Elapsed)
	}
	if cmd == nil {
		t.Error("snapshot handling should keep waiting for the next one")
	}
	if !strings.Contains(m.View(), "running") {
		t.Error("view should show the running status")
	}
}

func TestWaitForSnapshot(t *testing.T) {
	m, _ := newTestModel(t)

	// Subscribing delivers the current state immediately
	msg := m.Init()()
	snap, ok := msg.(SnapshotMsg)
	if !ok {
		t.Fatalf("Init command returned %T, expected SnapshotMsg", msg)
	}
	if snap.Phase != game.PhaseIdle {
		t.Errorf("initial snapshot phase = %v", snap.Phase)
	}

	m.ctrl.Close()
	if _, ok := waitForSnapshot(m.sub)().(subscriptionClosedMsg); !ok {
		t.Error("closed controller should end the subscription")
	}
}

func TestNoticeExpires(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, runeKey('2'))
	if m.Notice() == "" {
		t.Fatal("preset should set a notice")
	}

	m, _ = update(t, m, noticeExpiredMsg{seq: m.noticeSeq - 1})
	if m.Notice() == "" {
		t.Error("stale expiry should not clear a newer notice")
	}
	m, _ = update(t, m, noticeExpiredMsg{seq: m.noticeSeq})
	if m.Notice() != "" {
		t.Errorf("notice = %q, expected cleared", m.Notice())
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m, cmd := update(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestViewContents(t *testing.T) {
	m, fc := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 90, Height: 30})

	view := m.View()
	for _, want := range []string{"TEMPORAL PRECISION", "TARGET 3.0000s", "BEST ---", "No attempts yet", "Sentinel Red"} {
		if !strings.Contains(view, want) {
			t.Errorf("idle view missing %q", want)
		}
	}

	m, _ = update(t, m, spaceKey)
	fc.Advance(2500 * time.Millisecond)
	m, _ = update(t, m, spaceKey)

	view = m.View()
	for _, want := range []string{"-0.5000s", "Deep Blue", "best"} {
		if !strings.Contains(view, want) {
			t.Errorf("review view missing %q", want)
		}
	}
}

func TestHelpToggle(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, runeKey('?'))
	if !m.help.ShowAll {
		t.Error("? should show full help")
	}
	if !strings.Contains(m.View(), "custom target") {
		t.Error("full help should list the edit key")
	}
	m, _ = update(t, m, runeKey('?'))
	if m.help.ShowAll {
		t.Error("? should toggle full help off")
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		raw      string
		expected float64
		ok       bool
	}{
		{"1.5", 1.5, true},
		{" 2s ", 2, true},
		{"10", 10, true},
		{"", 0, false},
		{"s", 0, false},
		{"abc", 0, false},
	}

	for _, tc := range tests {
		v, err := parseTarget(tc.raw)
		if (err == nil) != tc.ok {
			t.Errorf("parseTarget(%q) error = %v, expected ok=%v", tc.raw, err, tc.ok)
			continue
		}
		if tc.ok && v != tc.expected {
			t.Errorf("parseTarget(%q) = %v, expected %v", tc.raw, v, tc.expected)
		}
	}
}
