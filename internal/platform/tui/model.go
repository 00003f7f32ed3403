package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/temporal-precision/internal/core"
	"github.com/vovakirdan/temporal-precision/internal/game"
	"github.com/vovakirdan/temporal-precision/internal/score"
	"github.com/vovakirdan/temporal-precision/internal/theme"
)

// Layout constants.
const (
	panelHeight   = 16 // Framed timer panel
	historyHeight = 6  // Visible history rows
	minPanelWidth = 40
)

// Options configures the timer screen.
type Options struct {
	Runtime        core.RuntimeConfig
	Presets        []float64 // Quick-select targets bound to keys 1-9
	CloseThreshold float64   // |delta| below this is marked close
}

// DefaultOptions returns the default screen options.
func DefaultOptions() Options {
	return Options{
		Runtime:        core.DefaultConfig(),
		Presets:        []float64{1, 3, 5, 10},
		CloseThreshold: score.DefaultCloseThreshold,
	}
}

// Model is the Bubble Tea model for the timer screen.
type Model struct {
	ctrl    *game.Controller
	sub     *game.Subscription
	snap    game.Snapshot
	opts    Options
	screen  *core.Screen
	keys    KeyMap
	mapper  *KeyMapper
	help    help.Model
	history table.Model
	input   textinput.Model

	historyLen int    // Board length rendered into the table
	historyTop string // Newest attempt ID rendered into the table

	editing   bool
	notice    string
	noticeErr bool
	noticeSeq int
	quitting  bool
}

// NewModel creates a timer screen observing ctrl. The caller keeps
// ownership of ctrl and closes it after the program exits.
func NewModel(ctrl *game.Controller, opts Options) Model {
	if opts.Runtime.ScreenW <= 0 || opts.Runtime.ScreenH <= 0 {
		opts.Runtime = core.DefaultConfig()
	}
	if opts.CloseThreshold <= 0 {
		opts.CloseThreshold = score.DefaultCloseThreshold
	}
	if len(opts.Presets) > 9 {
		opts.Presets = opts.Presets[:9]
	}

	keys := DefaultKeyMap(opts.Presets)
	snap := ctrl.Snapshot()

	input := textinput.New()
	input.Prompt = "Target (s): "
	input.CharLimit = 12
	input.Width = 12

	h := help.New()
	h.Width = opts.Runtime.ScreenW

	m := Model{
		ctrl:    ctrl,
		sub:     ctrl.Subscribe(),
		snap:    snap,
		opts:    opts,
		screen:  core.NewScreen(opts.Runtime.ScreenW, panelHeight),
		keys:    keys,
		mapper:  NewKeyMapper(keys),
		help:    h,
		history: newHistoryTable(historyHeight, theme.At(snap.ThemeIndex)),
		input:   input,
	}
	m.syncHistory()
	return m
}

// Init starts listening for controller snapshots.
func (m Model) Init() tea.Cmd {
	return waitForSnapshot(m.sub)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.editing {
			return m.handleEditKey(msg)
		}
		return m.handleInput(m.mapper.MapKey(msg))

	case tea.MouseMsg:
		if m.editing {
			return m, nil
		}
		return m.handleInput(m.mapper.MapMouse(msg))

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case SnapshotMsg:
		m.applySnapshot(game.Snapshot(msg))
		return m, waitForSnapshot(m.sub)

	case subscriptionClosedMsg:
		return m, nil

	case noticeExpiredMsg:
		if msg.seq == m.noticeSeq {
			m.notice = ""
			m.noticeErr = false
		}
		return m, nil
	}

	if m.editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleInput dispatches a mapped action. Keyboard and mouse triggers
// both arrive here.
func (m Model) handleInput(in core.Input) (tea.Model, tea.Cmd) {
	switch in.Action {
	case core.ActionQuit:
		m.quitting = true
		m.sub.Close()
		return m, tea.Quit

	case core.ActionTrigger:
		return m.trigger()

	case core.ActionPreset:
		if in.Preset < 0 || in.Preset >= len(m.opts.Presets) {
			return m, nil
		}
		return m.setTarget(m.opts.Presets[in.Preset])

	case core.ActionEdit:
		if m.snap.Phase != game.PhaseIdle {
			return m.setNotice("target can only change before a run", true)
		}
		m.editing = true
		m.input.SetValue("")
		m.input.Placeholder = strconv.FormatFloat(m.snap.Target, 'f', -1, 64)
		cmd := m.input.Focus()
		return m, cmd

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

// trigger forwards the single player action to the controller.
func (m Model) trigger() (tea.Model, tea.Cmd) {
	out := m.ctrl.PerformAction()
	m.applySnapshot(m.ctrl.Snapshot())

	if out.Kind == game.OutcomeStopped && out.NewRecord {
		return m.setNotice("new record "+score.FormatDelta(out.Attempt.Delta), false)
	}
	return m, nil
}

// setTarget applies a target and reports rejections as notices.
func (m Model) setTarget(v float64) (tea.Model, tea.Cmd) {
	if err := m.ctrl.SetTargetTime(v); err != nil {
		return m.setNotice(rejectionText(err), true)
	}
	m.applySnapshot(m.ctrl.Snapshot())
	return m.setNotice("target set to "+score.FormatSeconds(v), false)
}

// handleEditKey processes keys while the target editor is open.
func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mapper.MapEditKey(msg).Action {
	case core.ActionQuit:
		m.quitting = true
		m.sub.Close()
		return m, tea.Quit

	case core.ActionCancel:
		m.closeEditor()
		return m, nil

	case core.ActionConfirm:
		v, err := parseTarget(m.input.Value())
		if err != nil {
			return m.setNotice(err.Error(), true)
		}
		if err := m.ctrl.SetTargetTime(v); err != nil {
			return m.setNotice(rejectionText(err), true)
		}
		m.closeEditor()
		m.applySnapshot(m.ctrl.Snapshot())
		return m.setNotice("target set to "+score.FormatSeconds(v), false)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) closeEditor() {
	m.editing = false
	m.input.Blur()
	m.input.SetValue("")
}

// setNotice shows a transient status line.
func (m Model) setNotice(text string, isErr bool) (tea.Model, tea.Cmd) {
	m.noticeSeq++
	m.notice = text
	m.noticeErr = isErr
	return m, expireNoticeCmd(m.noticeSeq)
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.opts.Runtime.ScreenW = msg.Width
	m.opts.Runtime.ScreenH = msg.Height
	m.screen.Resize(msg.Width, panelHeight)
	m.help.Width = msg.Width
	return m, nil
}

// applySnapshot stores a snapshot and refreshes derived widgets.
func (m *Model) applySnapshot(snap game.Snapshot) {
	themeChanged := snap.ThemeIndex != m.snap.ThemeIndex
	m.snap = snap
	if themeChanged {
		m.history.SetStyles(historyStyles(theme.At(snap.ThemeIndex)))
	}
	m.syncHistory()
}

// syncHistory rebuilds table rows when the board changed.
func (m *Model) syncHistory() {
	top := ""
	if latest, ok := m.snap.Board.Latest(); ok {
		top = latest.ID
	}
	if top == m.historyTop && m.snap.Board.Len() == m.historyLen {
		return
	}
	m.historyTop = top
	m.historyLen = m.snap.Board.Len()
	m.history.SetRows(historyRows(m.snap.Board, m.opts.CloseThreshold))
}

// Snapshot returns the last observed controller state.
func (m Model) Snapshot() game.Snapshot {
	return m.snap
}

// Editing reports whether the target editor is open.
func (m Model) Editing() bool {
	return m.editing
}

// Notice returns the current status notice, if any.
func (m Model) Notice() string {
	return m.notice
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	th := theme.At(m.snap.ThemeIndex)
	palette := NewPalette(th)

	m.drawPanel(th)
	sections := []string{RenderScreen(m.screen, palette)}

	if m.snap.Board.Len() > 0 {
		sections = append(sections, m.history.View())
	} else {
		sections = append(sections, palette.Style(core.ColorMuted).Render("No attempts yet."))
	}

	switch {
	case m.editing:
		sections = append(sections, m.input.View())
	case m.notice != "":
		slot := core.ColorSecondary
		if m.noticeErr {
			slot = core.ColorError
		}
		sections = append(sections, palette.Style(slot).Render(m.notice))
	default:
		sections = append(sections, "")
	}

	sections = append(sections, palette.Style(core.ColorMuted).Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// drawPanel draws the framed timer panel into the screen buffer.
func (m Model) drawPanel(th theme.Theme) {
	s := m.screen
	s.Clear()
	if s.Width() < 2 {
		return
	}

	frame := s.Bounds()
	if frame.W > minPanelWidth*2 {
		frame = core.CenteredIn(frame, minPanelWidth*2, frame.H)
	}
	s.DrawBox(frame, core.ColorSecondary)
	inner := frame.Inset(1)
	if inner.Empty() {
		return
	}

	// Header
	s.DrawTextColor(inner.X+1, inner.Y, "TEMPORAL PRECISION", core.ColorPrimary)
	name := th.ID + " " + th.Name
	s.DrawTextColor(inner.Right()-1-len(name), inner.Y, name, core.ColorMuted)

	target := "TARGET " + score.FormatSeconds(m.snap.Target)
	s.DrawTextCenteredIn(inner, inner.Y+2, target, core.ColorSecondary)

	// Timer
	digitColor := core.ColorPrimary
	if m.snap.Celebrating {
		digitColor = core.ColorCelebrate
	}
	timer := FormatTimer(m.snap.Elapsed)
	if w := DigitsWidth(timer); w <= inner.W {
		DrawDigits(s, inner.X+(inner.W-w)/2, inner.Y+4, timer, digitColor)
	} else {
		s.DrawTextCenteredIn(inner, inner.Y+4+GlyphHeight/2, timer+"s", digitColor)
	}

	// Status and best
	statusY := inner.Y + 4 + GlyphHeight + 1
	text, color := m.statusLine()
	s.DrawTextCenteredIn(inner, statusY, text, color)
	s.DrawTextCenteredIn(inner, statusY+1, "BEST "+formatBest(m.snap.Board), core.ColorMuted)
}

// statusLine describes the current phase.
func (m Model) statusLine() (string, core.Color) {
	switch m.snap.Phase {
	case game.PhaseRunning:
		return "running... press space or click to stop", core.ColorDefault
	case game.PhaseReviewing:
		delta := "---"
		color := core.ColorDefault
		if m.snap.HasLast {
			delta = score.FormatDelta(m.snap.Last.Delta)
			if score.IsClose(m.snap.Last.Delta, m.opts.CloseThreshold) {
				color = core.ColorAccent
			}
		}
		if m.snap.Celebrating {
			return "NEW RECORD  " + delta, core.ColorCelebrate
		}
		return "delta " + delta + "  press space to reset", color
	default:
		return "ready: press space or click to start", core.ColorDefault
	}
}

// parseTarget parses a target typed by the player. A trailing "s" is allowed.
func parseTarget(raw string) (float64, error) {
	raw = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(raw), "s"))
	if raw == "" {
		return 0, errors.New("enter a target in seconds")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", raw)
	}
	return v, nil
}

// rejectionText turns a controller rejection into a notice.
func rejectionText(err error) string {
	switch {
	case errors.Is(err, game.ErrTargetOutOfRange):
		return "target must be between 0 and 3600 seconds"
	case errors.Is(err, game.ErrTargetLocked):
		return "target can only change before a run"
	default:
		return err.Error()
	}
}

// Run starts the Bubble Tea program for ctrl and blocks until it exits.
func Run(ctrl *game.Controller, opts Options) error {
	model := NewModel(ctrl, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Left click triggers like space
	)

	_, err := p.Run()
	return err
}
