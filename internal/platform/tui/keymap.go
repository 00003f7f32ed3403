package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/temporal-precision/internal/core"
)

// KeyMap defines the key bindings for the timer screen.
type KeyMap struct {
	Trigger key.Binding
	Presets []key.Binding
	Edit    key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Trigger, k.Edit, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Trigger, k.Edit, k.Confirm, k.Cancel},
		k.Presets,
		{k.Help, k.Quit},
	}
}

// DefaultKeyMap returns the default bindings with one digit key per
// quick-select target.
func DefaultKeyMap(presets []float64) KeyMap {
	bindings := make([]key.Binding, 0, len(presets))
	for i, v := range presets {
		if i >= 9 {
			break
		}
		digit := strconv.Itoa(i + 1)
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(digit),
			key.WithHelp(digit, fmt.Sprintf("target %gs", v)),
		))
	}

	return KeyMap{
		Trigger: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space/click", "start/stop/reset"),
		),
		Presets: bindings,
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "custom target"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply target"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel edit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key and mouse messages to actions.
// Keyboard and pointer triggers map to the same action, so both reach the
// controller through one handler.
type KeyMapper struct {
	keys KeyMap
}

// NewKeyMapper creates a key mapper over the given bindings.
func NewKeyMapper(keys KeyMap) *KeyMapper {
	return &KeyMapper{keys: keys}
}

// MapKey translates a key message while the target editor is closed.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) core.Input {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.Input{Action: core.ActionQuit}
	case key.Matches(msg, km.keys.Trigger):
		return core.Input{Action: core.ActionTrigger}
	case key.Matches(msg, km.keys.Edit):
		return core.Input{Action: core.ActionEdit}
	case key.Matches(msg, km.keys.Help):
		return core.Input{Action: core.ActionHelp}
	}

	for i, b := range km.keys.Presets {
		if key.Matches(msg, b) {
			return core.Input{Action: core.ActionPreset, Preset: i}
		}
	}

	return core.Input{Action: core.ActionNone}
}

// MapEditKey translates a key message while the target editor is open.
// Keys that map to ActionNone belong to the text input.
func (km *KeyMapper) MapEditKey(msg tea.KeyMsg) core.Input {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return core.Input{Action: core.ActionQuit}
	case key.Matches(msg, km.keys.Confirm):
		return core.Input{Action: core.ActionConfirm}
	case key.Matches(msg, km.keys.Cancel):
		return core.Input{Action: core.ActionCancel}
	}
	return core.Input{Action: core.ActionNone}
}

// MapMouse translates a mouse message. Only a left-button press triggers.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg) core.Input {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		return core.Input{Action: core.ActionTrigger}
	}
	return core.Input{Action: core.ActionNone}
}
