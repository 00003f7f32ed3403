package core

// Action represents a semantic input action, abstracted from physical key
// presses and pointer clicks.
type Action int

const (
	ActionNone    Action = iota
	ActionTrigger        // Space, Enter, left click - start, stop or reset
	ActionPreset         // 1-9 - select a quick-select target
	ActionEdit           // E - edit the target time
	ActionConfirm        // Enter while editing - apply
	ActionCancel         // Esc while editing - discard
	ActionHelp           // ? - toggle full help
	ActionQuit           // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionTrigger:
		return "Trigger"
	case ActionPreset:
		return "Preset"
	case ActionEdit:
		return "Edit"
	case ActionConfirm:
		return "Confirm"
	case ActionCancel:
		return "Cancel"
	case ActionHelp:
		return "Help"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Input is a mapped input event. Preset is the zero-based quick-select
// slot and is only meaningful for ActionPreset.
type Input struct {
	Action Action
	Preset int
}
