package core

// Color is a palette slot for a screen cell. Slots are resolved to real
// colors by the renderer, so the active theme can change without redrawing.
type Color uint8

// Palette slots.
const (
	ColorDefault   Color = iota
	ColorPrimary         // Theme primary: timer digits, frame
	ColorSecondary       // Theme secondary: target, highlights
	ColorMuted           // Hints and inactive text
	ColorAccent          // Close hits in history
	ColorCelebrate       // New-record flash
	ColorError           // Rejected input
)

// String returns a human-readable name for the color slot.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "Default"
	case ColorPrimary:
		return "Primary"
	case ColorSecondary:
		return "Secondary"
	case ColorMuted:
		return "Muted"
	case ColorAccent:
		return "Accent"
	case ColorCelebrate:
		return "Celebrate"
	case ColorError:
		return "Error"
	default:
		return "Unknown"
	}
}
