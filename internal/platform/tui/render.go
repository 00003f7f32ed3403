package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/temporal-precision/internal/core"
	"github.com/vovakirdan/temporal-precision/internal/theme"
)

// Palette maps core.Color slots to lipgloss styles for one theme.
type Palette struct {
	styles map[core.Color]lipgloss.Style
}

// NewPalette builds the palette for a theme.
func NewPalette(t theme.Theme) Palette {
	primary := lipgloss.Color(t.Primary)
	secondary := lipgloss.Color(t.Secondary)

	return Palette{styles: map[core.Color]lipgloss.Style{
		core.ColorDefault:   lipgloss.NewStyle(),
		core.ColorPrimary:   lipgloss.NewStyle().Foreground(primary).Bold(true),
		core.ColorSecondary: lipgloss.NewStyle().Foreground(secondary),
		core.ColorMuted:     lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		core.ColorAccent:    lipgloss.NewStyle().Foreground(secondary).Bold(true),
		core.ColorCelebrate: lipgloss.NewStyle().Foreground(secondary).Bold(true).Blink(true),
		core.ColorError:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}}
}

// Style returns the style for a slot, falling back to the default style.
func (p Palette) Style(c core.Color) lipgloss.Style {
	if style, ok := p.styles[c]; ok {
		return style
	}
	return p.styles[core.ColorDefault]
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen, p Palette) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			// Collect consecutive cells with same color
			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				if cell.Rune != 0 {
					run.WriteRune(cell.Rune)
				}
				x++
			}

			sb.WriteString(p.Style(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
