package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/temporal-precision/internal/score"
	"github.com/vovakirdan/temporal-precision/internal/theme"
)

// Marks shown in the last history column.
const (
	markBest  = "best"
	markClose = "close"
)

// historyColumns returns the history table columns.
func historyColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Target", Width: 11},
		{Title: "Stopped", Width: 11},
		{Title: "Delta", Width: 11},
		{Title: "", Width: 6},
	}
}

// newHistoryTable creates the attempt history table.
func newHistoryTable(height int, t theme.Theme) table.Model {
	tbl := table.New(
		table.WithColumns(historyColumns()),
		table.WithHeight(height),
		table.WithFocused(false),
	)
	tbl.SetStyles(historyStyles(t))
	return tbl
}

// historyStyles colors the table header with the theme's secondary color.
func historyStyles(t theme.Theme) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(t.Secondary)).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.NoColor{}).
		Background(lipgloss.NoColor{}).
		Bold(false)
	return s
}

// historyRows renders the board newest first. The session best and stops
// closer than threshold are marked.
func historyRows(board score.ScoreBoard, threshold float64) []table.Row {
	best, hasBest := board.Best()
	attempts := board.Attempts()

	rows := make([]table.Row, len(attempts))
	for i, a := range attempts {
		mark := ""
		switch {
		case hasBest && a.ID == best.AttemptID:
			mark = markBest
		case score.IsClose(a.Delta, threshold):
			mark = markClose
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			score.FormatSeconds(a.Target),
			score.FormatSeconds(a.Stopped),
			score.FormatDelta(a.Delta),
			mark,
		}
	}
	return rows
}

// formatBest renders the session best as a signed delta, or --- before the
// first attempt.
func formatBest(board score.ScoreBoard) string {
	d, ok := board.BestDelta()
	if !ok {
		return "---"
	}
	return score.FormatDelta(d)
}
